package solver

// The top-level simplifier (spec.md §4.7): pure-literal elimination, unit
// elimination and satisfied/false-literal removal, run only at decision
// level 0 and iterated to a fixed point. Grounded on the teacher's
// Problem.simplify (problem.go) for the satisfied-clause/false-literal
// sweep, generalized to a plain (non-cardinality) clause, plus a
// pure-literal scan in the style of CptPie's DPLL solver.

// simplify runs propagation, pure-literal elimination and clause cleanup
// at decision level 0 until nothing changes. It returns false iff the
// instance is proven UNSAT.
func (s *Solver) simplify() bool {
	for {
		if conflict := s.propagate(); conflict != nil {
			return false
		}
		progressed := s.pureLiteralScan()
		ok, cleaned := s.sweepClauses()
		if !ok {
			return false
		}
		progressed = progressed || cleaned
		if !progressed {
			return true
		}
	}
}

// pureLiteralScan finds every unassigned variable that occurs, among
// surviving clauses, in only one polarity, and enqueues that polarity. It
// returns true iff at least one such literal was found.
func (s *Solver) pureLiteralScan() bool {
	seenPos := make([]bool, s.nbVars)
	seenNeg := make([]bool, s.nbVars)
	for _, c := range s.clauses {
		for i := 0; i < c.Len(); i++ {
			l := c.Get(i)
			if s.value(l.Var()) != Unknown {
				continue
			}
			if l.IsPositive() {
				seenPos[l.Var()] = true
			} else {
				seenNeg[l.Var()] = true
			}
		}
	}
	found := false
	for v := 0; v < s.nbVars; v++ {
		if s.value(Var(v)) != Unknown {
			continue
		}
		switch {
		case seenPos[v] && !seenNeg[v]:
			s.enqueue(Var(v).Lit(), nil)
			s.Stats.PureLiterals++
			found = true
		case seenNeg[v] && !seenPos[v]:
			s.enqueue(Var(v).SignedLit(true), nil)
			s.Stats.PureLiterals++
			found = true
		}
	}
	return found
}

// sweepClauses removes every clause satisfied by the current assignment,
// and removes every false literal from the clauses that remain. It rebuilds
// the watch index and clears reasons for literals whose justifying clause
// moved or vanished, since clause handles may have been rewritten by the
// sweep. It returns (false, _) iff a clause became empty (UNSAT), and
// otherwise (true, changed) reporting whether anything was removed.
//
// Every clause dropped from s.clauses here (satisfied, or reduced to a unit
// that gets extracted onto the trail instead) is also dropped from
// s.learnts if it happened to be a learned one: leaving a stale pointer in
// s.learnts would make a later reduceLearned count it as eliminated a
// second time, or, if it were locked, keep it in s.learnts forever with no
// backing clause left in s.clauses at all.
func (s *Solver) sweepClauses() (bool, bool) {
	changed := false
	var dropped map[*Clause]bool
	drop := func(c *Clause) {
		if dropped == nil {
			dropped = make(map[*Clause]bool)
		}
		dropped[c] = true
	}
	kept := s.clauses[:0]
	for _, c := range s.clauses {
		sat := false
		for i := 0; i < c.Len(); i++ {
			if s.litValue(c.Get(i)) == True {
				sat = true
				break
			}
		}
		if sat {
			s.Stats.SimplifyEliminated++
			changed = true
			drop(c)
			continue
		}
		before := c.Len()
		c.RemoveIf(func(l Lit) bool { return s.litValue(l) == False })
		if c.Len() != before {
			changed = true
		}
		switch c.Len() {
		case 0:
			return false, changed
		case 1:
			if !s.enqueue(c.First(), nil) {
				return false, changed
			}
			s.Stats.SimplifyEliminated++
			drop(c)
			continue
		}
		kept = append(kept, c)
	}
	s.clauses = kept
	if dropped != nil {
		liveLearnts := s.learnts[:0]
		for _, c := range s.learnts {
			if !dropped[c] {
				liveLearnts = append(liveLearnts, c)
			}
		}
		s.learnts = liveLearnts
		for _, l := range s.trail {
			if r := s.reason[l.Var()]; r != nil && dropped[r] {
				r.Unlock()
				s.reason[l.Var()] = nil
			}
		}
	}
	if !changed {
		return true, false
	}
	s.rebuildWatches()
	return true, true
}

// rebuildWatches recomputes the watch index from scratch over s.clauses.
// Clauses are mutated in place by RemoveIf, so every *Clause pointer held
// elsewhere (reasons, s.learnts) stays valid; only the watch lists, which
// cache literal positions, need recomputing.
func (s *Solver) rebuildWatches() {
	for i := range s.watches {
		s.watches[i] = s.watches[i][:0]
	}
	for _, c := range s.clauses {
		if c.Len() >= 2 {
			s.watchClause(c)
		}
	}
}
