package solver

import "sort"

// Conflict analysis: the 1-UIP cut over the implication graph (spec.md
// §4.5), grounded on EricR-saturday's solver_analysis.go analyze() for the
// seen/counter/trail-walkback shape, with gophersat's timing for activity
// bookkeeping (bump every variable touched during the resolution walk,
// decay once at the end).

// analyze computes the first-UIP learned clause for the conflict clause
// confl, discovered at decisionLevel() == d >= 1. It returns the learned
// clause and the backtrack level d' < d. If the learned clause has a
// single literal, the returned clause is still built (so it carries a
// reason for provenance) but is never watched; the backtrack level is
// always 0 in that case.
func (s *Solver) analyze(confl *Clause) (*Clause, int) {
	d := s.decisionLevel()
	seen := s.seenBuf
	for i := range seen {
		seen[i] = false
	}

	lits := []Lit{0} // index 0 reserved for the asserting literal
	counter := 0
	btLevel := 0

	resolve := func(c *Clause, skip Lit) {
		for i := 0; i < c.Len(); i++ {
			l := c.Get(i)
			if l == skip {
				continue
			}
			v := l.Var()
			if seen[v] {
				continue
			}
			seen[v] = true
			s.varBumpActivity(v)
			lvl := int(s.level[v])
			switch {
			case lvl == d:
				counter++
			case lvl > 0:
				lits = append(lits, l)
				if lvl > btLevel {
					btLevel = lvl
				}
			}
		}
	}

	s.clauseBumpActivity(confl)
	resolve(confl, -1)

	ptr := len(s.trail) - 1
	var p Lit
	for {
		for !seen[s.trail[ptr].Var()] {
			ptr--
		}
		p = s.trail[ptr]
		v := p.Var()
		ptr--
		counter--
		if counter == 0 {
			break
		}
		if reason := s.reason[v]; reason != nil {
			s.clauseBumpActivity(reason)
			resolve(reason, p)
		}
	}
	lits[0] = p.Negation()

	s.varDecayActivity()
	s.clauseDecayActivity()

	if len(lits) == 1 {
		return NewLearnedClause(lits), 0
	}

	sort.Slice(lits[1:], func(i, j int) bool {
		return s.level[lits[1+i].Var()] > s.level[lits[1+j].Var()]
	})
	// Learned clauses are short-lived and numerous; hand their backing
	// storage to this solver's own literal pool rather than the GC.
	learned := NewLearnedClause(s.learnedLits.take(lits...))
	learned.computeLBD(s)
	return learned, btLevel
}

// computeLBD sets c's literal block distance: the number of distinct
// decision levels among its literals. Used by the reduce/restart policy.
func (c *Clause) computeLBD(s *Solver) {
	seen := s.lbdSeenBuf
	for i := range seen {
		seen[i] = false
	}
	lbd := 0
	for i := 0; i < c.Len(); i++ {
		lvl := int(s.level[c.Get(i).Var()])
		if lvl > 0 && !seen[lvl] {
			seen[lvl] = true
			lbd++
		}
	}
	c.setLbd(lbd)
}
