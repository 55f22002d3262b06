package solver

// The watch index and the unit-propagation loop (BCP). Grounded on the
// classic Minisat two-watched-literal scheme (EricR-saturday's
// solver_propagation.go/clause.go propagate), kept as exactly two watches
// per non-unit clause rather than gophersat's cardinality-generalized
// watcherList, which watches cardinality+1 positions and would violate the
// two-watched-literal invariant this package is tested against.

// watchRecord is an entry in a literal's watch list: the clause being
// watched, and the other watched literal (a cache that lets propagate skip
// loading the clause when it is already satisfied by blocker).
type watchRecord struct {
	clause  *Clause
	blocker Lit
}

// watchClause registers c under its first two literals' negations. c must
// have at least two literals.
func (s *Solver) watchClause(c *Clause) {
	l0, l1 := c.First(), c.Second()
	n0, n1 := l0.Negation(), l1.Negation()
	s.watches[n0] = append(s.watches[n0], watchRecord{clause: c, blocker: l1})
	s.watches[n1] = append(s.watches[n1], watchRecord{clause: c, blocker: l0})
}

// unwatchClause removes c from the watch lists of its two current watched
// literals. Used when a learned clause is deleted by reduceLearned.
func (s *Solver) unwatchClause(c *Clause) {
	s.removeWatch(c.First().Negation(), c)
	s.removeWatch(c.Second().Negation(), c)
}

func (s *Solver) removeWatch(l Lit, c *Clause) {
	ws := s.watches[l]
	for i, w := range ws {
		if w.clause == c {
			last := len(ws) - 1
			ws[i] = ws[last]
			s.watches[l] = ws[:last]
			return
		}
	}
}

// propagate drains the propagation queue (the unconsumed suffix of the
// trail), maintaining watch invariants as it goes. It returns the
// conflicting clause, or nil once the queue is empty with no conflict.
func (s *Solver) propagate() *Clause {
	for s.qHead < len(s.trail) {
		lit := s.trail[s.qHead]
		s.qHead++
		s.Stats.Propagations++
		falsified := lit.Negation()
		// Clauses watching falsified are filed under its negation, lit.
		ws := s.watches[lit]
		keep := 0
		var conflict *Clause
		for i := 0; i < len(ws); i++ {
			w := ws[i]
			if s.litValue(w.blocker) == True {
				ws[keep] = w
				keep++
				continue
			}
			c := w.clause
			// Make c.Get(1) the falsified watch, c.Get(0) the other one.
			if c.First() == falsified {
				c.Swap(0, 1)
			}
			if s.litValue(c.First()) == True {
				ws[keep] = watchRecord{clause: c, blocker: c.First()}
				keep++
				continue
			}
			moved := false
			for k := 2; k < c.Len(); k++ {
				if s.litValue(c.Get(k)) != False {
					c.Swap(1, k)
					moved = true
					nw := c.Second().Negation()
					s.watches[nw] = append(s.watches[nw], watchRecord{clause: c, blocker: c.First()})
					break
				}
			}
			if moved {
				continue
			}
			// No replacement literal: c is unit on c.Get(0), or conflicting.
			ws[keep] = w
			keep++
			if s.litValue(c.First()) == False {
				conflict = c
				// Preserve the watches not yet scanned; they stay valid
				// once this conflict is undone by backtracking.
				for j := i + 1; j < len(ws); j++ {
					ws[keep] = ws[j]
					keep++
				}
				break
			}
			s.enqueue(c.First(), c)
		}
		s.watches[lit] = ws[:keep]
		if conflict != nil {
			// Leave any watches not yet scanned in place and drop the queue.
			s.qHead = len(s.trail)
			return conflict
		}
	}
	return nil
}
