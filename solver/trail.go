package solver

// Assignment state: the per-variable three-valued value/level/reason arrays
// and the chronological trail. The propagation queue is not a separate
// slice: newly assigned, not-yet-propagated literals are exactly
// s.trail[s.qHead:], the same trick gophersat's unifyLiteral and Minisat's
// propagate() use to avoid a second buffer.

// value returns the current value of v.
func (s *Solver) value(v Var) Value {
	return s.assign[v]
}

// litValue returns the current value of l, accounting for its polarity.
func (s *Solver) litValue(l Lit) Value {
	v := s.assign[l.Var()]
	if v == Unknown {
		return Unknown
	}
	if l.IsPositive() == (v == True) {
		return True
	}
	return False
}

// decisionLevel returns the number of decisions currently on the stack.
func (s *Solver) decisionLevel() int {
	return len(s.trailHeads)
}

// enqueue records lit as newly true, with reason as its implying clause (nil
// for a decision). If var(lit) is already assigned, nothing is recorded: it
// returns true when the existing value agrees with lit and false when it
// contradicts it. addInputClause and sweepClauses use that false result to
// detect a top-level contradiction between unit clauses.
func (s *Solver) enqueue(lit Lit, reason *Clause) bool {
	v := lit.Var()
	if s.assign[v] != Unknown {
		return s.litValue(lit) != False
	}
	if lit.IsPositive() {
		s.assign[v] = True
	} else {
		s.assign[v] = False
	}
	s.level[v] = int32(s.decisionLevel())
	s.reason[v] = reason
	if reason != nil {
		reason.Lock()
	}
	s.trail = append(s.trail, lit)
	s.nbAssigned++
	return true
}

// pushDecision records a new decision level and enqueues lit as a decision
// (no reason).
func (s *Solver) pushDecision(lit Lit) {
	s.trailHeads = append(s.trailHeads, len(s.trail))
	s.Stats.Decisions++
	s.enqueue(lit, nil)
}

// undoUntil pops the trail back to the position recorded for level d,
// clearing value/level/reason for every popped variable, and drops the
// propagation queue (there is nothing left to propagate once literals are
// unassigned again).
func (s *Solver) undoUntil(d int) {
	if s.decisionLevel() <= d {
		return
	}
	head := s.trailHeads[d]
	s.nbAssigned -= len(s.trail) - head
	for i := len(s.trail) - 1; i >= head; i-- {
		lit := s.trail[i]
		v := lit.Var()
		s.assign[v] = Unknown
		if r := s.reason[v]; r != nil {
			r.Unlock()
			s.reason[v] = nil
		}
		s.level[v] = -1
		s.polarity[v] = lit.IsPositive()
		s.heapRestore(int(v))
	}
	s.trail = s.trail[:head]
	s.trailHeads = s.trailHeads[:d]
	s.qHead = len(s.trail)
}
