package solver

// Variable and clause activity: the VSIDS-like decision heuristic (spec.md
// §4.6) and the bump/decay bookkeeping conflict analysis drives (§4.5).
//
// The decision order is a binary max-heap over s.activity, folded directly
// into the solver rather than factored out as its own queue type: nothing
// outside variable-activity bookkeeping ever needs to touch it. s.heapOrder
// holds the heap array (heapOrder[0] is always the currently highest-activity
// variable still in the heap); s.heapSlot[v] is v's position in heapOrder, or
// -1 once v has been popped. Fix-up and fix-down both work by swapping a
// variable toward its resting place rather than holding it aside and
// shifting the gap, which costs a few extra writes but keeps both loops
// symmetric.

const (
	varActivityRescale = 1e100
	claActivityRescale = 1e20
)

func (s *Solver) heapLess(i, j int32) bool {
	if s.activity[i] != s.activity[j] {
		return s.activity[i] < s.activity[j]
	}
	return i > j
}

func (s *Solver) heapFixUp(i int32) {
	for i > 0 {
		p := (i - 1) / 2
		if !s.heapLess(s.heapOrder[p], s.heapOrder[i]) {
			return
		}
		s.heapOrder[i], s.heapOrder[p] = s.heapOrder[p], s.heapOrder[i]
		s.heapSlot[s.heapOrder[i]] = i
		s.heapSlot[s.heapOrder[p]] = p
		i = p
	}
}

func (s *Solver) heapFixDown(i int32) {
	n := int32(len(s.heapOrder))
	for {
		largest, l, r := i, 2*i+1, 2*i+2
		if l < n && s.heapLess(s.heapOrder[largest], s.heapOrder[l]) {
			largest = l
		}
		if r < n && s.heapLess(s.heapOrder[largest], s.heapOrder[r]) {
			largest = r
		}
		if largest == i {
			return
		}
		s.heapOrder[i], s.heapOrder[largest] = s.heapOrder[largest], s.heapOrder[i]
		s.heapSlot[s.heapOrder[i]] = i
		s.heapSlot[s.heapOrder[largest]] = largest
		i = largest
	}
}

// heapContains reports whether v is currently a candidate for pickVar.
func (s *Solver) heapContains(v int) bool {
	return v < len(s.heapSlot) && s.heapSlot[v] >= 0
}

// heapPush adds v to the heap. v must not already be present.
func (s *Solver) heapPush(v int) {
	for len(s.heapSlot) <= v {
		s.heapSlot = append(s.heapSlot, -1)
	}
	i := int32(len(s.heapOrder))
	s.heapOrder = append(s.heapOrder, int32(v))
	s.heapSlot[v] = i
	s.heapFixUp(i)
}

// heapPopMax removes and returns the highest-activity variable in the heap.
func (s *Solver) heapPopMax() int {
	top := s.heapOrder[0]
	last := len(s.heapOrder) - 1
	s.heapOrder[0] = s.heapOrder[last]
	s.heapSlot[s.heapOrder[0]] = 0
	s.heapSlot[top] = -1
	s.heapOrder = s.heapOrder[:last]
	if len(s.heapOrder) > 0 {
		s.heapFixDown(0)
	}
	return int(top)
}

// heapBumped re-sifts v after varBumpActivity raised its activity; an
// increase can only ever move v closer to the root.
func (s *Solver) heapBumped(v int) {
	if s.heapContains(v) {
		s.heapFixUp(s.heapSlot[v])
	}
}

// heapRestore makes v a decision candidate again after it becomes
// unassigned. Most callers find v already absent (pickVar popped it,
// whether or not it ended up being used), so this usually just pushes it
// back in; the fix-up/fix-down pair only matters for the rarer case where v
// never left the heap but its activity moved while it sat there.
func (s *Solver) heapRestore(v int) {
	if !s.heapContains(v) {
		s.heapPush(v)
		return
	}
	i := s.heapSlot[v]
	s.heapFixUp(i)
	s.heapFixDown(s.heapSlot[v])
}

// varBumpActivity rewards v for participating in the current conflict's
// resolution.
func (s *Solver) varBumpActivity(v Var) {
	s.activity[v] += s.varInc
	if s.activity[v] > varActivityRescale {
		for i := range s.activity {
			s.activity[i] *= 1 / varActivityRescale
		}
		s.varInc *= 1 / varActivityRescale
	}
	s.heapBumped(int(v))
}

// varDecayActivity increases the bump scale, equivalent to decaying every
// activity by varDecay.
func (s *Solver) varDecayActivity() {
	s.varInc *= 1 / s.Options.VarDecay
}

// clauseBumpActivity rewards c (locked or learned) for taking part in a
// resolution step.
func (s *Solver) clauseBumpActivity(c *Clause) {
	c.activity += float32(s.claInc)
	if c.activity > claActivityRescale {
		for _, l := range s.learnts {
			l.activity *= 1 / claActivityRescale
		}
		s.claInc *= 1 / claActivityRescale
	}
}

// clauseDecayActivity increases the clause bump scale, equivalent to
// decaying every learned clause's activity by Options.ClauseDecay.
func (s *Solver) clauseDecayActivity() {
	s.claInc *= 1 / s.Options.ClauseDecay
}

// pickVar removes and returns the unassigned variable of highest activity,
// ties broken by lowest index (heapLess orders equal activities by index).
// Precondition: at least one variable is unassigned.
func (s *Solver) pickVar() Var {
	for {
		v := Var(s.heapPopMax())
		if s.value(v) == Unknown {
			return v
		}
	}
}

// decisionPolarity returns the polarity to use for a fresh decision on v:
// the last phase it held, if phase saving is enabled, true otherwise.
func (s *Solver) decisionPolarity(v Var) bool {
	if s.Options.PhaseSaving {
		return s.polarity[v]
	}
	return true
}
