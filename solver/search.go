package solver

// The Solver type and the outer search-driver state machine (spec.md
// §4.8): decide -> propagate -> (on conflict) analyze + backjump, with
// restarts and learned-clause database reduction. Grounded on the overall
// shape of gophersat's Solver/propagateAndSearch/search/Solve and
// EricR-saturday's search()/assume()/cancelUntil(), adapted to the plain
// clause model and to the state-machine framing spec.md names explicitly.

const (
	defaultVarDecay   = 0.95
	defaultClauseDecay = 0.999
	reduceGrowth       = 1.05
)

// RestartStrategy selects which conflict schedule triggers a restart.
type RestartStrategy int

const (
	// LubyRestart restarts after a Luby-sequence-shaped conflict budget.
	LubyRestart RestartStrategy = iota
	// LBDRestart restarts when the trend of recent learned-clause LBDs
	// rises well above the all-time average.
	LBDRestart
)

// Options tunes the solver's heuristics. It holds no I/O-facing state; the
// satconfig package is what decodes options from a host's configuration
// source into one of these.
type Options struct {
	VarDecay        float64
	ClauseDecay     float64
	PhaseSaving     bool
	RestartStrategy RestartStrategy
	ReduceDB        bool
}

// DefaultOptions returns the solver's default tuning.
func DefaultOptions() Options {
	return Options{
		VarDecay:        defaultVarDecay,
		ClauseDecay:     defaultClauseDecay,
		PhaseSaving:     true,
		RestartStrategy: LBDRestart,
		ReduceDB:        true,
	}
}

// Stats is a snapshot of solver counters, exposed for information purposes
// only (spec.md §6).
type Stats struct {
	Decisions          int
	Propagations       int
	Conflicts          int
	Learned            int
	Restarts           int
	SimplifyEliminated int
	ReduceEliminated   int
	PureLiterals       int
}

// A Solver holds every piece of state for one resolution: the clause
// database, the trail, the watch index and the decision heuristics. It is
// built once by New and is not safe for concurrent use; distinct Solver
// values share no state and may be driven from different goroutines.
type Solver struct {
	Options Options
	Stats   Stats

	nbVars int
	status Status

	assign []Value
	level  []int32
	reason []*Clause

	trail      []Lit
	trailHeads []int
	qHead      int
	nbAssigned int

	watches [][]watchRecord
	clauses []*Clause
	learnts []*Clause

	activity  []float64
	varInc    float64
	heapOrder []int32
	heapSlot  []int32
	polarity  []bool

	claInc float64

	lbd           lbdTrend
	lubyIdx       uint
	restartBudget uint

	maxLearnts float64

	seenBuf    []bool
	lbdSeenBuf []bool

	learnedLits litPool
}

// New builds a solver for pb using opts as its tuning. If pb is already
// known unsatisfiable (an empty clause, or two contradicting units, were
// found while building it), the returned solver's first Check call
// returns Unsat immediately.
func New(pb *Problem, opts Options) *Solver {
	s := &Solver{
		Options:    opts,
		nbVars:     pb.NbVars,
		status:     Indet,
		assign:     make([]Value, pb.NbVars),
		level:      make([]int32, pb.NbVars),
		reason:     make([]*Clause, pb.NbVars),
		watches:    make([][]watchRecord, pb.NbVars*2),
		activity:   make([]float64, pb.NbVars),
		polarity:   make([]bool, pb.NbVars),
		varInc:     1.0,
		claInc:     1.0,
		lubyIdx:    1,
		seenBuf:    make([]bool, pb.NbVars),
		lbdSeenBuf: make([]bool, pb.NbVars+1),
		maxLearnts: float64(len(pb.Clauses))/3.0 + 100,
	}
	for v := 0; v < pb.NbVars; v++ {
		s.level[v] = -1
	}
	for v := 0; v < pb.NbVars; v++ {
		s.heapPush(v)
	}

	for _, raw := range pb.Clauses {
		lits := make([]Lit, len(raw))
		for i, x := range raw {
			if x == 0 || abs32(int32(x)) > int32(pb.NbVars) {
				panic("solver: malformed literal in clause")
			}
			lits[i] = IntToLit(x)
		}
		if !s.addInputClause(lits) {
			s.status = Unsat
			return s
		}
	}
	if !s.simplify() {
		s.status = Unsat
	}
	return s
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

// addInputClause builds and installs one clause from the original
// instance. It returns false on an immediate top-level contradiction
// (empty clause, or a unit conflicting with an already-known one).
func (s *Solver) addInputClause(lits []Lit) bool {
	if len(lits) == 0 {
		return false
	}
	c, tautology := NewClause(lits)
	if tautology {
		return true
	}
	switch c.Len() {
	case 1:
		return s.enqueue(c.First(), nil)
	default:
		s.clauses = append(s.clauses, c)
		s.watchClause(c)
		return true
	}
}

func (s *Solver) allAssigned() bool {
	return s.nbAssigned == s.nbVars
}

// Solve runs the search driver to completion and returns Sat or Unsat.
func (s *Solver) Solve() Status {
	if s.status != Indet {
		return s.status
	}
	if s.allAssigned() {
		s.status = Sat
		return s.status
	}
	s.status = s.search()
	return s.status
}

// search is the Decide/Propagate/Conflict loop of spec.md's state machine,
// including restarts.
func (s *Solver) search() Status {
	for {
		conflict := s.propagate()
		if conflict == nil {
			if s.allAssigned() {
				return Sat
			}
			if s.decisionLevel() == 0 {
				if !s.simplify() {
					return Unsat
				}
				if s.allAssigned() {
					return Sat
				}
			}
			if s.Options.ReduceDB && float64(len(s.learnts)) > s.maxLearnts {
				s.reduceLearned()
				s.maxLearnts *= reduceGrowth
			}
			if s.shouldRestart() {
				s.undoUntil(0)
				s.Stats.Restarts++
				continue
			}
			v := s.pickVar()
			s.pushDecision(v.SignedLit(!s.decisionPolarity(v)))
			continue
		}
		s.Stats.Conflicts++
		if s.decisionLevel() == 0 {
			return Unsat
		}
		learned, btLevel := s.analyze(conflict)
		s.undoUntil(btLevel)
		s.Stats.Learned++
		s.lbd.observe(learned.lbd())
		s.learnts = append(s.learnts, learned)
		s.clauses = append(s.clauses, learned)
		if learned.Len() >= 2 {
			s.watchClause(learned)
		}
		s.enqueue(learned.First(), learned)
	}
}

// shouldRestart reports whether a restart is due under the configured
// policy. Activities and learned clauses survive a restart; only the trail
// is undone.
func (s *Solver) shouldRestart() bool {
	switch s.Options.RestartStrategy {
	case LBDRestart:
		if s.lbd.triggers() {
			s.lbd.reset()
			return true
		}
		return false
	default:
		if s.Stats.Conflicts == 0 {
			return false
		}
		budget := lubySeq(s.lubyIdx) * lubyRestartBase
		if uint(s.Stats.Conflicts)-s.restartBudget >= budget {
			s.lubyIdx++
			s.restartBudget = uint(s.Stats.Conflicts)
			return true
		}
		return false
	}
}

// reduceLearned sorts the learned clauses worst first (highest LBD, ties
// broken by lowest activity) and deletes every clause in the worse half
// that is neither locked nor of LBD 2 or less, grounded on gophersat's
// watcher.go reduceLearned.
func (s *Solver) reduceLearned() {
	sortLearnts(s.learnts)
	half := len(s.learnts) / 2
	kept := s.learnts[:0]
	removed := map[*Clause]bool{}
	for i := 0; i < half; i++ {
		c := s.learnts[i]
		if c.lbd() <= 2 || c.Locked() {
			kept = append(kept, c)
			continue
		}
		s.unwatchClause(c)
		s.Stats.ReduceEliminated++
		removed[c] = true
	}
	kept = append(kept, s.learnts[half:]...)
	s.learnts = kept
	liveClauses := s.clauses[:0]
	for _, c := range s.clauses {
		if !removed[c] {
			liveClauses = append(liveClauses, c)
		}
	}
	s.clauses = liveClauses
}

// Check reports whether the instance is satisfiable, running the full
// search if it has not already completed.
func (s *Solver) Check() Status {
	return s.Solve()
}

// Model returns the satisfying assignment found by the last successful
// Check/Solve call. Index 0 is a filler (always false); indices 1..N give
// the truth value of variable i. Model panics if the solver's status is
// not Sat.
func (s *Solver) Model() []bool {
	if s.status != Sat {
		panic("solver: Model called on a non-Sat solver")
	}
	model := make([]bool, s.nbVars+1)
	for v := 0; v < s.nbVars; v++ {
		model[v+1] = s.assign[v] == True
	}
	return model
}

// NbVars returns the number of variables in the instance.
func (s *Solver) NbVars() int {
	return s.nbVars
}
