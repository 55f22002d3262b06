/*
Package solver implements the core of a CDCL (Conflict-Driven Clause
Learning) SAT solver: two-watched-literal unit propagation, first-UIP
conflict analysis with non-chronological backtracking, a VSIDS-style
variable activity heuristic, and a level-0 simplifier (pure-literal
elimination, unit elimination, satisfied-clause removal).

The package is pure and synchronous: it performs no I/O and is deliberately
silent on how a problem is read or how a result is reported. Those are the
job of external collaborators such as the dimacs and bf packages.

Describing a problem

A Problem is a variable count plus a list of clauses, each a list of
signed, nonzero integers in DIMACS convention:

	pb := solver.NewProblem(3, [][]int{
		{-2, 3},
		{1, -3},
		{3},
	})

Solving a problem

	s := solver.New(pb, solver.DefaultOptions())
	status := s.Solve()

If status is solver.Sat, s.Model() returns the satisfying assignment: a
slice of length NbVars+1, where index 0 is an unused filler and index i
gives the truth value of variable i.

	if status == solver.Sat {
		model := s.Model()
	}

s.Stats holds a snapshot of solver counters (decisions, propagations,
conflicts, learned clauses, restarts, simplification and reduction
eliminations, pure literals found), useful for diagnostics but with no
bearing on correctness.
*/
package solver
