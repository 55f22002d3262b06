package solver

import (
	"fmt"
	"strings"
)

// A Problem is a plain CNF instance: a variable count and a list of
// clauses, each a list of signed, nonzero DIMACS-convention integers. It is
// the sole constructed-instance entry point into the core (spec.md §6);
// the dimacs and bf packages are the two external collaborators that build
// one.
type Problem struct {
	NbVars  int
	Clauses [][]int
}

// NewProblem builds a Problem from its variable count and clause list. No
// validation happens here; malformed literals are rejected when the
// Problem is handed to New, which is where spec.md places that failure.
func NewProblem(nbVars int, clauses [][]int) *Problem {
	return &Problem{NbVars: nbVars, Clauses: clauses}
}

// CNF renders pb in DIMACS format.
func (pb *Problem) CNF() string {
	var b strings.Builder
	fmt.Fprintf(&b, "p cnf %d %d\n", pb.NbVars, len(pb.Clauses))
	for _, c := range pb.Clauses {
		for _, lit := range c {
			fmt.Fprintf(&b, "%d ", lit)
		}
		b.WriteString("0\n")
	}
	return b.String()
}
