package bf

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/opensat/cdcl/solver"
)

// A Formula is any kind of boolean formula, not necessarily in CNF.
type Formula interface {
	nnf() Formula
	String() string
	Eval(model map[string]bool) bool
}

// negatable is implemented by the constants, andFormula and orFormula so that
// negation can dispatch straight to the right push-down-of-not rule instead
// of a type switch living in a single not.nnf method. signedVar flips its
// own sign through negatedVar instead.
type negatable interface {
	negated() Formula
}

// Solve solves the given formula.
// f is first Tseitin-encoded into CNF, then handed to the solver core.
// The function returns a model associating each variable name with its binding, or nil if the formula was not satisfiable.
func Solve(f Formula) map[string]bool {
	return newCNF(f).solve()
}

// Dimacs writes the DIMACS CNF version of the formula on w.
// It is useful so as to feed it to any SAT solver.
// The original names of variables is associated with their DIMACS integer counterparts
// in comments, between the prolog and the set of clauses.
// For instance, if the variable "a" is associated with the index 1, there will be a comment line
// "c a=1".
func Dimacs(f Formula, w io.Writer) error {
	c := newCNF(f)
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", len(c.idx.all), len(c.clauses))

	named := lo.Filter(lo.Keys(c.idx.pb), func(v boolVar, _ int) bool { return !v.dummy })
	names := lo.Map(named, func(v boolVar, _ int) string { return v.name })
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(bw, "c %s=%d\n", name, c.idx.pb[pbVar(name)])
	}

	for _, clause := range c.clauses {
		strs := lo.Map(clause, func(lit int, _ int) string { return strconv.Itoa(lit) })
		fmt.Fprintf(bw, "%s 0\n", strings.Join(strs, " "))
	}
	return bw.Flush()
}

// The "true" constant.
type trueConst struct{}

// True is the constant denoting a tautology.
var True Formula = trueConst{}

func (t trueConst) nnf() Formula                    { return t }
func (t trueConst) String() string                  { return "⊤" }
func (t trueConst) Eval(model map[string]bool) bool { return true }
func (t trueConst) negated() Formula                { return False }

// The "false" constant.
type falseConst struct{}

// False is the constant denoting a contradiction.
var False Formula = falseConst{}

func (f falseConst) nnf() Formula                    { return f }
func (f falseConst) String() string                  { return "⊥" }
func (f falseConst) Eval(model map[string]bool) bool { return false }
func (f falseConst) negated() Formula                { return True }

// Var generates a named boolean variable in a formula.
func Var(name string) Formula {
	return pbVar(name)
}

func pbVar(name string) boolVar {
	return boolVar{name: name, dummy: false}
}

func dummyVar(name string) boolVar {
	return boolVar{name: name, dummy: true}
}

// boolVar is a named propositional variable. dummy marks variables the
// Tseitin encoding introduces on its own, as opposed to ones the caller
// named directly: dummies never appear as keys in a solved model.
type boolVar struct {
	name  string
	dummy bool
}

func (v boolVar) nnf() Formula { return signedVar{v: v} }

func (v boolVar) String() string { return v.name }

func (v boolVar) Eval(model map[string]bool) bool {
	b, ok := model[v.name]
	if !ok {
		panic(fmt.Errorf("model lacks binding for variable %s", v.name))
	}
	return b
}

// signedVar is a literal: a variable, or its negation, already pushed all
// the way down to a leaf. Formulas in this shape are what the CNF encoder
// consumes directly.
type signedVar struct {
	v       boolVar
	negated bool
}

func (l signedVar) nnf() Formula { return l }

func (l signedVar) String() string {
	if l.negated {
		return "not(" + l.v.name + ")"
	}
	return l.v.name
}

func (l signedVar) Eval(model map[string]bool) bool {
	b := l.v.Eval(model)
	if l.negated {
		return !b
	}
	return b
}

func (l signedVar) negatedVar() Formula {
	l.negated = !l.negated
	return l
}

// Not represents a negation. It negates the given subformula.
func Not(f Formula) Formula {
	return notFormula{f}
}

type notFormula [1]Formula

func (n notFormula) nnf() Formula {
	sub := n[0].nnf()
	if s, ok := sub.(signedVar); ok {
		return s.negatedVar()
	}
	neg, ok := sub.(negatable)
	if !ok {
		panic("invalid formula type")
	}
	return neg.negated()
}

func (n notFormula) String() string {
	return "not(" + n[0].String() + ")"
}

func (n notFormula) Eval(model map[string]bool) bool {
	return !n[0].Eval(model)
}

// And generates a conjunction of subformulas.
func And(subs ...Formula) Formula {
	return andFormula(subs)
}

type andFormula []Formula

func (a andFormula) nnf() Formula {
	flattened := make(andFormula, 0, len(a))
	for _, sub := range a {
		switch n := sub.nnf().(type) {
		case andFormula: // flatten nested conjunctions into the parent
			flattened = append(flattened, n...)
		case trueConst: // a tautological conjunct contributes nothing
		case falseConst:
			return False
		default:
			flattened = append(flattened, n)
		}
	}
	switch len(flattened) {
	case 0:
		return True
	case 1:
		return flattened[0]
	default:
		return flattened
	}
}

func (a andFormula) negated() Formula {
	negs := orFormula(lo.Map(a, func(f Formula, _ int) Formula { return notFormula{f}.nnf() }))
	return negs.nnf()
}

func (a andFormula) String() string {
	parts := lo.Map(a, func(f Formula, _ int) string { return f.String() })
	return "and(" + strings.Join(parts, ", ") + ")"
}

func (a andFormula) Eval(model map[string]bool) bool {
	for _, sub := range a {
		if !sub.Eval(model) {
			return false
		}
	}
	return true
}

// Or generates a disjunction of subformulas.
func Or(subs ...Formula) Formula {
	return orFormula(subs)
}

type orFormula []Formula

func (o orFormula) nnf() Formula {
	flattened := make(orFormula, 0, len(o))
	for _, sub := range o {
		switch n := sub.nnf().(type) {
		case orFormula: // flatten nested disjunctions into the parent
			flattened = append(flattened, n...)
		case falseConst: // a contradictory disjunct contributes nothing
		case trueConst:
			return True
		default:
			flattened = append(flattened, n)
		}
	}
	switch len(flattened) {
	case 0:
		return False
	case 1:
		return flattened[0]
	default:
		return flattened
	}
}

func (o orFormula) negated() Formula {
	negs := andFormula(lo.Map(o, func(f Formula, _ int) Formula { return notFormula{f}.nnf() }))
	return negs.nnf()
}

func (o orFormula) String() string {
	parts := lo.Map(o, func(f Formula, _ int) string { return f.String() })
	return "or(" + strings.Join(parts, ", ") + ")"
}

func (o orFormula) Eval(model map[string]bool) bool {
	for _, sub := range o {
		if sub.Eval(model) {
			return true
		}
	}
	return false
}

// Implies indicates a subformula implies another one.
func Implies(f1, f2 Formula) Formula {
	return orFormula{notFormula{f1}, f2}
}

// Eq indicates a subformula is equivalent to another one.
func Eq(f1, f2 Formula) Formula {
	return andFormula{orFormula{notFormula{f1}, f2}, orFormula{f1, notFormula{f2}}}
}

// Xor indicates exactly one of the two given subformulas is true.
func Xor(f1, f2 Formula) Formula {
	return andFormula{orFormula{notFormula{f1}, notFormula{f2}}, orFormula{f1, f2}}
}

// Unique indicates exactly one of the given variables must be true.
// It might create dummy variables to reduce the number of generated clauses.
func Unique(vars ...string) Formula {
	return exactlyOne(lo.Map(vars, func(name string, _ int) boolVar { return pbVar(name) })...)
}

// atMostFourExactlyOne generates clauses indicating exactly one of the given
// variables is true, by brute-forcing every pairwise exclusion. It is only
// suitable for a small number of variables: the clause count is quadratic.
func atMostFourExactlyOne(vars ...boolVar) Formula {
	asForms := lo.Map(vars, func(v boolVar, _ int) Formula { return v })
	clauses := make([]Formula, 1, 1+(len(vars)*len(vars)-1)/2)
	clauses[0] = Or(asForms...)
	for i := 0; i < len(vars)-1; i++ {
		for j := i + 1; j < len(vars); j++ {
			clauses = append(clauses, Or(Not(asForms[i]), Not(asForms[j])))
		}
	}
	return And(clauses...)
}

// exactlyOne builds the exactly-one-of-n constraint. Past a handful of
// variables, the quadratic pairwise encoding is replaced with a
// sqrt(n)-by-sqrt(n) grid of dummy row/column variables, each tied by an
// equivalence to the disjunction of the variables in its row or column, and
// the exactly-one constraint recurses onto the (much smaller) rows and
// columns instead of onto the original variables directly.
func exactlyOne(vars ...boolVar) Formula {
	if len(vars) <= 4 {
		return atMostFourExactlyOne(vars...)
	}
	side := int(math.Sqrt(float64(len(vars))) + 0.5)
	cols := int(math.Ceil(float64(len(vars)) / float64(side)))
	tag := strings.Join(lo.Map(vars, func(v boolVar, _ int) string { return v.name }), "-")

	rowVars := make([]boolVar, side)
	rowMembers := make([][]Formula, side)
	for i := range rowVars {
		rowVars[i] = dummyVar(fmt.Sprintf("row-%d-%s", i, tag))
	}
	colVars := make([]boolVar, cols)
	colMembers := make([][]Formula, cols)
	for i := range colVars {
		colVars[i] = dummyVar(fmt.Sprintf("col-%d-%s", i, tag))
	}
	for i, v := range vars {
		rowMembers[i/cols] = append(rowMembers[i/cols], v)
		colMembers[i%cols] = append(colMembers[i%cols], v)
	}

	ties := make([]Formula, 0, len(rowVars)+len(colVars))
	for i, v := range rowVars {
		ties = append(ties, Eq(v, Or(rowMembers[i]...)))
	}
	for i, v := range colVars {
		ties = append(ties, Eq(v, Or(colMembers[i]...)))
	}
	return And(append(ties, exactlyOne(rowVars...), exactlyOne(colVars...))...)
}

// varIndex associates variable names with the 1-based DIMACS indices the
// CNF encoder assigns them.
type varIndex struct {
	all map[boolVar]int // every var, including dummies introduced while encoding
	pb  map[boolVar]int // only the vars that named the original problem
}

// indexOf returns the signed DIMACS literal for l, assigning v a fresh
// index the first time it's seen.
func (vi *varIndex) indexOf(l signedVar) int {
	idx, ok := vi.all[l.v]
	if !ok {
		idx = len(vi.all) + 1
		vi.all[l.v] = idx
		if !l.v.dummy {
			vi.pb[l.v] = idx
		}
	}
	if l.negated {
		return -idx
	}
	return idx
}

// freshDummy allocates a new Tseitin dummy variable and returns its index.
func (vi *varIndex) freshDummy() int {
	idx := len(vi.all) + 1
	vi.all[dummyVar(fmt.Sprintf("dummy-%d", idx))] = idx
	return idx
}

// cnf is the conjunctive-normal-form representation of a boolean formula,
// ready to be solved.
type cnf struct {
	idx     varIndex
	clauses [][]int
}

// newCNF Tseitin-encodes f into CNF.
func newCNF(f Formula) *cnf {
	idx := varIndex{all: make(map[boolVar]int), pb: make(map[boolVar]int)}
	c := &cnf{idx: idx}
	c.clauses = c.encode(f.nnf())
	return c
}

// solve solves c, handing it to the solver core as a plain Problem.
// If it is satisfiable, the function returns a model, associating each
// variable name with its binding. Else, the function returns nil.
func (c *cnf) solve() map[string]bool {
	pb := solver.NewProblem(len(c.idx.all), c.clauses)
	s := solver.New(pb, solver.DefaultOptions())
	if s.Solve() != solver.Sat {
		return nil
	}
	m := s.Model()
	return lo.MapEntries(c.idx.pb, func(v boolVar, idx int) (string, bool) { return v.name, m[idx] })
}

// encode recursively lowers an NNF formula into a flat list of CNF clauses,
// introducing a dummy variable for any conjunction found nested inside a
// disjunction (the one place a CNF formula can't represent the subformula
// directly).
func (c *cnf) encode(f Formula) [][]int {
	switch f := f.(type) {
	case signedVar:
		return [][]int{{c.idx.indexOf(f)}}
	case andFormula:
		var clauses [][]int
		for _, sub := range f {
			clauses = append(clauses, c.encode(sub)...)
		}
		return clauses
	case orFormula:
		return c.encodeOr(f)
	case trueConst:
		return [][]int{}
	case falseConst:
		return [][]int{{}}
	default:
		panic("invalid NNF formula")
	}
}

func (c *cnf) encodeOr(o orFormula) [][]int {
	var extra [][]int
	var lits []int
	for _, sub := range o {
		switch sub := sub.(type) {
		case signedVar:
			lits = append(lits, c.idx.indexOf(sub))
		case andFormula:
			d := c.idx.freshDummy()
			lits = append(lits, d)
			for _, conjunct := range sub {
				// The guard goes on the conjunct's main clause, which
				// encode places last; earlier ones only define dummies.
				conjClauses := c.encode(conjunct)
				last := len(conjClauses) - 1
				conjClauses[last] = append(conjClauses[last], -d)
				extra = append(extra, conjClauses...)
			}
		default:
			panic("unexpected disjunct in NNF or")
		}
	}
	return append(extra, lo.Uniq(lits))
}
