package solver

import (
	"fmt"
	"sort"
	"strings"
)

// A Clause is an ordered, duplicate-free disjunction of literals, plus the
// bookkeeping conflict analysis and clause-database reduction need.
//
// Invariants (spec): no duplicate literal, no literal together with its
// negation (tautologies are rejected at construction time), size >= 0.
type Clause struct {
	lits []Lit
	// flags packs the learned/locked bits and the LBD value of a learned
	// clause into a single word, the way the teacher packs
	// cardinality/flags into lbdValue. Input clauses never touch the LBD
	// bits.
	flags    uint32
	activity float32
}

const (
	learnedMask uint32 = 1 << 31
	lockedMask  uint32 = 1 << 30
	bothMasks          = learnedMask | lockedMask
)

// NewClause builds an input (non-learned) clause from lits, removing
// duplicate literals. It returns (clause, false) normally, or (nil, true)
// if the clause is a tautology (contains both a literal and its negation);
// the caller should drop tautological clauses rather than add them.
func NewClause(lits []Lit) (*Clause, bool) {
	sorted := make([]Lit, len(lits))
	copy(sorted, lits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := sorted[:0]
	for i, l := range sorted {
		if i > 0 && l == sorted[i-1] {
			continue // duplicate literal
		}
		if i > 0 && l == sorted[i-1].Negation() {
			return nil, true // tautology: l and ¬l both present
		}
		out = append(out, l)
	}
	return &Clause{lits: out}, false
}

// NewLearnedClause wraps lits (already deduplicated by conflict analysis)
// as a learned clause with default activity.
func NewLearnedClause(lits []Lit) *Clause {
	return &Clause{lits: lits, flags: learnedMask, activity: 1.0}
}

// Learned returns true iff c was produced by conflict analysis.
func (c *Clause) Learned() bool {
	return c.flags&learnedMask == learnedMask
}

// Lock marks c as the reason clause for some currently assigned literal.
// Locked clauses are never deletion candidates during a reduce-database
// pass.
func (c *Clause) Lock() {
	c.flags |= lockedMask
}

// Unlock clears the locked flag, once the literal it justified is
// unassigned by backtracking.
func (c *Clause) Unlock() {
	c.flags &^= lockedMask
}

// Locked reports whether c currently justifies an assigned literal.
func (c *Clause) Locked() bool {
	return c.flags&lockedMask == lockedMask
}

func (c *Clause) lbd() int {
	return int(c.flags &^ bothMasks)
}

func (c *Clause) setLbd(lbd int) {
	c.flags = (c.flags & bothMasks) | (uint32(lbd) &^ bothMasks)
}

// Len returns the number of literals in the clause.
func (c *Clause) Len() int {
	return len(c.lits)
}

// First returns the first literal of the clause (one of its two watched
// literals, once the clause is watched).
func (c *Clause) First() Lit {
	return c.lits[0]
}

// Second returns the second literal of the clause (the other watched
// literal).
func (c *Clause) Second() Lit {
	return c.lits[1]
}

// Get returns the ith literal of the clause.
func (c *Clause) Get(i int) Lit {
	return c.lits[i]
}

// Set overwrites the ith literal of the clause.
func (c *Clause) Set(i int, l Lit) {
	c.lits[i] = l
}

// Swap exchanges the ith and jth literals of the clause. Used by watch
// maintenance to keep the two watched literals at indices 0 and 1.
func (c *Clause) Swap(i, j int) {
	c.lits[i], c.lits[j] = c.lits[j], c.lits[i]
}

// Back returns the last literal of the clause.
func (c *Clause) Back() Lit {
	return c.lits[len(c.lits)-1]
}

// RemoveIf removes every literal for which pred returns true, preserving
// relative order of the remaining literals. Used only during level-0
// simplification; the clause must not be watched while this runs.
func (c *Clause) RemoveIf(pred func(Lit) bool) {
	out := c.lits[:0]
	for _, l := range c.lits {
		if !pred(l) {
			out = append(out, l)
		}
	}
	c.lits = out
}

// CNF returns a DIMACS representation of the clause, e.g. "1 -2 3 0".
func (c *Clause) CNF() string {
	parts := make([]string, len(c.lits)+1)
	for i, l := range c.lits {
		parts[i] = fmt.Sprintf("%d", l.Int())
	}
	parts[len(c.lits)] = "0"
	return strings.Join(parts, " ")
}

func (c *Clause) String() string {
	return c.CNF()
}
