package solver

import "sort"

// sortLearnts orders learned clauses so the worst reduction candidates
// (highest LBD, and among equal LBD the lowest activity) come first,
// grounded on gophersat's watcherList.Less.
func sortLearnts(learnts []*Clause) {
	sort.Slice(learnts, func(i, j int) bool {
		li, lj := learnts[i].lbd(), learnts[j].lbd()
		if li != lj {
			return li > lj
		}
		return learnts[i].activity < learnts[j].activity
	})
}
