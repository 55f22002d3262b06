package solver

// lubyRestartBase is the unit of conflicts between Luby-scheduled restarts;
// the sequence value at a given index scales that unit up and down.
const lubyRestartBase = 512

// lubySeq returns the i-th term (i >= 1) of the Luby sequence
// 1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8, ... used to pace restarts:
// long stretches of small restart budgets interspersed with occasional
// much longer ones, which in practice outperforms a fixed restart period.
//
// term(i) = 2^(k-1) when i is exactly 2^k-1, and otherwise term(i) equals
// term of i's offset into the run bracketed by the nearest powers of two
// below it. That second case is naturally a tail call; here it is a
// reassignment of i and a re-entry into the outer loop instead, so the
// whole function runs in a fixed amount of stack regardless of i.
func lubySeq(i uint) uint {
	for {
		for k := uint(1); k < 32; k++ {
			if i == (1<<k)-1 {
				return 1 << (k - 1)
			}
		}
		for k := uint(1); ; k++ {
			low, high := uint(1)<<(k-1), (uint(1)<<k)-1
			if low <= i && i < high {
				i = i - low + 1
				break
			}
		}
	}
}
