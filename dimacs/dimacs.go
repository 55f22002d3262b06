// Package dimacs reads the DIMACS CNF text format and produces a
// solver.Problem. It is an external collaborator: the solver package
// knows nothing about this format or about io.Reader, and this package
// knows nothing about the solver's internal literal encoding.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/opensat/cdcl/solver"
)

// Parse reads a DIMACS CNF instance from r and returns the corresponding
// Problem. The format is:
//
//	c a comment line, ignored
//	p cnf <nbVars> <nbClauses>
//	1 -2 3 0
//	-1 2 0
//	...
//
// Clauses may span several lines; each one is terminated by a literal 0.
// Literals outside [-nbVars, nbVars] are rejected.
func Parse(r io.Reader) (*solver.Problem, error) {
	br := bufio.NewReader(r)
	nbVars, nbClauses, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	clauses := make([][]int, 0, nbClauses)
	cur := []int{}
	b, err := br.ReadByte()
	for err == nil {
		switch {
		case isSpace(b):
			b, err = br.ReadByte()
		case b == 'c':
			for err == nil && b != '\n' {
				b, err = br.ReadByte()
			}
		default:
			var val int
			var ok bool
			val, ok, b, err = readInt(b, br)
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("dimacs: %w", err)
			}
			if !ok {
				break
			}
			if val == 0 {
				clauses = append(clauses, cur)
				cur = []int{}
			} else {
				if val > nbVars || -val > nbVars {
					return nil, fmt.Errorf("dimacs: literal %d out of range for %d variables", val, nbVars)
				}
				cur = append(cur, val)
			}
		}
	}
	if err != io.EOF {
		return nil, fmt.Errorf("dimacs: %w", err)
	}
	if len(cur) != 0 {
		return nil, fmt.Errorf("dimacs: unterminated clause at end of file")
	}
	return solver.NewProblem(nbVars, clauses), nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readHeader skips comment lines and reads the "p cnf nbVars nbClauses" line.
func readHeader(r *bufio.Reader) (nbVars, nbClauses int, err error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return 0, 0, fmt.Errorf("dimacs: could not read header: %w", err)
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "c") {
			if err == io.EOF {
				return 0, 0, fmt.Errorf("dimacs: no header found")
			}
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 4 || fields[0] != "p" || fields[1] != "cnf" {
			return 0, 0, fmt.Errorf("dimacs: invalid header line %q", trimmed)
		}
		nbVars, err = strconv.Atoi(fields[2])
		if err != nil {
			return 0, 0, fmt.Errorf("dimacs: invalid variable count %q: %w", fields[2], err)
		}
		nbClauses, err = strconv.Atoi(fields[3])
		if err != nil {
			return 0, 0, fmt.Errorf("dimacs: invalid clause count %q: %w", fields[3], err)
		}
		return nbVars, nbClauses, nil
	}
}

// readInt reads a signed int starting at byte b (a digit or a minus sign;
// leading whitespace and comment lines have already been consumed by the
// caller). It returns the parsed value, whether any digit was actually
// read, the byte following the int (valid only if err == nil), and any
// error. err == io.EOF with ok == true means the int was read in full and
// the stream then ended with no trailing separator; that is not an error
// for the last literal of the last clause in a file with no final newline.
func readInt(b byte, r *bufio.Reader) (res int, ok bool, next byte, err error) {
	neg := 1
	if b == '-' {
		neg = -1
		b, err = r.ReadByte()
		if err != nil {
			return 0, false, b, err
		}
	}
	for {
		if b < '0' || b > '9' {
			if !ok {
				return 0, false, b, fmt.Errorf("unexpected byte %q, expected a digit", b)
			}
			return res * neg, true, b, nil
		}
		res = 10*res + int(b-'0')
		ok = true
		b, err = r.ReadByte()
		if err != nil {
			return res * neg, true, b, err
		}
	}
}
