package dimacs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	pb, err := Parse(strings.NewReader("c a comment\np cnf 3 2\n1 -2 0\n2 3 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, pb.NbVars)
	assert.Equal(t, [][]int{{1, -2}, {2, 3}}, pb.Clauses)
}

func TestParseMultilineClause(t *testing.T) {
	pb, err := Parse(strings.NewReader("p cnf 4 1\n1 -2\n3 -4 0\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, -2, 3, -4}}, pb.Clauses)
}

func TestParseNoTrailingNewline(t *testing.T) {
	pb, err := Parse(strings.NewReader("p cnf 2 1\n1 2 0"))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}}, pb.Clauses)
}

func TestParseEmptyClauseIsUnsatInput(t *testing.T) {
	pb, err := Parse(strings.NewReader("p cnf 1 1\n0\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{}}, pb.Clauses)
}

func TestParseLiteralOutOfRange(t *testing.T) {
	_, err := Parse(strings.NewReader("p cnf 2 1\n1 3 0\n"))
	assert.Error(t, err)
}

func TestParseUnterminatedClause(t *testing.T) {
	_, err := Parse(strings.NewReader("p cnf 2 1\n1 2\n"))
	assert.Error(t, err)
}

func TestParseInterleavedComment(t *testing.T) {
	pb, err := Parse(strings.NewReader("p cnf 2 2\n1 2 0\nc mid-file comment\n-1 -2 0\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}, {-1, -2}}, pb.Clauses)
}

func TestParseMissingHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("1 2 0\n"))
	assert.Error(t, err)
}
