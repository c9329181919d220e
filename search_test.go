package ledgercore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchQuery_Empty(t *testing.T) {
	clauses, err := ParseSearchQuery("  ")
	require.NoError(t, err)
	assert.Empty(t, clauses)
}

func TestParseSearchQuery_EqAndNe(t *testing.T) {
	clauses, err := ParseSearchQuery("number = 1010, type != Leaf")
	require.NoError(t, err)
	require.Len(t, clauses, 2)
	assert.Equal(t, SearchClause{Field: "number", Op: OpEq, Value: "1010"}, clauses[0])
	assert.Equal(t, SearchClause{Field: "type", Op: OpNe, Value: "Leaf"}, clauses[1])
}

func TestParseSearchQuery_In(t *testing.T) {
	clauses, err := ParseSearchQuery("type in (Leaf|Intermediate)")
	require.NoError(t, err)
	require.Len(t, clauses, 1)
	assert.Equal(t, "type", clauses[0].Field)
	assert.Equal(t, OpIn, clauses[0].Op)
	assert.ElementsMatch(t, []string{"Leaf", "Intermediate"}, clauses[0].Values)
}

func TestParseSearchQuery_RejectsMalformedClause(t *testing.T) {
	_, err := ParseSearchQuery("just-a-field-name")
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, kind)
}

func TestMatchClauses(t *testing.T) {
	fields := map[string]string{"number": "1010", "type": "Leaf"}

	eq, err := ParseSearchQuery("number = 1010")
	require.NoError(t, err)
	assert.True(t, MatchClauses(fields, eq))

	ne, err := ParseSearchQuery("type != Intermediate")
	require.NoError(t, err)
	assert.True(t, MatchClauses(fields, ne))

	in, err := ParseSearchQuery("type in (Leaf|Derived)")
	require.NoError(t, err)
	assert.True(t, MatchClauses(fields, in))

	miss, err := ParseSearchQuery("type = Derived")
	require.NoError(t, err)
	assert.False(t, MatchClauses(fields, miss))
}
