package ledgercore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_AddIsExact(t *testing.T) {
	a, err := NewAmount("0.10", "USD")
	require.NoError(t, err)
	b, err := NewAmount("0.20", "USD")
	require.NoError(t, err)

	sum := a.Add(b)
	want, err := NewAmount("0.30", "USD")
	require.NoError(t, err)
	assert.True(t, sum.Equal(want), "decimal addition must not drift like float64 would")
}

func TestAmount_ZeroAndPositive(t *testing.T) {
	z := ZeroAmount("USD")
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())

	one, err := NewAmount("1.00", "USD")
	require.NoError(t, err)
	assert.True(t, one.IsPositive())
}

func TestNewAmount_RejectsMalformedValue(t *testing.T) {
	_, err := NewAmount("not-a-number", "USD")
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, kind)
}
