package ledgercore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_UnwrapAndIs(t *testing.T) {
	inner := errors.New("connection refused")
	wrapped := WrapInternal(inner, "insert ledger")

	assert.ErrorIs(t, wrapped, inner)

	var target *Error
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, KindInternal, target.Kind)
}

func TestKindOf_PlainErrorHasNoKind(t *testing.T) {
	base := NewValidationErrorf("bad number")
	wrapped := errors.New("service: " + base.Error())

	_, ok := KindOf(wrapped)
	assert.False(t, ok, "plain errors.New should not resolve to a Kind")

	kind, ok := KindOf(base)
	require.True(t, ok)
	assert.Equal(t, KindValidation, kind)
}

func TestError_IsComparesKindNotMessage(t *testing.T) {
	a := NewDuplicateRecordErrorf("account %s exists", "1010")
	b := NewDuplicateRecordErrorf("ledger %s exists", "2000")
	assert.True(t, a.Is(b))

	c := NewRecordNotFoundErrorf("missing")
	assert.False(t, a.Is(c))
}
