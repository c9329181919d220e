package ledgercore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode_TruncatesAtRuneBoundary(t *testing.T) {
	long := "a very long ledger number that definitely exceeds the cap"
	c := NewCode(long)
	assert.LessOrEqual(t, len(c), 24)
	assert.True(t, len(string(c)) <= len(long))
}

func TestNewCurrencyCode_TruncatesToThreeBytes(t *testing.T) {
	assert.Equal(t, CurrencyCode("USD"), NewCurrencyCode("USDX"))
	assert.Equal(t, CurrencyCode("US"), NewCurrencyCode("US"))
}

func TestTruncateUTF8_NeverSplitsARune(t *testing.T) {
	// "é" is two bytes in UTF-8; capping at 3 bytes from "ééé" (6 bytes)
	// must not produce an invalid partial rune.
	out := truncateUTF8("ééé", 3)
	assert.LessOrEqual(t, len(out), 3)
	for _, r := range out {
		assert.NotEqual(t, rune(0xFFFD), r)
	}
}

func TestNormalizeTimestamp_StripsMonotonicAndTruncates(t *testing.T) {
	now := time.Now()
	a := NormalizeTimestamp(now)
	b := NormalizeTimestamp(now)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a, b) // == comparable, required for map keys
	assert.Zero(t, a.Nanosecond()%1000, "must be truncated to microseconds")
}

func TestLedgerKey_StableAsMapKey(t *testing.T) {
	ts := NewTimestamp()
	id := NewID()
	k1 := LedgerKey{LedgerID: id, Timestamp: ts}
	k2 := LedgerKey{LedgerID: id, Timestamp: ts}

	m := map[LedgerKey]string{k1: "first"}
	v, ok := m[k2]
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestParseID_RejectsGarbage(t *testing.T) {
	_, err := ParseID("not-a-uuid")
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, kind)
}
