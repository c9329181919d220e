package sqlstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgercore "github.com/mtelahun/account-engine-sub001"
	"github.com/mtelahun/account-engine-sub001/sqlstore"
)

func newTestStore(t *testing.T) *sqlstore.SQLStore {
	t.Helper()
	db, err := sqlstore.Open(sqlstore.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)

	store, err := sqlstore.New(db)
	require.NoError(t, err)
	return store
}

// A subset of memstore's repository tests, run against the relational
// backend, per spec §8 property 8: the two backends must be
// interchangeable behind ledgercore.Store.
func TestLedgerRepository_InsertGetSearch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	l := ledgercore.Ledger{ID: ledgercore.NewID(), Number: "1000", Name: "Assets", Type: ledgercore.LedgerIntermediate}
	_, err := store.Ledgers().Insert(ctx, l)
	require.NoError(t, err)

	got, err := store.Ledgers().Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.Number, got.Number)

	found, err := store.Ledgers().Search(ctx, "number = 1000")
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestLedgerRepository_DuplicateInsertRejected(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	l := ledgercore.Ledger{ID: ledgercore.NewID(), Number: "1000"}
	_, err := store.Ledgers().Insert(ctx, l)
	require.NoError(t, err)

	_, err = store.Ledgers().Insert(ctx, l)
	require.Error(t, err)
	kind, ok := ledgercore.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ledgercore.KindDuplicateRecord, kind)
}

func TestGeneralLedgerRepository_SingletonSemantics(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	gl := ledgercore.GeneralLedger{ID: ledgercore.NewID(), Name: "Demo", CurrencyCode: "USD"}
	_, err := store.GeneralLedger().Insert(ctx, gl)
	require.NoError(t, err)

	got, err := store.GeneralLedger().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, gl.ID, got.ID)

	_, err = store.GeneralLedger().Insert(ctx, gl)
	require.Error(t, err)
}

func TestLedgerRepository_ArchivedRecordRejectsSaveAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	l := ledgercore.Ledger{ID: ledgercore.NewID(), Number: "1000", Name: "Assets"}
	_, err := store.Ledgers().Insert(ctx, l)
	require.NoError(t, err)
	require.NoError(t, store.Ledgers().Archive(ctx, l.ID))

	l.Name = "Assets Renamed"
	_, err = store.Ledgers().Save(ctx, l)
	require.Error(t, err)
	kind, ok := ledgercore.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ledgercore.KindValidation, kind)

	err = store.Ledgers().Delete(ctx, l.ID)
	require.Error(t, err)
	kind, ok = ledgercore.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ledgercore.KindValidation, kind)
}

func TestLedgerTransactionRepository_CompositeKeyRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	amount, err := ledgercore.NewAmount("100.00", "USD")
	require.NoError(t, err)

	key := ledgercore.LedgerKey{LedgerID: ledgercore.NewID(), Timestamp: ledgercore.NewTimestamp()}
	row := ledgercore.LedgerTransaction{Key: key, LedgerXactTypeCode: "LL", Amount: amount}
	_, err = store.LedgerTransactions().Insert(ctx, row)
	require.NoError(t, err)

	got, err := store.LedgerTransactions().Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(amount))
}
