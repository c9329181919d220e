package memstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgercore "github.com/mtelahun/account-engine-sub001"
	"github.com/mtelahun/account-engine-sub001/memstore"
)

func TestLedgerRepository_InsertGetSearch(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	l := ledgercore.Ledger{ID: ledgercore.NewID(), Number: "1000", Name: "Assets", Type: ledgercore.LedgerIntermediate}
	inserted, err := store.Ledgers().Insert(ctx, l)
	require.NoError(t, err)
	assert.Equal(t, l.ID, inserted.ID)

	got, err := store.Ledgers().Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.Number, got.Number)

	found, err := store.Ledgers().Search(ctx, "number = 1000")
	require.NoError(t, err)
	require.Len(t, found, 1)

	notFound, err := store.Ledgers().Search(ctx, "number = 9999")
	require.NoError(t, err)
	assert.Empty(t, notFound)
}

func TestLedgerRepository_DuplicateInsertRejected(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	l := ledgercore.Ledger{ID: ledgercore.NewID(), Number: "1000", Name: "Assets"}
	_, err := store.Ledgers().Insert(ctx, l)
	require.NoError(t, err)

	_, err = store.Ledgers().Insert(ctx, l)
	require.Error(t, err)
	kind, ok := ledgercore.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ledgercore.KindDuplicateRecord, kind)
}

func TestLedgerRepository_GetMissingIsEmptyRecord(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	_, err := store.Ledgers().Get(ctx, ledgercore.NewID())
	require.Error(t, err)
	kind, ok := ledgercore.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ledgercore.KindEmptyRecord, kind)
}

func TestLedgerRepository_SaveRequiresExistingRecord(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	l := ledgercore.Ledger{ID: ledgercore.NewID(), Number: "1000"}
	_, err := store.Ledgers().Save(ctx, l)
	require.Error(t, err)
	kind, ok := ledgercore.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ledgercore.KindRecordNotFound, kind)
}

func TestLedgerRepository_ArchiveAndUnarchive(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	l := ledgercore.Ledger{ID: ledgercore.NewID(), Number: "1000"}
	_, err := store.Ledgers().Insert(ctx, l)
	require.NoError(t, err)

	require.NoError(t, store.Ledgers().Archive(ctx, l.ID))
	require.NoError(t, store.Ledgers().Unarchive(ctx, l.ID))

	err = store.Ledgers().Archive(ctx, ledgercore.NewID())
	require.Error(t, err)
}

func TestLedgerRepository_ArchivedRecordRejectsSaveAndDelete(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

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

	require.NoError(t, store.Ledgers().Unarchive(ctx, l.ID))
	_, err = store.Ledgers().Save(ctx, l)
	require.NoError(t, err)
}

func TestGeneralLedgerRepository_SingletonSemantics(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	_, err := store.GeneralLedger().Get(ctx)
	require.Error(t, err)

	gl := ledgercore.GeneralLedger{ID: ledgercore.NewID(), Name: "Demo", CurrencyCode: "USD"}
	_, err = store.GeneralLedger().Insert(ctx, gl)
	require.NoError(t, err)

	got, err := store.GeneralLedger().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, gl.ID, got.ID)

	_, err = store.GeneralLedger().Insert(ctx, gl)
	require.Error(t, err)
	kind, ok := ledgercore.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ledgercore.KindDuplicateRecord, kind)
}
