package ledgercore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgercore "github.com/mtelahun/account-engine-sub001"
	"github.com/mtelahun/account-engine-sub001/memstore"
)

type fixture struct {
	ctx     context.Context
	store   *memstore.MemStore
	graph   *ledgercore.LedgerGraphService
	journal *ledgercore.JournalService
	engine  *ledgercore.PostingEngine
	query   *ledgercore.QueryService

	gl    ledgercore.GeneralLedger
	cash  ledgercore.Ledger
	sales ledgercore.Ledger
	gj    ledgercore.Journal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	f := &fixture{
		ctx:     ctx,
		store:   store,
		graph:   ledgercore.NewLedgerGraphService(store, nil),
		journal: ledgercore.NewJournalService(store),
		engine:  ledgercore.NewPostingEngine(store, nil),
		query:   ledgercore.NewQueryService(store, nil),
	}

	gl, err := f.graph.CreateGeneralLedger(ctx, "Demo Co", "USD")
	require.NoError(t, err)
	f.gl = gl

	assets, err := f.graph.CreateLedger(ctx, gl.RootLedgerID, "1000", "Assets", ledgercore.LedgerIntermediate, nil)
	require.NoError(t, err)
	cash, err := f.graph.CreateLedger(ctx, assets.ID, "1010", "Cash", ledgercore.LedgerLeaf, nil)
	require.NoError(t, err)
	f.cash = cash

	sales, err := f.graph.CreateLedger(ctx, gl.RootLedgerID, "4000", "Sales", ledgercore.LedgerLeaf, nil)
	require.NoError(t, err)
	f.sales = sales

	gj, err := f.journal.CreateGeneralJournal(ctx, "General Journal", "GJ")
	require.NoError(t, err)
	f.gj = gj

	return f
}

type wantLine = struct {
	LedgerID ledgercore.ID
	XactType ledgercore.XactType
	Amount   ledgercore.Amount
}

// S1 — Create GL and post a simple Dr/Cr.
func TestPostTransaction_SimpleDrCr(t *testing.T) {
	f := newFixture(t)
	amount, err := ledgercore.NewAmount("100.00", "USD")
	require.NoError(t, err)

	ts := ledgercore.NewTimestamp()
	hdr, _, err := f.engine.CreateGeneralTransaction(f.ctx, f.gj.ID, ts, "cash sale", []wantLine{
		{LedgerID: f.cash.ID, XactType: ledgercore.XactTypeDr, Amount: amount},
		{LedgerID: f.sales.ID, XactType: ledgercore.XactTypeCr, Amount: amount},
	})
	require.NoError(t, err)

	posted, err := f.engine.PostTransaction(f.ctx, hdr.ID)
	require.NoError(t, err)
	assert.True(t, posted)

	key := ledgercore.LedgerKey{LedgerID: f.sales.ID, Timestamp: ts}
	row, err := f.store.LedgerTransactions().Get(f.ctx, key)
	require.NoError(t, err)
	assert.True(t, row.Amount.Equal(amount))

	pair, err := f.store.LedgerTransactionLedgers().Get(f.ctx, key)
	require.NoError(t, err)
	assert.Equal(t, f.cash.ID, pair.LedgerDrID)

	lines, err := f.store.GeneralLines().Search(f.ctx, "transaction_id = "+hdr.ID.String())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, ledgercore.StatePosted, l.State)
		require.NotNil(t, l.PostingRef)
		assert.Equal(t, key, l.PostingRef.Key)
	}
}

// S2 — Rejected unbalanced post.
func TestPostTransaction_UnbalancedIsRejected(t *testing.T) {
	f := newFixture(t)
	dr, err := ledgercore.NewAmount("50.00", "USD")
	require.NoError(t, err)
	cr, err := ledgercore.NewAmount("60.00", "USD")
	require.NoError(t, err)

	ts := ledgercore.NewTimestamp()
	hdr, _, err := f.engine.CreateGeneralTransaction(f.ctx, f.gj.ID, ts, "bad", []wantLine{
		{LedgerID: f.cash.ID, XactType: ledgercore.XactTypeDr, Amount: dr},
		{LedgerID: f.sales.ID, XactType: ledgercore.XactTypeCr, Amount: cr},
	})
	require.NoError(t, err)

	posted, err := f.engine.PostTransaction(f.ctx, hdr.ID)
	require.Error(t, err)
	assert.False(t, posted)
	kind, ok := ledgercore.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ledgercore.KindValidation, kind)

	rows, err := f.store.LedgerTransactions().Search(f.ctx, "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// S3 — Duplicate timestamp.
func TestCreateGeneralTransaction_DuplicateTimestampRejected(t *testing.T) {
	f := newFixture(t)
	amount, err := ledgercore.NewAmount("10.00", "USD")
	require.NoError(t, err)
	ts := ledgercore.NewTimestamp()

	_, _, err = f.engine.CreateGeneralTransaction(f.ctx, f.gj.ID, ts, "first", []wantLine{
		{LedgerID: f.cash.ID, XactType: ledgercore.XactTypeDr, Amount: amount},
		{LedgerID: f.sales.ID, XactType: ledgercore.XactTypeCr, Amount: amount},
	})
	require.NoError(t, err)

	_, _, err = f.engine.CreateGeneralTransaction(f.ctx, f.gj.ID, ts, "second", []wantLine{
		{LedgerID: f.cash.ID, XactType: ledgercore.XactTypeDr, Amount: amount},
		{LedgerID: f.sales.ID, XactType: ledgercore.XactTypeCr, Amount: amount},
	})
	require.Error(t, err)
	kind, ok := ledgercore.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ledgercore.KindDuplicateRecord, kind)
}

// S5 — Tree rejection: attaching a child to a Leaf is invalid.
func TestCreateLedger_RejectsNonIntermediateParent(t *testing.T) {
	f := newFixture(t)
	_, err := f.graph.CreateLedger(f.ctx, f.cash.ID, "1011", "Petty Cash", ledgercore.LedgerLeaf, nil)
	require.Error(t, err)
	kind, ok := ledgercore.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ledgercore.KindValidation, kind)
}

// S6 — Journal-entry reconstruction.
func TestJournalEntries_Reconstruction(t *testing.T) {
	f := newFixture(t)
	amount, err := ledgercore.NewAmount("100.00", "USD")
	require.NoError(t, err)

	ts := ledgercore.NewTimestamp()
	hdr, _, err := f.engine.CreateGeneralTransaction(f.ctx, f.gj.ID, ts, "cash sale", []wantLine{
		{LedgerID: f.cash.ID, XactType: ledgercore.XactTypeDr, Amount: amount},
		{LedgerID: f.sales.ID, XactType: ledgercore.XactTypeCr, Amount: amount},
	})
	require.NoError(t, err)
	_, err = f.engine.PostTransaction(f.ctx, hdr.ID)
	require.NoError(t, err)

	cashEntries, err := f.query.JournalEntries(f.ctx, f.cash.ID)
	require.NoError(t, err)
	require.Len(t, cashEntries, 1)
	assert.Equal(t, ledgercore.XactTypeDr, cashEntries[0].XactType)
	assert.True(t, cashEntries[0].Amount.Equal(amount))
	assert.Equal(t, ledgercore.JournalRef(hdr.ID), cashEntries[0].Ref)

	salesEntries, err := f.query.JournalEntries(f.ctx, f.sales.ID)
	require.NoError(t, err)
	require.Len(t, salesEntries, 1)
	assert.Equal(t, ledgercore.XactTypeCr, salesEntries[0].XactType)
}

// S4 — Subsidiary post path.
func TestSubsidiaryPostPath(t *testing.T) {
	f := newFixture(t)
	subsidiary := ledgercore.NewSubsidiaryService(f.store)

	arControl, err := f.graph.CreateLedger(f.ctx, f.gl.RootLedgerID, "1200", "AR-Control", ledgercore.LedgerIntermediate, nil)
	require.NoError(t, err)

	receivables, err := subsidiary.CreateSubsidiaryLedger(f.ctx, "Accounts Receivable", arControl.ID)
	require.NoError(t, err)

	custType, err := subsidiary.CreateEntityType(f.ctx, "CU", "Customer")
	require.NoError(t, err)
	customer, err := subsidiary.CreateEntity(f.ctx, custType.Code, "Acme Corp")
	require.NoError(t, err)

	account, err := subsidiary.CreateExternalAccount(f.ctx, receivables.ID, customer.ID, "AR-0001", "Acme AR", ledgercore.NewTimestamp())
	require.NoError(t, err)

	template, err := f.journal.CreateTemplate(f.ctx, "AR Template")
	require.NoError(t, err)
	_, err = f.journal.AppendColumn(f.ctx, template.ID, "Amount", ledgercore.ColumnLedgerDrCr, &f.sales.ID)
	require.NoError(t, err)

	sj, err := f.journal.CreateSpecialJournal(f.ctx, "AR Journal", "ARJ", arControl.ID, template.ID)
	require.NoError(t, err)

	amount, err := ledgercore.NewAmount("200.00", "USD")
	require.NoError(t, err)
	ts := ledgercore.NewTimestamp()

	_, special, summary, err := f.engine.CreateSubsidiaryTransaction(f.ctx, sj.ID, template.ID, account.ID, ts, "Dr", []ledgercore.SpecialColumn{
		{Amount: amount},
	})
	require.NoError(t, err)

	err = f.engine.PostSubsidiaryLedger(f.ctx, special.TransactionID, arControl.ID, amount)
	require.NoError(t, err)

	key := ledgercore.LedgerKey{LedgerID: arControl.ID, Timestamp: ts}
	row, err := f.store.LedgerTransactions().Get(f.ctx, key)
	require.NoError(t, err)
	assert.True(t, row.Amount.Equal(amount))

	acctPair, err := f.store.LedgerTransactionAccounts().Get(f.ctx, key)
	require.NoError(t, err)
	assert.Equal(t, account.ID, acctPair.AccountID)

	ts2 := ledgercore.NormalizeTimestamp(ts.Add(time.Microsecond))
	total, err := f.engine.PostGeneralLedger(f.ctx, summary.ID, summary.TransactionIDs, arControl.ID, f.sales.ID, ts2)
	require.NoError(t, err)
	assert.True(t, total.Amount.Equal(amount))

	rollupKey := ledgercore.LedgerKey{LedgerID: arControl.ID, Timestamp: ts2}
	rollupRow, err := f.store.LedgerTransactions().Get(f.ctx, rollupKey)
	require.NoError(t, err)
	assert.Equal(t, ledgercore.SummaryRef(summary.ID), rollupRow.Ref)
}
