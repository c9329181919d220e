package ledgercore

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// JournalEntry is a synthetic Dr or Cr line reconstructed from a posted
// ledger.transaction pair, for display against a single ledger. It is not
// a stored resource: it is recomputed on every call to JournalEntries.
type JournalEntry struct {
	LedgerID  ID
	Timestamp Timestamp
	XactType  XactType
	Amount    Amount
	Ref       TransactionRef
}

// QueryService reconstructs a ledger's journal entries from the posted
// ledger-transaction tables.
type QueryService struct {
	store Store
	log   *zap.Logger
}

func NewQueryService(store Store, log *zap.Logger) *QueryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QueryService{store: store, log: log}
}

// JournalEntries reconstructs every entry posted against ledgerID.
//
// Each ledger.transaction row keyed at (ledgerID, ts) supplies a Cr-side
// entry (it was always written at the credit-side anchor's key, per
// PostingEngine.PostTransaction); if that row's counterpart is missing, a
// warning is logged and the Cr entry is still returned. Each other
// ledger.transaction row whose ledger.transaction.ledger counterpart names
// ledgerID as LedgerDrID supplies a Dr-side entry; a row whose counterpart
// is missing is logged and skipped. Neither case fails the reconstruction.
func (q *QueryService) JournalEntries(ctx context.Context, ledgerID ID) ([]JournalEntry, error) {
	rows, err := q.store.LedgerTransactions().Search(ctx, fmt.Sprintf("ledger_id = %s", ledgerID))
	if err != nil {
		return nil, err
	}

	entries := make([]JournalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, JournalEntry{
			LedgerID:  row.Key.LedgerID,
			Timestamp: row.Key.Timestamp,
			XactType:  XactTypeCr,
			Amount:    row.Amount,
			Ref:       row.Ref,
		})

		switch row.LedgerXactTypeCode {
		case Code(LedgerXactTypeLedgerLedger):
			if _, err := q.store.LedgerTransactionLedgers().Get(ctx, row.Key); err != nil {
				q.log.Warn("ledger.transaction missing ledger counterpart", zap.String("key", row.Key.String()))
				continue
			}
		case Code(LedgerXactTypeLedgerAccount):
			if _, err := q.store.LedgerTransactionAccounts().Get(ctx, row.Key); err != nil {
				q.log.Warn("ledger.transaction missing account counterpart", zap.String("key", row.Key.String()))
				continue
			}
		}
	}

	// journal_entries against the counterpart ledger: a row whose
	// ledger.transaction.ledger names ledgerID as LedgerDrID also belongs
	// to ledgerID's history as a Dr entry, even though the row itself is
	// keyed at the Cr-side ledger.
	all, err := q.store.LedgerTransactions().Search(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, row := range all {
		if row.Key.LedgerID == ledgerID {
			continue // already covered above
		}
		if row.LedgerXactTypeCode != Code(LedgerXactTypeLedgerLedger) {
			continue
		}
		ll, err := q.store.LedgerTransactionLedgers().Get(ctx, row.Key)
		if err != nil {
			q.log.Warn("ledger.transaction missing ledger counterpart", zap.String("key", row.Key.String()))
			continue
		}
		if ll.LedgerDrID != ledgerID {
			continue
		}
		entries = append(entries, JournalEntry{
			LedgerID:  ledgerID,
			Timestamp: row.Key.Timestamp,
			XactType:  XactTypeDr,
			Amount:    row.Amount,
			Ref:       row.Ref,
		})
	}

	return entries, nil
}
