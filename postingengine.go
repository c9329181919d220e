package ledgercore

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// AuditSink receives a notification for every posting-engine state
// transition. auditlog.Log implements this via auditlog.Adapter, kept as
// a separate interface here (rather than importing auditlog directly) to
// avoid a package cycle, since auditlog itself depends on this package's
// error types.
type AuditSink interface {
	Append(eventType string, payload interface{}) error
}

// PostingEngine builds general and subsidiary transactions and posts them
// into the ledger-transaction pair tables.
//
// Pairing rule: a general transaction's lines are paired by single-aggregate
// pairing, not pairwise. The transaction's first Cr line becomes the anchor:
// it produces the one ledger.transaction row, keyed at
// (anchor_ledger_id, timestamp), and the first Dr line supplies LedgerDrID
// on the paired ledger.transaction.ledger row. Every line in the
// transaction — anchor or not — gets the same posting_ref.key, with
// LedgerID set to that line's own ledger.
type PostingEngine struct {
	store Store
	log   *zap.Logger
	audit AuditSink
}

func NewPostingEngine(store Store, log *zap.Logger) *PostingEngine {
	if log == nil {
		log = zap.NewNop()
	}
	return &PostingEngine{store: store, log: log}
}

// WithAuditSink attaches an audit trail; every subsequent posting call
// additionally appends a transition event to sink.
func (e *PostingEngine) WithAuditSink(sink AuditSink) *PostingEngine {
	e.audit = sink
	return e
}

func (e *PostingEngine) appendAudit(eventType string, payload interface{}) {
	if e.audit == nil {
		return
	}
	if err := e.audit.Append(eventType, payload); err != nil {
		e.log.Warn("audit append failed", zap.String("event_type", eventType), zap.Error(err))
	}
}

// CreateGeneralTransaction builds a pending general-journal transaction
// from a set of Dr/Cr lines. Lines retain the order they're passed in as
// their Sequence. Every line's ledger must be a Leaf ledger: a Derived
// ledger is rejected outright, and any other non-Leaf resolution (or a
// ledger id that doesn't exist) is rejected as an empty record, so that
// PostTransaction can always assume its lines name postable ledgers.
func (e *PostingEngine) CreateGeneralTransaction(ctx context.Context, journalID ID, ts Timestamp, explanation Name, lines []struct {
	LedgerID ID
	XactType XactType
	Amount   Amount
}) (TransactionHeader, []GeneralLine, error) {
	id := JournalTransactionID{JournalID: journalID, Timestamp: NormalizeTimestamp(ts)}

	hdr := TransactionHeader{ID: id, Explanation: explanation}
	hdr, err := e.store.TransactionHeaders().Insert(ctx, hdr)
	if err != nil {
		return TransactionHeader{}, nil, err
	}

	result := make([]GeneralLine, 0, len(lines))
	for i, l := range lines {
		ledger, err := e.store.Ledgers().Get(ctx, l.LedgerID)
		if err != nil {
			return TransactionHeader{}, nil, err
		}
		if ledger.Type == LedgerDerived {
			return TransactionHeader{}, nil, NewValidationErrorf("ledger %s is a Derived ledger and cannot be posted to", l.LedgerID)
		}
		if ledger.Type != LedgerLeaf {
			return TransactionHeader{}, nil, NewEmptyRecordErrorf("ledger %s is not a Leaf ledger", l.LedgerID)
		}

		gl := GeneralLine{
			TransactionID: id,
			Sequence:      i,
			LedgerID:      l.LedgerID,
			XactType:      l.XactType,
			Amount:        l.Amount,
			State:         StatePending,
		}
		gl, err := e.store.GeneralLines().Insert(ctx, gl)
		if err != nil {
			return TransactionHeader{}, nil, err
		}
		result = append(result, gl)
	}
	return hdr, result, nil
}

// PostTransaction validates and posts a general-journal transaction. The
// Dr and Cr sides must each sum to a single non-zero equal total; any other
// shape is a Validation error and nothing is posted.
func (e *PostingEngine) PostTransaction(ctx context.Context, txnID JournalTransactionID) (bool, error) {
	lines, err := e.store.GeneralLines().Search(ctx, fmt.Sprintf("transaction_id = %s", txnID))
	if err != nil {
		return false, err
	}
	if len(lines) == 0 {
		return false, NewEmptyRecordErrorf("transaction %s has no lines", txnID)
	}

	var drTotal, crTotal Amount
	var anchorDr, anchorCr *GeneralLine
	for i := range lines {
		l := &lines[i]
		switch l.XactType {
		case XactTypeDr:
			if anchorDr == nil {
				drTotal = ZeroAmount(l.Amount.Currency)
			}
			if anchorDr == nil || l.Sequence < anchorDr.Sequence {
				anchorDr = l
			}
			drTotal = drTotal.Add(l.Amount)
		case XactTypeCr:
			if anchorCr == nil {
				crTotal = ZeroAmount(l.Amount.Currency)
			}
			if anchorCr == nil || l.Sequence < anchorCr.Sequence {
				anchorCr = l
			}
			crTotal = crTotal.Add(l.Amount)
		}
	}

	if anchorDr == nil || anchorCr == nil {
		return false, NewValidationErrorf("the Dr and Cr sides must be non-zero and equal")
	}
	if drTotal.IsZero() || crTotal.IsZero() || !drTotal.Equal(crTotal) {
		return false, NewValidationErrorf("the Dr and Cr sides must be non-zero and equal")
	}

	key := LedgerKey{LedgerID: anchorCr.LedgerID, Timestamp: txnID.Timestamp}

	if _, err := e.store.LedgerTransactions().Insert(ctx, LedgerTransaction{
		Key:                key,
		LedgerXactTypeCode: Code(LedgerXactTypeLedgerLedger),
		Amount:             anchorCr.Amount,
		Ref:                JournalRef(txnID),
	}); err != nil {
		return false, err
	}
	if _, err := e.store.LedgerTransactionLedgers().Insert(ctx, LedgerTransactionLedger{
		Key:        key,
		LedgerDrID: anchorDr.LedgerID,
	}); err != nil {
		return false, err
	}

	for i := range lines {
		l := &lines[i]
		ref := LedgerPostingRef{Key: key, LedgerID: l.LedgerID}
		l.State = StatePosted
		l.PostingRef = &ref
		if _, err := e.store.GeneralLines().Save(ctx, *l); err != nil {
			return false, err
		}
	}

	e.log.Info("transaction posted",
		zap.String("journal_id", txnID.JournalID.String()),
		zap.String("key", key.String()),
		zap.String("amount", crTotal.String()))
	e.appendAudit("TRANSACTION_POSTED", map[string]string{
		"journal_id": txnID.JournalID.String(),
		"key":        key.String(),
		"amount":     crTotal.String(),
	})
	return true, nil
}

// CreateSubsidiaryTransaction builds a pending special-journal transaction
// against templateID and the external account accountID, with one Summary placeholder
// created for later aggregation by PostGeneralLedger.
func (e *PostingEngine) CreateSubsidiaryTransaction(ctx context.Context, journalID, templateID, accountID ID, ts Timestamp, xactExternal Code, columns []SpecialColumn) (TransactionHeader, Special, Summary, error) {
	id := JournalTransactionID{JournalID: journalID, Timestamp: NormalizeTimestamp(ts)}

	hdr, err := e.store.TransactionHeaders().Insert(ctx, TransactionHeader{ID: id})
	if err != nil {
		return TransactionHeader{}, Special{}, Summary{}, err
	}

	special := Special{
		TransactionID:    id,
		TemplateID:       templateID,
		XactTypeExternal: xactExternal,
		AccountID:        accountID,
		AccountState:     StatePending,
	}
	special, err = e.store.Specials().Insert(ctx, special)
	if err != nil {
		return TransactionHeader{}, Special{}, Summary{}, err
	}

	for i := range columns {
		columns[i].TransactionID = id
		columns[i].Sequence = i
		columns[i].State = StatePending
		if _, err := e.store.SpecialColumns().Insert(ctx, columns[i]); err != nil {
			return TransactionHeader{}, Special{}, Summary{}, err
		}
	}

	summary, err := e.store.Summaries().Insert(ctx, Summary{ID: NewID(), TransactionIDs: []JournalTransactionID{id}})
	if err != nil {
		return TransactionHeader{}, Special{}, Summary{}, err
	}

	return hdr, special, summary, nil
}

// PostSubsidiaryLedger posts the control-ledger <-> external-account side
// of a special transaction. It produces one ledger.transaction row keyed
// at (control_ledger_id, timestamp) and its ledger.transaction.account
// counterpart, marks the Special row's account side Posted and marks each
// of the transaction's special columns Posted. No AccountPostingRef is
// stored: neither Special nor SpecialColumn has a field to hold one.
func (e *PostingEngine) PostSubsidiaryLedger(ctx context.Context, txnID JournalTransactionID, controlLedgerID ID, amount Amount) error {
	special, err := e.store.Specials().Get(ctx, txnID)
	if err != nil {
		return err
	}

	key := LedgerKey{LedgerID: controlLedgerID, Timestamp: txnID.Timestamp}
	if _, err := e.store.LedgerTransactions().Insert(ctx, LedgerTransaction{
		Key:                key,
		LedgerXactTypeCode: Code(LedgerXactTypeLedgerAccount),
		Amount:             amount,
		Ref:                JournalRef(txnID),
	}); err != nil {
		return err
	}
	if _, err := e.store.LedgerTransactionAccounts().Insert(ctx, LedgerTransactionAccount{
		Key:                  key,
		AccountID:            special.AccountID,
		XactTypeCode:         XactTypeDr,
		XactTypeExternalCode: special.XactTypeExternal,
	}); err != nil {
		return err
	}

	special.AccountState = StatePosted
	if _, err := e.store.Specials().Save(ctx, special); err != nil {
		return err
	}

	accountRef := AccountPostingRef{Key: SubsidiaryLedgerKey{AccountID: special.AccountID, Timestamp: txnID.Timestamp}}
	columns, err := e.store.SpecialColumns().Search(ctx, fmt.Sprintf("transaction_id = %s", txnID))
	if err != nil {
		return err
	}
	for i := range columns {
		columns[i].State = StatePosted
		_ = accountRef // built but not stored: SpecialColumn has no posting-ref field
		if _, err := e.store.SpecialColumns().Save(ctx, columns[i]); err != nil {
			return err
		}
	}

	e.log.Info("subsidiary ledger posted", zap.String("key", key.String()), zap.String("amount", amount.String()))
	e.appendAudit("SUBSIDIARY_POSTED", map[string]string{"key": key.String(), "amount": amount.String()})
	return nil
}

// PostGeneralLedger aggregates the special columns across ids into summaryID
// and posts the rolled-up control-ledger <-> counterpart-ledger pair at a
// fresh timestamp postedAt. A Summary created by CreateSubsidiaryTransaction
// starts with exactly one TransactionID; calling this with additional ids
// generalizes it into a true batch aggregate, reusing the same Summary
// shape for both the single- and multi-transaction cases. Every special
// column of every listed transaction is summed into one ColumnTotal with
// Sequence 0; columns are not totalled separately by sequence.
func (e *PostingEngine) PostGeneralLedger(ctx context.Context, summaryID ID, ids []JournalTransactionID, controlLedgerID, counterpartLedgerID ID, postedAt Timestamp) (ColumnTotal, error) {
	summary, err := e.store.Summaries().Get(ctx, summaryID)
	if err != nil {
		return ColumnTotal{}, err
	}
	summary.TransactionIDs = ids
	summary, err = e.store.Summaries().Save(ctx, summary)
	if err != nil {
		return ColumnTotal{}, err
	}

	var total Amount
	haveTotal := false
	for _, id := range ids {
		columns, err := e.store.SpecialColumns().Search(ctx, fmt.Sprintf("transaction_id = %s", id))
		if err != nil {
			return ColumnTotal{}, err
		}
		for _, c := range columns {
			if !haveTotal {
				total = ZeroAmount(c.Amount.Currency)
				haveTotal = true
			}
			total = total.Add(c.Amount)
		}
	}
	if !haveTotal {
		return ColumnTotal{}, NewValidationErrorf("summary %s has no special columns to aggregate", summaryID)
	}

	ts := NormalizeTimestamp(postedAt)
	key := LedgerKey{LedgerID: controlLedgerID, Timestamp: ts}

	if _, err := e.store.LedgerTransactions().Insert(ctx, LedgerTransaction{
		Key:                key,
		LedgerXactTypeCode: Code(LedgerXactTypeLedgerLedger),
		Amount:             total,
		Ref:                SummaryRef(summary.ID),
	}); err != nil {
		return ColumnTotal{}, err
	}
	if _, err := e.store.LedgerTransactionLedgers().Insert(ctx, LedgerTransactionLedger{
		Key:        key,
		LedgerDrID: counterpartLedgerID,
	}); err != nil {
		return ColumnTotal{}, err
	}

	ref := LedgerPostingRef{Key: key, LedgerID: controlLedgerID}
	ct := ColumnTotal{
		ID:           NewID(),
		SummaryID:    summary.ID,
		Sequence:     0,
		Amount:       total,
		PostingRefCr: &ref,
	}
	result, err := e.store.ColumnTotals().Insert(ctx, ct)
	if err != nil {
		return ColumnTotal{}, err
	}
	e.appendAudit("GENERAL_LEDGER_POSTED", map[string]string{"key": key.String(), "amount": total.String()})
	return result, nil
}
