package ledgercore

// XactType is the Dr/Cr side of a line.
type XactType string

const (
	XactTypeDr XactType = "Dr"
	XactTypeCr XactType = "Cr"
)

// TransactionState is the lifecycle state of a journal-transaction line.
type TransactionState string

const (
	StatePending  TransactionState = "Pending"
	StatePosted   TransactionState = "Posted"
	StateArchived TransactionState = "Archived"
)

// TransactionHeader is the `transaction` resource: the header record shared
// by both general and special journal transactions, keyed by the composite
// (journal_id, timestamp) identity.
type TransactionHeader struct {
	ID          JournalTransactionID
	Explanation Name
	Archived    bool
}

// GeneralLine is one Dr or Cr row of a general-journal transaction.
// Sequence is a dense, ascending, insertion-stable order key used only to
// resolve the posting engine's first-Dr/first-Cr pairing rule; it is not
// part of the line's business identity.
type GeneralLine struct {
	TransactionID JournalTransactionID
	Sequence      int
	LedgerID      ID
	XactType      XactType
	Amount        Amount
	State         TransactionState
	PostingRef    *LedgerPostingRef
}

// Special is the `transaction.special` header sub-variant: a special
// journal transaction additionally names the template it was built from and
// the external (subsidiary) account it touches.
type Special struct {
	TransactionID    JournalTransactionID
	TemplateID       ID
	XactTypeExternal Code // 2 chars: Dr/Cr role against the external account
	AccountID        ID
	AccountState     TransactionState
}

// SpecialColumnKey identifies a per-column, per-transaction payload row.
// Sequence, not a template-column id, is what actually distinguishes one
// transaction's columns from each other: a special transaction carries one
// SpecialColumn per template column, in template order.
type SpecialColumnKey struct {
	TransactionID JournalTransactionID
	Sequence      int
}

// SpecialColumn is the `special.column` resource: one row per template
// column per special transaction, carrying whichever ledger-typed amount
// fields its ColumnType uses.
type SpecialColumn struct {
	TransactionID JournalTransactionID
	Sequence      int
	DrLedgerID    *ID
	CrLedgerID    *ID
	Amount        Amount
	State         TransactionState
	ColumnTotalID *ID
}

// SpecialColumnText is the typed payload for a ColumnText template column.
type SpecialColumnText struct {
	Key  SpecialColumnKey
	Text Name
}

// SpecialColumnAccountDr is the typed payload for a ColumnAccountDr column.
type SpecialColumnAccountDr struct {
	Key       SpecialColumnKey
	AccountID ID
}

// SpecialColumnAccountCr is the typed payload for a ColumnAccountCr column.
type SpecialColumnAccountCr struct {
	Key       SpecialColumnKey
	AccountID ID
}

// Summary is the `journal_transaction_special_summary` resource: created
// empty when a subsidiary transaction is built, and later populated with
// ColumnTotal rows by post_general_ledger. TransactionIDs holds the one or
// more transactions this summary rolls up — length 1 for the creation-time
// placeholder, length >= 1 once post_general_ledger has aggregated a batch
// into it.
type Summary struct {
	ID             ID
	TransactionIDs []JournalTransactionID
}

// ColumnTotal is a rolled-up total within a Summary. PostGeneralLedger
// writes one per call, with Sequence 0 and an Amount that sums every
// SpecialColumn.Amount across the summary's transactions, whatever the
// column's sequence.
type ColumnTotal struct {
	ID           ID
	SummaryID    ID
	Sequence     int
	Amount       Amount
	PostingRefDr *LedgerPostingRef
	PostingRefCr *LedgerPostingRef
}
