package ledgercore

// TransactionRefKind tags which field of a TransactionRef is meaningful.
type TransactionRefKind string

const (
	// RefJournal names the general or subsidiary transaction that produced
	// a ledger.transaction row directly.
	RefJournal TransactionRefKind = "Journal"
	// RefSummary names the journal_transaction_special_summary that a
	// batch of subsidiary transactions was rolled up into before posting
	// to the general ledger — PostGeneralLedger's rows carry this, since
	// no single transaction owns an aggregated control-account posting.
	RefSummary TransactionRefKind = "Summary"
)

// TransactionRef is what a ledger.transaction row traces back to: either
// the journal transaction that posted it directly, or the summary that
// aggregated a batch of subsidiary transactions before the control-ledger
// posting.
type TransactionRef struct {
	Kind      TransactionRefKind
	Journal   JournalTransactionID
	SummaryID ID
}

// JournalRef builds a TransactionRef pointing at a single journal
// transaction.
func JournalRef(id JournalTransactionID) TransactionRef {
	return TransactionRef{Kind: RefJournal, Journal: id}
}

// SummaryRef builds a TransactionRef pointing at a rolled-up summary.
func SummaryRef(id ID) TransactionRef {
	return TransactionRef{Kind: RefSummary, SummaryID: id}
}

// LedgerTransaction is the posted artifact's credit-side row, keyed by
// LedgerKey = (ledger_id, timestamp). Every row has exactly one counterpart:
// either a LedgerTransactionLedger or a LedgerTransactionAccount sharing the
// same key.
type LedgerTransaction struct {
	Key                LedgerKey
	LedgerXactTypeCode Code // "LL" or "LA"
	Amount             Amount
	Ref                TransactionRef
}

// LedgerTransactionLedger is the ledger<->ledger counterpart: the debit
// side, when both sides of a posting land on general-ledger accounts.
type LedgerTransactionLedger struct {
	Key        LedgerKey
	LedgerDrID ID
}

// LedgerTransactionAccount is the ledger<->account counterpart: used when
// one side of a posting is a subsidiary-ledger external account rather than
// a general-ledger leaf.
type LedgerTransactionAccount struct {
	Key                  LedgerKey
	AccountID            ID
	XactTypeCode         XactType // Dr or Cr role of the control ledger in this pair
	XactTypeExternalCode Code     // 2-char external xact type carried from the Special header
}
