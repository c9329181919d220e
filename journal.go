package ledgercore

// JournalType distinguishes a plain general journal from a special journal
// bound to a column template.
type JournalType string

const (
	JournalGeneral JournalType = "General"
	JournalSpecial JournalType = "Special"
)

// Journal is an ordered container for transactions prior to posting.
type Journal struct {
	ID       ID
	Name     Name
	Code     Code // globally unique
	Type     JournalType
	Archived bool

	// Special-journal-only fields. Zero values (uuid.Nil) when Type == JournalGeneral.
	ControlLedgerID          ID
	SpecialJournalTemplateID ID
}

// ColumnType enumerates the typed slots a special-journal template column
// can hold.
type ColumnType string

const (
	ColumnLedgerDrCr ColumnType = "LedgerDrCr"
	ColumnText       ColumnType = "Text"
	ColumnAccountDr  ColumnType = "AccountDr"
	ColumnAccountCr  ColumnType = "AccountCr"
	ColumnLedgerDr   ColumnType = "LedgerDr"
	ColumnLedgerCr   ColumnType = "LedgerCr"
)

// SpecialJournalTemplate names an ordered set of template columns shared by
// every transaction posted through a special journal.
type SpecialJournalTemplate struct {
	ID   ID
	Name Name
}

// TemplateColumn is one typed slot within a special-journal transaction.
// Sequence is a dense, 1-based order key within its template.
type TemplateColumn struct {
	ID         ID
	TemplateID ID
	Sequence   int
	Name       Name
	ColumnType ColumnType
	// LedgerID binds a ledger-typed column (LedgerDrCr/LedgerDr/LedgerCr) to
	// a fixed posting target. Nil for Text/AccountDr/AccountCr columns.
	LedgerID *ID
}

func (c ColumnType) isLedgerTyped() bool {
	switch c {
	case ColumnLedgerDrCr, ColumnLedgerDr, ColumnLedgerCr:
		return true
	default:
		return false
	}
}
