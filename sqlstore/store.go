package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	ledgercore "github.com/mtelahun/account-engine-sub001"
)

// Config selects the gorm dialector a SQLStore opens. Driver is "postgres"
// for production (gorm.io/driver/postgres) or "sqlite" for tests
// (github.com/glebarez/sqlite, pure Go, no cgo).
type Config struct {
	Driver string // "postgres" | "sqlite"
	DSN    string
}

// generalLedgerTable wraps the single-row general-ledger record under a
// fixed key, matching memstore's singleton special case.
type generalLedgerTable struct {
	db *gorm.DB
}

const generalLedgerKey = "singleton"

func (t *generalLedgerTable) Insert(ctx context.Context, gl ledgercore.GeneralLedger) (ledgercore.GeneralLedger, error) {
	inner := newTable(t.db, "general_ledger",
		func(ledgercore.GeneralLedger) string { return generalLedgerKey },
		func(k string) string { return k },
		func(v ledgercore.GeneralLedger) map[string]string { return map[string]string{"id": v.ID.String()} },
	)
	return inner.Insert(ctx, gl)
}

func (t *generalLedgerTable) Get(ctx context.Context) (ledgercore.GeneralLedger, error) {
	inner := newTable(t.db, "general_ledger",
		func(ledgercore.GeneralLedger) string { return generalLedgerKey },
		func(k string) string { return k },
		func(v ledgercore.GeneralLedger) map[string]string { return map[string]string{"id": v.ID.String()} },
	)
	return inner.Get(ctx, generalLedgerKey)
}

// SQLStore is the relational ledgercore.Store implementation.
type SQLStore struct {
	db *gorm.DB

	ledgers             *table[ledgercore.ID, ledgercore.Ledger]
	intermediateLedgers *table[ledgercore.ID, ledgercore.IntermediateLedger]
	leafLedgers         *table[ledgercore.ID, ledgercore.LeafLedger]
	derivedLedgers      *table[ledgercore.ID, ledgercore.DerivedLedger]
	generalLedger       *generalLedgerTable

	entityTypes       *table[ledgercore.Code, ledgercore.EntityType]
	entities          *table[ledgercore.ID, ledgercore.Entity]
	subsidiaryLedgers *table[ledgercore.ID, ledgercore.SubsidiaryLedger]
	externalAccounts  *table[ledgercore.ID, ledgercore.ExternalAccount]

	journals                *table[ledgercore.ID, ledgercore.Journal]
	specialJournalTemplates *table[ledgercore.ID, ledgercore.SpecialJournalTemplate]
	templateColumns         *table[ledgercore.ID, ledgercore.TemplateColumn]

	transactionHeaders      *table[ledgercore.JournalTransactionID, ledgercore.TransactionHeader]
	generalLines            *table[ledgercore.JournalTransactionID, ledgercore.GeneralLine]
	specials                *table[ledgercore.JournalTransactionID, ledgercore.Special]
	specialColumns          *table[ledgercore.SpecialColumnKey, ledgercore.SpecialColumn]
	specialColumnTexts      *table[ledgercore.SpecialColumnKey, ledgercore.SpecialColumnText]
	specialColumnAccountDrs *table[ledgercore.SpecialColumnKey, ledgercore.SpecialColumnAccountDr]
	specialColumnAccountCrs *table[ledgercore.SpecialColumnKey, ledgercore.SpecialColumnAccountCr]
	summaries               *table[ledgercore.ID, ledgercore.Summary]
	columnTotals            *table[ledgercore.ID, ledgercore.ColumnTotal]

	ledgerTransactions       *table[ledgercore.LedgerKey, ledgercore.LedgerTransaction]
	ledgerTransactionLedgers *table[ledgercore.LedgerKey, ledgercore.LedgerTransactionLedger]
	ledgerTransactionAccts   *table[ledgercore.LedgerKey, ledgercore.LedgerTransactionAccount]

	accountingPeriods *table[ledgercore.ID, ledgercore.AccountingPeriod]
	interimPeriods    *table[ledgercore.ID, ledgercore.InterimPeriod]
}

func specialColumnKeyStr(k ledgercore.SpecialColumnKey) string {
	return fmt.Sprintf("%s/%d", k.TransactionID.String(), k.Sequence)
}

// New wires an SQLStore over an already-opened *gorm.DB (see Open for the
// postgres/sqlite dialector selection) and ensures the backing table
// exists.
func New(db *gorm.DB) (*SQLStore, error) {
	if err := Migrate(db); err != nil {
		return nil, ledgercore.WrapInternal(err, "migrate")
	}

	s := &SQLStore{db: db}

	s.ledgers = newTable(db, "ledger",
		func(l ledgercore.Ledger) ledgercore.ID { return l.ID },
		func(id ledgercore.ID) string { return id.String() },
		func(l ledgercore.Ledger) map[string]string {
			f := map[string]string{"id": l.ID.String(), "number": string(l.Number), "type": string(l.Type)}
			if l.ParentID != nil {
				f["parent_id"] = l.ParentID.String()
			}
			return f
		},
	)
	s.intermediateLedgers = newTable(db, "intermediate_ledger",
		func(v ledgercore.IntermediateLedger) ledgercore.ID { return v.LedgerID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.IntermediateLedger) map[string]string {
			return map[string]string{"ledger_id": v.LedgerID.String()}
		},
	)
	s.leafLedgers = newTable(db, "leaf_ledger",
		func(v ledgercore.LeafLedger) ledgercore.ID { return v.LedgerID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.LeafLedger) map[string]string { return map[string]string{"ledger_id": v.LedgerID.String()} },
	)
	s.derivedLedgers = newTable(db, "derived_ledger",
		func(v ledgercore.DerivedLedger) ledgercore.ID { return v.LedgerID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.DerivedLedger) map[string]string { return map[string]string{"ledger_id": v.LedgerID.String()} },
	)
	s.generalLedger = &generalLedgerTable{db: db}

	s.entityTypes = newTable(db, "entity_type",
		func(v ledgercore.EntityType) ledgercore.Code { return v.Code },
		func(c ledgercore.Code) string { return string(c) },
		func(v ledgercore.EntityType) map[string]string { return map[string]string{"code": string(v.Code)} },
	)
	s.entities = newTable(db, "entity",
		func(v ledgercore.Entity) ledgercore.ID { return v.ID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.Entity) map[string]string {
			return map[string]string{"id": v.ID.String(), "entity_type_code": string(v.EntityTypeCode)}
		},
	)
	s.subsidiaryLedgers = newTable(db, "subsidiary_ledger",
		func(v ledgercore.SubsidiaryLedger) ledgercore.ID { return v.ID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.SubsidiaryLedger) map[string]string {
			return map[string]string{"id": v.ID.String(), "ledger_id": v.LedgerID.String()}
		},
	)
	s.externalAccounts = newTable(db, "external_account",
		func(v ledgercore.ExternalAccount) ledgercore.ID { return v.ID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.ExternalAccount) map[string]string {
			return map[string]string{
				"id":           v.ID.String(),
				"subledger_id": v.SubledgerID.String(),
				"entity_id":    v.EntityID.String(),
				"account_no":   string(v.AccountNo),
			}
		},
	)

	s.journals = newTable(db, "journal",
		func(v ledgercore.Journal) ledgercore.ID { return v.ID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.Journal) map[string]string {
			return map[string]string{
				"id":                          v.ID.String(),
				"code":                        string(v.Code),
				"type":                        string(v.Type),
				"special_journal_template_id": v.SpecialJournalTemplateID.String(),
			}
		},
	)
	s.specialJournalTemplates = newTable(db, "special_journal_template",
		func(v ledgercore.SpecialJournalTemplate) ledgercore.ID { return v.ID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.SpecialJournalTemplate) map[string]string { return map[string]string{"id": v.ID.String()} },
	)
	s.templateColumns = newTable(db, "template_column",
		func(v ledgercore.TemplateColumn) ledgercore.ID { return v.ID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.TemplateColumn) map[string]string {
			return map[string]string{"id": v.ID.String(), "template_id": v.TemplateID.String()}
		},
	)

	s.transactionHeaders = newTable(db, "transaction_header",
		func(v ledgercore.TransactionHeader) ledgercore.JournalTransactionID { return v.ID },
		func(id ledgercore.JournalTransactionID) string { return id.String() },
		func(v ledgercore.TransactionHeader) map[string]string { return map[string]string{"id": v.ID.String()} },
	)
	s.generalLines = newTable(db, "general_line",
		func(v ledgercore.GeneralLine) ledgercore.JournalTransactionID { return v.TransactionID },
		func(id ledgercore.JournalTransactionID) string { return id.String() },
		func(v ledgercore.GeneralLine) map[string]string {
			return map[string]string{"transaction_id": v.TransactionID.String(), "ledger_id": v.LedgerID.String()}
		},
	)
	s.specials = newTable(db, "special",
		func(v ledgercore.Special) ledgercore.JournalTransactionID { return v.TransactionID },
		func(id ledgercore.JournalTransactionID) string { return id.String() },
		func(v ledgercore.Special) map[string]string {
			return map[string]string{
				"transaction_id": v.TransactionID.String(),
				"template_id":    v.TemplateID.String(),
				"account_id":     v.AccountID.String(),
			}
		},
	)
	s.specialColumns = newTable(db, "special_column",
		func(v ledgercore.SpecialColumn) ledgercore.SpecialColumnKey {
			return ledgercore.SpecialColumnKey{TransactionID: v.TransactionID, Sequence: v.Sequence}
		},
		specialColumnKeyStr,
		func(v ledgercore.SpecialColumn) map[string]string {
			return map[string]string{"transaction_id": v.TransactionID.String()}
		},
	)
	s.specialColumnTexts = newTable(db, "special_column_text",
		func(v ledgercore.SpecialColumnText) ledgercore.SpecialColumnKey { return v.Key },
		specialColumnKeyStr,
		func(v ledgercore.SpecialColumnText) map[string]string {
			return map[string]string{"transaction_id": v.Key.TransactionID.String()}
		},
	)
	s.specialColumnAccountDrs = newTable(db, "special_column_account_dr",
		func(v ledgercore.SpecialColumnAccountDr) ledgercore.SpecialColumnKey { return v.Key },
		specialColumnKeyStr,
		func(v ledgercore.SpecialColumnAccountDr) map[string]string {
			return map[string]string{"transaction_id": v.Key.TransactionID.String()}
		},
	)
	s.specialColumnAccountCrs = newTable(db, "special_column_account_cr",
		func(v ledgercore.SpecialColumnAccountCr) ledgercore.SpecialColumnKey { return v.Key },
		specialColumnKeyStr,
		func(v ledgercore.SpecialColumnAccountCr) map[string]string {
			return map[string]string{"transaction_id": v.Key.TransactionID.String()}
		},
	)
	s.summaries = newTable(db, "summary",
		func(v ledgercore.Summary) ledgercore.ID { return v.ID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.Summary) map[string]string { return map[string]string{"id": v.ID.String()} },
	)
	s.columnTotals = newTable(db, "column_total",
		func(v ledgercore.ColumnTotal) ledgercore.ID { return v.ID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.ColumnTotal) map[string]string {
			return map[string]string{"id": v.ID.String(), "summary_id": v.SummaryID.String()}
		},
	)

	s.ledgerTransactions = newTable(db, "ledger_transaction",
		func(v ledgercore.LedgerTransaction) ledgercore.LedgerKey { return v.Key },
		func(k ledgercore.LedgerKey) string { return k.String() },
		func(v ledgercore.LedgerTransaction) map[string]string {
			return map[string]string{"ledger_id": v.Key.LedgerID.String(), "key": v.Key.String()}
		},
	)
	s.ledgerTransactionLedgers = newTable(db, "ledger_transaction_ledger",
		func(v ledgercore.LedgerTransactionLedger) ledgercore.LedgerKey { return v.Key },
		func(k ledgercore.LedgerKey) string { return k.String() },
		func(v ledgercore.LedgerTransactionLedger) map[string]string {
			return map[string]string{"key": v.Key.String(), "ledger_dr_id": v.LedgerDrID.String()}
		},
	)
	s.ledgerTransactionAccts = newTable(db, "ledger_transaction_account",
		func(v ledgercore.LedgerTransactionAccount) ledgercore.LedgerKey { return v.Key },
		func(k ledgercore.LedgerKey) string { return k.String() },
		func(v ledgercore.LedgerTransactionAccount) map[string]string {
			return map[string]string{"key": v.Key.String(), "account_id": v.AccountID.String()}
		},
	)

	s.accountingPeriods = newTable(db, "accounting_period",
		func(v ledgercore.AccountingPeriod) ledgercore.ID { return v.ID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.AccountingPeriod) map[string]string {
			return map[string]string{"id": v.ID.String(), "fiscal_year": fmt.Sprintf("%d", v.FiscalYear)}
		},
	)
	s.interimPeriods = newTable(db, "interim_period",
		func(v ledgercore.InterimPeriod) ledgercore.ID { return v.ID },
		func(id ledgercore.ID) string { return id.String() },
		func(v ledgercore.InterimPeriod) map[string]string {
			return map[string]string{"id": v.ID.String(), "period_id": v.PeriodID.String()}
		},
	)

	return s, nil
}

func (s *SQLStore) Ledgers() ledgercore.LedgerRepository                        { return s.ledgers }
func (s *SQLStore) IntermediateLedgers() ledgercore.IntermediateLedgerRepository { return s.intermediateLedgers }
func (s *SQLStore) LeafLedgers() ledgercore.LeafLedgerRepository                { return s.leafLedgers }
func (s *SQLStore) DerivedLedgers() ledgercore.DerivedLedgerRepository          { return s.derivedLedgers }
func (s *SQLStore) GeneralLedger() ledgercore.GeneralLedgerRepository           { return s.generalLedger }

func (s *SQLStore) EntityTypes() ledgercore.EntityTypeRepository             { return s.entityTypes }
func (s *SQLStore) Entities() ledgercore.EntityRepository                    { return s.entities }
func (s *SQLStore) SubsidiaryLedgers() ledgercore.SubsidiaryLedgerRepository { return s.subsidiaryLedgers }
func (s *SQLStore) ExternalAccounts() ledgercore.ExternalAccountRepository   { return s.externalAccounts }

func (s *SQLStore) Journals() ledgercore.JournalRepository { return s.journals }
func (s *SQLStore) SpecialJournalTemplates() ledgercore.SpecialJournalTemplateRepository {
	return s.specialJournalTemplates
}
func (s *SQLStore) TemplateColumns() ledgercore.TemplateColumnRepository { return s.templateColumns }

func (s *SQLStore) TransactionHeaders() ledgercore.TransactionHeaderRepository {
	return s.transactionHeaders
}
func (s *SQLStore) GeneralLines() ledgercore.GeneralLineRepository { return s.generalLines }
func (s *SQLStore) Specials() ledgercore.SpecialRepository        { return s.specials }
func (s *SQLStore) SpecialColumns() ledgercore.SpecialColumnRepository {
	return s.specialColumns
}
func (s *SQLStore) SpecialColumnTexts() ledgercore.SpecialColumnTextRepository {
	return s.specialColumnTexts
}
func (s *SQLStore) SpecialColumnAccountDrs() ledgercore.SpecialColumnAccountDrRepository {
	return s.specialColumnAccountDrs
}
func (s *SQLStore) SpecialColumnAccountCrs() ledgercore.SpecialColumnAccountCrRepository {
	return s.specialColumnAccountCrs
}
func (s *SQLStore) Summaries() ledgercore.SummaryRepository        { return s.summaries }
func (s *SQLStore) ColumnTotals() ledgercore.ColumnTotalRepository { return s.columnTotals }

func (s *SQLStore) LedgerTransactions() ledgercore.LedgerTransactionRepository {
	return s.ledgerTransactions
}
func (s *SQLStore) LedgerTransactionLedgers() ledgercore.LedgerTransactionLedgerRepository {
	return s.ledgerTransactionLedgers
}
func (s *SQLStore) LedgerTransactionAccounts() ledgercore.LedgerTransactionAccountRepository {
	return s.ledgerTransactionAccts
}

func (s *SQLStore) AccountingPeriods() ledgercore.AccountingPeriodRepository { return s.accountingPeriods }
func (s *SQLStore) InterimPeriods() ledgercore.InterimPeriodRepository      { return s.interimPeriods }
