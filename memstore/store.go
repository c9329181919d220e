package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/mtelahun/account-engine-sub001"
)

// generalLedgerTable is the singleton special case: at most one row, no
// Search/Delete/Archive surface.
type generalLedgerTable struct {
	mu  sync.RWMutex
	gl  *ledgercore.GeneralLedger
}

func (t *generalLedgerTable) Insert(_ context.Context, gl ledgercore.GeneralLedger) (ledgercore.GeneralLedger, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gl != nil {
		return ledgercore.GeneralLedger{}, ledgercore.NewDuplicateRecordErrorf("general ledger already exists")
	}
	t.gl = &gl
	return gl, nil
}

func (t *generalLedgerTable) Get(_ context.Context) (ledgercore.GeneralLedger, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.gl == nil {
		return ledgercore.GeneralLedger{}, ledgercore.NewEmptyRecordErrorf("general ledger has not been created")
	}
	return *t.gl, nil
}

// MemStore is the in-memory ledgercore.Store implementation.
type MemStore struct {
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

	transactionHeaders     *table[ledgercore.JournalTransactionID, ledgercore.TransactionHeader]
	generalLines           *table[ledgercore.JournalTransactionID, ledgercore.GeneralLine]
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

// New builds an empty MemStore with every resource table wired up.
func New() *MemStore {
	return &MemStore{
		ledgers: newTable(
			func(l ledgercore.Ledger) ledgercore.ID { return l.ID },
			func(l ledgercore.Ledger) map[string]string {
				f := map[string]string{
					"id":     l.ID.String(),
					"number": string(l.Number),
					"type":   string(l.Type),
				}
				if l.ParentID != nil {
					f["parent_id"] = l.ParentID.String()
				}
				return f
			},
		),
		intermediateLedgers: newTable(
			func(v ledgercore.IntermediateLedger) ledgercore.ID { return v.LedgerID },
			func(v ledgercore.IntermediateLedger) map[string]string {
				return map[string]string{"ledger_id": v.LedgerID.String()}
			},
		),
		leafLedgers: newTable(
			func(v ledgercore.LeafLedger) ledgercore.ID { return v.LedgerID },
			func(v ledgercore.LeafLedger) map[string]string {
				return map[string]string{"ledger_id": v.LedgerID.String()}
			},
		),
		derivedLedgers: newTable(
			func(v ledgercore.DerivedLedger) ledgercore.ID { return v.LedgerID },
			func(v ledgercore.DerivedLedger) map[string]string {
				return map[string]string{"ledger_id": v.LedgerID.String()}
			},
		),
		generalLedger: &generalLedgerTable{},

		entityTypes: newTable(
			func(v ledgercore.EntityType) ledgercore.Code { return v.Code },
			func(v ledgercore.EntityType) map[string]string {
				return map[string]string{"code": string(v.Code)}
			},
		),
		entities: newTable(
			func(v ledgercore.Entity) ledgercore.ID { return v.ID },
			func(v ledgercore.Entity) map[string]string {
				return map[string]string{"id": v.ID.String(), "entity_type_code": string(v.EntityTypeCode)}
			},
		),
		subsidiaryLedgers: newTable(
			func(v ledgercore.SubsidiaryLedger) ledgercore.ID { return v.ID },
			func(v ledgercore.SubsidiaryLedger) map[string]string {
				return map[string]string{"id": v.ID.String(), "ledger_id": v.LedgerID.String()}
			},
		),
		externalAccounts: newTable(
			func(v ledgercore.ExternalAccount) ledgercore.ID { return v.ID },
			func(v ledgercore.ExternalAccount) map[string]string {
				return map[string]string{
					"id":           v.ID.String(),
					"subledger_id": v.SubledgerID.String(),
					"entity_id":    v.EntityID.String(),
					"account_no":   string(v.AccountNo),
				}
			},
		),

		journals: newTable(
			func(v ledgercore.Journal) ledgercore.ID { return v.ID },
			func(v ledgercore.Journal) map[string]string {
				return map[string]string{
					"id":                          v.ID.String(),
					"code":                        string(v.Code),
					"type":                        string(v.Type),
					"special_journal_template_id": v.SpecialJournalTemplateID.String(),
				}
			},
		),
		specialJournalTemplates: newTable(
			func(v ledgercore.SpecialJournalTemplate) ledgercore.ID { return v.ID },
			func(v ledgercore.SpecialJournalTemplate) map[string]string {
				return map[string]string{"id": v.ID.String()}
			},
		),
		templateColumns: newTable(
			func(v ledgercore.TemplateColumn) ledgercore.ID { return v.ID },
			func(v ledgercore.TemplateColumn) map[string]string {
				return map[string]string{"id": v.ID.String(), "template_id": v.TemplateID.String()}
			},
		),

		transactionHeaders: newTable(
			func(v ledgercore.TransactionHeader) ledgercore.JournalTransactionID { return v.ID },
			func(v ledgercore.TransactionHeader) map[string]string {
				return map[string]string{"id": v.ID.String()}
			},
		),
		generalLines: newTable(
			func(v ledgercore.GeneralLine) ledgercore.JournalTransactionID { return v.TransactionID },
			func(v ledgercore.GeneralLine) map[string]string {
				return map[string]string{
					"transaction_id": v.TransactionID.String(),
					"ledger_id":      v.LedgerID.String(),
				}
			},
		),
		specials: newTable(
			func(v ledgercore.Special) ledgercore.JournalTransactionID { return v.TransactionID },
			func(v ledgercore.Special) map[string]string {
				return map[string]string{
					"transaction_id": v.TransactionID.String(),
					"template_id":    v.TemplateID.String(),
					"account_id":     v.AccountID.String(),
				}
			},
		),
		specialColumns: newTable(
			func(v ledgercore.SpecialColumn) ledgercore.SpecialColumnKey {
				return ledgercore.SpecialColumnKey{TransactionID: v.TransactionID, Sequence: v.Sequence}
			},
			func(v ledgercore.SpecialColumn) map[string]string {
				return map[string]string{"transaction_id": v.TransactionID.String()}
			},
		),
		specialColumnTexts: newTable(
			func(v ledgercore.SpecialColumnText) ledgercore.SpecialColumnKey { return v.Key },
			func(v ledgercore.SpecialColumnText) map[string]string {
				return map[string]string{"transaction_id": v.Key.TransactionID.String()}
			},
		),
		specialColumnAccountDrs: newTable(
			func(v ledgercore.SpecialColumnAccountDr) ledgercore.SpecialColumnKey { return v.Key },
			func(v ledgercore.SpecialColumnAccountDr) map[string]string {
				return map[string]string{"transaction_id": v.Key.TransactionID.String()}
			},
		),
		specialColumnAccountCrs: newTable(
			func(v ledgercore.SpecialColumnAccountCr) ledgercore.SpecialColumnKey { return v.Key },
			func(v ledgercore.SpecialColumnAccountCr) map[string]string {
				return map[string]string{"transaction_id": v.Key.TransactionID.String()}
			},
		),
		summaries: newTable(
			func(v ledgercore.Summary) ledgercore.ID { return v.ID },
			func(v ledgercore.Summary) map[string]string {
				return map[string]string{"id": v.ID.String()}
			},
		),
		columnTotals: newTable(
			func(v ledgercore.ColumnTotal) ledgercore.ID { return v.ID },
			func(v ledgercore.ColumnTotal) map[string]string {
				return map[string]string{"id": v.ID.String(), "summary_id": v.SummaryID.String()}
			},
		),

		ledgerTransactions: newTable(
			func(v ledgercore.LedgerTransaction) ledgercore.LedgerKey { return v.Key },
			func(v ledgercore.LedgerTransaction) map[string]string {
				return map[string]string{
					"ledger_id": v.Key.LedgerID.String(),
					"key":       v.Key.String(),
				}
			},
		),
		ledgerTransactionLedgers: newTable(
			func(v ledgercore.LedgerTransactionLedger) ledgercore.LedgerKey { return v.Key },
			func(v ledgercore.LedgerTransactionLedger) map[string]string {
				return map[string]string{"key": v.Key.String(), "ledger_dr_id": v.LedgerDrID.String()}
			},
		),
		ledgerTransactionAccts: newTable(
			func(v ledgercore.LedgerTransactionAccount) ledgercore.LedgerKey { return v.Key },
			func(v ledgercore.LedgerTransactionAccount) map[string]string {
				return map[string]string{"key": v.Key.String(), "account_id": v.AccountID.String()}
			},
		),

		accountingPeriods: newTable(
			func(v ledgercore.AccountingPeriod) ledgercore.ID { return v.ID },
			func(v ledgercore.AccountingPeriod) map[string]string {
				return map[string]string{"id": v.ID.String(), "fiscal_year": fmt.Sprintf("%d", v.FiscalYear)}
			},
		),
		interimPeriods: newTable(
			func(v ledgercore.InterimPeriod) ledgercore.ID { return v.ID },
			func(v ledgercore.InterimPeriod) map[string]string {
				return map[string]string{"id": v.ID.String(), "period_id": v.PeriodID.String()}
			},
		),
	}
}

func (s *MemStore) Ledgers() ledgercore.LedgerRepository                   { return s.ledgers }
func (s *MemStore) IntermediateLedgers() ledgercore.IntermediateLedgerRepository { return s.intermediateLedgers }
func (s *MemStore) LeafLedgers() ledgercore.LeafLedgerRepository           { return s.leafLedgers }
func (s *MemStore) DerivedLedgers() ledgercore.DerivedLedgerRepository     { return s.derivedLedgers }
func (s *MemStore) GeneralLedger() ledgercore.GeneralLedgerRepository      { return s.generalLedger }

func (s *MemStore) EntityTypes() ledgercore.EntityTypeRepository             { return s.entityTypes }
func (s *MemStore) Entities() ledgercore.EntityRepository                    { return s.entities }
func (s *MemStore) SubsidiaryLedgers() ledgercore.SubsidiaryLedgerRepository { return s.subsidiaryLedgers }
func (s *MemStore) ExternalAccounts() ledgercore.ExternalAccountRepository   { return s.externalAccounts }

func (s *MemStore) Journals() ledgercore.JournalRepository { return s.journals }
func (s *MemStore) SpecialJournalTemplates() ledgercore.SpecialJournalTemplateRepository {
	return s.specialJournalTemplates
}
func (s *MemStore) TemplateColumns() ledgercore.TemplateColumnRepository { return s.templateColumns }

func (s *MemStore) TransactionHeaders() ledgercore.TransactionHeaderRepository {
	return s.transactionHeaders
}
func (s *MemStore) GeneralLines() ledgercore.GeneralLineRepository { return s.generalLines }
func (s *MemStore) Specials() ledgercore.SpecialRepository        { return s.specials }
func (s *MemStore) SpecialColumns() ledgercore.SpecialColumnRepository {
	return s.specialColumns
}
func (s *MemStore) SpecialColumnTexts() ledgercore.SpecialColumnTextRepository {
	return s.specialColumnTexts
}
func (s *MemStore) SpecialColumnAccountDrs() ledgercore.SpecialColumnAccountDrRepository {
	return s.specialColumnAccountDrs
}
func (s *MemStore) SpecialColumnAccountCrs() ledgercore.SpecialColumnAccountCrRepository {
	return s.specialColumnAccountCrs
}
func (s *MemStore) Summaries() ledgercore.SummaryRepository         { return s.summaries }
func (s *MemStore) ColumnTotals() ledgercore.ColumnTotalRepository  { return s.columnTotals }

func (s *MemStore) LedgerTransactions() ledgercore.LedgerTransactionRepository {
	return s.ledgerTransactions
}
func (s *MemStore) LedgerTransactionLedgers() ledgercore.LedgerTransactionLedgerRepository {
	return s.ledgerTransactionLedgers
}
func (s *MemStore) LedgerTransactionAccounts() ledgercore.LedgerTransactionAccountRepository {
	return s.ledgerTransactionAccts
}

func (s *MemStore) AccountingPeriods() ledgercore.AccountingPeriodRepository { return s.accountingPeriods }
func (s *MemStore) InterimPeriods() ledgercore.InterimPeriodRepository      { return s.interimPeriods }
