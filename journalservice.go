package ledgercore

import (
	"context"
	"fmt"
)

// JournalService manages journals, special-journal templates, and their
// columns.
type JournalService struct {
	store Store
}

func NewJournalService(store Store) *JournalService {
	return &JournalService{store: store}
}

// CreateGeneralJournal creates a plain, template-free journal.
func (s *JournalService) CreateGeneralJournal(ctx context.Context, name Name, code Code) (Journal, error) {
	return s.insertJournal(ctx, name, code, JournalGeneral, ID{}, ID{})
}

// CreateSpecialJournal creates a journal bound to a column template and a
// control ledger, which must be Intermediate.
func (s *JournalService) CreateSpecialJournal(ctx context.Context, name Name, code Code, controlLedgerID, templateID ID) (Journal, error) {
	ledger, err := s.store.Ledgers().Get(ctx, controlLedgerID)
	if err != nil {
		return Journal{}, err
	}
	if ledger.Type != LedgerIntermediate {
		return Journal{}, NewValidationErrorf("control ledger %s is not Intermediate", controlLedgerID)
	}
	if _, err := s.store.SpecialJournalTemplates().Get(ctx, templateID); err != nil {
		return Journal{}, err
	}
	return s.insertJournal(ctx, name, code, JournalSpecial, controlLedgerID, templateID)
}

func (s *JournalService) insertJournal(ctx context.Context, name Name, code Code, jtype JournalType, controlLedgerID, templateID ID) (Journal, error) {
	dup, err := s.store.Journals().Search(ctx, fmt.Sprintf("code = %s", code))
	if err != nil {
		return Journal{}, err
	}
	if len(dup) > 0 {
		return Journal{}, NewDuplicateRecordErrorf("journal code %q already in use", code)
	}
	return s.store.Journals().Insert(ctx, Journal{
		ID:                       NewID(),
		Name:                     name,
		Code:                     code,
		Type:                     jtype,
		ControlLedgerID:          controlLedgerID,
		SpecialJournalTemplateID: templateID,
	})
}

// CreateTemplate creates an empty special-journal template.
func (s *JournalService) CreateTemplate(ctx context.Context, name Name) (SpecialJournalTemplate, error) {
	return s.store.SpecialJournalTemplates().Insert(ctx, SpecialJournalTemplate{ID: NewID(), Name: name})
}

// AppendColumn adds the next column to templateID. Sequence numbers are
// dense and gapless starting at 1; ledgerID is required for ledger-typed
// columns and forbidden otherwise. Once any special transaction has been
// recorded against this template, pending or posted, the template becomes
// immutable and AppendColumn returns a Validation error.
func (s *JournalService) AppendColumn(ctx context.Context, templateID ID, name Name, colType ColumnType, ledgerID *ID) (TemplateColumn, error) {
	if _, err := s.store.SpecialJournalTemplates().Get(ctx, templateID); err != nil {
		return TemplateColumn{}, err
	}

	locked, err := s.templateIsLocked(ctx, templateID)
	if err != nil {
		return TemplateColumn{}, err
	}
	if locked {
		return TemplateColumn{}, NewValidationErrorf("template %s is immutable: transactions have already been recorded against it", templateID)
	}

	if colType.isLedgerTyped() && ledgerID == nil {
		return TemplateColumn{}, NewValidationErrorf("column type %q requires a ledger id", colType)
	}
	if !colType.isLedgerTyped() && ledgerID != nil {
		return TemplateColumn{}, NewValidationErrorf("column type %q must not bind a ledger id", colType)
	}

	existing, err := s.store.TemplateColumns().Search(ctx, fmt.Sprintf("template_id = %s", templateID))
	if err != nil {
		return TemplateColumn{}, err
	}

	return s.store.TemplateColumns().Insert(ctx, TemplateColumn{
		ID:         NewID(),
		TemplateID: templateID,
		Sequence:   len(existing) + 1,
		Name:       name,
		ColumnType: colType,
		LedgerID:   ledgerID,
	})
}

func (s *JournalService) templateIsLocked(ctx context.Context, templateID ID) (bool, error) {
	journals, err := s.store.Journals().Search(ctx, fmt.Sprintf("special_journal_template_id = %s", templateID))
	if err != nil {
		return false, err
	}
	for _, j := range journals {
		specials, err := s.store.Specials().Search(ctx, fmt.Sprintf("template_id = %s", j.SpecialJournalTemplateID))
		if err != nil {
			return false, err
		}
		if len(specials) > 0 {
			return true, nil
		}
	}
	return false, nil
}
