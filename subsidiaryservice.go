package ledgercore

import (
	"context"
	"fmt"
)

// SubsidiaryService manages entity types, entities, subsidiary ledgers and
// their external accounts.
type SubsidiaryService struct {
	store Store
}

func NewSubsidiaryService(store Store) *SubsidiaryService {
	return &SubsidiaryService{store: store}
}

func (s *SubsidiaryService) CreateEntityType(ctx context.Context, code string, description Name) (EntityType, error) {
	c, err := NewEntityTypeCode(code)
	if err != nil {
		return EntityType{}, err
	}
	return s.store.EntityTypes().Insert(ctx, EntityType{Code: c, Description: description})
}

func (s *SubsidiaryService) CreateEntity(ctx context.Context, entityTypeCode Code, name Name) (Entity, error) {
	if _, err := s.store.EntityTypes().Get(ctx, entityTypeCode); err != nil {
		return Entity{}, err
	}
	return s.store.Entities().Insert(ctx, Entity{ID: NewID(), EntityTypeCode: entityTypeCode, Name: name})
}

// CreateSubsidiaryLedger creates a subledger controlled by ledgerID, which
// must reference an existing Intermediate ledger.
func (s *SubsidiaryService) CreateSubsidiaryLedger(ctx context.Context, name Name, ledgerID ID) (SubsidiaryLedger, error) {
	ledger, err := s.store.Ledgers().Get(ctx, ledgerID)
	if err != nil {
		return SubsidiaryLedger{}, err
	}
	if ledger.Type != LedgerIntermediate {
		return SubsidiaryLedger{}, NewValidationErrorf("control ledger %s is not Intermediate", ledgerID)
	}
	return s.store.SubsidiaryLedgers().Insert(ctx, SubsidiaryLedger{ID: NewID(), Name: name, LedgerID: ledgerID})
}

// CreateExternalAccount opens an account for entityID inside subledgerID.
// account_no must be globally unique; an entity may hold at most one
// account per subledger.
func (s *SubsidiaryService) CreateExternalAccount(ctx context.Context, subledgerID, entityID ID, accountNo Code, name Name, opened Timestamp) (ExternalAccount, error) {
	if _, err := s.store.SubsidiaryLedgers().Get(ctx, subledgerID); err != nil {
		return ExternalAccount{}, err
	}
	if _, err := s.store.Entities().Get(ctx, entityID); err != nil {
		return ExternalAccount{}, err
	}

	dup, err := s.store.ExternalAccounts().Search(ctx, fmt.Sprintf("account_no = %s", accountNo))
	if err != nil {
		return ExternalAccount{}, err
	}
	if len(dup) > 0 {
		return ExternalAccount{}, NewDuplicateRecordErrorf("account number %q already in use", accountNo)
	}

	existing, err := s.store.ExternalAccounts().Search(ctx, fmt.Sprintf("subledger_id = %s, entity_id = %s", subledgerID, entityID))
	if err != nil {
		return ExternalAccount{}, err
	}
	if len(existing) > 0 {
		return ExternalAccount{}, NewDuplicateRecordErrorf("entity %s already has an account in subledger %s", entityID, subledgerID)
	}

	return s.store.ExternalAccounts().Insert(ctx, ExternalAccount{
		ID:          NewID(),
		SubledgerID: subledgerID,
		EntityID:    entityID,
		AccountNo:   accountNo,
		Name:        name,
		DateOpened:  opened,
	})
}
