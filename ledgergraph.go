package ledgercore

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// LedgerGraphService manages the chart-of-accounts operations: creating the
// general ledger singleton, attaching ledger nodes under an Intermediate
// parent, and walking the resulting arena.
type LedgerGraphService struct {
	store Store
	log   *zap.Logger
}

// NewLedgerGraphService wires a LedgerGraphService over a Store, logging
// with the given zap.Logger (or zap.NewNop() if nil).
func NewLedgerGraphService(store Store, log *zap.Logger) *LedgerGraphService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LedgerGraphService{store: store, log: log}
}

// CreateGeneralLedger creates the tenant's single general ledger and its
// root Intermediate ledger node. Calling this a second time is a
// DuplicateRecord error.
func (s *LedgerGraphService) CreateGeneralLedger(ctx context.Context, name Name, currency CurrencyCode) (GeneralLedger, error) {
	if _, err := s.store.GeneralLedger().Get(ctx); err == nil {
		return GeneralLedger{}, NewDuplicateRecordErrorf("general ledger already exists")
	}

	root := Ledger{
		ID:           NewID(),
		Number:       NewCode("0"),
		Name:         name,
		ParentID:     nil,
		Type:         LedgerIntermediate,
		CurrencyCode: &currency,
	}
	if _, err := s.store.Ledgers().Insert(ctx, root); err != nil {
		return GeneralLedger{}, err
	}
	if _, err := s.store.IntermediateLedgers().Insert(ctx, IntermediateLedger{LedgerID: root.ID}); err != nil {
		return GeneralLedger{}, err
	}

	gl := GeneralLedger{
		ID:           NewID(),
		Name:         name,
		RootLedgerID: root.ID,
		CurrencyCode: currency,
	}
	return s.store.GeneralLedger().Insert(ctx, gl)
}

// CreateLedger attaches a new ledger node under parentID. The parent must
// exist and be Intermediate; number must be unique within the tenant; a
// ledger's currency, when set, must match the general ledger's currency
// whatever the ledger's type.
func (s *LedgerGraphService) CreateLedger(ctx context.Context, parentID ID, number Code, name Name, ledgerType LedgerType, currency *CurrencyCode) (Ledger, error) {
	parent, err := s.store.Ledgers().Get(ctx, parentID)
	if err != nil {
		return Ledger{}, err
	}
	if parent.Type != LedgerIntermediate {
		return Ledger{}, NewValidationErrorf("parent ledger %s is not Intermediate", parentID)
	}

	existing, err := s.store.Ledgers().Search(ctx, fmt.Sprintf("number = %s", number))
	if err != nil {
		return Ledger{}, err
	}
	if len(existing) > 0 {
		return Ledger{}, NewDuplicateRecordErrorf("ledger number %q already in use", number)
	}

	if currency != nil {
		gl, err := s.store.GeneralLedger().Get(ctx)
		if err != nil {
			return Ledger{}, err
		}
		if *currency != gl.CurrencyCode {
			return Ledger{}, NewValidationErrorf("ledger currency %q does not match general ledger currency %q", *currency, gl.CurrencyCode)
		}
	}

	l := Ledger{
		ID:           NewID(),
		Number:       number,
		Name:         name,
		ParentID:     &parentID,
		Type:         ledgerType,
		CurrencyCode: currency,
	}
	l, err = s.store.Ledgers().Insert(ctx, l)
	if err != nil {
		return Ledger{}, err
	}

	switch ledgerType {
	case LedgerIntermediate:
		_, err = s.store.IntermediateLedgers().Insert(ctx, IntermediateLedger{LedgerID: l.ID})
	case LedgerLeaf:
		_, err = s.store.LeafLedgers().Insert(ctx, LeafLedger{LedgerID: l.ID})
	case LedgerDerived:
		_, err = s.store.DerivedLedgers().Insert(ctx, DerivedLedger{LedgerID: l.ID})
	default:
		err = NewValidationErrorf("unknown ledger type %q", ledgerType)
	}
	if err != nil {
		return Ledger{}, err
	}

	s.log.Info("ledger created", zap.String("ledger_id", l.ID.String()), zap.String("number", string(number)), zap.String("type", string(ledgerType)))
	return l, nil
}

// Children returns the direct child ledgers of parentID.
func (s *LedgerGraphService) Children(ctx context.Context, parentID ID) ([]Ledger, error) {
	return s.store.Ledgers().Search(ctx, fmt.Sprintf("parent_id = %s", parentID))
}

// DeleteLedger removes a ledger node, refusing if any transaction has
// posted against it on either the Cr or the Dr side. Only the ledger row
// itself is removed: its variant side record and any child ledgers are
// left in place.
func (s *LedgerGraphService) DeleteLedger(ctx context.Context, id ID) error {
	posted, err := s.store.LedgerTransactions().Search(ctx, fmt.Sprintf("ledger_id = %s", id))
	if err != nil {
		return err
	}
	if len(posted) > 0 {
		return NewValidationErrorf("ledger %s has posted transactions and cannot be deleted", id)
	}
	debited, err := s.store.LedgerTransactionLedgers().Search(ctx, fmt.Sprintf("ledger_dr_id = %s", id))
	if err != nil {
		return err
	}
	if len(debited) > 0 {
		return NewValidationErrorf("ledger %s has posted transactions and cannot be deleted", id)
	}
	return s.store.Ledgers().Delete(ctx, id)
}
