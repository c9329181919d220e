package sqlstore

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	ledgercore "github.com/mtelahun/account-engine-sub001"
)

type keyFunc[K comparable, V any] func(v V) K
type fieldsFunc[V any] func(v V) map[string]string
type keyString[K comparable] func(k K) string

// table is the generic gorm-backed repository. It satisfies
// ledgercore.Repository[V, K] the same way memstore.table does, so the two
// backends are drop-in substitutes for one another.
type table[K comparable, V any] struct {
	db       *gorm.DB
	kind     string
	keyOf    keyFunc[K, V]
	keyStr   keyString[K]
	fieldsOf fieldsFunc[V]
}

func newTable[K comparable, V any](db *gorm.DB, kind string, keyOf keyFunc[K, V], keyStr keyString[K], fieldsOf fieldsFunc[V]) *table[K, V] {
	return &table[K, V]{db: db, kind: kind, keyOf: keyOf, keyStr: keyStr, fieldsOf: fieldsOf}
}

func (t *table[K, V]) Insert(ctx context.Context, v V) (V, error) {
	var zero V
	key := t.keyStr(t.keyOf(v))

	var existing record
	err := t.db.WithContext(ctx).Where("kind = ? AND key = ?", t.kind, key).First(&existing).Error
	if err == nil {
		return zero, ledgercore.NewDuplicateRecordErrorf("%s %v already exists", t.kind, key)
	}
	if !gormNotFound(err) {
		return zero, ledgercore.WrapInternal(err, "insert lookup")
	}

	rec, err := t.toRecord(key, v)
	if err != nil {
		return zero, err
	}
	if err := t.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return zero, ledgercore.WrapInternal(err, "insert")
	}
	return v, nil
}

func (t *table[K, V]) Get(ctx context.Context, id K) (V, error) {
	var zero V
	key := t.keyStr(id)

	var rec record
	err := t.db.WithContext(ctx).Where("kind = ? AND key = ?", t.kind, key).First(&rec).Error
	if gormNotFound(err) {
		return zero, ledgercore.NewEmptyRecordErrorf("%s %v does not exist", t.kind, key)
	}
	if err != nil {
		return zero, ledgercore.WrapInternal(err, "get")
	}
	return t.fromRecord(rec)
}

func (t *table[K, V]) Search(ctx context.Context, query string) ([]V, error) {
	clauses, err := ledgercore.ParseSearchQuery(query)
	if err != nil {
		return nil, err
	}

	var recs []record
	if err := t.db.WithContext(ctx).Where("kind = ?", t.kind).Find(&recs).Error; err != nil {
		return nil, ledgercore.WrapInternal(err, "search")
	}

	results := make([]V, 0, len(recs))
	for _, rec := range recs {
		fields, err := decodeFields(rec.Fields)
		if err != nil {
			return nil, err
		}
		if len(clauses) > 0 && !ledgercore.MatchClauses(fields, clauses) {
			continue
		}
		v, err := t.fromRecord(rec)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

func (t *table[K, V]) Save(ctx context.Context, v V) (V, error) {
	var zero V
	key := t.keyStr(t.keyOf(v))

	var existing record
	err := t.db.WithContext(ctx).Where("kind = ? AND key = ?", t.kind, key).First(&existing).Error
	if gormNotFound(err) {
		return zero, ledgercore.NewRecordNotFoundErrorf("%s %v does not exist", t.kind, key)
	}
	if err != nil {
		return zero, ledgercore.WrapInternal(err, "save lookup")
	}

	if existing.Archived {
		return zero, ledgercore.NewValidationErrorf("%s %v is archived", t.kind, key)
	}

	rec, err := t.toRecord(key, v)
	if err != nil {
		return zero, err
	}
	rec.Archived = existing.Archived
	if err := t.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return zero, ledgercore.WrapInternal(err, "save")
	}
	return v, nil
}

func (t *table[K, V]) Delete(ctx context.Context, id K) error {
	key := t.keyStr(id)

	var existing record
	err := t.db.WithContext(ctx).Where("kind = ? AND key = ?", t.kind, key).First(&existing).Error
	if gormNotFound(err) {
		return ledgercore.NewRecordNotFoundErrorf("%s %v does not exist", t.kind, key)
	}
	if err != nil {
		return ledgercore.WrapInternal(err, "delete lookup")
	}
	if existing.Archived {
		return ledgercore.NewValidationErrorf("%s %v is archived", t.kind, key)
	}

	res := t.db.WithContext(ctx).Where("kind = ? AND key = ?", t.kind, key).Delete(&record{})
	if res.Error != nil {
		return ledgercore.WrapInternal(res.Error, "delete")
	}
	if res.RowsAffected == 0 {
		return ledgercore.NewRecordNotFoundErrorf("%s %v does not exist", t.kind, key)
	}
	return nil
}

func (t *table[K, V]) Archive(ctx context.Context, id K) error {
	return t.setArchived(ctx, id, true)
}

func (t *table[K, V]) Unarchive(ctx context.Context, id K) error {
	return t.setArchived(ctx, id, false)
}

func (t *table[K, V]) setArchived(ctx context.Context, id K, archived bool) error {
	key := t.keyStr(id)
	res := t.db.WithContext(ctx).Model(&record{}).
		Where("kind = ? AND key = ?", t.kind, key).
		Update("archived", archived)
	if res.Error != nil {
		return ledgercore.WrapInternal(res.Error, "archive")
	}
	if res.RowsAffected == 0 {
		return ledgercore.NewRecordNotFoundErrorf("%s %v does not exist", t.kind, key)
	}
	return nil
}

func (t *table[K, V]) toRecord(key string, v V) (record, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return record{}, ledgercore.WrapInternal(err, "encode payload")
	}
	fields, err := encodeFields(t.fieldsOf(v))
	if err != nil {
		return record{}, err
	}
	return record{Kind: t.kind, Key: key, Fields: fields, Payload: payload}, nil
}

func (t *table[K, V]) fromRecord(rec record) (V, error) {
	var v V
	if err := json.Unmarshal(rec.Payload, &v); err != nil {
		return v, ledgercore.WrapInternal(err, "decode payload")
	}
	return v, nil
}
