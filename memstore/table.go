// Package memstore is the in-memory Store backend: every resource is held
// in a generic, mutex-guarded map, generalized across resource types
// instead of hand-duplicated per type.
package memstore

import (
	"context"
	"sync"

	"github.com/mtelahun/account-engine-sub001"
)

// fieldsFunc flattens a record into the string-keyed view ledgercore's
// search grammar matches against.
type fieldsFunc[V any] func(v V) map[string]string

// keyFunc extracts a record's identity.
type keyFunc[K comparable, V any] func(v V) K

// table is a generic, concurrency-safe, single-resource repository. It
// satisfies ledgercore.Repository[V, K] directly: every concrete
// *RepositoryAlias in this package is just a table[K, V] instance.
type table[K comparable, V any] struct {
	mu       sync.RWMutex
	data     map[K]V
	archived map[K]bool
	keyOf    keyFunc[K, V]
	fieldsOf fieldsFunc[V]
}

func newTable[K comparable, V any](keyOf keyFunc[K, V], fieldsOf fieldsFunc[V]) *table[K, V] {
	return &table[K, V]{
		data:     make(map[K]V),
		archived: make(map[K]bool),
		keyOf:    keyOf,
		fieldsOf: fieldsOf,
	}
}

func (t *table[K, V]) Insert(_ context.Context, v V) (V, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := t.keyOf(v)
	if _, exists := t.data[k]; exists {
		var zero V
		return zero, ledgercore.NewDuplicateRecordErrorf("record %v already exists", k)
	}
	t.data[k] = v
	return v, nil
}

func (t *table[K, V]) Get(_ context.Context, id K) (V, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.data[id]
	if !ok {
		var zero V
		return zero, ledgercore.NewEmptyRecordErrorf("record %v does not exist", id)
	}
	return v, nil
}

func (t *table[K, V]) Search(_ context.Context, query string) ([]V, error) {
	clauses, err := ledgercore.ParseSearchQuery(query)
	if err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	results := make([]V, 0)
	for _, v := range t.data {
		if len(clauses) == 0 || ledgercore.MatchClauses(t.fieldsOf(v), clauses) {
			results = append(results, v)
		}
	}
	return results, nil
}

func (t *table[K, V]) Save(_ context.Context, v V) (V, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := t.keyOf(v)
	if _, exists := t.data[k]; !exists {
		var zero V
		return zero, ledgercore.NewRecordNotFoundErrorf("record %v does not exist", k)
	}
	if t.archived[k] {
		var zero V
		return zero, ledgercore.NewValidationErrorf("record %v is archived", k)
	}
	t.data[k] = v
	return v, nil
}

func (t *table[K, V]) Delete(_ context.Context, id K) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.data[id]; !exists {
		return ledgercore.NewRecordNotFoundErrorf("record %v does not exist", id)
	}
	if t.archived[id] {
		return ledgercore.NewValidationErrorf("record %v is archived", id)
	}
	delete(t.data, id)
	delete(t.archived, id)
	return nil
}

func (t *table[K, V]) Archive(_ context.Context, id K) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.data[id]; !exists {
		return ledgercore.NewRecordNotFoundErrorf("record %v does not exist", id)
	}
	t.archived[id] = true
	return nil
}

func (t *table[K, V]) Unarchive(_ context.Context, id K) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.data[id]; !exists {
		return ledgercore.NewRecordNotFoundErrorf("record %v does not exist", id)
	}
	delete(t.archived, id)
	return nil
}
