// Package auditlog is a side-channel, append-only record of posting-engine
// state transitions. It is not the system of record — ledgercore.Store is
// — but a forensic trail a reader can replay after the fact. Payloads are
// JSON-encoded, and the event catalog is narrowed to the posting engine's
// own transitions.
package auditlog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	ledgercore "github.com/mtelahun/account-engine-sub001"
)

// EventType enumerates the posting-engine transitions this log records.
type EventType string

const (
	EventTransactionCreated  EventType = "TRANSACTION_CREATED"
	EventTransactionPosted   EventType = "TRANSACTION_POSTED"
	EventSubsidiaryPosted    EventType = "SUBSIDIARY_POSTED"
	EventGeneralLedgerPosted EventType = "GENERAL_LEDGER_POSTED"
)

var bucketEvents = []byte("posting_events")

// Event is one append-only row.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Log is a bbolt-backed append-only event log.
type Log struct {
	db *bbolt.DB
}

// Open opens (creating if necessary) the bbolt database at path and
// ensures the event bucket exists.
func Open(path string) (*Log, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, ledgercore.WrapInternal(err, "open audit log")
	}
	l := &Log{db: db}
	if err := l.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEvents)
		return err
	}); err != nil {
		return nil, ledgercore.WrapInternal(err, "init audit log bucket")
	}
	return l, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Append records one event with the given payload, JSON-encoded.
func (l *Log) Append(eventType EventType, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, ledgercore.WrapInternal(err, "encode audit payload")
	}

	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Payload:    data,
		OccurredAt: time.Now().UTC(),
	}

	if err := l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEvents)
		encoded, err := json.Marshal(event)
		if err != nil {
			return err
		}
		return b.Put([]byte(fmt.Sprintf("%020d-%s", event.OccurredAt.UnixNano(), event.ID)), encoded)
	}); err != nil {
		return Event{}, ledgercore.WrapInternal(err, "append audit event")
	}
	return event, nil
}

// Since returns every event recorded at or after from, in append order.
func (l *Log) Since(from time.Time) ([]Event, error) {
	var events []Event
	err := l.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEvents)
		return b.ForEach(func(_, v []byte) error {
			var e Event
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			if !e.OccurredAt.Before(from) {
				events = append(events, e)
			}
			return nil
		})
	})
	if err != nil {
		return nil, ledgercore.WrapInternal(err, "read audit log")
	}
	return events, nil
}

// TransactionPostedPayload is the payload recorded for
// EventTransactionPosted.
type TransactionPostedPayload struct {
	JournalID string `json:"journal_id"`
	Key       string `json:"key"`
	Amount    string `json:"amount"`
}

// Adapter satisfies ledgercore.AuditSink, letting a PostingEngine append
// to a Log without this package's ledgercore dependency becoming a cycle
// (ledgercore never imports auditlog; only the reverse).
type Adapter struct {
	Log *Log
}

func (a Adapter) Append(eventType string, payload interface{}) error {
	_, err := a.Log.Append(EventType(eventType), payload)
	return err
}
