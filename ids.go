package ledgercore

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ID is an opaque 128-bit identifier shared by every resource in the graph.
type ID = uuid.UUID

// NewID returns a fresh random identifier.
func NewID() ID {
	return uuid.New()
}

// ParseID parses a canonical UUID string into an ID.
func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ID{}, NewValidationErrorf("invalid id %q: %v", s, err)
	}
	return id, nil
}

// Timestamp is wall-clock time truncated to microsecond resolution with the
// monotonic reading stripped, so two Timestamps observed at the same instant
// compare equal with == and are safe to use as map keys.
type Timestamp = time.Time

// NewTimestamp returns the current time, normalized for use as a composite
// key component (see Timestamp).
func NewTimestamp() Timestamp {
	return NormalizeTimestamp(time.Now())
}

// NormalizeTimestamp strips the monotonic clock reading and truncates to
// microsecond resolution, matching the journal-transaction composite key's
// declared precision.
func NormalizeTimestamp(t time.Time) Timestamp {
	return t.UTC().Truncate(time.Microsecond)
}

// CurrencyCode is a bounded 3-byte ISO-4217 alpha code.
type CurrencyCode string

// Code is a bounded 24-byte identifier string (ledger number, journal code).
type Code string

// Name is a bounded 64-byte display string (name/description/explanation).
type Name string

const (
	currencyCodeCap = 3
	codeCap         = 24
	nameCap         = 64
)

// NewCurrencyCode truncates s to the declared capacity. Assignment from a
// longer source truncates; bytes are UTF-8, never splitting a rune.
func NewCurrencyCode(s string) CurrencyCode {
	return CurrencyCode(truncateUTF8(s, currencyCodeCap))
}

// NewCode truncates s to the ledger-number/journal-code capacity.
func NewCode(s string) Code {
	return Code(truncateUTF8(s, codeCap))
}

// NewName truncates s to the name/description capacity.
func NewName(s string) Name {
	return Name(truncateUTF8(s, nameCap))
}

func truncateUTF8(s string, capBytes int) string {
	if len(s) <= capBytes {
		return s
	}
	cut := capBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// LedgerKey is the composite primary key of a posted ledger-transaction pair.
type LedgerKey struct {
	LedgerID  ID
	Timestamp Timestamp
}

func (k LedgerKey) String() string {
	return fmt.Sprintf("(%s, %s)", k.LedgerID, k.Timestamp.Format(time.RFC3339Nano))
}

// JournalTransactionID is the composite identity of a journal transaction:
// (journal_id, timestamp). Two transactions in the same journal at the same
// timestamp collide.
type JournalTransactionID struct {
	JournalID ID
	Timestamp Timestamp
}

func (id JournalTransactionID) String() string {
	return fmt.Sprintf("(%s, %s)", id.JournalID, id.Timestamp.Format(time.RFC3339Nano))
}

// SubsidiaryLedgerKey links a subsidiary-ledger account entry to the ledger
// transaction row it produced: (account_id, timestamp).
type SubsidiaryLedgerKey struct {
	AccountID ID
	Timestamp Timestamp
}

func (k SubsidiaryLedgerKey) String() string {
	return fmt.Sprintf("(%s, %s)", k.AccountID, k.Timestamp.Format(time.RFC3339Nano))
}

// LedgerPostingRef is installed on a general-journal line once it has been
// posted, letting the line find the ledger.transaction row it produced.
type LedgerPostingRef struct {
	Key      LedgerKey
	LedgerID ID
}

// AccountPostingRef links a subsidiary-account column to the
// ledger.transaction.account row created for it.
type AccountPostingRef struct {
	Key SubsidiaryLedgerKey
}
