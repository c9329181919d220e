package ledgercore

import "fmt"

// Kind classifies an error surfaced by the ledger core to its callers.
// Services never swallow errors; they wrap and propagate a Kind.
type Kind int

const (
	// KindValidation means caller-supplied input violates a rule.
	KindValidation Kind = iota
	// KindEmptyRecord means a referenced id does not exist.
	KindEmptyRecord
	// KindDuplicateRecord means an insert collided on a uniqueness constraint.
	KindDuplicateRecord
	// KindRecordNotFound means a save/delete/archive target row is missing.
	KindRecordNotFound
	// KindInternal wraps an opaque repository or infrastructure failure.
	KindInternal
	// KindNotImplemented means a resource deliberately forbids an operation.
	KindNotImplemented
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "Validation"
	case KindEmptyRecord:
		return "EmptyRecord"
	case KindDuplicateRecord:
		return "DuplicateRecord"
	case KindRecordNotFound:
		return "RecordNotFound"
	case KindInternal:
		return "Internal"
	case KindNotImplemented:
		return "NotImplemented"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned across repository and service
// boundaries. It carries a Kind so callers can branch on errors.As without
// parsing message strings.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so
// errors.Is(err, &Error{Kind: KindValidation}) matches any Validation
// error; KindOf is the idiom used throughout this repository.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewValidationErrorf builds a Validation error.
func NewValidationErrorf(format string, args ...interface{}) *Error {
	return newErr(KindValidation, format, args...)
}

// NewEmptyRecordErrorf builds an EmptyRecord error.
func NewEmptyRecordErrorf(format string, args ...interface{}) *Error {
	return newErr(KindEmptyRecord, format, args...)
}

// NewDuplicateRecordErrorf builds a DuplicateRecord error.
func NewDuplicateRecordErrorf(format string, args ...interface{}) *Error {
	return newErr(KindDuplicateRecord, format, args...)
}

// NewRecordNotFoundErrorf builds a RecordNotFound error.
func NewRecordNotFoundErrorf(format string, args ...interface{}) *Error {
	return newErr(KindRecordNotFound, format, args...)
}

// NewNotImplementedErrorf builds a NotImplemented error.
func NewNotImplementedErrorf(format string, args ...interface{}) *Error {
	return newErr(KindNotImplemented, format, args...)
}

// WrapInternal wraps an infrastructure failure as an opaque Internal error
// without leaking backend-specific details into the Kind taxonomy.
func WrapInternal(err error, context string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindInternal, Message: context, Err: err}
}

// KindOf returns the Kind of err if it is (or wraps) a *Error, and ok=false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind, true
	}
	return 0, false
}

// asError finds the first *Error in err's chain, following single-error
// Unwrap() methods only; it does not call errors.As.
func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
