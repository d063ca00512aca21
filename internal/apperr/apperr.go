package apperr

import (
	"errors"
	"fmt"
)

// Kind tags an expected failure condition so callers can map it to a
// response without string matching.
type Kind int

const (
	// KindValidation covers missing or malformed input fields.
	KindValidation Kind = iota
	// KindNotFound covers operations targeting a row that does not exist.
	KindNotFound
	// KindConflict covers deletions blocked by existing descendants or
	// historical references.
	KindConflict
	// KindIntegrity covers data-configuration faults, e.g. a computed score
	// that no score category band covers.
	KindIntegrity
	// KindStorage covers transaction failures in the underlying store.
	// The whole operation rolled back, so a retry is safe.
	KindStorage
)

// Error is a tagged, recoverable condition returned by the service layer.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func Integrity(format string, args ...interface{}) *Error {
	return &Error{Kind: KindIntegrity, Msg: fmt.Sprintf(format, args...)}
}

func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

func is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func IsValidation(err error) bool { return is(err, KindValidation) }
func IsNotFound(err error) bool   { return is(err, KindNotFound) }
func IsConflict(err error) bool   { return is(err, KindConflict) }
func IsIntegrity(err error) bool  { return is(err, KindIntegrity) }
func IsStorage(err error) bool    { return is(err, KindStorage) }
