// Package apperrors defines the typed error taxonomy shared by all
// usecases. Handlers map kinds to transport status codes; usecases and
// repositories only ever deal in kinds.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalidRequest
	KindStateConflict
	KindAmbiguous
)

// FieldViolation is one field-level validation failure. InvalidRequest
// errors carry every violation found, not just the first.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Error struct {
	kind       Kind
	msg        string
	cause      error
	Violations []FieldViolation
}

func (e *Error) Error() string {
	if len(e.Violations) > 0 {
		parts := make([]string, 0, len(e.Violations))
		for _, v := range e.Violations {
			parts = append(parts, v.Field+": "+v.Reason)
		}
		return e.msg + ": " + strings.Join(parts, "; ")
	}
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Kind() Kind { return e.kind }

func NotFound(format string, args ...interface{}) *Error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{kind: KindConflict, msg: fmt.Sprintf(format, args...)}
}

func InvalidRequest(format string, args ...interface{}) *Error {
	return &Error{kind: KindInvalidRequest, msg: fmt.Sprintf(format, args...)}
}

// InvalidFields builds an InvalidRequest carrying the full violation list.
func InvalidFields(msg string, violations []FieldViolation) *Error {
	return &Error{kind: KindInvalidRequest, msg: msg, Violations: violations}
}

func StateConflict(format string, args ...interface{}) *Error {
	return &Error{kind: KindStateConflict, msg: fmt.Sprintf(format, args...)}
}

func Ambiguous(format string, args ...interface{}) *Error {
	return &Error{kind: KindAmbiguous, msg: fmt.Sprintf(format, args...)}
}

func Internal(cause error, format string, args ...interface{}) *Error {
	return &Error{kind: KindInternal, msg: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf reports the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
