package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrorKind classifies a failed operation so callers can map it to a response
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NotFound"
	KindInvalidTransition ErrorKind = "InvalidTransition"
	KindItemLocked        ErrorKind = "ItemLocked"
	KindAlreadyOpen       ErrorKind = "AlreadyOpen"
	KindTableOccupied     ErrorKind = "TableOccupied"
	KindValidation        ErrorKind = "ValidationError"
	KindStore             ErrorKind = "StoreError"
)

// Error is the error value returned by every service operation
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func Validation(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

// KindOf returns the kind of err, StoreError for anything unclassified
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// storeErr converts anything that is not already a service error into a
// StoreError, passing the driver message through.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindStore, Message: err.Error(), Err: err}
}

// notFoundOr maps gorm's missing-record error to NotFound and wraps the rest
func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(format, args...)
	}
	return storeErr(err)
}
