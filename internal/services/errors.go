package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindAlreadyExists
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	default:
		return "internal"
	}
}

// Error is returned by every ProductService operation that fails.
type Error struct {
	Kind    ErrorKind
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err; errors not produced by this package are
// internal.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// ValidationError reports malformed or constraint-violating input, one
// detail per offending field.
func ValidationError(details ...string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "validation failed for the provided data",
		Details: details,
	}
}

// NotFoundError reports a product code with no product behind it.
func NotFoundError(code int) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("product with code %d not found", code),
		Details: []string{"the requested product does not exist"},
	}
}

// AlreadyExistsError reports a duplicate product code. Codes are assigned
// by the store, so the current operations never return it.
func AlreadyExistsError(code int) *Error {
	return &Error{
		Kind:    KindAlreadyExists,
		Message: fmt.Sprintf("product with code %d already exists", code),
		Details: []string{"a product with the given code already exists"},
	}
}

// InternalError wraps an unexpected failure.
func InternalError(message string, err error) *Error {
	e := &Error{
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
	if err != nil {
		e.Details = []string{err.Error()}
	}
	return e
}
