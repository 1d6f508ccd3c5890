package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a document generation failure. Every failure a
// pipeline can produce maps to exactly one kind so the transport layer can
// render an actionable message.
type ErrorKind string

const (
	KindMissingField        ErrorKind = "missing_field"
	KindInvalidFormat       ErrorKind = "invalid_format"
	KindConstraintViolation ErrorKind = "constraint_violation"
	KindDuplicateNumber     ErrorKind = "duplicate_number"
	KindAllocationFailure   ErrorKind = "allocation_failure"
	KindStorageUnavailable  ErrorKind = "storage_unavailable"
)

// Error is the structured failure returned by pipelines and the allocator.
// Message is user-facing, in French, and names what to fix.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string

	cause error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func MissingField(field, message string) *Error {
	return &Error{Kind: KindMissingField, Field: field, Message: message}
}

func InvalidFormat(field, message string) *Error {
	return &Error{Kind: KindInvalidFormat, Field: field, Message: message}
}

func ConstraintViolation(field, message string) *Error {
	return &Error{Kind: KindConstraintViolation, Field: field, Message: message}
}

func DuplicateNumber(number string) *Error {
	return &Error{
		Kind:    KindDuplicateNumber,
		Field:   "document_number",
		Message: fmt.Sprintf("le numéro de document %s existe déjà", number),
	}
}

func AllocationFailure(cause error) *Error {
	return &Error{
		Kind:    KindAllocationFailure,
		Message: "impossible d'attribuer un numéro de document, veuillez réessayer",
		cause:   cause,
	}
}

func StorageUnavailable(cause error) *Error {
	return &Error{
		Kind:    KindStorageUnavailable,
		Message: "le stockage des documents est indisponible",
		cause:   cause,
	}
}

// KindOf extracts the failure kind, or empty string for foreign errors.
func KindOf(err error) ErrorKind {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Kind
	}
	return ""
}

// AsError returns the structured error, or nil.
func AsError(err error) *Error {
	var derr *Error
	if errors.As(err, &derr) {
		return derr
	}
	return nil
}
