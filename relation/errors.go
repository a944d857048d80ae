package relation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes evaluation failures.
type ErrorCode string

const (
	// ErrCodeDefinitionParse indicates a definition block was malformed and dropped.
	ErrCodeDefinitionParse ErrorCode = "DEFINITION_PARSE_ERROR"

	// ErrCodeNotFound indicates a referenced relation is not in the store.
	ErrCodeNotFound ErrorCode = "RELATION_NOT_FOUND"

	// ErrCodeSchemaMismatch indicates a set operator got relations with
	// different attribute sequences.
	ErrCodeSchemaMismatch ErrorCode = "SCHEMA_MISMATCH"

	// ErrCodeUnrecognizedQuery indicates the query text matched no grammar rule.
	ErrCodeUnrecognizedQuery ErrorCode = "UNRECOGNIZED_QUERY"
)

// Error is a failure of one definition block or one query. None of them are
// fatal to the session.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Name is the relation name or query text the error is about, if any.
	Name string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewDefinitionError creates a DEFINITION_PARSE_ERROR for the named block.
func NewDefinitionError(name, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeDefinitionParse,
		Message: fmt.Sprintf(format, args...),
		Name:    name,
	}
}

// NewNotFoundError creates a RELATION_NOT_FOUND error.
func NewNotFoundError(name string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: "relation not found",
		Name:    name,
	}
}

// NewSchemaMismatchError creates a SCHEMA_MISMATCH error for op applied to
// relations with attributes a and b.
func NewSchemaMismatchError(op string, a, b []string) *Error {
	return &Error{
		Code: ErrCodeSchemaMismatch,
		Message: fmt.Sprintf("%s: schemas differ: (%s) vs (%s)",
			op, strings.Join(a, ", "), strings.Join(b, ", ")),
	}
}

// NewUnrecognizedQueryError creates an UNRECOGNIZED_QUERY error.
func NewUnrecognizedQueryError(query, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeUnrecognizedQuery,
		Message: fmt.Sprintf(format, args...),
		Name:    query,
	}
}

func hasCode(err error, code ErrorCode) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsDefinitionError returns true if err is a definition parse error.
func IsDefinitionError(err error) bool { return hasCode(err, ErrCodeDefinitionParse) }

// IsNotFound returns true if err is a relation-not-found error.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsSchemaMismatch returns true if err is a schema mismatch error.
func IsSchemaMismatch(err error) bool { return hasCode(err, ErrCodeSchemaMismatch) }

// IsUnrecognizedQuery returns true if err is an unrecognized query error.
func IsUnrecognizedQuery(err error) bool { return hasCode(err, ErrCodeUnrecognizedQuery) }
