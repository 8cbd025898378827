// Package dErrors defines coded domain errors shared by services and handlers.
//
// Stores return sentinel errors (pkg/platform/sentinel); services translate
// them into coded errors so the transport layer can map outcomes to HTTP
// statuses without inspecting internals.
package dErrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code classifies a domain error for transport mapping.
type Code string

const (
	// CodeValidation marks field-level validation failures (HTTP 400).
	CodeValidation Code = "validation"
	// CodeBadRequest marks structurally invalid requests (HTTP 400).
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput marks rejected domain primitives at trust boundaries (HTTP 400).
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks missing aggregates or missing referenced entities (HTTP 404).
	CodeNotFound Code = "not_found"
	// CodeConflict marks uniqueness or active-dependent violations (HTTP 409).
	CodeConflict Code = "conflict"
	// CodeUnauthorized marks missing or invalid credentials (HTTP 401).
	CodeUnauthorized Code = "unauthorized"
	// CodeInternal marks unclassified failures; details stay server-side (HTTP 500).
	CodeInternal Code = "internal"
)

// Error is a coded domain error with optional per-field details.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// WithField attaches a single field detail and returns the same error.
func (e *Error) WithField(field, detail string) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]string, 1)
	}
	e.Fields[field] = detail
	return e
}

// NewValidation aggregates per-field validation failures into one error.
// The message lists offending fields in a stable order.
func NewValidation(fields map[string]string) *Error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Error{
		Code:    CodeValidation,
		Message: "invalid fields: " + strings.Join(names, ", "),
		Fields:  fields,
	}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// unclassified errors.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}
