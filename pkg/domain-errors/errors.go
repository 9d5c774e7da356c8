// Package domainerrors models failures as coded errors so callers can react to
// the category without string matching. Services create or wrap errors with a
// Code; the HTTP layer translates codes to statuses. Codes are part of the
// wire contract (snake_case in error envelopes), messages are not.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the category of a domain error.
type Code string

const (
	// CodeBadRequest marks a malformed request (undecodable body, bad types).
	CodeBadRequest Code = "bad_request"
	// CodeValidation marks a well-formed request with invalid content.
	CodeValidation Code = "validation_error"
	// CodeNotFound marks a missing entity.
	CodeNotFound Code = "not_found"
	// CodeInvalidConfig marks an entity whose configuration cannot support the
	// requested operation (e.g. an activity type with no sigla).
	CodeInvalidConfig Code = "invalid_configuration"
	// CodeConflict marks a concurrency conflict that survived local retries.
	CodeConflict Code = "conflict"
	// CodeUnauthorized and CodeForbidden mark authn/authz failures.
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	// CodeTimeout marks an aborted operation (deadline or cancellation).
	CodeTimeout Code = "timeout"
	// CodeInvariantViolation marks a broken domain invariant. These indicate
	// bugs and are never produced by valid input.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal marks infrastructure failures surfaced to the caller.
	CodeInternal Code = "internal_error"
)

// DomainError carries a Code alongside the message and optional cause.
type DomainError struct {
	Code    Code
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New creates a domain error with the given code and message.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &DomainError{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias for HasCode, reading naturally at call sites.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf extracts the code from an error, defaulting to CodeInternal for
// errors that did not originate in the domain layer.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the domain message from an error, empty if none.
func MessageOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation, CodeInvalidConfig:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeInvariantViolation, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
