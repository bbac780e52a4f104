// internal/validation/errors.go
package validation

import (
	"errors"
	"fmt"
)

// Kind classifies why a request was rejected.
type Kind int

const (
	// MalformedPayload means the body is not a single JSON document.
	MalformedPayload Kind = iota + 1
	// StructuralMismatch means the document does not have the shape of the request.
	StructuralMismatch
	// SemanticInvalid means a field has the right shape but an unacceptable value.
	SemanticInvalid
)

func (k Kind) String() string {
	switch k {
	case MalformedPayload:
		return "malformed_payload"
	case StructuralMismatch:
		return "structural_mismatch"
	case SemanticInvalid:
		return "semantic_invalid"
	default:
		return "unknown"
	}
}

// Error is returned by the request validators. Subject names the request
// ("org creation"), Field the offending external field for semantic failures and
// Path the document location for structural ones.
type Error struct {
	Kind    Kind
	Subject string
	Field   string
	Path    string
	Cause   error
}

func (e *Error) Error() string {
	var prefix string
	switch e.Kind {
	case MalformedPayload:
		prefix = "could not decode"
	case StructuralMismatch:
		prefix = "could not structurally validate"
	default:
		prefix = "could not validate"
	}

	msg := prefix + " " + e.Subject + " request"
	if e.Subject == "" {
		msg = prefix + " request"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return 0, false
}

// FieldError is returned by field validators.
type FieldError struct {
	Field  string
	Reason string
	Cause  error
}

func (e *FieldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Field, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Cause
}

func fieldError(field, format string, args ...interface{}) *FieldError {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
