// internal/common/errors/errors.go
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeMalformedPayload   ErrorCode = "MALFORMED_PAYLOAD"
	ErrCodeStructuralMismatch ErrorCode = "STRUCTURAL_MISMATCH"
	ErrCodeSemanticInvalid    ErrorCode = "SEMANTIC_INVALID"
	ErrCodeInvalidPathID      ErrorCode = "INVALID_PATH_ID"

	ErrCodeOrgNotFound         ErrorCode = "ORG_NOT_FOUND"
	ErrCodeOrgAlreadyExists    ErrorCode = "ORG_ALREADY_EXISTS"
	ErrCodeMenuSectionNotFound ErrorCode = "MENU_SECTION_NOT_FOUND"
	ErrCodeMenuItemNotFound    ErrorCode = "MENU_ITEM_NOT_FOUND"

	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	ErrCodeIdentityUnavailable  ErrorCode = "IDENTITY_SERVICE_UNAVAILABLE"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeMigrationFailed          ErrorCode = "MIGRATION_FAILED"

	ErrCodeResponseValidationFailed ErrorCode = "RESPONSE_VALIDATION_FAILED"
	ErrCodeRequestTooLarge          ErrorCode = "REQUEST_TOO_LARGE"
	ErrCodeInternal                 ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Request validation
// ==========================

func NewMalformedPayloadError(details string) *StandardError {
	return newError(ErrCodeMalformedPayload, "Request body is not valid JSON", details, false)
}

func NewStructuralMismatchError(details, path string) *StandardError {
	e := newError(ErrCodeStructuralMismatch, "Request body does not have the expected structure", details, false)
	if path != "" {
		e.WithMetadata("path", path)
	}
	return e
}

func NewSemanticInvalidError(details, field string) *StandardError {
	e := newError(ErrCodeSemanticInvalid, "Request body contains an invalid value", details, false)
	if field != "" {
		e.WithMetadata("field", field)
	}
	return e
}

func NewInvalidPathIDError(param, details string) *StandardError {
	return newError(ErrCodeInvalidPathID, "Path id must be a positive integer", details, false).
		WithMetadata("param", param)
}

func NewRequestTooLargeError(limit int64) *StandardError {
	return newError(ErrCodeRequestTooLarge, "Request body is too large",
		fmt.Sprintf("limit: %d bytes", limit), false)
}

// ==========================
// Inventory
// ==========================

func NewOrgNotFoundError(details string) *StandardError {
	return newError(ErrCodeOrgNotFound, "Org does not exist", details, false)
}

func NewOrgAlreadyExistsError(details string) *StandardError {
	return newError(ErrCodeOrgAlreadyExists, "Org already exists", details, false)
}

func NewMenuSectionNotFoundError(details string) *StandardError {
	return newError(ErrCodeMenuSectionNotFound, "Menu section does not exist", details, false)
}

func NewMenuItemNotFoundError(details string) *StandardError {
	return newError(ErrCodeMenuItemNotFound, "Menu item does not exist", details, false)
}

// ==========================
// Identity
// ==========================

func NewAuthenticationError(details string) *StandardError {
	return newError(ErrCodeAuthenticationFailed, "Authentication failed", details, false)
}

func NewIdentityUnavailableError(err error) *StandardError {
	return newError(ErrCodeIdentityUnavailable, "Identity service error", err.Error(), true)
}

// ==========================
// Infrastructure
// ==========================

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query failed",
		fmt.Sprintf("operation: %s, error: %v", operation, err), true)
}

func NewMigrationFailedError(version int, err error) *StandardError {
	return newError(ErrCodeMigrationFailed, "Database migration failed",
		fmt.Sprintf("version: %d, error: %v", version, err), false)
}

func NewResponseValidationFailedError(details string) *StandardError {
	return newError(ErrCodeResponseValidationFailed, "Response failed validation", details, false)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// ==========================
// Classification
// ==========================

// HTTPStatus maps an error code onto the status it is answered with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeMalformedPayload,
		ErrCodeStructuralMismatch,
		ErrCodeSemanticInvalid,
		ErrCodeInvalidPathID:
		return http.StatusBadRequest

	case ErrCodeRequestTooLarge:
		return http.StatusRequestEntityTooLarge

	case ErrCodeOrgNotFound,
		ErrCodeMenuSectionNotFound,
		ErrCodeMenuItemNotFound:
		return http.StatusNotFound

	case ErrCodeOrgAlreadyExists:
		return http.StatusConflict

	case ErrCodeAuthenticationFailed:
		return http.StatusUnauthorized

	case ErrCodeIdentityUnavailable:
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed:
		return 3
	case ErrCodeIdentityUnavailable:
		return 1
	default:
		return 0
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PAYLOAD") ||
		strings.Contains(codeStr, "STRUCTURAL") ||
		strings.Contains(codeStr, "SEMANTIC") ||
		strings.Contains(codeStr, "PATH_ID") ||
		strings.Contains(codeStr, "TOO_LARGE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "NOT_FOUND") || strings.Contains(codeStr, "ALREADY_EXISTS"):
		return "INVENTORY"
	case strings.Contains(codeStr, "AUTHENTICATION") || strings.Contains(codeStr, "IDENTITY"):
		return "AUTH"
	case strings.Contains(codeStr, "DATABASE") ||
		strings.Contains(codeStr, "QUERY") ||
		strings.Contains(codeStr, "MIGRATION"):
		return "DATABASE"
	default:
		return "INTERNAL"
	}
}
