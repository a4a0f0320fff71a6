package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error independently of its HTTP status
type Kind string

const (
	KindValidation          Kind = "validation_error"
	KindNotFound            Kind = "not_found"
	KindInsufficientStock   Kind = "insufficient_stock"
	KindInsufficientCash    Kind = "insufficient_cash"
	KindConcurrencyConflict Kind = "concurrency_conflict"
	KindAlreadyReverted     Kind = "already_reverted"
	KindCommitFailed        Kind = "commit_failed"
	KindUnauthorized        Kind = "unauthorized"
	KindBadRequest          Kind = "bad_request"
	KindConflict            Kind = "conflict"
	KindInternal            Kind = "internal_error"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int            `json:"code"`
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
	Errors  []FieldError   `json:"errors,omitempty"`
	Details map[string]any `json:"details,omitempty"`

	cause error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches on Kind so sentinel comparisons work through wrapping
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind != "" && t.Kind == e.Kind
}

// Sentinels for errors.Is checks
var (
	ErrNotFound            = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized        = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrBadRequest          = &AppError{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: "Bad request"}
	ErrInternalServer      = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrValidation          = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindValidation, Message: "Validation failed"}
	ErrInsufficientStock   = &AppError{Code: http.StatusConflict, Kind: KindInsufficientStock, Message: "Insufficient stock"}
	ErrInsufficientCash    = &AppError{Code: http.StatusConflict, Kind: KindInsufficientCash, Message: "Insufficient cash"}
	ErrConcurrencyConflict = &AppError{Code: http.StatusConflict, Kind: KindConcurrencyConflict, Message: "Concurrent update conflict"}
	ErrAlreadyReverted     = &AppError{Code: http.StatusConflict, Kind: KindAlreadyReverted, Message: "Document already reverted"}
	ErrCommitFailed        = &AppError{Code: http.StatusInternalServerError, Kind: KindCommitFailed, Message: "Commit failed"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForStatus(code),
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError is a shorthand for a validation error on a single field
func NewFieldError(field, message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: fmt.Sprintf("Validation failed: %s %s", field, message),
		Errors:  []FieldError{{Field: field, Message: message}},
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewInsufficientStockError reports the product and the quantities involved
func NewInsufficientStockError(productID, productName string, requested, available int64) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", productName, requested, available),
		Details: map[string]any{
			"product_id":   productID,
			"product_name": productName,
			"requested":    requested,
			"available":    available,
		},
	}
}

// NewInsufficientCashError reports the account and the amounts involved (cents)
func NewInsufficientCashError(accountID, accountCode string, required, available int64) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInsufficientCash,
		Message: fmt.Sprintf("Insufficient cash in %s: required %d, available %d", accountCode, required, available),
		Details: map[string]any{
			"account_id":   accountID,
			"account_code": accountCode,
			"required":     required,
			"available":    available,
		},
	}
}

// NewConcurrencyConflictError wraps a serialization failure
func NewConcurrencyConflictError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConcurrencyConflict,
		Message: "Concurrent update conflict, retry the request",
		Details: map[string]any{"retryable": true},
		cause:   cause,
	}
}

// NewAlreadyRevertedError names the document that was already undone
func NewAlreadyRevertedError(documentID string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindAlreadyReverted,
		Message: fmt.Sprintf("Document %s has already been reverted", documentID),
		Details: map[string]any{"document_id": documentID},
	}
}

// NewCommitFailedError wraps a store failure that rolled the transaction back
func NewCommitFailedError(operation string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindCommitFailed,
		Message: fmt.Sprintf("Failed to commit %s", operation),
		cause:   cause,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindInternal
	}
}
