package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrInvalidArgument   = errors.New("invalid_argument")
	ErrNotFound          = errors.New("not_found")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientFunds = errors.New("insufficient_funds")

	// Returned by the store when Insert hits an existing account id.
	ErrAccountExists = errors.New("account_exists")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// For rate limiting
	ErrRateLimitExceeded = errors.New("rate_limit_exceeded")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewInvalidArgument(msg string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeInvalidArgument, Message: msg, Err: ErrInvalidArgument}
}

func NewNotFound(msg string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: msg, Err: ErrNotFound}
}

func NewForbidden(msg string) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Code: ErrCodeForbidden, Message: msg, Err: ErrForbidden}
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Code: ErrCodeUnauthorized, Message: msg, Err: ErrUnauthorized}
}

func NewConflict(msg string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Code: ErrCodeConflict, Message: msg, Err: ErrConflict}
}

func NewInsufficientFunds(msg string) *AppError {
	return &AppError{StatusCode: http.StatusPaymentRequired, Code: ErrCodeInsufficientFunds, Message: msg, Err: ErrInsufficientFunds}
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
