// Package errors provides the application error type shared by services and
// the HTTP boundary. Services fail with one of the sentinels below (optionally
// with a custom message or a wrapped internal error); the boundary decides how
// each Kind is rendered and never serializes the internal error.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an AppError independently of any transport.
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindForbidden    Kind = "FORBIDDEN"
	KindConflict     Kind = "CONFLICT"
	KindBadRequest   Kind = "BAD_REQUEST"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindInternal     Kind = "INTERNAL"
)

// AppError represents a structured application error with a kind, a stable
// error code, a human-readable message and an optional internal error.
type AppError struct {
	Kind     Kind   `json:"-"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so callers can
// match a sentinel even after Wrap or WithMessage produced a copy.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same kind/code/message but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Kind:     sentinel.Kind,
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Kind:     sentinel.Kind,
		Code:     sentinel.Code,
		Message:  message,
		Internal: sentinel.Internal,
	}
}

// WithMessagef is WithMessage with fmt formatting.
func WithMessagef(sentinel *AppError, format string, args ...any) *AppError {
	return WithMessage(sentinel, fmt.Sprintf(format, args...))
}

// KindOf returns the Kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: "Authentication required"}
	ErrInvalidCredentials = &AppError{Kind: KindUnauthorized, Code: "INVALID_CREDENTIALS", Message: "Invalid credentials"}
	ErrForbidden          = &AppError{Kind: KindForbidden, Code: "FORBIDDEN", Message: "Access denied"}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Kind: KindBadRequest, Code: "INVALID_INPUT", Message: "Invalid input"}
	ErrNotFound       = &AppError{Kind: KindNotFound, Code: "NOT_FOUND", Message: "Resource not found"}
	ErrInternalServer = &AppError{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Kind: KindNotFound, Code: "USER_NOT_FOUND", Message: "User not found"}
	ErrDuplicateUsername = &AppError{Kind: KindConflict, Code: "DUPLICATE_USERNAME", Message: "Username already exists"}
)

// Category errors.
var (
	ErrCategoryNotFound         = &AppError{Kind: KindNotFound, Code: "CATEGORY_NOT_FOUND", Message: "Category not found"}
	ErrDuplicateCategory        = &AppError{Kind: KindConflict, Code: "DUPLICATE_CATEGORY", Message: "Category already exists"}
	ErrDefaultCategoryProtected = &AppError{Kind: KindForbidden, Code: "DEFAULT_CATEGORY_PROTECTED", Message: "Cannot delete default categories."}
	ErrCategoryInUse            = &AppError{Kind: KindBadRequest, Code: "CATEGORY_IN_USE", Message: "Cannot delete category that is in use by a transaction."}
)

// Transaction errors.
var (
	ErrTransactionNotFound  = &AppError{Kind: KindNotFound, Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found"}
	ErrTransactionForbidden = &AppError{Kind: KindForbidden, Code: "TRANSACTION_FORBIDDEN", Message: "You are not authorized to access this transaction."}
	ErrInvalidAmount        = &AppError{Kind: KindBadRequest, Code: "INVALID_AMOUNT", Message: "Amount must be greater than 0"}
	ErrFutureDate           = &AppError{Kind: KindBadRequest, Code: "FUTURE_DATE", Message: "Date cannot be in the future"}
)

// Savings goal errors.
var (
	ErrGoalNotFound      = &AppError{Kind: KindNotFound, Code: "GOAL_NOT_FOUND", Message: "Savings goal not found"}
	ErrGoalForbidden     = &AppError{Kind: KindForbidden, Code: "GOAL_FORBIDDEN", Message: "You are not authorized to access this savings goal."}
	ErrInvalidDateRange  = &AppError{Kind: KindBadRequest, Code: "INVALID_DATE_RANGE", Message: "Start date must be before target date"}
	ErrInvalidTarget     = &AppError{Kind: KindBadRequest, Code: "INVALID_TARGET_AMOUNT", Message: "Target amount must be positive"}
	ErrInvalidReportDate = &AppError{Kind: KindBadRequest, Code: "INVALID_REPORT_PERIOD", Message: "Month must be between 1 and 12"}
)
