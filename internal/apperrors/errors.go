package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientBalance indicates a debit would drive the account balance below zero.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrInvalidStateTransition indicates a withdrawal transition attempted from a non-matching source state.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrAlreadyClaimed indicates the transaction was already claimed; a retry is a benign no-op.
var ErrAlreadyClaimed = errors.New("transaction already claimed")

// ErrNotClaimable indicates the transaction is not in a claimable status.
var ErrNotClaimable = errors.New("transaction is not claimable")

// ErrConcurrencyConflict indicates a store write conflict that persisted past the retry bound.
var ErrConcurrencyConflict = errors.New("concurrent modification conflict")

// ErrInternal indicates an unexpected internal failure; details are logged, not surfaced.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying failure with a stable code and a caller-safe message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError that also matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
