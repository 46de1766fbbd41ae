// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Amount input errors.
	ErrNegativeAmount    = errors.New("amount cannot be negative")
	ErrCommaAsDecimal    = errors.New("use '.' for decimals, ',' only for thousands")
	ErrMalformedNumber   = errors.New("malformed thousands grouping")
	ErrNotANumber        = errors.New("not a number")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")

	// Field validation errors.
	ErrEmptyCategory      = errors.New("category cannot be empty")
	ErrNoLetterInCategory = errors.New("category must contain at least one letter")
	ErrCategoryTooLong    = errors.New("category is too long")
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrDescriptionTooLong = errors.New("description is too long")

	// Record addressing errors.
	ErrInvalidOrdinal = errors.New("no expense with that number")
	ErrNoValidTargets = errors.New("no valid expense numbers to delete")

	// Backup errors.
	ErrEmptyStore     = errors.New("nothing to back up")
	ErrUnknownArchive = errors.New("unknown backup archive")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRecoverable reports whether an error is an input-validation failure
// the interactive layer can recover from by re-prompting. Storage I/O
// failures are not recoverable and abort the current operation.
func IsRecoverable(err error) bool {
	for _, target := range []error{
		ErrNegativeAmount,
		ErrCommaAsDecimal,
		ErrMalformedNumber,
		ErrNotANumber,
		ErrNonPositiveAmount,
		ErrEmptyCategory,
		ErrNoLetterInCategory,
		ErrCategoryTooLong,
		ErrEmptyDescription,
		ErrDescriptionTooLong,
		ErrInvalidOrdinal,
		ErrNoValidTargets,
		ErrEmptyStore,
		ErrUnknownArchive,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
