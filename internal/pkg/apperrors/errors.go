package apperrors

import (
	"errors"
	"fmt"
)

// Account errors
var (
	ErrDuplicateAccount   = errors.New("account with this email already exists")
	ErrRollNumberExists   = errors.New("roll number already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrAccountNotApproved = errors.New("account not approved")
)

// Token errors
var (
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenRevoked  = errors.New("token revoked")
	ErrInvalidFormat = errors.New("invalid token format")
)

// Authorization errors
var (
	ErrPermissionDenied = errors.New("permission denied")
)

// Validation errors
var (
	ErrValidationFailed  = errors.New("validation failed")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidRollNumber = errors.New("invalid roll number format")
	ErrWeakPassword      = errors.New("password does not meet requirements")
	ErrInvalidApproval   = errors.New("approval status must be APPROVED or REJECTED")
)

// Resource errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrJobNotFound           = errors.New("job posting not found")
	ErrEventNotFound         = errors.New("event not found")
	ErrGroupNotFound         = errors.New("batch group not found")
	ErrAlreadyRegistered     = errors.New("already registered for event")
)

// ErrStorageUnavailable marks failures coming from a persistence backend.
// Callers wrap it with the operation name and target key so the failure
// can be logged meaningfully; the original backend error stays in the chain.
var ErrStorageUnavailable = errors.New("storage unavailable")

// StorageError annotates a backend failure with the operation and key it hit.
func StorageError(op, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", ErrStorageUnavailable, op, key, err)
}

// NotApprovedError carries the account's current approval status so the
// caller can render "pending" and "rejected" differently.
type NotApprovedError struct {
	Status string
}

func (e *NotApprovedError) Error() string {
	return fmt.Sprintf("account is %s, awaiting admin approval", e.Status)
}

func (e *NotApprovedError) Unwrap() error {
	return ErrAccountNotApproved
}

// NewNotApprovedError creates a NotApprovedError for the given status.
func NewNotApprovedError(status string) error {
	return &NotApprovedError{Status: status}
}
