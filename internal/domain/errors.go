package domain

import (
	"errors"
	"fmt"
)

// Task errors
var (
	ErrTaskNotFound     = errors.New("task: not found")
	ErrTaskInvalidInput = errors.New("task: invalid input")
)

// Coordinator errors. The conflicts are expected under concurrency and
// mean a lost race, not a bug.
var (
	ErrTaskAlreadyPaid    = errors.New("claim: task already paid")
	ErrTaskNotPaid        = errors.New("claim: task must be paid before claiming")
	ErrTaskAlreadyClaimed = errors.New("claim: task already claimed by another executor")
)

// Policy errors
var (
	ErrForbidden = errors.New("policy: operation not allowed for this principal")
)

// Account errors
var (
	ErrAccountNotFound     = errors.New("account: not found")
	ErrEmailTaken          = errors.New("account: email already registered")
	ErrInvalidCredentials  = errors.New("account: invalid email or password")
	ErrWrongPassword       = errors.New("account: old password does not match")
	ErrInvalidResetCode    = errors.New("account: reset code invalid or expired")
	ErrSubregionMismatch   = errors.New("account: subregion does not belong to region")
	ErrAccountInvalidInput = errors.New("account: invalid input")
)

// Region errors
var (
	ErrRegionNotFound    = errors.New("region: not found")
	ErrSubregionNotFound = errors.New("region: subregion not found")
	ErrCategoryNotFound  = errors.New("region: category not found")
)

// Ledger errors
var (
	ErrInvalidAmount     = errors.New("ledger: amount must be positive")
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
)

// InsufficientFundsError carries the amounts so callers can prompt a
// top-up. Matches ErrInsufficientFunds under errors.Is.
type InsufficientFundsError struct {
	Required  int64
	Available int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("ledger: insufficient funds: required %d, available %d", e.Required, e.Available)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
