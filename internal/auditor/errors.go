// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package auditor

import (
	"errors"
	"fmt"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNetwork    = "NETWORK_ERROR"
	CodeTimeout    = "TIMEOUT_ERROR"
)

// Error carries a machine-readable code and an HTTP-style status hint.
// The engine never renders HTTP itself; callers map the hint.
type Error struct {
	Code    string
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

func NewValidationError(format string, args ...any) *Error {
	return &Error{
		Code:    CodeValidation,
		Status:  400,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewNetworkError(domain string, cause error) *Error {
	return &Error{
		Code:    CodeNetwork,
		Status:  503,
		Message: fmt.Sprintf("failed to fetch %s: %v", domain, cause),
		Cause:   cause,
	}
}

func NewTimeoutError(domain string) *Error {
	return &Error{
		Code:    CodeTimeout,
		Status:  504,
		Message: fmt.Sprintf("audit timeout for %s (>30s)", domain),
	}
}

// AsError extracts an *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Retryable reports whether retrying the same request may succeed.
// Validation failures never are; transport and deadline failures may be.
func Retryable(err error) bool {
	ae, ok := AsError(err)
	if !ok {
		return false
	}
	return ae.Code == CodeNetwork || ae.Code == CodeTimeout
}
