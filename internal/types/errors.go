// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateIdentifier = errors.New("login identifier already in use")
	ErrUnknownTenant       = errors.New("unknown tenant")
	ErrUnknownTenantMember = errors.New("no such member in tenant")
	ErrAlreadyProcessed    = errors.New("request already processed")
	ErrFailedPartial       = errors.New("provisioning partially failed")
	ErrRepairRequired      = errors.New("request is being provisioned and must be repaired")
	ErrAuthFailure         = errors.New("invalid credentials")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FailedPartialError reports which request was left half provisioned.
type FailedPartialError struct {
	RequestID string
	Cause     error
}

func (e *FailedPartialError) Error() string {
	return fmt.Sprintf("%s: request %s: %v", ErrFailedPartial, e.RequestID, e.Cause)
}

func (e *FailedPartialError) Is(target error) bool {
	return target == ErrFailedPartial
}

func (e *FailedPartialError) Unwrap() error {
	return e.Cause
}
