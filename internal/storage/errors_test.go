// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{
			name:   "unique violation",
			err:    &pgconn.PgError{Code: "23505"},
			target: ErrDuplicateKey,
		},
		{
			name:   "foreign key violation",
			err:    &pgconn.PgError{Code: "23503"},
			target: ErrForeignKeyViolation,
		},
		{
			name:   "transaction could not start",
			err:    fmt.Errorf("failed to begin transaction on directory: %w", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}),
			target: ErrUnavailable,
		},
		{
			name:   "connection done",
			err:    fmt.Errorf("failed to begin transaction on directory: %w", sql.ErrConnDone),
			target: ErrUnavailable,
		},
		{
			name:   "deadline exceeded",
			err:    fmt.Errorf("query: %w", context.DeadlineExceeded),
			target: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapError(tt.err, "failed")

			if !errors.Is(wrapped, tt.target) {
				t.Errorf("expected %v in chain of %v", tt.target, wrapped)
			}
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("original error lost from %v", wrapped)
			}
		})
	}
}

func TestWrapError_Plain(t *testing.T) {
	if WrapError(nil, "failed") != nil {
		t.Error("nil error should stay nil")
	}

	err := WrapError(errors.New("syntax error"), "failed")
	for _, sentinel := range []error{ErrDuplicateKey, ErrForeignKeyViolation, ErrUnavailable, ErrNotFound} {
		if errors.Is(err, sentinel) {
			t.Errorf("plain error should not match %v", sentinel)
		}
	}
}
