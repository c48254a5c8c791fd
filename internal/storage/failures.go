// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
)

// IncrementFailure bumps the counter in a single upsert and returns the new value.
func (s *Storage) IncrementFailure(ctx context.Context, loginID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "storage.IncrementFailure")
	defer span.End()

	var attempts int
	err := s.db.Statement(ctx).
		Insert("failed_attempts").
		Columns("login_id", "attempts", "last_failed_at").
		Values(loginID, 1, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (login_id) DO UPDATE SET attempts = failed_attempts.attempts + 1, last_failed_at = NOW() RETURNING attempts").
		QueryRowContext(ctx).
		Scan(&attempts)
	if err != nil {
		return 0, WrapError(err, "failed to increment failure counter")
	}

	return attempts, nil
}

func (s *Storage) ResetFailure(ctx context.Context, loginID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.ResetFailure")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("failed_attempts").
		Where(sq.Eq{"login_id": loginID}).
		ExecContext(ctx)

	return WrapError(err, "failed to reset failure counter")
}

func (s *Storage) GetFailureCount(ctx context.Context, loginID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetFailureCount")
	defer span.End()

	var attempts int
	err := s.db.Statement(ctx).
		Select("attempts").
		From("failed_attempts").
		Where(sq.Eq{"login_id": loginID}).
		QueryRowContext(ctx).
		Scan(&attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, WrapError(err, "failed to read failure counter")
	}

	return attempts, nil
}
