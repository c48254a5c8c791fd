// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/tenant-directory/internal/types"
)

var resetColumns = []string{
	"id", "login_id", "role", "new_secret_hash", "approver_key", "tenant_key", "status", "submitted_at", "decided_at",
}

func scanReset(row sq.RowScanner) (*types.ResetRequest, error) {
	var (
		r         types.ResetRequest
		decidedAt sql.NullTime
	)
	err := row.Scan(&r.ID, &r.LoginID, &r.Role, &r.NewSecretHash, &r.ApproverKey, &r.TenantKey, &r.Status, &r.SubmittedAt, &decidedAt)
	if err != nil {
		return nil, err
	}
	if decidedAt.Valid {
		r.DecidedAt = &decidedAt.Time
	}
	return &r, nil
}

func (s *Storage) CreateReset(ctx context.Context, r *types.ResetRequest) (*types.ResetRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateReset")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset ID: %w", err)
	}

	created, err := scanReset(
		s.db.Statement(ctx).
			Insert("reset_requests").
			Columns("id", "login_id", "role", "new_secret_hash", "approver_key", "tenant_key").
			Values(id.String(), r.LoginID, r.Role, r.NewSecretHash, r.ApproverKey, r.TenantKey).
			Suffix("RETURNING "+strings.Join(resetColumns, ", ")).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, WrapError(err, "failed to insert reset request")
	}

	return created, nil
}

func (s *Storage) GetReset(ctx context.Context, id string) (*types.ResetRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetReset")
	defer span.End()

	r, err := scanReset(
		s.db.Statement(ctx).
			Select(resetColumns...).
			From("reset_requests").
			Where(sq.Eq{"id": id}).
			QueryRowContext(ctx),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to get reset request")
	}

	return r, nil
}

// LockReset reads a reset request with a row lock held until the context
// transaction ends, so a concurrent DeleteReset waits for the decision.
func (s *Storage) LockReset(ctx context.Context, id string) (*types.ResetRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.LockReset")
	defer span.End()

	r, err := scanReset(
		s.db.Statement(ctx).
			Select(resetColumns...).
			From("reset_requests").
			Where(sq.Eq{"id": id}).
			Suffix("FOR UPDATE").
			QueryRowContext(ctx),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to lock reset request")
	}

	return r, nil
}

// ListResets filters by approver key unless it is empty.
func (s *Storage) ListResets(ctx context.Context, approverKey string, status types.ResetStatus) ([]*types.ResetRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListResets")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(resetColumns...).
		From("reset_requests").
		Where(sq.Eq{"status": status}).
		OrderBy("seq")

	if approverKey != "" {
		query = query.Where(sq.Eq{"approver_key": approverKey})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list reset requests")
	}
	defer rows.Close()

	resets := make([]*types.ResetRequest, 0)
	for rows.Next() {
		r, err := scanReset(rows)
		if err != nil {
			return nil, WrapError(err, "failed to scan reset request")
		}
		resets = append(resets, r)
	}

	if err := rows.Err(); err != nil {
		return nil, WrapError(err, "error iterating reset rows")
	}

	return resets, nil
}

// MarkResetApproved reports false when the request is not pending anymore.
func (s *Storage) MarkResetApproved(ctx context.Context, id string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.MarkResetApproved")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("reset_requests").
		Set("status", types.ResetApproved).
		Set("decided_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "status": types.ResetPending}).
		ExecContext(ctx)
	if err != nil {
		return false, WrapError(err, "failed to approve reset request")
	}

	return affected(res)
}

// DeleteReset only removes pending requests, approved ones are kept.
func (s *Storage) DeleteReset(ctx context.Context, id string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteReset")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("reset_requests").
		Where(sq.Eq{"id": id, "status": types.ResetPending}).
		ExecContext(ctx)
	if err != nil {
		return false, WrapError(err, "failed to delete reset request")
	}

	return affected(res)
}
