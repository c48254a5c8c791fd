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

var pendingColumns = []string{
	"id", "login_id", "secret_hash", "requested_role", "tenant_key", "owning_admin", "display_name", "status", "last_error", "submitted_at",
}

func scanPending(row sq.RowScanner) (*types.PendingRequest, error) {
	var p types.PendingRequest
	err := row.Scan(&p.ID, &p.LoginID, &p.SecretHash, &p.RequestedRole, &p.TenantKey, &p.OwningAdmin, &p.DisplayName, &p.Status, &p.LastError, &p.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePending stores a submitted registration. The insert only happens when
// no account holds the login yet, so both an existing account and another
// pending row surface as ErrDuplicateKey.
func (s *Storage) CreatePending(ctx context.Context, p *types.PendingRequest) (*types.PendingRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreatePending")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request ID: %w", err)
	}

	values := sq.Select().
		Column("?::text", id.String()).
		Column("?::text", p.LoginID).
		Column("?::text", p.SecretHash).
		Column("?::text", string(p.RequestedRole)).
		Column("?::text", p.TenantKey).
		Column("?::text", p.OwningAdmin).
		Column("?::text", p.DisplayName).
		Where("NOT EXISTS (SELECT 1 FROM accounts WHERE login_id = ?)", p.LoginID)

	created, err := scanPending(
		s.db.Statement(ctx).
			Insert("pending_registrations").
			Columns("id", "login_id", "secret_hash", "requested_role", "tenant_key", "owning_admin", "display_name").
			Select(values).
			Suffix("RETURNING "+strings.Join(pendingColumns, ", ")).
			QueryRowContext(ctx),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("login %s already has an account: %w", p.LoginID, ErrDuplicateKey)
		}
		return nil, WrapError(err, "failed to insert pending registration")
	}

	return created, nil
}

func (s *Storage) GetPending(ctx context.Context, id string) (*types.PendingRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPending")
	defer span.End()

	p, err := scanPending(
		s.db.Statement(ctx).
			Select(pendingColumns...).
			From("pending_registrations").
			Where(sq.Eq{"id": id}).
			QueryRowContext(ctx),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to get pending registration")
	}

	return p, nil
}

// ListPending returns matching requests in submission order.
func (s *Storage) ListPending(ctx context.Context, filter types.PendingFilter) ([]*types.PendingRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListPending")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(pendingColumns...).
		From("pending_registrations").
		OrderBy("seq")

	if filter.Role != "" {
		query = query.Where(sq.Eq{"requested_role": filter.Role})
	}
	if filter.TenantKey != "" {
		query = query.Where(sq.Eq{"tenant_key": filter.TenantKey})
	}
	if len(filter.Statuses) > 0 {
		query = query.Where(sq.Eq{"status": statusStrings(filter.Statuses)})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list pending registrations")
	}
	defer rows.Close()

	requests := make([]*types.PendingRequest, 0)
	for rows.Next() {
		p, err := scanPending(rows)
		if err != nil {
			return nil, WrapError(err, "failed to scan pending registration")
		}
		requests = append(requests, p)
	}

	if err := rows.Err(); err != nil {
		return nil, WrapError(err, "error iterating pending rows")
	}

	return requests, nil
}

// TransitionPending moves a request from one status to another. It reports
// false when the request is gone or is no longer in the from status.
func (s *Storage) TransitionPending(ctx context.Context, id string, from, to types.PendingStatus, lastError string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.TransitionPending")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("pending_registrations").
		Set("status", to).
		Set("last_error", lastError).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "status": from}).
		ExecContext(ctx)
	if err != nil {
		return false, WrapError(err, "failed to transition pending registration")
	}

	return affected(res)
}

// DeletePending removes a request, optionally only while it is in one of statuses.
func (s *Storage) DeletePending(ctx context.Context, id string, statuses ...types.PendingStatus) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.DeletePending")
	defer span.End()

	query := s.db.Statement(ctx).
		Delete("pending_registrations").
		Where(sq.Eq{"id": id})

	if len(statuses) > 0 {
		query = query.Where(sq.Eq{"status": statusStrings(statuses)})
	}

	res, err := query.ExecContext(ctx)
	if err != nil {
		return false, WrapError(err, "failed to delete pending registration")
	}

	return affected(res)
}

func statusStrings(statuses []types.PendingStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, string(st))
	}
	return out
}
