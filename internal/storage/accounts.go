// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/tenant-directory/internal/types"
)

var accountColumns = []string{
	"login_id", "secret_hash", "role", "tenant_key", "owning_admin", "display_name", "activation_date", "created_at",
}

func scanAccount(row sq.RowScanner) (*types.Account, error) {
	var a types.Account
	err := row.Scan(&a.LoginID, &a.SecretHash, &a.Role, &a.TenantKey, &a.OwningAdmin, &a.DisplayName, &a.ActivationDate, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Storage) GetAccount(ctx context.Context, loginID string) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAccount")
	defer span.End()

	a, err := scanAccount(
		s.db.Statement(ctx).
			Select(accountColumns...).
			From("accounts").
			Where(sq.Eq{"login_id": loginID}).
			QueryRowContext(ctx),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to get account")
	}

	return a, nil
}

// GetTenantAdmin returns the TenantAdmin account owning tenantKey.
func (s *Storage) GetTenantAdmin(ctx context.Context, tenantKey string) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantAdmin")
	defer span.End()

	a, err := scanAccount(
		s.db.Statement(ctx).
			Select(accountColumns...).
			From("accounts").
			Where(sq.Eq{"tenant_key": tenantKey, "role": types.RoleTenantAdmin}).
			Limit(1).
			QueryRowContext(ctx),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to get tenant admin")
	}

	return a, nil
}

func (s *Storage) CreateAccount(ctx context.Context, a *types.Account) error {
	ctx, span := s.tracer.Start(ctx, "storage.CreateAccount")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("accounts").
		Columns("login_id", "secret_hash", "role", "tenant_key", "owning_admin", "display_name", "activation_date").
		Values(a.LoginID, a.SecretHash, a.Role, a.TenantKey, a.OwningAdmin, a.DisplayName, a.ActivationDate).
		ExecContext(ctx)

	return WrapError(err, "failed to insert account")
}

func (s *Storage) DeleteAccount(ctx context.Context, loginID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteAccount")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("accounts").
		Where(sq.Eq{"login_id": loginID}).
		ExecContext(ctx)
	if err != nil {
		return false, WrapError(err, "failed to delete account")
	}

	return affected(res)
}

func (s *Storage) UpdateAccountSchedule(ctx context.Context, loginID string, role types.Role, activation time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateAccountSchedule")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("accounts").
		Set("role", role).
		Set("activation_date", activation).
		Where(sq.Eq{"login_id": loginID}).
		ExecContext(ctx)
	if err != nil {
		return WrapError(err, "failed to update account schedule")
	}

	return requireRow(res)
}

func (s *Storage) UpdateAccountSecret(ctx context.Context, loginID, secretHash string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateAccountSecret")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("accounts").
		Set("secret_hash", secretHash).
		Where(sq.Eq{"login_id": loginID}).
		ExecContext(ctx)
	if err != nil {
		return WrapError(err, "failed to update account secret")
	}

	return requireRow(res)
}

// ListAccounts lists every account when owningAdmin is empty.
func (s *Storage) ListAccounts(ctx context.Context, owningAdmin string) ([]*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAccounts")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(accountColumns...).
		From("accounts").
		OrderBy("created_at", "login_id")

	if owningAdmin != "" {
		query = query.Where(sq.Eq{"owning_admin": owningAdmin})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list accounts")
	}
	defer rows.Close()

	accounts := make([]*types.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, WrapError(err, "failed to scan account")
		}
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, WrapError(err, "error iterating account rows")
	}

	return accounts, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, WrapError(err, "failed to check rows affected")
	}
	return n > 0, nil
}

func requireRow(res sql.Result) error {
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
