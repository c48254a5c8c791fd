// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/tenant-directory/internal/db"
	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/storage"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/types"
)

const usersTable = "users"

var _ StoreInterface = (*Store)(nil)

var userColumns = []string{
	"login_id", "secret_hash", "role", "tenant_key", "owning_admin", "display_name", "activation_date", "created_at",
}

// Store keeps the per-tenant copies of active accounts, one schema per tenant.
type Store struct {
	db     db.DBClientInterface
	prefix string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// SchemaName maps a tenant database name onto its physical schema.
func (s *Store) SchemaName(dbName string) string {
	return s.prefix + dbName
}

func (s *Store) table(schema string) string {
	return pgx.Identifier{schema, usersTable}.Sanitize()
}

// CreateSchema is idempotent.
func (s *Store) CreateSchema(ctx context.Context, schema string) error {
	ctx, span := s.tracer.Start(ctx, "tenantstore.Store.CreateSchema")
	defer span.End()

	statements := []string{
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pgx.Identifier{schema}.Sanitize()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	login_id        TEXT PRIMARY KEY,
	secret_hash     TEXT NOT NULL,
	role            TEXT NOT NULL,
	tenant_key      TEXT NOT NULL,
	owning_admin    TEXT NOT NULL DEFAULT '',
	display_name    TEXT NOT NULL DEFAULT '',
	activation_date DATE NOT NULL DEFAULT CURRENT_DATE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, s.table(schema)),
	}

	return s.db.WithTx(ctx, func(ctx context.Context) error {
		for _, stmt := range statements {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return storage.WrapError(err, fmt.Sprintf("failed to create tenant schema %s", schema))
			}
		}
		return nil
	})
}

func (s *Store) SchemaExists(ctx context.Context, schema string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "tenantstore.Store.SchemaExists")
	defer span.End()

	var exists bool
	err := s.db.Statement(ctx).
		Select("COUNT(*) > 0").
		From("information_schema.schemata").
		Where(sq.Eq{"schema_name": schema}).
		QueryRowContext(ctx).
		Scan(&exists)
	if err != nil {
		return false, storage.WrapError(err, "failed to look up tenant schema")
	}

	return exists, nil
}

// UpsertAccount leaves an existing copy untouched, so replays are harmless.
func (s *Store) UpsertAccount(ctx context.Context, schema string, a *types.Account) error {
	ctx, span := s.tracer.Start(ctx, "tenantstore.Store.UpsertAccount")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert(s.table(schema)).
		Columns("login_id", "secret_hash", "role", "tenant_key", "owning_admin", "display_name", "activation_date").
		Values(a.LoginID, a.SecretHash, a.Role, a.TenantKey, a.OwningAdmin, a.DisplayName, a.ActivationDate).
		Suffix("ON CONFLICT (login_id) DO NOTHING").
		ExecContext(ctx)

	return storage.WrapError(err, "failed to write tenant account")
}

func (s *Store) GetAccount(ctx context.Context, schema, loginID string) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "tenantstore.Store.GetAccount")
	defer span.End()

	var a types.Account
	err := s.db.Statement(ctx).
		Select(userColumns...).
		From(s.table(schema)).
		Where(sq.Eq{"login_id": loginID}).
		QueryRowContext(ctx).
		Scan(&a.LoginID, &a.SecretHash, &a.Role, &a.TenantKey, &a.OwningAdmin, &a.DisplayName, &a.ActivationDate, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, storage.WrapError(err, "failed to get tenant account")
	}

	return &a, nil
}

func (s *Store) ListAccounts(ctx context.Context, schema string) ([]*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "tenantstore.Store.ListAccounts")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(userColumns...).
		From(s.table(schema)).
		OrderBy("created_at", "login_id").
		QueryContext(ctx)
	if err != nil {
		return nil, storage.WrapError(err, "failed to list tenant accounts")
	}
	defer rows.Close()

	accounts := make([]*types.Account, 0)
	for rows.Next() {
		var a types.Account
		if err := rows.Scan(&a.LoginID, &a.SecretHash, &a.Role, &a.TenantKey, &a.OwningAdmin, &a.DisplayName, &a.ActivationDate, &a.CreatedAt); err != nil {
			return nil, storage.WrapError(err, "failed to scan tenant account")
		}
		accounts = append(accounts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, storage.WrapError(err, "error iterating tenant account rows")
	}

	return accounts, nil
}

// UpdateSecret matches on login and role, a copy with another role is left alone.
func (s *Store) UpdateSecret(ctx context.Context, schema, loginID string, role types.Role, secretHash string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "tenantstore.Store.UpdateSecret")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update(s.table(schema)).
		Set("secret_hash", secretHash).
		Where(sq.Eq{"login_id": loginID, "role": role}).
		ExecContext(ctx)
	if err != nil {
		return false, storage.WrapError(err, "failed to update tenant account secret")
	}

	return rowsAffected(res)
}

func (s *Store) UpdateSchedule(ctx context.Context, schema, loginID string, role types.Role, activation time.Time) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "tenantstore.Store.UpdateSchedule")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update(s.table(schema)).
		Set("role", role).
		Set("activation_date", activation).
		Where(sq.Eq{"login_id": loginID}).
		ExecContext(ctx)
	if err != nil {
		return false, storage.WrapError(err, "failed to update tenant account schedule")
	}

	return rowsAffected(res)
}

func (s *Store) DeleteAccount(ctx context.Context, schema, loginID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "tenantstore.Store.DeleteAccount")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete(s.table(schema)).
		Where(sq.Eq{"login_id": loginID}).
		ExecContext(ctx)
	if err != nil {
		return false, storage.WrapError(err, "failed to delete tenant account")
	}

	return rowsAffected(res)
}

func rowsAffected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, storage.WrapError(err, "failed to check rows affected")
	}
	return n > 0, nil
}

func NewStore(c db.DBClientInterface, schemaPrefix string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Store {
	s := new(Store)

	s.db = c
	s.prefix = schemaPrefix

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
