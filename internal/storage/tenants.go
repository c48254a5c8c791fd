// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/tenant-directory/internal/types"
)

var tenantColumns = []string{"tenant_key", "db_name", "schema_name", "ready", "created_at"}

func scanTenant(row sq.RowScanner) (*types.Tenant, error) {
	var t types.Tenant
	if err := row.Scan(&t.Key, &t.DBName, &t.SchemaName, &t.Ready, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// EnsureTenant registers the tenant and runs provision at most once per key.
// Concurrent callers serialize on the registry row lock, the first one to see
// the row not ready provisions it, the others find it ready and skip.
// A failing provision rolls the registry row back so a later call retries.
func (s *Storage) EnsureTenant(ctx context.Context, t *types.Tenant, provision func(context.Context, *types.Tenant) error) (*types.Tenant, bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.EnsureTenant")
	defer span.End()

	var (
		tenant  *types.Tenant
		created bool
	)

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		_, err := s.db.Statement(ctx).
			Insert("tenants").
			Columns("tenant_key", "db_name", "schema_name").
			Values(t.Key, t.DBName, t.SchemaName).
			Suffix("ON CONFLICT DO NOTHING").
			ExecContext(ctx)
		if err != nil {
			return WrapError(err, "failed to register tenant")
		}

		tenant, err = scanTenant(
			s.db.Statement(ctx).
				Select(tenantColumns...).
				From("tenants").
				Where(sq.Eq{"tenant_key": t.Key}).
				Suffix("FOR UPDATE").
				QueryRowContext(ctx),
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// db_name taken by a different key
				return fmt.Errorf("tenant %s: %w", t.Key, ErrDuplicateKey)
			}
			return WrapError(err, "failed to lock tenant")
		}

		if tenant.Ready {
			return nil
		}

		if err := provision(ctx, tenant); err != nil {
			return fmt.Errorf("failed to provision tenant %s: %w", t.Key, err)
		}

		_, err = s.db.Statement(ctx).
			Update("tenants").
			Set("ready", true).
			Where(sq.Eq{"tenant_key": t.Key}).
			ExecContext(ctx)
		if err != nil {
			return WrapError(err, "failed to mark tenant ready")
		}

		tenant.Ready = true
		created = true

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		s.logger.Infof("tenant %s provisioned in schema %s", tenant.Key, tenant.SchemaName)
	}

	return tenant, created, nil
}

func (s *Storage) GetTenant(ctx context.Context, tenantKey string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenant")
	defer span.End()

	t, err := scanTenant(
		s.db.Statement(ctx).
			Select(tenantColumns...).
			From("tenants").
			Where(sq.Eq{"tenant_key": tenantKey}).
			QueryRowContext(ctx),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to get tenant")
	}

	return t, nil
}

func (s *Storage) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenants")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(tenantColumns...).
		From("tenants").
		OrderBy("created_at", "tenant_key").
		QueryContext(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list tenants")
	}
	defer rows.Close()

	tenants := make([]*types.Tenant, 0)
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, WrapError(err, "failed to scan tenant")
		}
		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, WrapError(err, "error iterating tenant rows")
	}

	return tenants, nil
}
