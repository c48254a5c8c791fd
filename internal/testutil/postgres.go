// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package testutil sets up throwaway Postgres schemas for integration tests.
package testutil

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/canonical/tenant-directory/internal/db"
	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/migrations"
)

// Databases bundles the clients of one isolated test run.
type Databases struct {
	Directory    *db.DBClient
	Tenant       *db.DBClient
	SchemaPrefix string
}

// NewDatabases migrates a fresh directory schema and returns clients bound to
// it. Tenant schemas created through the returned prefix are dropped on cleanup.
// The test is skipped when TEST_DB_DSN is not set.
func NewDatabases(t *testing.T) *Databases {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is required for integration tests")
	}

	ctx := context.Background()
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	schema := "test_" + suffix
	prefix := "t" + suffix + "_"

	if err := exec(ctx, dsn, "CREATE SCHEMA "+pgx.Identifier{schema}.Sanitize()); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	scoped, err := withSearchPath(dsn, schema)
	if err != nil {
		t.Fatalf("scope DSN: %v", err)
	}

	if err := migrate(ctx, scoped); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test")

	cfg := db.Config{
		DSN:             scoped,
		MaxConns:        10,
		MinConns:        1,
		MaxConnLifetime: time.Minute,
		MaxConnIdleTime: time.Minute,
	}

	cfg.Name = "directory"
	directory, err := db.NewDBClient(cfg, tracer, monitor, logger)
	if err != nil {
		t.Fatalf("open directory client: %v", err)
	}

	cfg.Name = "tenant"
	cfg.DSN = dsn
	tenant, err := db.NewDBClient(cfg, tracer, monitor, logger)
	if err != nil {
		directory.Close()
		t.Fatalf("open tenant client: %v", err)
	}

	t.Cleanup(func() {
		directory.Close()
		tenant.Close()

		_ = dropSchemas(context.Background(), dsn, schema, prefix)
	})

	return &Databases{Directory: directory, Tenant: tenant, SchemaPrefix: prefix}
}

func withSearchPath(dsn, schema string) (string, error) {
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", err
		}
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	return fmt.Sprintf("%s search_path=%s", dsn, schema), nil
}

func migrate(ctx context.Context, dsn string) error {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return err
	}

	sqlDB := stdlib.OpenDB(*config)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.EmbedMigrations)
	if err != nil {
		return err
	}

	_, err = provider.Up(ctx)
	return err
}

func exec(ctx context.Context, dsn, stmt string, args ...any) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, stmt, args...)
	return err
}

func dropSchemas(ctx context.Context, dsn, schema, tenantPrefix string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, "SELECT schema_name FROM information_schema.schemata WHERE schema_name = $1 OR starts_with(schema_name, $2)", schema, tenantPrefix)
	if err != nil {
		return err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return err
	}

	for _, name := range names {
		if _, err := conn.Exec(ctx, "DROP SCHEMA "+pgx.Identifier{name}.Sanitize()+" CASCADE"); err != nil {
			return err
		}
	}

	return nil
}
