// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/tracing"
)

func newTestClient(name string) *DBClient {
	d := new(DBClient)
	d.name = name
	d.tracer = tracing.NewNoopTracer()
	d.monitor = monitoring.NewNoopMonitor("test")
	d.logger = logging.NewNoopLogger()
	return d
}

func TestWithTx_NoStatementsNoTransaction(t *testing.T) {
	d := newTestClient("directory")

	called := false
	err := d.WithTx(context.Background(), func(ctx context.Context) error {
		called = true
		if d.lazyTxFromContext(ctx) == nil {
			t.Error("expected a lazy transaction holder in the context")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("function was not called")
	}
}

func TestWithTx_PropagatesError(t *testing.T) {
	d := newTestClient("directory")
	boom := errors.New("boom")

	err := d.WithTx(context.Background(), func(ctx context.Context) error {
		return boom
	})

	if !errors.Is(err, boom) {
		t.Errorf("expected %v, got %v", boom, err)
	}
}

func TestWithTx_NestedJoinsOuter(t *testing.T) {
	d := newTestClient("directory")

	_ = d.WithTx(context.Background(), func(outer context.Context) error {
		outerTx := d.lazyTxFromContext(outer)

		return d.WithTx(outer, func(inner context.Context) error {
			if d.lazyTxFromContext(inner) != outerTx {
				t.Error("nested WithTx should reuse the outer transaction")
			}
			return nil
		})
	})
}

// poolRunner counts the statements that reached the pool.
type poolRunner struct {
	calls int
}

func (p *poolRunner) Exec(string, ...any) (sql.Result, error) {
	p.calls++
	return nil, nil
}

func (p *poolRunner) Query(string, ...any) (*sql.Rows, error) {
	p.calls++
	return nil, nil
}

func (p *poolRunner) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	p.calls++
	return nil, nil
}

func TestWithTx_BeginFailureIsReturned(t *testing.T) {
	cfg, err := pgx.ParseConfig("postgres://directory@127.0.0.1:1/directory")
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}

	closed := stdlib.OpenDB(*cfg)
	if err := closed.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	pool := new(poolRunner)

	d := newTestClient("directory")
	d.db = closed
	d.dbRunner = pool

	err = d.WithTx(context.Background(), func(ctx context.Context) error {
		_, err := d.Statement(ctx).
			Update("pending_registrations").
			Set("status", "provisioning").
			Where("id = ?", "req-1").
			ExecContext(ctx)
		if err != nil {
			return err
		}

		var one int
		return d.Statement(ctx).Select("1").QueryRowContext(ctx).Scan(&one)
	})

	if err == nil {
		t.Fatal("expected the begin error")
	}
	if !strings.Contains(err.Error(), "failed to begin transaction on directory") {
		t.Errorf("unexpected error %q", err)
	}
	if pool.calls != 0 {
		t.Errorf("expected no statement on the pool, got %d", pool.calls)
	}

	if _, err := d.ExecContext(context.WithValue(context.Background(), lazyTxKey{db: closed}, &lazyTx{db: closed}), "SELECT 1"); err == nil {
		t.Error("expected ExecContext to report the begin error")
	}
}
