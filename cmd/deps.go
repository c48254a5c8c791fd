// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/tenant-directory/internal/config"
	"github.com/canonical/tenant-directory/internal/db"
	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring/prometheus"
	"github.com/canonical/tenant-directory/internal/secrets"
	"github.com/canonical/tenant-directory/internal/storage"
	"github.com/canonical/tenant-directory/internal/tenantstore"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/validation"
	"github.com/canonical/tenant-directory/pkg/accounts"
	"github.com/canonical/tenant-directory/pkg/registration"
	"github.com/canonical/tenant-directory/pkg/resets"
)

// dependencies is the object graph shared by serve and the operator commands.
type dependencies struct {
	specs *config.EnvSpec

	logger  *logging.Logger
	tracer  *tracing.Tracer
	monitor *prometheus.Monitor

	directoryDB *db.DBClient
	tenantDB    *db.DBClient

	storage   *storage.Storage
	tenants   *tenantstore.Store
	hasher    *secrets.Hasher
	validator *validation.Validator

	registration *registration.Service
	resets       *resets.Service
	accounts     *accounts.Service
}

func newDependencies() (*dependencies, error) {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return nil, fmt.Errorf("issues with environment sourcing: %w", err)
	}

	d := new(dependencies)
	d.specs = specs

	d.logger = logging.NewLogger(specs.LogLevel)
	d.monitor = prometheus.NewMonitor("tenant-directory", d.logger)
	d.tracer = tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, d.logger))

	var err error

	d.directoryDB, err = db.NewDBClient(d.dbConfig("directory", specs.DSN), d.tracer, d.monitor, d.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory database client: %w", err)
	}

	d.tenantDB, err = db.NewDBClient(d.dbConfig("tenant", specs.TenantDatabaseDSN()), d.tracer, d.monitor, d.logger)
	if err != nil {
		d.directoryDB.Close()
		return nil, fmt.Errorf("failed to create tenant database client: %w", err)
	}

	d.storage = storage.NewStorage(d.directoryDB, d.tracer, d.monitor, d.logger)
	d.tenants = tenantstore.NewStore(d.tenantDB, specs.TenantSchemaPrefix, d.tracer, d.monitor, d.logger)
	d.hasher = secrets.NewHasher(bcrypt.DefaultCost)
	d.validator = validation.NewValidator()

	d.registration = registration.NewService(d.storage, d.tenants, d.hasher, d.validator, d.tracer, d.monitor, d.logger)
	d.resets = resets.NewService(d.storage, d.tenants, d.hasher, d.validator, d.tracer, d.monitor, d.logger)
	d.accounts = accounts.NewService(d.storage, d.tenants, d.hasher, d.validator, d.tracer, d.monitor, d.logger)

	return d, nil
}

func (d *dependencies) dbConfig(name, dsn string) db.Config {
	return db.Config{
		Name:            name,
		DSN:             dsn,
		MaxConns:        d.specs.DBMaxConns,
		MinConns:        d.specs.DBMinConns,
		MaxConnLifetime: d.specs.DBMaxConnLifetime,
		MaxConnIdleTime: d.specs.DBMaxConnIdleTime,
		TracingEnabled:  d.specs.TracingEnabled,
	}
}

func (d *dependencies) Close() {
	d.tenantDB.Close()
	d.directoryDB.Close()
	_ = d.logger.Sync()
}
