// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	DSN string `envconfig:"DSN" required:"true"`
	// TenantDSN points at the database holding the per-tenant schemas, DSN when empty.
	TenantDSN string `envconfig:"TENANT_DSN"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	TenantSchemaPrefix string `envconfig:"tenant_schema_prefix" default:"tenant_"`

	// LoginLockoutThreshold disables logins after that many consecutive failures, 0 turns it off.
	LoginLockoutThreshold int `envconfig:"login_lockout_threshold" default:"0"`

	SessionTTL            time.Duration `envconfig:"session_ttl" default:"8h"`
	SessionIssuer         string        `envconfig:"session_issuer" default:"tenant-directory"`
	SessionSigningKeyFile string        `envconfig:"session_signing_key_file"`
}

// TenantDatabaseDSN returns the DSN of the tenant database.
func (s *EnvSpec) TenantDatabaseDSN() string {
	if s.TenantDSN != "" {
		return s.TenantDSN
	}
	return s.DSN
}
