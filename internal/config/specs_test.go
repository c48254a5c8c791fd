// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"os"
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
)

func TestEnvSpec_Defaults(t *testing.T) {
	t.Setenv("DSN", "postgres://directory@localhost/directory")

	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if specs.TenantSchemaPrefix != "tenant_" {
		t.Errorf("expected tenant_ prefix, got %q", specs.TenantSchemaPrefix)
	}
	if specs.LoginLockoutThreshold != 0 {
		t.Errorf("lockout should be disabled by default, got %d", specs.LoginLockoutThreshold)
	}
	if specs.SessionTTL != 8*time.Hour {
		t.Errorf("unexpected session ttl %v", specs.SessionTTL)
	}
	if specs.TenantDatabaseDSN() != specs.DSN {
		t.Errorf("tenant DSN should fall back to DSN, got %q", specs.TenantDatabaseDSN())
	}
}

func TestEnvSpec_TenantDSN(t *testing.T) {
	t.Setenv("DSN", "postgres://directory@localhost/directory")
	t.Setenv("TENANT_DSN", "postgres://tenants@localhost/tenants")
	t.Setenv("LOGIN_LOCKOUT_THRESHOLD", "5")

	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if specs.TenantDatabaseDSN() != "postgres://tenants@localhost/tenants" {
		t.Errorf("unexpected tenant DSN %q", specs.TenantDatabaseDSN())
	}
	if specs.LoginLockoutThreshold != 5 {
		t.Errorf("expected threshold 5, got %d", specs.LoginLockoutThreshold)
	}
}

func TestEnvSpec_MissingDSN(t *testing.T) {
	t.Setenv("DSN", "")
	os.Unsetenv("DSN")

	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err == nil {
		t.Error("expected an error when DSN is missing")
	}
}
