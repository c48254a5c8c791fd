// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantstore

import (
	"testing"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/tracing"
)

func TestStore_SchemaName(t *testing.T) {
	s := NewStore(nil, "tenant_", tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	if got := s.SchemaName("DO01"); got != "tenant_DO01" {
		t.Errorf("expected tenant_DO01, got %q", got)
	}
}

func TestStore_TableIsQuoted(t *testing.T) {
	s := NewStore(nil, "tenant_", tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	tests := []struct {
		schema string
		want   string
	}{
		{schema: "tenant_DO01", want: `"tenant_DO01"."users"`},
		{schema: `tenant_a"; DROP TABLE accounts; --`, want: `"tenant_a""; DROP TABLE accounts; --"."users"`},
	}

	for _, tt := range tests {
		t.Run(tt.schema, func(t *testing.T) {
			if got := s.table(tt.schema); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
