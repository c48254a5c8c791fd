// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"testing"

	"github.com/canonical/tenant-directory/internal/logging"
)

func TestMonitor(t *testing.T) {
	m := NewMonitor("tenant-directory-test", logging.NewNoopLogger())

	if m.GetService() != "tenant-directory-test" {
		t.Errorf("unexpected service %q", m.GetService())
	}

	if err := m.SetResponseTimeMetric(map[string]string{"route": "GET /api/v0/status", "status": "200"}, 0.01); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := m.SetDependencyAvailability(map[string]string{"component": "directory"}, 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := m.IncProvisioningOutcome(map[string]string{"workflow": "registration", "action": "approve", "outcome": "active"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMonitor_NotInstantiated(t *testing.T) {
	m := new(Monitor)

	if err := m.SetResponseTimeMetric(map[string]string{}, 1); err == nil {
		t.Error("expected an error for a missing histogram")
	}
	if err := m.IncProvisioningOutcome(map[string]string{}); err == nil {
		t.Error("expected an error for a missing counter")
	}
}
