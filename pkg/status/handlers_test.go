// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/version"
)

//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_interfaces.go -source=./interfaces.go

func TestAlive(t *testing.T) {
	tests := []struct {
		name       string
		tenantErr  error
		wantStatus int
		wantTenant string
	}{
		{name: "all reachable", wantStatus: http.StatusOK, wantTenant: "ok"},
		{name: "tenant database down", tenantErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable, wantTenant: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			directory := NewMockPingerInterface(ctrl)
			directory.EXPECT().Ping(gomock.Any()).Return(nil)
			tenant := NewMockPingerInterface(ctrl)
			tenant.EXPECT().Ping(gomock.Any()).Return(tt.tenantErr)

			mux := chi.NewMux()
			NewAPI(
				map[string]PingerInterface{"directory": directory, "tenant": tenant},
				tracing.NewNoopTracer(),
				monitoring.NewNoopMonitor("test"),
				logging.NewNoopLogger(),
			).RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/status", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}

			var s Status
			if err := json.NewDecoder(w.Body).Decode(&s); err != nil {
				t.Fatalf("failed to decode status: %v", err)
			}
			if s.Dependencies["tenant"] != tt.wantTenant || s.Dependencies["directory"] != "ok" {
				t.Errorf("unexpected dependencies %v", s.Dependencies)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	mux := chi.NewMux()
	NewAPI(nil, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger()).RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/version", nil))

	var info BuildInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatalf("failed to decode version: %v", err)
	}
	if info.Version != version.Version {
		t.Errorf("expected %s, got %s", version.Version, info.Version)
	}
}
