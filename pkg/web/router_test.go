// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/pkg/authentication"
)

func newTestRouter(ctrl *gomock.Controller) http.Handler {
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test")
	logger := logging.NewNoopLogger()

	guard := authentication.NewMiddleware(authentication.NewMockTokenVerifierInterface(ctrl), tracer, monitor, logger)

	return NewRouter(Services{}, guard, []string{"https://ui.example.com"}, tracer, monitor, logger)
}

func TestRouter_GuardedRoutesNeedToken(t *testing.T) {
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v0/registrations"},
		{http.MethodGet, "/api/v0/registrations/failed"},
		{http.MethodPost, "/api/v0/registrations/req-1/approve"},
		{http.MethodPost, "/api/v0/registrations/req-1/repair"},
		{http.MethodGet, "/api/v0/resets"},
		{http.MethodPost, "/api/v0/resets/reset-1/reject"},
		{http.MethodGet, "/api/v0/accounts"},
		{http.MethodDelete, "/api/v0/accounts/AG100"},
		{http.MethodPatch, "/api/v0/accounts/AG100"},
		{http.MethodGet, "/api/v0/tenants/DO01/accounts"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			w := httptest.NewRecorder()
			newTestRouter(ctrl).ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := httptest.NewRecorder()
	newTestRouter(ctrl).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodOptions, "/api/v0/sessions", nil)
	req.Header.Set("Origin", "https://ui.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	newTestRouter(ctrl).ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://ui.example.com" {
		t.Errorf("expected the configured origin to be allowed, got %q", got)
	}
}
