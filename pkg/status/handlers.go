// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/tenant-directory/internal/http/types"
	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/version"
)

const pingTimeout = 2 * time.Second

type Status struct {
	Status       string            `json:"status"`
	BuildInfo    *BuildInfo        `json:"buildInfo,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

type BuildInfo struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	Name       string `json:"name"`
}

type API struct {
	dependencies map[string]PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

// alive answers 503 as soon as one database is unreachable.
func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	rr := Status{Status: "ok", Dependencies: make(map[string]string, len(a.dependencies))}
	code := http.StatusOK

	for name, dep := range a.dependencies {
		if err := dep.Ping(ctx); err != nil {
			a.logger.Errorf("dependency %s unavailable: %v", name, err)
			rr.Dependencies[name] = "unavailable"
			rr.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		rr.Dependencies[name] = "ok"
	}

	httptypes.WriteJSON(w, code, rr)
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	info := new(BuildInfo)
	info.Version = version.Version

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.Name = buildInfo.Main.Path
		for _, setting := range buildInfo.Settings {
			if setting.Key == "vcs.revision" {
				info.CommitHash = setting.Value
			}
		}
	}

	httptypes.WriteJSON(w, http.StatusOK, info)
}

func NewAPI(dependencies map[string]PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.dependencies = dependencies

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
