// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/pkg/accounts"
	"github.com/canonical/tenant-directory/pkg/authentication"
	"github.com/canonical/tenant-directory/pkg/metrics"
	"github.com/canonical/tenant-directory/pkg/registration"
	"github.com/canonical/tenant-directory/pkg/resets"
	"github.com/canonical/tenant-directory/pkg/status"
)

// Services bundles what the HTTP APIs are built on.
type Services struct {
	Registration   registration.ServiceInterface
	Authentication authentication.ServiceInterface
	Issuer         authentication.TokenIssuerInterface
	Resets         resets.ServiceInterface
	Accounts       accounts.ServiceInterface

	Dependencies map[string]status.PingerInterface
}

func NewRouter(
	services Services,
	guard *authentication.Middleware,
	corsOrigins []string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(corsOrigins),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(services.Dependencies, tracer, monitor, logger).RegisterEndpoints(router)

	authentication.NewAPI(services.Authentication, services.Issuer, logger).RegisterEndpoints(router)
	registration.NewAPI(services.Registration, guard, logger).RegisterEndpoints(router)
	resets.NewAPI(services.Resets, guard, logger).RegisterEndpoints(router)
	accounts.NewAPI(services.Accounts, guard, logger).RegisterEndpoints(router)

	return tracing.NewMiddleware(logger).OpenTelemetry(router)
}
