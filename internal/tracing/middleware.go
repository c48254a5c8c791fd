// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/tenant-directory/internal/logging"
)

// Middleware wraps the router so every request opens a server span.
type Middleware struct {
	logger logging.LoggerInterface
}

func (mdw *Middleware) OpenTelemetry(handler http.Handler) http.Handler {
	return otelhttp.NewHandler(handler, serviceName)
}

func NewMiddleware(logger logging.LoggerInterface) *Middleware {
	mdw := new(Middleware)
	mdw.logger = logger

	return mdw
}
