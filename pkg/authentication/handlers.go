// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/tenant-directory/internal/http/types"
	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/types"
)

type LoginRequest struct {
	LoginID string `json:"login_id"`
	Secret  string `json:"secret"`
}

type LoginResponse struct {
	Session   *types.SessionDescriptor `json:"session"`
	Token     string                   `json:"token"`
	ExpiresAt time.Time                `json:"expires_at"`
}

type API struct {
	service ServiceInterface
	issuer  TokenIssuerInterface

	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/sessions", a.login)
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	session, err := a.service.Authenticate(r.Context(), req.LoginID, req.Secret)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	token, expiresAt, err := a.issuer.Issue(r.Context(), session)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResponse(w, http.StatusOK, LoginResponse{Session: session, Token: token, ExpiresAt: expiresAt}, "authenticated")
}

func NewAPI(service ServiceInterface, issuer TokenIssuerInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.issuer = issuer

	a.logger = logger

	return a
}
