// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package registration

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/tenant-directory/internal/http/types"
	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/types"
	"github.com/canonical/tenant-directory/pkg/authentication"
)

type API struct {
	service ServiceInterface
	guard   GuardInterface

	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/registrations", a.submit)

	approvers := mux.With(a.guard.RequireRoles(types.RoleSuperApprover, types.RoleTenantAdmin))
	approvers.Get("/api/v0/registrations", a.listPending)
	approvers.Post("/api/v0/registrations/{id}/approve", a.approve)
	approvers.Post("/api/v0/registrations/{id}/reject", a.reject)

	operators := mux.With(a.guard.RequireRoles(types.RoleSuperApprover))
	operators.Get("/api/v0/registrations/failed", a.listFailed)
	operators.Post("/api/v0/registrations/{id}/repair", a.repair)
}

func (a *API) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	pending, err := a.service.Submit(r.Context(), &req)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResponse(w, http.StatusCreated, map[string]string{"id": pending.ID}, "registration submitted")
}

func (a *API) listPending(w http.ResponseWriter, r *http.Request) {
	session, _ := authentication.GetSession(r.Context())

	filter := types.PendingFilter{}
	if role := r.URL.Query().Get("role"); role != "" {
		parsed, ok := types.ParseRole(role)
		if !ok {
			httptypes.WriteError(w, types.NewValidationError("role", "unknown role"), a.logger)
			return
		}
		filter.Role = parsed
	}
	filter.TenantKey = r.URL.Query().Get("tenant_key")

	// tenant admins only ever see member requests of their own tenant
	if session.Role == types.RoleTenantAdmin {
		filter.Role = types.RoleMember
		filter.TenantKey = session.TenantDB
	}

	requests, err := a.service.ListPending(r.Context(), filter)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResponse(w, http.StatusOK, requests, "pending registrations")
}

func (a *API) listFailed(w http.ResponseWriter, r *http.Request) {
	requests, err := a.service.ListFailed(r.Context())
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResponse(w, http.StatusOK, requests, "failed registrations")
}

func (a *API) approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, _ := authentication.GetSession(r.Context())

	if err := a.authorize(r.Context(), session, id); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	account, err := a.service.Approve(r.Context(), id)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	a.logger.Security().AdminAction(session.LoginID, "approve_registration", account.LoginID)
	httptypes.WriteResponse(w, http.StatusOK, account, "registration approved")
}

func (a *API) reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, _ := authentication.GetSession(r.Context())

	if err := a.authorize(r.Context(), session, id); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	if err := a.service.Reject(r.Context(), id); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	a.logger.Security().AdminAction(session.LoginID, "reject_registration", id)
	httptypes.WriteResponse(w, http.StatusOK, nil, "registration rejected")
}

func (a *API) repair(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, _ := authentication.GetSession(r.Context())

	account, err := a.service.Repair(r.Context(), id)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	a.logger.Security().AdminAction(session.LoginID, "repair_registration", account.LoginID)
	httptypes.WriteResponse(w, http.StatusOK, account, "registration repaired")
}

// authorize lets the SuperApprover decide any request and a TenantAdmin only
// member requests of its own tenant.
func (a *API) authorize(ctx context.Context, session *types.SessionDescriptor, id string) error {
	if session.Role == types.RoleSuperApprover {
		return nil
	}

	p, err := a.service.Get(ctx, id)
	if err != nil {
		return err
	}

	if p.RequestedRole != types.RoleMember || p.TenantKey != session.TenantDB {
		a.logger.Security().AuthzFailure(session.LoginID, "registration:"+id)
		return fmt.Errorf("registration %s: %w", id, types.ErrForbidden)
	}

	return nil
}

func NewAPI(service ServiceInterface, guard GuardInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.guard = guard

	a.logger = logger

	return a
}
