// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resets

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
	mux.Post("/api/v0/resets", a.submit)

	approvers := mux.With(a.guard.RequireRoles(types.RoleSuperApprover, types.RoleTenantAdmin))
	approvers.Get("/api/v0/resets", a.listPending)
	approvers.Post("/api/v0/resets/{id}/approve", a.approve)
	approvers.Post("/api/v0/resets/{id}/reject", a.reject)
}

func (a *API) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	reset, err := a.service.Submit(r.Context(), &req)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResponse(w, http.StatusCreated, map[string]string{"id": reset.ID}, "reset request submitted")
}

func (a *API) listPending(w http.ResponseWriter, r *http.Request) {
	session, _ := authentication.GetSession(r.Context())

	resets, err := a.service.ListPending(r.Context(), session.ApproverKey())
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResponse(w, http.StatusOK, resets, "pending reset requests")
}

func (a *API) approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, _ := authentication.GetSession(r.Context())

	if err := a.authorize(r.Context(), session, id); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	reset, err := a.service.Approve(r.Context(), id)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	a.logger.Security().AdminAction(session.LoginID, "approve_reset", reset.LoginID)
	httptypes.WriteResponse(w, http.StatusOK, reset, "reset request approved")
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

	a.logger.Security().AdminAction(session.LoginID, "reject_reset", id)
	httptypes.WriteResponse(w, http.StatusOK, nil, "reset request rejected")
}

// authorize restricts tenant admins to the resets routed to their key.
func (a *API) authorize(ctx context.Context, session *types.SessionDescriptor, id string) error {
	key := session.ApproverKey()
	if key == "" {
		return nil
	}

	reset, err := a.service.Get(ctx, id)
	if err != nil {
		return err
	}

	if reset.ApproverKey != key {
		a.logger.Security().AuthzFailure(session.LoginID, "reset:"+id)
		return fmt.Errorf("reset %s: %w", id, types.ErrForbidden)
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
