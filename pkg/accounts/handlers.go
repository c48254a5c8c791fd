// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

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
	approvers := mux.With(a.guard.RequireRoles(types.RoleSuperApprover, types.RoleTenantAdmin))

	approvers.Get("/api/v0/accounts", a.list)
	approvers.Delete("/api/v0/accounts/{login}", a.delete)
	approvers.Patch("/api/v0/accounts/{login}", a.updateSchedule)
	approvers.Get("/api/v0/tenants/{key}/accounts", a.listTenant)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	session, _ := authentication.GetSession(r.Context())

	owningAdmin := r.URL.Query().Get("owning_admin")
	if session.Role == types.RoleTenantAdmin {
		owningAdmin = session.TenantDB
	}

	accounts, err := a.service.ListAccounts(r.Context(), owningAdmin)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResponse(w, http.StatusOK, accounts, "accounts")
}

func (a *API) listTenant(w http.ResponseWriter, r *http.Request) {
	session, _ := authentication.GetSession(r.Context())
	key := types.NormalizeID(chi.URLParam(r, "key"))

	if session.Role == types.RoleTenantAdmin && key != session.TenantDB {
		a.logger.Security().AuthzFailure(session.LoginID, "tenant:"+key)
		httptypes.WriteError(w, fmt.Errorf("tenant %s: %w", key, types.ErrForbidden), a.logger)
		return
	}

	accounts, err := a.service.ListTenantAccounts(r.Context(), key)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteResponse(w, http.StatusOK, accounts, "tenant accounts")
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	session, _ := authentication.GetSession(r.Context())

	if err := a.authorize(r.Context(), session, login); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	if err := a.service.DeleteAccount(r.Context(), login); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	a.logger.Security().AdminAction(session.LoginID, "delete_account", types.NormalizeID(login))
	httptypes.WriteResponse(w, http.StatusOK, nil, "account deleted")
}

func (a *API) updateSchedule(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	session, _ := authentication.GetSession(r.Context())

	var req ScheduleRequest
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	if err := a.authorize(r.Context(), session, login); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	// tenant admins cannot promote their members
	if session.Role == types.RoleTenantAdmin {
		if role, ok := types.ParseRole(req.Role); ok && role != types.RoleMember {
			a.logger.Security().AuthzFailure(session.LoginID, "account:"+login)
			httptypes.WriteError(w, fmt.Errorf("account %s: %w", login, types.ErrForbidden), a.logger)
			return
		}
	}

	account, err := a.service.UpdateSchedule(r.Context(), login, &req)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	a.logger.Security().AdminAction(session.LoginID, "update_account_schedule", account.LoginID)
	httptypes.WriteResponse(w, http.StatusOK, account, "account updated")
}

// authorize lets a tenant admin act on the members it owns only.
func (a *API) authorize(ctx context.Context, session *types.SessionDescriptor, login string) error {
	if session.Role == types.RoleSuperApprover {
		return nil
	}

	account, err := a.service.GetAccount(ctx, login)
	if err != nil {
		return err
	}

	if account.Role != types.RoleMember || account.OwningAdmin != session.TenantDB {
		a.logger.Security().AuthzFailure(session.LoginID, "account:"+account.LoginID)
		return fmt.Errorf("account %s: %w", account.LoginID, types.ErrForbidden)
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
