// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package registration

import (
	"context"
	"net/http"

	"github.com/canonical/tenant-directory/internal/types"
)

type ServiceInterface interface {
	Get(ctx context.Context, id string) (*types.PendingRequest, error)
	Submit(ctx context.Context, req *SubmitRequest) (*types.PendingRequest, error)
	Approve(ctx context.Context, id string) (*types.Account, error)
	Reject(ctx context.Context, id string) error
	Repair(ctx context.Context, id string) (*types.Account, error)
	ListPending(ctx context.Context, filter types.PendingFilter) ([]*types.PendingRequest, error)
	ListFailed(ctx context.Context) ([]*types.PendingRequest, error)
}

type DirectoryInterface interface {
	GetAccount(ctx context.Context, loginID string) (*types.Account, error)
	GetTenantAdmin(ctx context.Context, tenantKey string) (*types.Account, error)
	CreateAccount(ctx context.Context, a *types.Account) error
	CreatePending(ctx context.Context, p *types.PendingRequest) (*types.PendingRequest, error)
	GetPending(ctx context.Context, id string) (*types.PendingRequest, error)
	ListPending(ctx context.Context, filter types.PendingFilter) ([]*types.PendingRequest, error)
	TransitionPending(ctx context.Context, id string, from, to types.PendingStatus, lastError string) (bool, error)
	DeletePending(ctx context.Context, id string, statuses ...types.PendingStatus) (bool, error)
	EnsureTenant(ctx context.Context, t *types.Tenant, provision func(context.Context, *types.Tenant) error) (*types.Tenant, bool, error)
	GetTenant(ctx context.Context, tenantKey string) (*types.Tenant, error)
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

type TenantStoreInterface interface {
	SchemaName(dbName string) string
	CreateSchema(ctx context.Context, schema string) error
	UpsertAccount(ctx context.Context, schema string, a *types.Account) error
}

type HasherInterface interface {
	Hash(secret string) (string, error)
}

// GuardInterface authenticates the caller and restricts a route to some roles.
type GuardInterface interface {
	RequireRoles(roles ...types.Role) func(http.Handler) http.Handler
}
