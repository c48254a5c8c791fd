// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resets

import (
	"context"
	"net/http"

	"github.com/canonical/tenant-directory/internal/types"
)

type ServiceInterface interface {
	Get(ctx context.Context, id string) (*types.ResetRequest, error)
	Submit(ctx context.Context, req *SubmitRequest) (*types.ResetRequest, error)
	ListPending(ctx context.Context, approverKey string) ([]*types.ResetRequest, error)
	Approve(ctx context.Context, id string) (*types.ResetRequest, error)
	Reject(ctx context.Context, id string) error
}

type DirectoryInterface interface {
	GetAccount(ctx context.Context, loginID string) (*types.Account, error)
	UpdateAccountSecret(ctx context.Context, loginID, secretHash string) error
	GetTenant(ctx context.Context, tenantKey string) (*types.Tenant, error)
	CreateReset(ctx context.Context, r *types.ResetRequest) (*types.ResetRequest, error)
	GetReset(ctx context.Context, id string) (*types.ResetRequest, error)
	LockReset(ctx context.Context, id string) (*types.ResetRequest, error)
	ListResets(ctx context.Context, approverKey string, status types.ResetStatus) ([]*types.ResetRequest, error)
	MarkResetApproved(ctx context.Context, id string) (bool, error)
	DeleteReset(ctx context.Context, id string) (bool, error)
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

type TenantStoreInterface interface {
	GetAccount(ctx context.Context, schema, loginID string) (*types.Account, error)
	UpdateSecret(ctx context.Context, schema, loginID string, role types.Role, secretHash string) (bool, error)
}

type HasherInterface interface {
	Hash(secret string) (string, error)
}

type GuardInterface interface {
	RequireRoles(roles ...types.Role) func(http.Handler) http.Handler
}
