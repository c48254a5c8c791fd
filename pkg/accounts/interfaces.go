// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"context"
	"net/http"
	"time"

	"github.com/canonical/tenant-directory/internal/types"
)

type ServiceInterface interface {
	GetAccount(ctx context.Context, loginID string) (*types.Account, error)
	ListAccounts(ctx context.Context, owningAdmin string) ([]*types.Account, error)
	ListTenantAccounts(ctx context.Context, tenantKey string) ([]*types.Account, error)
	DeleteAccount(ctx context.Context, loginID string) error
	UpdateSchedule(ctx context.Context, loginID string, req *ScheduleRequest) (*types.Account, error)
	Bootstrap(ctx context.Context, req *BootstrapRequest) (*types.Account, bool, error)
}

type DirectoryInterface interface {
	GetAccount(ctx context.Context, loginID string) (*types.Account, error)
	CreateAccount(ctx context.Context, a *types.Account) error
	ListAccounts(ctx context.Context, owningAdmin string) ([]*types.Account, error)
	DeleteAccount(ctx context.Context, loginID string) (bool, error)
	UpdateAccountSchedule(ctx context.Context, loginID string, role types.Role, activation time.Time) error
	ResetFailure(ctx context.Context, loginID string) error
	GetTenant(ctx context.Context, tenantKey string) (*types.Tenant, error)
}

type TenantStoreInterface interface {
	ListAccounts(ctx context.Context, schema string) ([]*types.Account, error)
	UpdateSchedule(ctx context.Context, schema, loginID string, role types.Role, activation time.Time) (bool, error)
	DeleteAccount(ctx context.Context, schema, loginID string) (bool, error)
}

type HasherInterface interface {
	Hash(secret string) (string, error)
}

type GuardInterface interface {
	RequireRoles(roles ...types.Role) func(http.Handler) http.Handler
}
