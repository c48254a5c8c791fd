// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/tenant-directory/internal/types"
)

type AccountStorageInterface interface {
	GetAccount(ctx context.Context, loginID string) (*types.Account, error)
	GetTenantAdmin(ctx context.Context, tenantKey string) (*types.Account, error)
	CreateAccount(ctx context.Context, a *types.Account) error
	DeleteAccount(ctx context.Context, loginID string) (bool, error)
	UpdateAccountSchedule(ctx context.Context, loginID string, role types.Role, activation time.Time) error
	UpdateAccountSecret(ctx context.Context, loginID, secretHash string) error
	ListAccounts(ctx context.Context, owningAdmin string) ([]*types.Account, error)
}

type PendingStorageInterface interface {
	CreatePending(ctx context.Context, p *types.PendingRequest) (*types.PendingRequest, error)
	GetPending(ctx context.Context, id string) (*types.PendingRequest, error)
	ListPending(ctx context.Context, filter types.PendingFilter) ([]*types.PendingRequest, error)
	TransitionPending(ctx context.Context, id string, from, to types.PendingStatus, lastError string) (bool, error)
	DeletePending(ctx context.Context, id string, statuses ...types.PendingStatus) (bool, error)
}

type FailureStorageInterface interface {
	IncrementFailure(ctx context.Context, loginID string) (int, error)
	ResetFailure(ctx context.Context, loginID string) error
	GetFailureCount(ctx context.Context, loginID string) (int, error)
}

type TenantStorageInterface interface {
	EnsureTenant(ctx context.Context, t *types.Tenant, provision func(context.Context, *types.Tenant) error) (*types.Tenant, bool, error)
	GetTenant(ctx context.Context, tenantKey string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
}

type ResetStorageInterface interface {
	CreateReset(ctx context.Context, r *types.ResetRequest) (*types.ResetRequest, error)
	GetReset(ctx context.Context, id string) (*types.ResetRequest, error)
	ListResets(ctx context.Context, approverKey string, status types.ResetStatus) ([]*types.ResetRequest, error)
	MarkResetApproved(ctx context.Context, id string) (bool, error)
	DeleteReset(ctx context.Context, id string) (bool, error)
}

type StorageInterface interface {
	AccountStorageInterface
	PendingStorageInterface
	FailureStorageInterface
	TenantStorageInterface
	ResetStorageInterface

	// WithTx runs fn inside one directory transaction.
	WithTx(ctx context.Context, fn func(context.Context) error) error
}
