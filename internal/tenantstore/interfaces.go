// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantstore

import (
	"context"
	"time"

	"github.com/canonical/tenant-directory/internal/types"
)

// StoreInterface operates on one tenant schema at a time, named by schema.
type StoreInterface interface {
	SchemaName(dbName string) string
	CreateSchema(ctx context.Context, schema string) error
	SchemaExists(ctx context.Context, schema string) (bool, error)
	UpsertAccount(ctx context.Context, schema string, a *types.Account) error
	GetAccount(ctx context.Context, schema, loginID string) (*types.Account, error)
	ListAccounts(ctx context.Context, schema string) ([]*types.Account, error)
	UpdateSecret(ctx context.Context, schema, loginID string, role types.Role, secretHash string) (bool, error)
	UpdateSchedule(ctx context.Context, schema, loginID string, role types.Role, activation time.Time) (bool, error)
	DeleteAccount(ctx context.Context, schema, loginID string) (bool, error)
}
