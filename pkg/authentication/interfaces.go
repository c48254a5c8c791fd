// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"time"

	"github.com/canonical/tenant-directory/internal/types"
)

type ServiceInterface interface {
	Authenticate(ctx context.Context, loginID, secret string) (*types.SessionDescriptor, error)
}

type DirectoryInterface interface {
	GetAccount(ctx context.Context, loginID string) (*types.Account, error)
	IncrementFailure(ctx context.Context, loginID string) (int, error)
	ResetFailure(ctx context.Context, loginID string) error
	GetFailureCount(ctx context.Context, loginID string) (int, error)
}

type HasherInterface interface {
	Matches(hash, secret string) bool
}

type TokenIssuerInterface interface {
	// Issue mints a signed session token and returns it with its expiry.
	Issue(ctx context.Context, session *types.SessionDescriptor) (string, time.Time, error)
}

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw JWT string and restores the session it was issued for
	VerifyToken(ctx context.Context, rawToken string) (*types.SessionDescriptor, error)
}
