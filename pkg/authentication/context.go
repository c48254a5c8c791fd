// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/canonical/tenant-directory/internal/types"
)

// Define a private custom type to avoid collisions
type contextKey struct{}

var sessionContextKey = contextKey{}

// WithSession returns a new context carrying the authenticated session.
func WithSession(ctx context.Context, session *types.SessionDescriptor) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// GetSession retrieves the session from the context.
// Returns nil and false if no session is present.
func GetSession(ctx context.Context) (*types.SessionDescriptor, bool) {
	session, ok := ctx.Value(sessionContextKey).(*types.SessionDescriptor)
	return session, ok && session != nil
}
