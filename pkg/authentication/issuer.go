// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/types"
)

var _ TokenIssuerInterface = (*TokenIssuer)(nil)

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	Role        types.Role `json:"role"`
	TenantDB    string     `json:"tenant_db"`
	DisplayName string     `json:"name,omitempty"`

	jwt.RegisteredClaims
}

type TokenIssuer struct {
	key    *ecdsa.PrivateKey
	issuer string
	ttl    time.Duration

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (i *TokenIssuer) Issue(ctx context.Context, session *types.SessionDescriptor) (string, time.Time, error) {
	_, span := i.tracer.Start(ctx, "authentication.TokenIssuer.Issue")
	defer span.End()

	now := i.now()
	expiresAt := now.Add(i.ttl)

	claims := SessionClaims{
		Role:        session.Role,
		TenantDB:    session.TenantDB,
		DisplayName: session.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   session.LoginID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, expiresAt, nil
}

func NewTokenIssuer(
	key *ecdsa.PrivateKey,
	issuer string,
	ttl time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *TokenIssuer {
	i := new(TokenIssuer)

	i.key = key
	i.issuer = issuer
	i.ttl = ttl
	i.now = time.Now

	i.tracer = tracer
	i.monitor = monitor
	i.logger = logger

	return i
}
