// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/types"
)

var _ TokenVerifierInterface = (*JWTVerifier)(nil)

type JWTVerifier struct {
	verifier *oidc.IDTokenVerifier

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *JWTVerifier) VerifyToken(ctx context.Context, rawToken string) (*types.SessionDescriptor, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.JWTVerifier.VerifyToken")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	var claims struct {
		Role        types.Role `json:"role"`
		TenantDB    string     `json:"tenant_db"`
		DisplayName string     `json:"name"`
	}

	if err := token.Claims(&claims); err != nil {
		v.logger.Debugf("Failed to extract claims: %v", err)
		return nil, err
	}

	if token.Subject == "" || !claims.Role.Valid() {
		v.logger.Security().AuthzFailure(token.Subject, "session_token")
		return nil, fmt.Errorf("session token carries no valid subject or role")
	}

	return &types.SessionDescriptor{
		LoginID:     token.Subject,
		Role:        claims.Role,
		TenantDB:    claims.TenantDB,
		DisplayName: claims.DisplayName,
	}, nil
}

// NewJWTVerifier checks tokens minted by a TokenIssuer holding the matching private key.
func NewJWTVerifier(
	publicKey *ecdsa.PublicKey,
	issuer string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	v := new(JWTVerifier)

	keySet := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{publicKey}}

	v.verifier = oidc.NewVerifier(issuer, keySet, &oidc.Config{
		SkipClientIDCheck:    true,
		SupportedSigningAlgs: []string{oidc.ES256},
	})

	v.tracer = tracer
	v.monitor = monitor
	v.logger = logger

	return v
}
