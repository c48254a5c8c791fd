// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/types"
)

func newTestKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	key, err := LoadSigningKey("")
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return key
}

func newTestIssuer(key *ecdsa.PrivateKey, ttl time.Duration) *TokenIssuer {
	return NewTokenIssuer(key, "tenant-directory", ttl, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func newTestVerifier(key *ecdsa.PrivateKey, issuer string) *JWTVerifier {
	return NewJWTVerifier(&key.PublicKey, issuer, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func TestTokenRoundTrip(t *testing.T) {
	key := newTestKey(t)
	session := &types.SessionDescriptor{LoginID: "DO01", Role: types.RoleTenantAdmin, TenantDB: "DO01", DisplayName: "District One"}

	token, expiresAt, err := newTestIssuer(key, time.Hour).Issue(context.Background(), session)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("expected expiry in the future, got %v", expiresAt)
	}

	got, err := newTestVerifier(key, "tenant-directory").VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if *got != *session {
		t.Errorf("expected %+v, got %+v", session, got)
	}
}

func TestVerifyToken_Rejects(t *testing.T) {
	key := newTestKey(t)
	other := newTestKey(t)
	session := &types.SessionDescriptor{LoginID: "AG100", Role: types.RoleMember, TenantDB: "DO01"}

	expiredIssuer := newTestIssuer(key, time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	invalidRole := &types.SessionDescriptor{LoginID: "AG100", Role: "owner", TenantDB: "DO01"}

	tests := []struct {
		name     string
		issuer   *TokenIssuer
		session  *types.SessionDescriptor
		verifier *JWTVerifier
	}{
		{name: "signed by another key", issuer: newTestIssuer(other, time.Hour), session: session, verifier: newTestVerifier(key, "tenant-directory")},
		{name: "expired", issuer: expiredIssuer, session: session, verifier: newTestVerifier(key, "tenant-directory")},
		{name: "wrong issuer", issuer: newTestIssuer(key, time.Hour), session: session, verifier: newTestVerifier(key, "someone-else")},
		{name: "unknown role", issuer: newTestIssuer(key, time.Hour), session: invalidRole, verifier: newTestVerifier(key, "tenant-directory")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _, err := tt.issuer.Issue(context.Background(), tt.session)
			if err != nil {
				t.Fatalf("failed to issue token: %v", err)
			}

			if _, err := tt.verifier.VerifyToken(context.Background(), token); err == nil {
				t.Error("expected verification to fail")
			}
		})
	}

	if _, err := newTestVerifier(key, "tenant-directory").VerifyToken(context.Background(), "not-a-jwt"); err == nil {
		t.Error("expected garbage to be rejected")
	}
}

func TestLoadSigningKey(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal key: %v", err)
	}

	path := filepath.Join(t.TempDir(), "session.pem")
	if err := os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}), 0o600); err != nil {
		t.Fatalf("failed to write key: %v", err)
	}

	loaded, err := LoadSigningKey(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !loaded.Equal(key) {
		t.Error("loaded key differs from the written one")
	}

	if _, err := LoadSigningKey(filepath.Join(t.TempDir(), "missing.pem")); err == nil {
		t.Error("expected an error for a missing file")
	}

	p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	der, _ = x509.MarshalECPrivateKey(p384)
	if err := os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}), 0o600); err != nil {
		t.Fatalf("failed to write key: %v", err)
	}
	if _, err := LoadSigningKey(path); err == nil {
		t.Error("expected a P-384 key to be refused")
	}
}
