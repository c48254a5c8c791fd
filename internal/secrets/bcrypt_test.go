// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package secrets

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash == "s3cret" {
		t.Fatal("secret stored in clear")
	}
	if !h.Matches(hash, "s3cret") {
		t.Error("expected the secret to match its hash")
	}
	if h.Matches(hash, "wrong") {
		t.Error("wrong secret should not match")
	}
	if h.Matches("not-a-hash", "s3cret") {
		t.Error("malformed hash should not match")
	}
}

func TestHasher_Empty(t *testing.T) {
	if _, err := NewHasher(bcrypt.MinCost).Hash(""); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("expected ErrEmptySecret, got %v", err)
	}
}

func TestNewHasher_CostBounds(t *testing.T) {
	if h := NewHasher(0); h.cost != bcrypt.DefaultCost {
		t.Errorf("expected default cost, got %d", h.cost)
	}
}
