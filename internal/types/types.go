// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"strings"
	"time"
)

type Role string

const (
	RoleSuperApprover Role = "super_approver"
	RoleTenantAdmin   Role = "tenant_admin"
	RoleMember        Role = "member"
)

// SuperApproverDB is the tenant database name handed to SuperApprover sessions.
const SuperApproverDB = "SuperApproverDB"

// SuperApproverKey is the approver key of requests routed to the SuperApprover.
const SuperApproverKey = "SUPERAPPROVER"

func (r Role) Valid() bool {
	switch r {
	case RoleSuperApprover, RoleTenantAdmin, RoleMember:
		return true
	}
	return false
}

// ParseRole accepts the canonical role names plus the legacy aliases used by older clients.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "super_approver", "superapprover", "superadmin":
		return RoleSuperApprover, true
	case "tenant_admin", "tenantadmin", "admin":
		return RoleTenantAdmin, true
	case "member", "agent":
		return RoleMember, true
	}
	return "", false
}

// NormalizeID is the single normalization applied to login identifiers and tenant keys.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

type Account struct {
	LoginID        string    `db:"login_id" json:"login_id"`
	SecretHash     string    `db:"secret_hash" json:"-"`
	Role           Role      `db:"role" json:"role"`
	TenantKey      string    `db:"tenant_key" json:"tenant_key"`
	OwningAdmin    string    `db:"owning_admin" json:"owning_admin"`
	DisplayName    string    `db:"display_name" json:"display_name"`
	ActivationDate time.Time `db:"activation_date" json:"activation_date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type PendingStatus string

const (
	PendingSubmitted     PendingStatus = "submitted"
	PendingProvisioning  PendingStatus = "provisioning"
	PendingFailedPartial PendingStatus = "failed_partial"
)

type PendingRequest struct {
	ID            string        `db:"id" json:"id"`
	LoginID       string        `db:"login_id" json:"login_id"`
	SecretHash    string        `db:"secret_hash" json:"-"`
	RequestedRole Role          `db:"requested_role" json:"requested_role"`
	TenantKey     string        `db:"tenant_key" json:"tenant_key"`
	OwningAdmin   string        `db:"owning_admin" json:"owning_admin"`
	DisplayName   string        `db:"display_name" json:"display_name"`
	Status        PendingStatus `db:"status" json:"status"`
	LastError     string        `db:"last_error" json:"last_error,omitempty"`
	SubmittedAt   time.Time     `db:"submitted_at" json:"submitted_at"`
}

// Account builds the directory row a pending request turns into once approved.
func (p *PendingRequest) Account(activation time.Time) *Account {
	return &Account{
		LoginID:        p.LoginID,
		SecretHash:     p.SecretHash,
		Role:           p.RequestedRole,
		TenantKey:      p.TenantKey,
		OwningAdmin:    p.OwningAdmin,
		DisplayName:    p.DisplayName,
		ActivationDate: activation,
	}
}

type PendingFilter struct {
	Role      Role
	TenantKey string
	Statuses  []PendingStatus
}

type Tenant struct {
	Key        string    `db:"tenant_key" json:"tenant_key"`
	DBName     string    `db:"db_name" json:"db_name"`
	SchemaName string    `db:"schema_name" json:"schema_name"`
	Ready      bool      `db:"ready" json:"ready"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// TenantDBName derives the tenant database name from its key.
func TenantDBName(tenantKey string) string {
	return NormalizeID(tenantKey)
}

type ResetStatus string

const (
	ResetPending  ResetStatus = "pending"
	ResetApproved ResetStatus = "approved"
)

type ResetRequest struct {
	ID            string      `db:"id" json:"id"`
	LoginID       string      `db:"login_id" json:"login_id"`
	Role          Role        `db:"role" json:"role"`
	NewSecretHash string      `db:"new_secret_hash" json:"-"`
	ApproverKey   string      `db:"approver_key" json:"approver_key"`
	TenantKey     string      `db:"tenant_key" json:"tenant_key"`
	Status        ResetStatus `db:"status" json:"status"`
	SubmittedAt   time.Time   `db:"submitted_at" json:"submitted_at"`
	DecidedAt     *time.Time  `db:"decided_at" json:"decided_at,omitempty"`
}

// ResetApproverKey routes admin resets to the SuperApprover and member resets to their DO.
func ResetApproverKey(role Role, tenantKey string) string {
	if role == RoleMember {
		return NormalizeID(tenantKey)
	}
	return SuperApproverKey
}

// SessionDescriptor is what a successful login hands back to the presentation layer.
type SessionDescriptor struct {
	LoginID     string `json:"login_id"`
	Role        Role   `json:"role"`
	TenantDB    string `json:"tenant_db"`
	DisplayName string `json:"display_name"`
}

// ApproverKey is the key reset requests are routed to for this session.
// SuperApprover sessions return an empty key, meaning no filter.
func (s *SessionDescriptor) ApproverKey() string {
	if s.Role == RoleSuperApprover {
		return ""
	}
	return s.TenantDB
}
