// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/storage"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/types"
	"github.com/canonical/tenant-directory/internal/validation"
)

var _ ServiceInterface = (*Service)(nil)

const dateLayout = "2006-01-02"

type ScheduleRequest struct {
	Role           string `json:"role" validate:"required"`
	ActivationDate string `json:"activation_date" validate:"required,datetime=2006-01-02"`
}

type BootstrapRequest struct {
	LoginID     string `json:"login_id" validate:"required,identifier"`
	Secret      string `json:"secret" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"max=200"`
}

// Service manages active accounts. The directory is authoritative, tenant
// copies follow it.
type Service struct {
	directory DirectoryInterface
	tenants   TenantStoreInterface
	hasher    HasherInterface
	validator *validation.Validator

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) GetAccount(ctx context.Context, loginID string) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.GetAccount")
	defer span.End()

	account, err := s.directory.GetAccount(ctx, types.NormalizeID(loginID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("account %s: %w", loginID, types.ErrNotFound)
		}
		return nil, err
	}

	return account, nil
}

func (s *Service) ListAccounts(ctx context.Context, owningAdmin string) ([]*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.ListAccounts")
	defer span.End()

	return s.directory.ListAccounts(ctx, types.NormalizeID(owningAdmin))
}

// ListTenantAccounts reads the copies held by the tenant itself.
func (s *Service) ListTenantAccounts(ctx context.Context, tenantKey string) ([]*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.ListTenantAccounts")
	defer span.End()

	tenant, err := s.tenant(ctx, types.NormalizeID(tenantKey))
	if err != nil {
		return nil, err
	}

	return s.tenants.ListAccounts(ctx, tenant.SchemaName)
}

// DeleteAccount removes the directory account, which revokes the login, and
// then the tenant copy. A tenant admin goes only once its members are gone.
func (s *Service) DeleteAccount(ctx context.Context, loginID string) error {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.DeleteAccount")
	defer span.End()

	account, err := s.GetAccount(ctx, loginID)
	if err != nil {
		return err
	}

	switch account.Role {
	case types.RoleSuperApprover:
		return types.NewValidationError("login_id", "the super approver cannot be deleted")
	case types.RoleTenantAdmin:
		members, err := s.directory.ListAccounts(ctx, account.LoginID)
		if err != nil {
			return err
		}
		for _, m := range members {
			if m.LoginID != account.LoginID {
				return types.NewValidationError("login_id", "tenant admin still owns member accounts")
			}
		}
	}

	deleted, err := s.directory.DeleteAccount(ctx, account.LoginID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("account %s: %w", account.LoginID, types.ErrNotFound)
	}

	if err := s.directory.ResetFailure(ctx, account.LoginID); err != nil {
		s.logger.Warnf("failed to clear failed logins of %s: %v", account.LoginID, err)
	}

	tenant, err := s.tenant(ctx, account.TenantKey)
	if err != nil {
		s.logger.Warnf("account %s deleted, tenant copy left in place: %v", account.LoginID, err)
		return nil
	}

	if _, err := s.tenants.DeleteAccount(ctx, tenant.SchemaName, account.LoginID); err != nil {
		s.logger.Warnf("account %s deleted, tenant copy left in place: %v", account.LoginID, err)
	}

	return nil
}

// UpdateSchedule changes role and activation date in both copies.
func (s *Service) UpdateSchedule(ctx context.Context, loginID string, req *ScheduleRequest) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.UpdateSchedule")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	role, ok := types.ParseRole(req.Role)
	if !ok || role == types.RoleSuperApprover {
		return nil, types.NewValidationError("role", "must be tenant_admin or member")
	}

	activation, err := time.Parse(dateLayout, req.ActivationDate)
	if err != nil {
		return nil, types.NewValidationError("activation_date", "must be a date")
	}

	account, err := s.GetAccount(ctx, loginID)
	if err != nil {
		return nil, err
	}

	if account.Role == types.RoleSuperApprover {
		return nil, types.NewValidationError("login_id", "the super approver has no schedule")
	}
	if role == types.RoleTenantAdmin && account.LoginID != account.TenantKey {
		return nil, types.NewValidationError("role", "a tenant admin login must equal its tenant key")
	}
	// members reference the tenant through its admin, and an admin's login
	// is its tenant key, so the tenant could never get another one
	if account.Role == types.RoleTenantAdmin && role != types.RoleTenantAdmin {
		return nil, types.NewValidationError("role", "a tenant admin cannot be demoted")
	}

	if err := s.directory.UpdateAccountSchedule(ctx, account.LoginID, role, activation); err != nil {
		return nil, err
	}

	account.Role = role
	account.ActivationDate = activation

	tenant, err := s.tenant(ctx, account.TenantKey)
	if err != nil {
		return nil, err
	}

	updated, err := s.tenants.UpdateSchedule(ctx, tenant.SchemaName, account.LoginID, role, activation)
	if err != nil {
		return nil, err
	}
	if !updated {
		s.logger.Warnf("no tenant copy of %s in %s to reschedule", account.LoginID, tenant.DBName)
	}

	return account, nil
}

// Bootstrap creates the SuperApprover account unless one with that login
// exists already. The bool reports whether an account was created.
func (s *Service) Bootstrap(ctx context.Context, req *BootstrapRequest) (*types.Account, bool, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.Bootstrap")
	defer span.End()

	in := *req
	in.LoginID = types.NormalizeID(in.LoginID)

	if err := s.validator.Struct(&in); err != nil {
		return nil, false, err
	}

	existing, err := s.directory.GetAccount(ctx, in.LoginID)
	switch {
	case err == nil && existing.Role == types.RoleSuperApprover:
		return existing, false, nil
	case err == nil:
		return nil, false, fmt.Errorf("login %s: %w", in.LoginID, types.ErrDuplicateIdentifier)
	case !errors.Is(err, storage.ErrNotFound):
		return nil, false, err
	}

	hash, err := s.hasher.Hash(in.Secret)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash secret: %w", err)
	}

	now := time.Now().UTC()
	account := &types.Account{
		LoginID:        in.LoginID,
		SecretHash:     hash,
		Role:           types.RoleSuperApprover,
		DisplayName:    in.DisplayName,
		ActivationDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}

	if err := s.directory.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, false, fmt.Errorf("login %s: %w", in.LoginID, types.ErrDuplicateIdentifier)
		}
		return nil, false, err
	}

	s.logger.Security().AdminAction("bootstrap", "create_super_approver", account.LoginID)

	return account, true, nil
}

func (s *Service) tenant(ctx context.Context, tenantKey string) (*types.Tenant, error) {
	tenant, err := s.directory.GetTenant(ctx, tenantKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("tenant %s: %w", tenantKey, types.ErrUnknownTenant)
		}
		return nil, err
	}
	if !tenant.Ready {
		return nil, fmt.Errorf("tenant %s is not provisioned: %w", tenantKey, types.ErrUnknownTenant)
	}
	return tenant, nil
}

func NewService(
	directory DirectoryInterface,
	tenants TenantStoreInterface,
	hasher HasherInterface,
	validator *validation.Validator,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.directory = directory
	s.tenants = tenants
	s.hasher = hasher
	s.validator = validator

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
