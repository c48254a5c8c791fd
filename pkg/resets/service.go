// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resets

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/storage"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/types"
	"github.com/canonical/tenant-directory/internal/validation"
)

var _ ServiceInterface = (*Service)(nil)

var errAlreadyApproved = errors.New("reset already approved")

type SubmitRequest struct {
	LoginID   string `json:"login_id" validate:"required,identifier"`
	Role      string `json:"role" validate:"required"`
	NewSecret string `json:"new_secret" validate:"required"`
	TenantKey string `json:"tenant_key" validate:"omitempty,identifier"`
}

// Service routes secret reset requests to their approver and applies the
// approved ones to both copies of the account.
type Service struct {
	directory DirectoryInterface
	tenants   TenantStoreInterface
	hasher    HasherInterface
	validator *validation.Validator

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) Get(ctx context.Context, id string) (*types.ResetRequest, error) {
	ctx, span := s.tracer.Start(ctx, "resets.Service.Get")
	defer span.End()

	r, err := s.directory.GetReset(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("reset %s: %w", id, types.ErrAlreadyProcessed)
		}
		return nil, err
	}

	return r, nil
}

func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*types.ResetRequest, error) {
	ctx, span := s.tracer.Start(ctx, "resets.Service.Submit")
	defer span.End()

	in := *req
	in.LoginID = types.NormalizeID(in.LoginID)
	in.TenantKey = types.NormalizeID(in.TenantKey)

	if err := s.validator.Struct(&in); err != nil {
		return nil, err
	}

	role, ok := types.ParseRole(in.Role)
	if !ok || role == types.RoleSuperApprover {
		return nil, types.NewValidationError("role", "must be tenant_admin or member")
	}

	var (
		tenantKey string
		err       error
	)

	switch role {
	case types.RoleMember:
		tenantKey, err = s.checkMember(ctx, in.LoginID, in.TenantKey)
	case types.RoleTenantAdmin:
		tenantKey, err = s.checkAdmin(ctx, in.LoginID)
	}
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.NewSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash secret: %w", err)
	}

	r, err := s.directory.CreateReset(ctx, &types.ResetRequest{
		LoginID:       in.LoginID,
		Role:          role,
		NewSecretHash: hash,
		ApproverKey:   types.ResetApproverKey(role, tenantKey),
		TenantKey:     tenantKey,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("reset %s submitted for %s %s, routed to %s", r.ID, role, r.LoginID, r.ApproverKey)

	return r, nil
}

// checkMember requires an existing tenant whose copy holds the member.
func (s *Service) checkMember(ctx context.Context, loginID, tenantKey string) (string, error) {
	if tenantKey == "" {
		return "", types.NewValidationError("tenant_key", "required for member resets")
	}

	tenant, err := s.readyTenant(ctx, tenantKey)
	if err != nil {
		return "", err
	}

	account, err := s.tenants.GetAccount(ctx, tenant.SchemaName, loginID)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && account.Role != types.RoleMember) {
		return "", fmt.Errorf("member %s in %s: %w", loginID, tenantKey, types.ErrUnknownTenantMember)
	}
	if err != nil {
		return "", err
	}

	return tenantKey, nil
}

// checkAdmin requires a TenantAdmin account in the directory.
func (s *Service) checkAdmin(ctx context.Context, loginID string) (string, error) {
	account, err := s.directory.GetAccount(ctx, loginID)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && account.Role != types.RoleTenantAdmin) {
		return "", fmt.Errorf("tenant admin %s: %w", loginID, types.ErrUnknownTenant)
	}
	if err != nil {
		return "", err
	}

	return account.TenantKey, nil
}

func (s *Service) readyTenant(ctx context.Context, tenantKey string) (*types.Tenant, error) {
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

// ListPending lists every pending reset when approverKey is empty.
func (s *Service) ListPending(ctx context.Context, approverKey string) ([]*types.ResetRequest, error) {
	ctx, span := s.tracer.Start(ctx, "resets.Service.ListPending")
	defer span.End()

	return s.directory.ListResets(ctx, types.NormalizeID(approverKey), types.ResetPending)
}

// Approve applies the new secret under a lock on the reset row: the tenant
// copy first, then the directory secret and the approved status in the same
// directory transaction. A Reject racing it waits on the lock and then finds
// the request approved. When the directory step fails the tenant copy gets
// its previous secret back and the request stays pending.
func (s *Service) Approve(ctx context.Context, id string) (*types.ResetRequest, error) {
	ctx, span := s.tracer.Start(ctx, "resets.Service.Approve")
	defer span.End()

	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.Status == types.ResetApproved {
		return r, nil
	}

	tenant, err := s.readyTenant(ctx, r.TenantKey)
	if err != nil {
		return nil, err
	}

	var previous *types.Account

	err = s.directory.WithTx(ctx, func(ctx context.Context) error {
		locked, err := s.directory.LockReset(ctx, r.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("reset %s: %w", r.ID, types.ErrAlreadyProcessed)
			}
			return err
		}
		if locked.Status != types.ResetPending {
			return errAlreadyApproved
		}

		previous, err = s.tenants.GetAccount(ctx, tenant.SchemaName, r.LoginID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		updated, err := s.tenants.UpdateSecret(ctx, tenant.SchemaName, r.LoginID, r.Role, r.NewSecretHash)
		if err != nil {
			previous = nil
			return err
		}
		if !updated {
			previous = nil
			s.logger.Warnf("reset %s: no tenant copy of %s in %s", r.ID, r.LoginID, tenant.DBName)
		}

		if err := s.directory.UpdateAccountSecret(ctx, r.LoginID, r.NewSecretHash); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("account %s: %w", r.LoginID, types.ErrNotFound)
			}
			return err
		}

		marked, err := s.directory.MarkResetApproved(ctx, r.ID)
		if err != nil {
			return err
		}
		if !marked {
			return fmt.Errorf("reset %s: %w", r.ID, types.ErrAlreadyProcessed)
		}

		return nil
	})

	switch {
	case errors.Is(err, errAlreadyApproved):
		return s.Get(ctx, id)
	case err != nil:
		if previous != nil {
			s.restoreTenantSecret(ctx, tenant, r, previous)
		}
		return nil, err
	}

	s.outcome("approve", "approved")

	return s.Get(ctx, id)
}

// restoreTenantSecret puts the previous secret back on the tenant copy after
// the directory step of an approval failed.
func (s *Service) restoreTenantSecret(ctx context.Context, tenant *types.Tenant, r *types.ResetRequest, previous *types.Account) {
	if _, err := s.tenants.UpdateSecret(ctx, tenant.SchemaName, previous.LoginID, previous.Role, previous.SecretHash); err != nil {
		s.logger.Errorf("reset %s: tenant copy of %s in %s keeps the new secret: %v", r.ID, r.LoginID, tenant.DBName, err)
	}
}

// Reject deletes a pending reset. A missing one was already rejected.
func (s *Service) Reject(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "resets.Service.Reject")
	defer span.End()

	deleted, err := s.directory.DeleteReset(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		s.outcome("reject", "rejected")
		return nil
	}

	r, err := s.directory.GetReset(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return fmt.Errorf("reset %s is %s: %w", r.ID, r.Status, types.ErrAlreadyProcessed)
}

func (s *Service) outcome(action, outcome string) {
	tags := map[string]string{"workflow": "reset", "action": action, "outcome": outcome}
	if err := s.monitor.IncProvisioningOutcome(tags); err != nil {
		s.logger.Debugf("error recording reset outcome: %v", err)
	}
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
