// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/storage"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/types"
	"github.com/canonical/tenant-directory/internal/validation"
)

var _ ServiceInterface = (*Service)(nil)

// errLostRace marks a conditional update that matched no row.
var errLostRace = errors.New("request changed concurrently")

type SubmitRequest struct {
	Role        string `json:"role" validate:"required"`
	LoginID     string `json:"login_id" validate:"required,identifier"`
	Secret      string `json:"secret" validate:"required"`
	TenantKey   string `json:"tenant_key" validate:"required,identifier"`
	DisplayName string `json:"display_name" validate:"max=200"`
}

// Service is the provisioning engine. A registration goes through
//
//	submitted -> provisioning -> active (pending row deleted)
//	                          -> failed_partial (tenant copy missing, see Repair)
//	submitted -> rejected (pending row deleted)
//
// The directory account is written together with the provisioning status in
// one transaction, the tenant copy is written afterwards and can be replayed.
type Service struct {
	directory DirectoryInterface
	tenants   TenantStoreInterface
	hasher    HasherInterface
	validator *validation.Validator

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*types.PendingRequest, error) {
	ctx, span := s.tracer.Start(ctx, "registration.Service.Submit")
	defer span.End()

	in := *req
	in.LoginID = types.NormalizeID(in.LoginID)
	in.TenantKey = types.NormalizeID(in.TenantKey)
	in.DisplayName = strings.TrimSpace(in.DisplayName)

	if err := s.validator.Struct(&in); err != nil {
		return nil, err
	}

	role, ok := types.ParseRole(in.Role)
	switch {
	case !ok:
		return nil, types.NewValidationError("role", "must be tenant_admin or member")
	case role == types.RoleSuperApprover:
		return nil, types.NewValidationError("role", "super approver accounts cannot be requested")
	case role == types.RoleTenantAdmin && in.LoginID != in.TenantKey:
		return nil, types.NewValidationError("login_id", "must equal tenant_key for a tenant admin")
	}

	if _, err := s.directory.GetAccount(ctx, in.LoginID); err == nil {
		return nil, fmt.Errorf("login %s: %w", in.LoginID, types.ErrDuplicateIdentifier)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash secret: %w", err)
	}

	pending, err := s.directory.CreatePending(ctx, &types.PendingRequest{
		LoginID:       in.LoginID,
		SecretHash:    hash,
		RequestedRole: role,
		TenantKey:     in.TenantKey,
		OwningAdmin:   in.TenantKey,
		DisplayName:   in.DisplayName,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("login %s: %w", in.LoginID, types.ErrDuplicateIdentifier)
		}
		return nil, err
	}

	s.logger.Infof("registration %s submitted for %s %s", pending.ID, role, pending.LoginID)

	return pending, nil
}

func (s *Service) Get(ctx context.Context, id string) (*types.PendingRequest, error) {
	ctx, span := s.tracer.Start(ctx, "registration.Service.Get")
	defer span.End()

	return s.getPending(ctx, id)
}

func (s *Service) Approve(ctx context.Context, id string) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "registration.Service.Approve")
	defer span.End()

	p, err := s.getPending(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status != types.PendingSubmitted {
		// an earlier approval stopped after the directory write
		return s.resume(ctx, p)
	}

	if _, err := s.directory.GetAccount(ctx, p.LoginID); err == nil {
		return nil, s.existingAccount(ctx, p)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	tenant, err := s.tenantFor(ctx, p)
	if err != nil {
		s.outcome("approve", "rejected_tenant")
		return nil, err
	}

	account := p.Account(s.today())

	err = s.directory.WithTx(ctx, func(ctx context.Context) error {
		moved, err := s.directory.TransitionPending(ctx, p.ID, types.PendingSubmitted, types.PendingProvisioning, "")
		if err != nil {
			return err
		}
		if !moved {
			return errLostRace
		}

		if err := s.directory.CreateAccount(ctx, account); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return fmt.Errorf("login %s: %w", p.LoginID, types.ErrDuplicateIdentifier)
			}
			return err
		}

		return nil
	})

	switch {
	case errors.Is(err, errLostRace):
		return nil, fmt.Errorf("registration %s: %w", p.ID, types.ErrAlreadyProcessed)
	case err != nil:
		return nil, err
	}

	return s.complete(ctx, p, types.PendingProvisioning, tenant, account)
}

// existingAccount tells a concurrent approval that already created the account
// apart from a login that was taken by someone else.
func (s *Service) existingAccount(ctx context.Context, p *types.PendingRequest) error {
	current, err := s.getPending(ctx, p.ID)
	if err != nil {
		return err
	}
	if current.Status != types.PendingSubmitted {
		return fmt.Errorf("registration %s: %w", p.ID, types.ErrAlreadyProcessed)
	}

	return fmt.Errorf("login %s: %w", p.LoginID, types.ErrDuplicateIdentifier)
}

func (s *Service) Reject(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "registration.Service.Reject")
	defer span.End()

	deleted, err := s.directory.DeletePending(ctx, id, types.PendingSubmitted)
	if err != nil {
		return err
	}
	if deleted {
		s.logger.Infof("registration %s rejected", id)
		s.outcome("reject", "rejected")
		return nil
	}

	p, err := s.getPending(ctx, id)
	if err != nil {
		return err
	}

	return fmt.Errorf("registration %s is %s: %w", p.ID, p.Status, types.ErrRepairRequired)
}

// Repair finishes a registration whose directory account exists but whose
// tenant copy or pending row cleanup is missing.
func (s *Service) Repair(ctx context.Context, id string) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "registration.Service.Repair")
	defer span.End()

	p, err := s.getPending(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status == types.PendingSubmitted {
		return nil, fmt.Errorf("registration %s was never approved: %w", p.ID, types.ErrValidation)
	}

	return s.resume(ctx, p)
}

// ListPending defaults to submitted requests, the ones waiting for a decision.
func (s *Service) ListPending(ctx context.Context, filter types.PendingFilter) ([]*types.PendingRequest, error) {
	ctx, span := s.tracer.Start(ctx, "registration.Service.ListPending")
	defer span.End()

	filter.TenantKey = types.NormalizeID(filter.TenantKey)
	if len(filter.Statuses) == 0 {
		filter.Statuses = []types.PendingStatus{types.PendingSubmitted}
	}

	return s.directory.ListPending(ctx, filter)
}

func (s *Service) ListFailed(ctx context.Context) ([]*types.PendingRequest, error) {
	ctx, span := s.tracer.Start(ctx, "registration.Service.ListFailed")
	defer span.End()

	return s.directory.ListPending(ctx, types.PendingFilter{
		Statuses: []types.PendingStatus{types.PendingProvisioning, types.PendingFailedPartial},
	})
}

func (s *Service) getPending(ctx context.Context, id string) (*types.PendingRequest, error) {
	p, err := s.directory.GetPending(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("registration %s: %w", id, types.ErrAlreadyProcessed)
		}
		return nil, err
	}
	return p, nil
}

// tenantFor returns the tenant the account copy goes to. Members need an
// existing admin and a ready tenant, admins create their tenant on first use.
func (s *Service) tenantFor(ctx context.Context, p *types.PendingRequest) (*types.Tenant, error) {
	if p.RequestedRole == types.RoleMember {
		if _, err := s.directory.GetTenantAdmin(ctx, p.TenantKey); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("no tenant admin for %s: %w", p.TenantKey, types.ErrUnknownTenant)
			}
			return nil, err
		}

		tenant, err := s.directory.GetTenant(ctx, p.TenantKey)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("tenant %s: %w", p.TenantKey, types.ErrUnknownTenant)
			}
			return nil, err
		}
		if !tenant.Ready {
			return nil, fmt.Errorf("tenant %s is not provisioned: %w", p.TenantKey, types.ErrUnknownTenant)
		}

		return tenant, nil
	}

	dbName := types.TenantDBName(p.TenantKey)
	tenant, created, err := s.directory.EnsureTenant(
		ctx,
		&types.Tenant{Key: p.TenantKey, DBName: dbName, SchemaName: s.tenants.SchemaName(dbName)},
		func(ctx context.Context, t *types.Tenant) error {
			return s.tenants.CreateSchema(ctx, t.SchemaName)
		},
	)
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Infof("created tenant database %s for %s", tenant.DBName, tenant.Key)
	}

	return tenant, nil
}

// resume replays the tenant write and the pending row cleanup.
func (s *Service) resume(ctx context.Context, p *types.PendingRequest) (*types.Account, error) {
	account, err := s.directory.GetAccount(ctx, p.LoginID)
	if errors.Is(err, storage.ErrNotFound) {
		// removed by an operator in the meantime, rebuild it from the request
		account = p.Account(s.today())
		err = s.directory.CreateAccount(ctx, account)
	}
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenantFor(ctx, p)
	if err != nil {
		return nil, s.markFailed(ctx, p, p.Status, err)
	}

	return s.complete(ctx, p, p.Status, tenant, account)
}

func (s *Service) complete(ctx context.Context, p *types.PendingRequest, status types.PendingStatus, tenant *types.Tenant, account *types.Account) (*types.Account, error) {
	if err := s.tenants.UpsertAccount(ctx, tenant.SchemaName, account); err != nil {
		return nil, s.markFailed(ctx, p, status, err)
	}

	deleted, err := s.directory.DeletePending(ctx, p.ID, types.PendingProvisioning, types.PendingFailedPartial)
	if err != nil {
		return nil, &types.FailedPartialError{RequestID: p.ID, Cause: err}
	}
	if !deleted {
		return nil, fmt.Errorf("registration %s: %w", p.ID, types.ErrAlreadyProcessed)
	}

	s.logger.Infof("registration %s approved, %s %s active in %s", p.ID, account.Role, account.LoginID, tenant.DBName)
	s.outcome("approve", "active")

	return account, nil
}

func (s *Service) markFailed(ctx context.Context, p *types.PendingRequest, from types.PendingStatus, cause error) error {
	if _, err := s.directory.TransitionPending(ctx, p.ID, from, types.PendingFailedPartial, cause.Error()); err != nil {
		s.logger.Errorf("failed to record partial failure of registration %s: %v", p.ID, err)
	}

	s.outcome("approve", "failed_partial")

	return &types.FailedPartialError{RequestID: p.ID, Cause: cause}
}

func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) outcome(action, outcome string) {
	tags := map[string]string{"workflow": "registration", "action": action, "outcome": outcome}
	if err := s.monitor.IncProvisioningOutcome(tags); err != nil {
		s.logger.Debugf("error recording provisioning outcome: %v", err)
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
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
