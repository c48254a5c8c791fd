// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/storage"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

// Service resolves credentials against the directory. It never touches tenant data.
type Service struct {
	directory DirectoryInterface
	hasher    HasherInterface

	// lockoutThreshold of 0 keeps the failure counter informational
	lockoutThreshold int

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) Authenticate(ctx context.Context, loginID, secret string) (*types.SessionDescriptor, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.Authenticate")
	defer span.End()

	loginID = types.NormalizeID(loginID)
	if loginID == "" {
		s.logger.Security().AuthnFailure(loginID, "missing login")
		return nil, types.ErrAuthFailure
	}

	account, err := s.directory.GetAccount(ctx, loginID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Security().AuthnFailure(loginID, "unknown login")
			return nil, types.ErrAuthFailure
		}
		return nil, err
	}

	if s.lockoutThreshold > 0 {
		attempts, err := s.directory.GetFailureCount(ctx, loginID)
		if err != nil {
			return nil, err
		}
		if attempts >= s.lockoutThreshold {
			s.logger.Security().AuthnFailure(loginID, fmt.Sprintf("locked after %d failed attempts", attempts))
			return nil, types.ErrAuthFailure
		}
	}

	if secret == "" || !s.hasher.Matches(account.SecretHash, secret) {
		attempts, err := s.directory.IncrementFailure(ctx, loginID)
		if err != nil {
			s.logger.Errorf("failed to record failed login for %s: %v", loginID, err)
		}
		s.logger.Security().AuthnFailure(loginID, fmt.Sprintf("wrong secret, attempt %d", attempts))
		return nil, types.ErrAuthFailure
	}

	if err := s.directory.ResetFailure(ctx, loginID); err != nil {
		s.logger.Errorf("failed to reset failed logins for %s: %v", loginID, err)
	}

	session := &types.SessionDescriptor{
		LoginID:     account.LoginID,
		Role:        account.Role,
		TenantDB:    tenantDB(account),
		DisplayName: account.DisplayName,
	}

	s.logger.Security().AuthnSuccess(loginID)

	return session, nil
}

// tenantDB is derived from the stored account, never from caller input.
func tenantDB(a *types.Account) string {
	if a.Role == types.RoleSuperApprover {
		return types.SuperApproverDB
	}
	return types.TenantDBName(a.TenantKey)
}

func NewService(
	directory DirectoryInterface,
	hasher HasherInterface,
	lockoutThreshold int,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.directory = directory
	s.hasher = hasher
	s.lockoutThreshold = lockoutThreshold

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
