// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/storage"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/types"
)

func newTestService(ctrl *gomock.Controller, threshold int) (*Service, *MockDirectoryInterface, *MockHasherInterface) {
	directory := NewMockDirectoryInterface(ctrl)
	hasher := NewMockHasherInterface(ctrl)

	s := NewService(directory, hasher, threshold, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	return s, directory, hasher
}

func TestService_Authenticate(t *testing.T) {
	member := &types.Account{LoginID: "AG100", SecretHash: "hash", Role: types.RoleMember, TenantKey: "DO01", DisplayName: "Agent"}
	super := &types.Account{LoginID: "ROOT", SecretHash: "hash", Role: types.RoleSuperApprover}

	tests := []struct {
		name      string
		threshold int
		login     string
		secret    string
		setup     func(*MockDirectoryInterface, *MockHasherInterface)
		want      *types.SessionDescriptor
		wantErr   error
	}{
		{
			name:   "member login",
			login:  " ag100 ",
			secret: "pw",
			setup: func(d *MockDirectoryInterface, h *MockHasherInterface) {
				d.EXPECT().GetAccount(gomock.Any(), "AG100").Return(member, nil)
				h.EXPECT().Matches("hash", "pw").Return(true)
				d.EXPECT().ResetFailure(gomock.Any(), "AG100").Return(nil)
			},
			want: &types.SessionDescriptor{LoginID: "AG100", Role: types.RoleMember, TenantDB: "DO01", DisplayName: "Agent"},
		},
		{
			name:   "super approver login",
			login:  "ROOT",
			secret: "pw",
			setup: func(d *MockDirectoryInterface, h *MockHasherInterface) {
				d.EXPECT().GetAccount(gomock.Any(), "ROOT").Return(super, nil)
				h.EXPECT().Matches("hash", "pw").Return(true)
				d.EXPECT().ResetFailure(gomock.Any(), "ROOT").Return(nil)
			},
			want: &types.SessionDescriptor{LoginID: "ROOT", Role: types.RoleSuperApprover, TenantDB: types.SuperApproverDB},
		},
		{
			name:  "empty secret is counted",
			login: "AG100",
			setup: func(d *MockDirectoryInterface, h *MockHasherInterface) {
				d.EXPECT().GetAccount(gomock.Any(), "AG100").Return(member, nil)
				d.EXPECT().IncrementFailure(gomock.Any(), "AG100").Return(1, nil)
			},
			wantErr: types.ErrAuthFailure,
		},
		{
			name:    "empty login",
			login:   "  ",
			secret:  "pw",
			setup:   func(*MockDirectoryInterface, *MockHasherInterface) {},
			wantErr: types.ErrAuthFailure,
		},
		{
			name:   "unknown login",
			login:  "NOPE",
			secret: "pw",
			setup: func(d *MockDirectoryInterface, h *MockHasherInterface) {
				d.EXPECT().GetAccount(gomock.Any(), "NOPE").Return(nil, storage.ErrNotFound)
			},
			wantErr: types.ErrAuthFailure,
		},
		{
			name:   "wrong secret increments the counter",
			login:  "AG100",
			secret: "bad",
			setup: func(d *MockDirectoryInterface, h *MockHasherInterface) {
				d.EXPECT().GetAccount(gomock.Any(), "AG100").Return(member, nil)
				h.EXPECT().Matches("hash", "bad").Return(false)
				d.EXPECT().IncrementFailure(gomock.Any(), "AG100").Return(1, nil)
			},
			wantErr: types.ErrAuthFailure,
		},
		{
			name:   "counter failure still rejects",
			login:  "AG100",
			secret: "bad",
			setup: func(d *MockDirectoryInterface, h *MockHasherInterface) {
				d.EXPECT().GetAccount(gomock.Any(), "AG100").Return(member, nil)
				h.EXPECT().Matches("hash", "bad").Return(false)
				d.EXPECT().IncrementFailure(gomock.Any(), "AG100").Return(0, storage.ErrUnavailable)
			},
			wantErr: types.ErrAuthFailure,
		},
		{
			name:      "locked out",
			threshold: 3,
			login:     "AG100",
			secret:    "pw",
			setup: func(d *MockDirectoryInterface, h *MockHasherInterface) {
				d.EXPECT().GetAccount(gomock.Any(), "AG100").Return(member, nil)
				d.EXPECT().GetFailureCount(gomock.Any(), "AG100").Return(3, nil)
			},
			wantErr: types.ErrAuthFailure,
		},
		{
			name:      "below threshold",
			threshold: 3,
			login:     "AG100",
			secret:    "pw",
			setup: func(d *MockDirectoryInterface, h *MockHasherInterface) {
				d.EXPECT().GetAccount(gomock.Any(), "AG100").Return(member, nil)
				d.EXPECT().GetFailureCount(gomock.Any(), "AG100").Return(2, nil)
				h.EXPECT().Matches("hash", "pw").Return(true)
				d.EXPECT().ResetFailure(gomock.Any(), "AG100").Return(nil)
			},
			want: &types.SessionDescriptor{LoginID: "AG100", Role: types.RoleMember, TenantDB: "DO01", DisplayName: "Agent"},
		},
		{
			name:   "directory unavailable",
			login:  "AG100",
			secret: "pw",
			setup: func(d *MockDirectoryInterface, h *MockHasherInterface) {
				d.EXPECT().GetAccount(gomock.Any(), "AG100").Return(nil, storage.ErrUnavailable)
			},
			wantErr: storage.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, directory, hasher := newTestService(ctrl, tt.threshold)
			tt.setup(directory, hasher)

			session, err := s.Authenticate(context.Background(), tt.login, tt.secret)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *session != *tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, session)
			}
		})
	}
}
