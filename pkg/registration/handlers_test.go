// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package registration

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	httptypes "github.com/canonical/tenant-directory/internal/http/types"
	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/types"
	"github.com/canonical/tenant-directory/pkg/authentication"
)

// sessionGuard admits the configured session when its role is allowed.
type sessionGuard struct {
	session *types.SessionDescriptor
}

func (g *sessionGuard) RequireRoles(roles ...types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if g.session == nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if !slices.Contains(roles, g.session.Role) {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(authentication.WithSession(r.Context(), g.session)))
		})
	}
}

var (
	superSession  = &types.SessionDescriptor{LoginID: "ROOT", Role: types.RoleSuperApprover, TenantDB: types.SuperApproverDB}
	adminSession  = &types.SessionDescriptor{LoginID: "DO01", Role: types.RoleTenantAdmin, TenantDB: "DO01"}
	memberSession = &types.SessionDescriptor{LoginID: "AG100", Role: types.RoleMember, TenantDB: "DO01"}
)

func newTestRouter(service ServiceInterface, session *types.SessionDescriptor) http.Handler {
	mux := chi.NewMux()
	NewAPI(service, &sessionGuard{session: session}, logging.NewNoopLogger()).RegisterEndpoints(mux)
	return mux
}

func TestAPI_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockServiceInterface(ctrl)
	service.EXPECT().Submit(gomock.Any(), &SubmitRequest{Role: "member", LoginID: "AG100", Secret: "pw", TenantKey: "DO01"}).
		Return(&types.PendingRequest{ID: "req-2"}, nil)

	body := `{"role":"member","login_id":"AG100","secret":"pw","tenant_key":"DO01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v0/registrations", strings.NewReader(body))
	w := httptest.NewRecorder()

	newTestRouter(service, nil).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp httptypes.Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if data, ok := resp.Data.(map[string]any); !ok || data["id"] != "req-2" {
		t.Errorf("expected request id in response, got %v", resp.Data)
	}
}

func TestAPI_SubmitErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*MockServiceInterface)
		wantStatus int
	}{
		{
			name:       "malformed body",
			body:       `{"role":`,
			setup:      func(*MockServiceInterface) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"role":"member","password":"pw"}`,
			setup:      func(*MockServiceInterface) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate login",
			body: `{"role":"member","login_id":"AG100","secret":"pw","tenant_key":"DO01"}`,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, types.ErrDuplicateIdentifier)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockServiceInterface(ctrl)
			tt.setup(service)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/registrations", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			newTestRouter(service, nil).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPI_ListPendingScopesTenantAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockServiceInterface(ctrl)
	service.EXPECT().ListPending(gomock.Any(), types.PendingFilter{Role: types.RoleMember, TenantKey: "DO01"}).
		Return([]*types.PendingRequest{{ID: "req-2"}}, nil)

	// the query asks for admins of another tenant, the session wins
	req := httptest.NewRequest(http.MethodGet, "/api/v0/registrations?role=tenant_admin&tenant_key=DO02", nil)
	w := httptest.NewRecorder()

	newTestRouter(service, adminSession).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAPI_ListPendingSuperApprover(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockServiceInterface(ctrl)
	service.EXPECT().ListPending(gomock.Any(), types.PendingFilter{Role: types.RoleTenantAdmin}).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/registrations?role=admin", nil)
	w := httptest.NewRecorder()

	newTestRouter(service, superSession).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAPI_MemberCannotList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodGet, "/api/v0/registrations", nil)
	w := httptest.NewRecorder()

	newTestRouter(NewMockServiceInterface(ctrl), memberSession).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestAPI_Approve(t *testing.T) {
	tests := []struct {
		name       string
		session    *types.SessionDescriptor
		setup      func(*MockServiceInterface)
		wantStatus int
	}{
		{
			name:    "super approver approves an admin",
			session: superSession,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().Approve(gomock.Any(), "req-1").Return(&types.Account{LoginID: "DO02", Role: types.RoleTenantAdmin}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "tenant admin approves own member",
			session: adminSession,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().Get(gomock.Any(), "req-1").Return(&types.PendingRequest{ID: "req-1", RequestedRole: types.RoleMember, TenantKey: "DO01"}, nil)
				s.EXPECT().Approve(gomock.Any(), "req-1").Return(&types.Account{LoginID: "AG100", Role: types.RoleMember}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "tenant admin cannot approve another tenant",
			session: adminSession,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().Get(gomock.Any(), "req-1").Return(&types.PendingRequest{ID: "req-1", RequestedRole: types.RoleMember, TenantKey: "DO02"}, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:    "tenant admin cannot approve an admin",
			session: adminSession,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().Get(gomock.Any(), "req-1").Return(&types.PendingRequest{ID: "req-1", RequestedRole: types.RoleTenantAdmin, TenantKey: "DO01"}, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:    "already processed",
			session: superSession,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().Approve(gomock.Any(), "req-1").Return(nil, types.ErrAlreadyProcessed)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "unknown tenant",
			session: superSession,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().Approve(gomock.Any(), "req-1").Return(nil, types.ErrUnknownTenant)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:    "partial failure",
			session: superSession,
			setup: func(s *MockServiceInterface) {
				s.EXPECT().Approve(gomock.Any(), "req-1").Return(nil, &types.FailedPartialError{RequestID: "req-1", Cause: errors.New("boom")})
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockServiceInterface(ctrl)
			tt.setup(service)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/registrations/req-1/approve", nil)
			w := httptest.NewRecorder()

			newTestRouter(service, tt.session).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPI_Reject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockServiceInterface(ctrl)
	service.EXPECT().Reject(gomock.Any(), "req-1").Return(types.ErrRepairRequired)

	req := httptest.NewRequest(http.MethodPost, "/api/v0/registrations/req-1/reject", nil)
	w := httptest.NewRecorder()

	newTestRouter(service, superSession).ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestAPI_RepairRestrictedToSuperApprover(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodPost, "/api/v0/registrations/req-1/repair", nil)
	w := httptest.NewRecorder()

	newTestRouter(NewMockServiceInterface(ctrl), adminSession).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestAPI_Repair(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockServiceInterface(ctrl)
	service.EXPECT().Repair(gomock.Any(), "req-1").Return(&types.Account{LoginID: "AG100"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v0/registrations/req-1/repair", nil)
	w := httptest.NewRecorder()

	newTestRouter(service, superSession).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
