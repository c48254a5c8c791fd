// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	httptypes "github.com/canonical/tenant-directory/internal/http/types"
	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/types"
)

func TestAPI_Login(t *testing.T) {
	session := &types.SessionDescriptor{LoginID: "AG100", Role: types.RoleMember, TenantDB: "DO01"}
	expiresAt := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		setup      func(*MockServiceInterface, *MockTokenIssuerInterface)
		wantStatus int
	}{
		{
			name: "valid credentials",
			body: `{"login_id":"AG100","secret":"pw"}`,
			setup: func(s *MockServiceInterface, i *MockTokenIssuerInterface) {
				s.EXPECT().Authenticate(gomock.Any(), "AG100", "pw").Return(session, nil)
				i.EXPECT().Issue(gomock.Any(), session).Return("signed", expiresAt, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "invalid credentials",
			body: `{"login_id":"AG100","secret":"bad"}`,
			setup: func(s *MockServiceInterface, i *MockTokenIssuerInterface) {
				s.EXPECT().Authenticate(gomock.Any(), "AG100", "bad").Return(nil, types.ErrAuthFailure)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed body",
			body:       `not json`,
			setup:      func(*MockServiceInterface, *MockTokenIssuerInterface) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockServiceInterface(ctrl)
			issuer := NewMockTokenIssuerInterface(ctrl)
			tt.setup(service, issuer)

			mux := chi.NewMux()
			NewAPI(service, issuer, logging.NewNoopLogger()).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/sessions", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}

			if tt.wantStatus != http.StatusOK {
				var resp httptypes.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode error: %v", err)
				}
				if resp.Status != tt.wantStatus {
					t.Errorf("expected status %d in body, got %d", tt.wantStatus, resp.Status)
				}
				return
			}

			var resp struct {
				Data LoginResponse `json:"data"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Data.Token != "signed" || resp.Data.Session.TenantDB != "DO01" || !resp.Data.ExpiresAt.Equal(expiresAt) {
				t.Errorf("unexpected response %+v", resp.Data)
			}
		})
	}
}
