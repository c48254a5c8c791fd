// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/monitoring"
	"github.com/canonical/tenant-directory/internal/storage"
	"github.com/canonical/tenant-directory/internal/testutil"
	"github.com/canonical/tenant-directory/internal/tracing"
	"github.com/canonical/tenant-directory/internal/types"
)

func newStorage(t *testing.T) *storage.Storage {
	t.Helper()

	dbs := testutil.NewDatabases(t)
	return storage.NewStorage(dbs.Directory, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func pendingAdmin(login string) *types.PendingRequest {
	return &types.PendingRequest{
		LoginID:       login,
		SecretHash:    "hash",
		RequestedRole: types.RoleTenantAdmin,
		TenantKey:     login,
		OwningAdmin:   login,
		DisplayName:   "District Office " + login,
	}
}

func TestPendingLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	first, err := s.CreatePending(ctx, pendingAdmin("DO01"))
	if err != nil {
		t.Fatalf("create pending: %v", err)
	}
	if first.Status != types.PendingSubmitted {
		t.Errorf("expected submitted, got %s", first.Status)
	}

	if _, err := s.CreatePending(ctx, pendingAdmin("DO01")); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected duplicate for second pending row, got %v", err)
	}

	second, err := s.CreatePending(ctx, pendingAdmin("DO02"))
	if err != nil {
		t.Fatalf("create pending: %v", err)
	}

	listed, err := s.ListPending(ctx, types.PendingFilter{Role: types.RoleTenantAdmin})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != first.ID || listed[1].ID != second.ID {
		t.Fatalf("expected submission order, got %+v", listed)
	}

	ok, err := s.TransitionPending(ctx, first.ID, types.PendingSubmitted, types.PendingProvisioning, "")
	if err != nil || !ok {
		t.Fatalf("expected transition, got %v %v", ok, err)
	}

	ok, err = s.TransitionPending(ctx, first.ID, types.PendingSubmitted, types.PendingProvisioning, "")
	if err != nil || ok {
		t.Fatalf("second transition should affect no rows, got %v %v", ok, err)
	}

	ok, err = s.DeletePending(ctx, first.ID, types.PendingSubmitted)
	if err != nil || ok {
		t.Fatalf("status guarded delete should not match, got %v %v", ok, err)
	}

	ok, err = s.DeletePending(ctx, first.ID, types.PendingProvisioning, types.PendingFailedPartial)
	if err != nil || !ok {
		t.Fatalf("expected delete, got %v %v", ok, err)
	}

	if _, err := s.GetPending(ctx, first.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCreatePending_ExistingAccount(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	err := s.CreateAccount(ctx, &types.Account{
		LoginID:        "DO01",
		SecretHash:     "hash",
		Role:           types.RoleTenantAdmin,
		TenantKey:      "DO01",
		OwningAdmin:    "DO01",
		ActivationDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	if _, err := s.CreatePending(ctx, pendingAdmin("DO01")); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected duplicate, got %v", err)
	}

	if err := s.CreateAccount(ctx, &types.Account{LoginID: "DO01", SecretHash: "x", Role: types.RoleMember, ActivationDate: time.Now()}); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected duplicate account insert to fail, got %v", err)
	}
}

func TestFailureCounter(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.IncrementFailure(ctx, "AG100"); err != nil {
				t.Errorf("increment: %v", err)
			}
		}()
	}
	wg.Wait()

	count, err := s.GetFailureCount(ctx, "AG100")
	if err != nil {
		t.Fatalf("get count: %v", err)
	}
	if count != 10 {
		t.Errorf("expected 10 attempts, got %d", count)
	}

	if err := s.ResetFailure(ctx, "AG100"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	count, err = s.GetFailureCount(ctx, "AG100")
	if err != nil || count != 0 {
		t.Errorf("expected 0 after reset, got %d %v", count, err)
	}
}

func TestEnsureTenant_ProvisionsOnce(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	var calls int32
	provision := func(ctx context.Context, tenant *types.Tenant) error {
		atomic.AddInt32(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return nil
	}

	var (
		wg      sync.WaitGroup
		created int32
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tenant, ok, err := s.EnsureTenant(ctx, &types.Tenant{Key: "DO01", DBName: "DO01", SchemaName: "tenant_DO01"}, provision)
			if err != nil {
				t.Errorf("ensure tenant: %v", err)
				return
			}
			if !tenant.Ready {
				t.Error("tenant should be ready")
			}
			if ok {
				atomic.AddInt32(&created, 1)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("expected one provisioning run, got %d", calls)
	}
	if created != 1 {
		t.Errorf("expected one caller to report creation, got %d", created)
	}
}

func TestEnsureTenant_FailedProvisionRetries(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	tenant := &types.Tenant{Key: "DO01", DBName: "DO01", SchemaName: "tenant_DO01"}
	boom := errors.New("schema creation failed")

	if _, _, err := s.EnsureTenant(ctx, tenant, func(context.Context, *types.Tenant) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected provisioning error, got %v", err)
	}

	if _, err := s.GetTenant(ctx, "DO01"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("failed provisioning should not leave a registry row, got %v", err)
	}

	got, created, err := s.EnsureTenant(ctx, tenant, func(context.Context, *types.Tenant) error { return nil })
	if err != nil || !created || !got.Ready {
		t.Fatalf("expected retry to provision, got %+v %v %v", got, created, err)
	}
}

func TestResetRequests(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	r, err := s.CreateReset(ctx, &types.ResetRequest{
		LoginID:       "AG100",
		Role:          types.RoleMember,
		NewSecretHash: "hash",
		ApproverKey:   "DO01",
		TenantKey:     "DO01",
	})
	if err != nil {
		t.Fatalf("create reset: %v", err)
	}

	if _, err := s.CreateReset(ctx, &types.ResetRequest{
		LoginID:       "DO02",
		Role:          types.RoleTenantAdmin,
		NewSecretHash: "hash",
		ApproverKey:   types.SuperApproverKey,
		TenantKey:     "DO02",
	}); err != nil {
		t.Fatalf("create reset: %v", err)
	}

	mine, err := s.ListResets(ctx, "DO01", types.ResetPending)
	if err != nil || len(mine) != 1 || mine[0].ID != r.ID {
		t.Fatalf("expected only the DO01 request, got %+v %v", mine, err)
	}

	all, err := s.ListResets(ctx, "", types.ResetPending)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected both requests, got %+v %v", all, err)
	}

	ok, err := s.MarkResetApproved(ctx, r.ID)
	if err != nil || !ok {
		t.Fatalf("expected approval, got %v %v", ok, err)
	}

	ok, err = s.MarkResetApproved(ctx, r.ID)
	if err != nil || ok {
		t.Fatalf("second approval should be a no-op, got %v %v", ok, err)
	}

	ok, err = s.DeleteReset(ctx, r.ID)
	if err != nil || ok {
		t.Fatalf("approved requests are kept, got %v %v", ok, err)
	}

	got, err := s.GetReset(ctx, r.ID)
	if err != nil || got.Status != types.ResetApproved || got.DecidedAt == nil {
		t.Fatalf("expected an approved request with a decision time, got %+v %v", got, err)
	}
}

func TestLockReset_HoldsRejection(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	r, err := s.CreateReset(ctx, &types.ResetRequest{
		LoginID:       "AG100",
		Role:          types.RoleMember,
		NewSecretHash: "hash",
		ApproverKey:   "DO01",
		TenantKey:     "DO01",
	})
	if err != nil {
		t.Fatalf("create reset: %v", err)
	}

	if _, err := s.LockReset(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	locked := make(chan struct{})
	release := make(chan struct{})
	approved := make(chan error, 1)

	go func() {
		approved <- s.WithTx(ctx, func(ctx context.Context) error {
			if _, err := s.LockReset(ctx, r.ID); err != nil {
				return err
			}
			close(locked)
			<-release

			_, err := s.MarkResetApproved(ctx, r.ID)
			return err
		})
	}()

	<-locked

	rejected := make(chan bool, 1)
	go func() {
		deleted, err := s.DeleteReset(ctx, r.ID)
		if err != nil {
			t.Errorf("delete reset: %v", err)
		}
		rejected <- deleted
	}()

	select {
	case <-rejected:
		t.Fatal("rejection should wait for the locked approval")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)

	if err := <-approved; err != nil {
		t.Fatalf("approve: %v", err)
	}
	if <-rejected {
		t.Error("rejection must not delete an approved request")
	}

	got, err := s.GetReset(ctx, r.ID)
	if err != nil || got.Status != types.ResetApproved {
		t.Fatalf("expected the request approved, got %+v %v", got, err)
	}
}
