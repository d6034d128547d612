package pausegate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ticketforge/internal/accesscontrol"
	"ticketforge/internal/notifications"
	"ticketforge/internal/shared/errs"
	"ticketforge/pkg/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	mu    sync.Mutex
	state PauseState
}

func (f *fakeRepo) Get(ctx context.Context) (*PauseState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.state
	return &state, nil
}

func (f *fakeRepo) SetPaused(ctx context.Context, paused bool, actorID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if paused && f.state.Paused {
		return errs.ErrContractPaused
	}
	if !paused && !f.state.Paused {
		return errs.ErrNotPaused
	}
	f.state.Paused = paused
	f.state.ChangedBy = actorID
	return nil
}

type stubRoles struct {
	pausers map[uuid.UUID]bool
}

func (s *stubRoles) RequireRole(ctx context.Context, role accesscontrol.Role, principalID uuid.UUID) error {
	if role == accesscontrol.RolePauser && s.pausers[principalID] {
		return nil
	}
	return errs.ErrUnauthorized
}

func (s *stubRoles) GrantRole(ctx context.Context, actorID uuid.UUID, role accesscontrol.Role, principalID uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubRoles) RevokeRole(ctx context.Context, actorID uuid.UUID, role accesscontrol.Role, principalID uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubRoles) HasRole(ctx context.Context, role accesscontrol.Role, principalID uuid.UUID) (bool, error) {
	return s.pausers[principalID], nil
}

func (s *stubRoles) ListGrants(ctx context.Context, role accesscontrol.Role) ([]accesscontrol.RoleGrant, error) {
	return nil, nil
}

func (s *stubRoles) RolesOf(ctx context.Context, principalID uuid.UUID) ([]accesscontrol.RoleGrant, error) {
	return nil, nil
}

func (s *stubRoles) AuditTrail(ctx context.Context, principalID uuid.UUID, limit int) ([]accesscontrol.RoleAuditEntry, error) {
	return nil, nil
}

type dropPublisher struct{}

func (dropPublisher) Publish(ctx context.Context, record notifications.Record) error { return nil }

func (dropPublisher) Close() error { return nil }

func newTestService(t *testing.T) (Service, uuid.UUID) {
	t.Helper()
	pauser := uuid.New()
	roles := &stubRoles{pausers: map[uuid.UUID]bool{pauser: true}}
	svc := NewService(&fakeRepo{}, roles, dropPublisher{}, logger.New())
	return svc, pauser
}

func TestPauseUnpause(t *testing.T) {
	ctx := context.Background()

	t.Run("pauser pauses and unpauses", func(t *testing.T) {
		svc, pauser := newTestService(t)

		if err := svc.Pause(ctx, pauser); err != nil {
			t.Fatalf("Pause: %v", err)
		}
		if err := svc.RequireActive(ctx); !errors.Is(err, errs.ErrContractPaused) {
			t.Fatalf("RequireActive while paused = %v, want ErrContractPaused", err)
		}

		if err := svc.Unpause(ctx, pauser); err != nil {
			t.Fatalf("Unpause: %v", err)
		}
		if err := svc.RequireActive(ctx); err != nil {
			t.Fatalf("RequireActive while active = %v, want nil", err)
		}
	})

	t.Run("double pause is rejected", func(t *testing.T) {
		svc, pauser := newTestService(t)

		if err := svc.Pause(ctx, pauser); err != nil {
			t.Fatalf("Pause: %v", err)
		}
		if err := svc.Pause(ctx, pauser); !errors.Is(err, errs.ErrContractPaused) {
			t.Fatalf("second Pause = %v, want ErrContractPaused", err)
		}
	})

	t.Run("unpause while active is rejected", func(t *testing.T) {
		svc, pauser := newTestService(t)

		if err := svc.Unpause(ctx, pauser); !errors.Is(err, errs.ErrNotPaused) {
			t.Fatalf("Unpause while active = %v, want ErrNotPaused", err)
		}
	})

	t.Run("non-pauser cannot flip the gate", func(t *testing.T) {
		svc, _ := newTestService(t)
		outsider := uuid.New()

		if err := svc.Pause(ctx, outsider); !errors.Is(err, errs.ErrUnauthorized) {
			t.Fatalf("Pause by outsider = %v, want ErrUnauthorized", err)
		}
		if err := svc.Unpause(ctx, outsider); !errors.Is(err, errs.ErrUnauthorized) {
			t.Fatalf("Unpause by outsider = %v, want ErrUnauthorized", err)
		}
	})
}
