package accesscontrol

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ticketforge/internal/notifications"
	"ticketforge/internal/shared/errs"
	"ticketforge/pkg/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	mu     sync.Mutex
	grants map[string]RoleGrant
	audit  []RoleAuditEntry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{grants: make(map[string]RoleGrant)}
}

func grantKey(role Role, principalID uuid.UUID) string {
	return string(role) + "/" + principalID.String()
}

func (f *fakeRepo) Grant(ctx context.Context, role Role, principalID, actorID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := grantKey(role, principalID)
	if _, ok := f.grants[key]; ok {
		return false, nil
	}
	f.grants[key] = RoleGrant{Role: role, PrincipalID: principalID, GrantedBy: actorID}
	f.audit = append(f.audit, RoleAuditEntry{Role: role, PrincipalID: principalID, Action: AuditActionGranted, ActorID: actorID})
	return true, nil
}

func (f *fakeRepo) Revoke(ctx context.Context, role Role, principalID, actorID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := grantKey(role, principalID)
	if _, ok := f.grants[key]; !ok {
		return false, nil
	}
	if role == RoleAdmin {
		admins := 0
		for _, g := range f.grants {
			if g.Role == RoleAdmin {
				admins++
			}
		}
		if admins <= 1 {
			return false, errs.ErrCannotRemoveLastAdmin
		}
	}
	delete(f.grants, key)
	f.audit = append(f.audit, RoleAuditEntry{Role: role, PrincipalID: principalID, Action: AuditActionRevoked, ActorID: actorID})
	return true, nil
}

func (f *fakeRepo) Has(ctx context.Context, role Role, principalID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.grants[grantKey(role, principalID)]
	return ok, nil
}

func (f *fakeRepo) ListGrants(ctx context.Context, role Role) ([]RoleGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []RoleGrant
	for _, g := range f.grants {
		if g.Role == role {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListRolesFor(ctx context.Context, principalID uuid.UUID) ([]RoleGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []RoleGrant
	for _, g := range f.grants {
		if g.PrincipalID == principalID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRepo) AuditTrail(ctx context.Context, principalID uuid.UUID, limit int) ([]RoleAuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []RoleAuditEntry
	for i := len(f.audit) - 1; i >= 0; i-- {
		if f.audit[i].PrincipalID == principalID {
			out = append(out, f.audit[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type capturingPublisher struct {
	mu      sync.Mutex
	records []notifications.Record
}

func (p *capturingPublisher) Publish(ctx context.Context, record notifications.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append(p.records, record)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func (p *capturingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.records))
	for i, r := range p.records {
		out[i] = r.Name
	}
	return out
}

func newTestService(t *testing.T) (Service, *fakeRepo, *capturingPublisher) {
	t.Helper()
	repo := newFakeRepo()
	publisher := &capturingPublisher{}
	svc := NewService(repo, publisher, logger.New())
	return svc, repo, publisher
}

func seedAdmin(t *testing.T, repo *fakeRepo) uuid.UUID {
	t.Helper()
	admin := uuid.New()
	if _, err := repo.Grant(context.Background(), RoleAdmin, admin, admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}

func TestGrantRole(t *testing.T) {
	ctx := context.Background()

	t.Run("admin grants a role", func(t *testing.T) {
		svc, repo, publisher := newTestService(t)
		admin := seedAdmin(t, repo)
		target := uuid.New()

		changed, err := svc.GrantRole(ctx, admin, RoleMinter, target)
		if err != nil {
			t.Fatalf("GrantRole: %v", err)
		}
		if !changed {
			t.Fatal("expected grant to report a change")
		}

		has, _ := svc.HasRole(ctx, RoleMinter, target)
		if !has {
			t.Fatal("expected target to hold MINTER")
		}
		if got := publisher.names(); len(got) != 1 || got[0] != notifications.RoleGranted {
			t.Fatalf("notifications = %v, want one %s", got, notifications.RoleGranted)
		}
	})

	t.Run("duplicate grant is a silent no-op", func(t *testing.T) {
		svc, repo, publisher := newTestService(t)
		admin := seedAdmin(t, repo)
		target := uuid.New()

		if _, err := svc.GrantRole(ctx, admin, RoleOrganizer, target); err != nil {
			t.Fatalf("first grant: %v", err)
		}
		changed, err := svc.GrantRole(ctx, admin, RoleOrganizer, target)
		if err != nil {
			t.Fatalf("second grant: %v", err)
		}
		if changed {
			t.Fatal("duplicate grant must not report a change")
		}
		if got := publisher.names(); len(got) != 1 {
			t.Fatalf("duplicate grant must not publish, got %v", got)
		}
	})

	t.Run("non-admin cannot grant", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		outsider := uuid.New()

		_, err := svc.GrantRole(ctx, outsider, RoleMinter, uuid.New())
		if !errors.Is(err, errs.ErrUnauthorized) {
			t.Fatalf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		admin := seedAdmin(t, repo)

		_, err := svc.GrantRole(ctx, admin, Role("SUPERUSER"), uuid.New())
		if !errors.Is(err, errs.ErrInvalidRole) {
			t.Fatalf("err = %v, want ErrInvalidRole", err)
		}
	})
}

func TestRevokeRole(t *testing.T) {
	ctx := context.Background()

	t.Run("admin revokes a role", func(t *testing.T) {
		svc, repo, publisher := newTestService(t)
		admin := seedAdmin(t, repo)
		target := uuid.New()

		if _, err := svc.GrantRole(ctx, admin, RolePauser, target); err != nil {
			t.Fatalf("grant: %v", err)
		}
		changed, err := svc.RevokeRole(ctx, admin, RolePauser, target)
		if err != nil {
			t.Fatalf("RevokeRole: %v", err)
		}
		if !changed {
			t.Fatal("expected revoke to report a change")
		}

		has, _ := svc.HasRole(ctx, RolePauser, target)
		if has {
			t.Fatal("expected PAUSER to be revoked")
		}
		names := publisher.names()
		if names[len(names)-1] != notifications.RoleRevoked {
			t.Fatalf("last notification = %s, want %s", names[len(names)-1], notifications.RoleRevoked)
		}
	})

	t.Run("revoking an absent role is a silent no-op", func(t *testing.T) {
		svc, repo, publisher := newTestService(t)
		admin := seedAdmin(t, repo)

		changed, err := svc.RevokeRole(ctx, admin, RoleMinter, uuid.New())
		if err != nil {
			t.Fatalf("RevokeRole: %v", err)
		}
		if changed {
			t.Fatal("absent revoke must not report a change")
		}
		if got := publisher.names(); len(got) != 0 {
			t.Fatalf("absent revoke must not publish, got %v", got)
		}
	})

	t.Run("last admin cannot be removed", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		admin := seedAdmin(t, repo)

		_, err := svc.RevokeRole(ctx, admin, RoleAdmin, admin)
		if !errors.Is(err, errs.ErrCannotRemoveLastAdmin) {
			t.Fatalf("err = %v, want ErrCannotRemoveLastAdmin", err)
		}
	})

	t.Run("second admin can be removed while one remains", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		admin := seedAdmin(t, repo)
		second := uuid.New()

		if _, err := svc.GrantRole(ctx, admin, RoleAdmin, second); err != nil {
			t.Fatalf("grant second admin: %v", err)
		}
		changed, err := svc.RevokeRole(ctx, admin, RoleAdmin, second)
		if err != nil {
			t.Fatalf("RevokeRole: %v", err)
		}
		if !changed {
			t.Fatal("expected second admin revoke to succeed")
		}
	})

	t.Run("non-admin cannot revoke", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		admin := seedAdmin(t, repo)
		outsider := uuid.New()

		_, err := svc.RevokeRole(ctx, outsider, RoleAdmin, admin)
		if !errors.Is(err, errs.ErrUnauthorized) {
			t.Fatalf("err = %v, want ErrUnauthorized", err)
		}
	})
}

func TestAuditTrail(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)
	admin := seedAdmin(t, repo)
	target := uuid.New()

	if _, err := svc.GrantRole(ctx, admin, RoleMinter, target); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if _, err := svc.RevokeRole(ctx, admin, RoleMinter, target); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	entries, err := svc.AuditTrail(ctx, target, 10)
	if err != nil {
		t.Fatalf("AuditTrail: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Action != AuditActionRevoked || entries[1].Action != AuditActionGranted {
		t.Fatalf("audit order = %s,%s, want REVOKED,GRANTED", entries[0].Action, entries[1].Action)
	}
}
