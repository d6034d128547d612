package accesscontrol

import (
	"context"

	"ticketforge/internal/notifications"
	"ticketforge/internal/shared/errs"
	"ticketforge/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	GrantRole(ctx context.Context, actorID uuid.UUID, role Role, principalID uuid.UUID) (bool, error)
	RevokeRole(ctx context.Context, actorID uuid.UUID, role Role, principalID uuid.UUID) (bool, error)
	HasRole(ctx context.Context, role Role, principalID uuid.UUID) (bool, error)
	RequireRole(ctx context.Context, role Role, principalID uuid.UUID) error
	ListGrants(ctx context.Context, role Role) ([]RoleGrant, error)
	RolesOf(ctx context.Context, principalID uuid.UUID) ([]RoleGrant, error)
	AuditTrail(ctx context.Context, principalID uuid.UUID, limit int) ([]RoleAuditEntry, error)
}

type service struct {
	repo      Repository
	publisher notifications.Publisher
	log       *logger.Logger
}

func NewService(repo Repository, publisher notifications.Publisher, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// GrantRole gives a role to a principal. Only admins may grant.
// Granting a role the principal already holds is a no-op.
func (s *service) GrantRole(ctx context.Context, actorID uuid.UUID, role Role, principalID uuid.UUID) (bool, error) {
	if err := s.RequireRole(ctx, RoleAdmin, actorID); err != nil {
		return false, err
	}
	if !role.IsValid() {
		return false, errs.ErrInvalidRole
	}

	changed, err := s.repo.Grant(ctx, role, principalID, actorID)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	s.log.LogRoleChange(ctx, AuditActionGranted, string(role), principalID.String(), actorID.String())
	s.publish(ctx, notifications.RoleGranted, principalID, role, actorID)
	return true, nil
}

// RevokeRole removes a role from a principal. Only admins may revoke,
// and the last admin can never be removed.
func (s *service) RevokeRole(ctx context.Context, actorID uuid.UUID, role Role, principalID uuid.UUID) (bool, error) {
	if err := s.RequireRole(ctx, RoleAdmin, actorID); err != nil {
		return false, err
	}
	if !role.IsValid() {
		return false, errs.ErrInvalidRole
	}

	changed, err := s.repo.Revoke(ctx, role, principalID, actorID)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	s.log.LogRoleChange(ctx, AuditActionRevoked, string(role), principalID.String(), actorID.String())
	s.publish(ctx, notifications.RoleRevoked, principalID, role, actorID)
	return true, nil
}

func (s *service) HasRole(ctx context.Context, role Role, principalID uuid.UUID) (bool, error) {
	return s.repo.Has(ctx, role, principalID)
}

// RequireRole returns ErrUnauthorized unless the principal holds the role
func (s *service) RequireRole(ctx context.Context, role Role, principalID uuid.UUID) error {
	has, err := s.repo.Has(ctx, role, principalID)
	if err != nil {
		return err
	}
	if !has {
		return errs.ErrUnauthorized
	}
	return nil
}

func (s *service) ListGrants(ctx context.Context, role Role) ([]RoleGrant, error) {
	return s.repo.ListGrants(ctx, role)
}

func (s *service) RolesOf(ctx context.Context, principalID uuid.UUID) ([]RoleGrant, error) {
	return s.repo.ListRolesFor(ctx, principalID)
}

func (s *service) AuditTrail(ctx context.Context, principalID uuid.UUID, limit int) ([]RoleAuditEntry, error) {
	return s.repo.AuditTrail(ctx, principalID, limit)
}

func (s *service) publish(ctx context.Context, name string, principalID uuid.UUID, role Role, actorID uuid.UUID) {
	record := notifications.Record{
		Name: name,
		Key:  principalID.String(),
		Params: map[string]interface{}{
			"role":         role,
			"principal_id": principalID.String(),
			"actor_id":     actorID.String(),
		},
	}
	if err := s.publisher.Publish(ctx, record); err != nil {
		s.log.Error("Failed to publish role notification", "name", name, "error", err)
	}
}
