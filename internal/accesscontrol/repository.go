package accesscontrol

import (
	"context"
	"errors"

	"ticketforge/internal/shared/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Grant(ctx context.Context, role Role, principalID, actorID uuid.UUID) (bool, error)
	Revoke(ctx context.Context, role Role, principalID, actorID uuid.UUID) (bool, error)
	Has(ctx context.Context, role Role, principalID uuid.UUID) (bool, error)
	ListGrants(ctx context.Context, role Role) ([]RoleGrant, error)
	ListRolesFor(ctx context.Context, principalID uuid.UUID) ([]RoleGrant, error)
	AuditTrail(ctx context.Context, principalID uuid.UUID, limit int) ([]RoleAuditEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Grant inserts a role grant if the principal does not already hold the
// role. Returns false without error when the grant already existed.
func (r *repository) Grant(ctx context.Context, role Role, principalID, actorID uuid.UUID) (bool, error) {
	changed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing RoleGrant
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("role = ? AND principal_id = ?", role, principalID).
			First(&existing).Error
		if err == nil {
			return nil // already granted, no-op
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		grant := RoleGrant{
			Role:        role,
			PrincipalID: principalID,
			GrantedBy:   actorID,
		}
		if err := tx.Create(&grant).Error; err != nil {
			return err
		}

		audit := RoleAuditEntry{
			Role:        role,
			PrincipalID: principalID,
			Action:      AuditActionGranted,
			ActorID:     actorID,
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}

		changed = true
		return nil
	})

	return changed, err
}

// Revoke removes a role grant. The admin role may never drop to zero
// holders, checked under a row lock inside the same transaction.
func (r *repository) Revoke(ctx context.Context, role Role, principalID, actorID uuid.UUID) (bool, error) {
	changed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing RoleGrant
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("role = ? AND principal_id = ?", role, principalID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to revoke, no-op
		}
		if err != nil {
			return err
		}

		if role == RoleAdmin {
			var adminCount int64
			if err := tx.Model(&RoleGrant{}).
				Set("gorm:query_option", "FOR UPDATE").
				Where("role = ?", RoleAdmin).
				Count(&adminCount).Error; err != nil {
				return err
			}
			if adminCount <= 1 {
				return errs.ErrCannotRemoveLastAdmin
			}
		}

		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}

		audit := RoleAuditEntry{
			Role:        role,
			PrincipalID: principalID,
			Action:      AuditActionRevoked,
			ActorID:     actorID,
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}

		changed = true
		return nil
	})

	return changed, err
}

func (r *repository) Has(ctx context.Context, role Role, principalID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RoleGrant{}).
		Where("role = ? AND principal_id = ?", role, principalID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) ListGrants(ctx context.Context, role Role) ([]RoleGrant, error) {
	var grants []RoleGrant
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at ASC").
		Find(&grants).Error
	return grants, err
}

func (r *repository) ListRolesFor(ctx context.Context, principalID uuid.UUID) ([]RoleGrant, error) {
	var grants []RoleGrant
	err := r.db.WithContext(ctx).
		Where("principal_id = ?", principalID).
		Order("created_at ASC").
		Find(&grants).Error
	return grants, err
}

func (r *repository) AuditTrail(ctx context.Context, principalID uuid.UUID, limit int) ([]RoleAuditEntry, error) {
	var entries []RoleAuditEntry
	query := r.db.WithContext(ctx).
		Where("principal_id = ?", principalID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}
