package auth

import (
	"context"
	"errors"

	"ticketforge/internal/principals"

	"gorm.io/gorm"
)

type Repository interface {
	CreatePrincipal(ctx context.Context, principal *principals.Principal) error
	GetPrincipalByEmail(ctx context.Context, email string) (*principals.Principal, error)
	GetPrincipalByID(ctx context.Context, id string) (*principals.Principal, error)
	UpdatePassword(ctx context.Context, principalID string, hashedPassword string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreatePrincipal(ctx context.Context, principal *principals.Principal) error {
	return r.db.WithContext(ctx).Create(principal).Error
}

func (r *repository) GetPrincipalByEmail(ctx context.Context, email string) (*principals.Principal, error) {
	var principal principals.Principal
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&principal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	return &principal, nil
}

func (r *repository) GetPrincipalByID(ctx context.Context, id string) (*principals.Principal, error) {
	var principal principals.Principal
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&principal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	return &principal, nil
}

func (r *repository) UpdatePassword(ctx context.Context, principalID string, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&principals.Principal{}).
		Where("id = ?", principalID).
		Update("password", hashedPassword)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPrincipalNotFound
	}

	return nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&principals.Principal{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
