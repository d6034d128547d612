package events

import (
	"context"
	"errors"

	"ticketforge/internal/shared/errs"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, id uint64, apply func(event *Event) error) (*Event, error)
	GetByID(ctx context.Context, id uint64) (*Event, error)
	List(ctx context.Context, limit, offset int) ([]Event, error)
	Count(ctx context.Context) (int64, error)
	ByIndex(ctx context.Context, index int64) (*Event, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// Update loads the event under a row lock, applies the mutation and
// persists it within one transaction.
func (r *repository) Update(ctx context.Context, id uint64, apply func(event *Event) error) (*Event, error) {
	var updated *Event

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", id).
			First(&event).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrEventDoesNotExist
		}
		if err != nil {
			return err
		}

		if err := apply(&event); err != nil {
			return err
		}

		if err := tx.Save(&event).Error; err != nil {
			return err
		}

		updated = &event
		return nil
	})

	return updated, err
}

func (r *repository) GetByID(ctx context.Context, id uint64) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrEventDoesNotExist
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]Event, error) {
	var list []Event
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Event{}).Count(&count).Error
	return count, err
}

// ByIndex returns the event at a zero-based position in id order
func (r *repository) ByIndex(ctx context.Context, index int64) (*Event, error) {
	if index < 0 {
		return nil, errs.ErrIndexOutOfBounds
	}

	var event Event
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(int(index)).
		Limit(1).
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrIndexOutOfBounds
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}
