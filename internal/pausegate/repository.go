package pausegate

import (
	"context"
	"errors"

	"ticketforge/internal/shared/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Get(ctx context.Context) (*PauseState, error)
	SetPaused(ctx context.Context, paused bool, actorID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*PauseState, error) {
	var state PauseState
	err := r.db.WithContext(ctx).Where("id = ?", 1).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &PauseState{ID: 1, Paused: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// SetPaused flips the gate under a row lock. Pausing an already paused
// ledger fails with ContractPaused, unpausing an active one with NotPaused.
func (r *repository) SetPaused(ctx context.Context, paused bool, actorID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var state PauseState
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", 1).
			First(&state).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			state = PauseState{ID: 1, Paused: false}
			if err := tx.Create(&state).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if paused && state.Paused {
			return errs.ErrContractPaused
		}
		if !paused && !state.Paused {
			return errs.ErrNotPaused
		}

		return tx.Model(&PauseState{}).
			Where("id = ?", 1).
			Updates(map[string]interface{}{
				"paused":     paused,
				"changed_by": actorID,
				"changed_at": gorm.Expr("NOW()"),
			}).Error
	})
}
