package pausegate

import (
	"context"

	"ticketforge/internal/accesscontrol"
	"ticketforge/internal/notifications"
	"ticketforge/internal/shared/errs"
	"ticketforge/pkg/logger"

	"github.com/google/uuid"
)

// Gate is the read side other services consult before mutating state
type Gate interface {
	IsPaused(ctx context.Context) (bool, error)
	RequireActive(ctx context.Context) error
}

type Service interface {
	Gate
	Pause(ctx context.Context, actorID uuid.UUID) error
	Unpause(ctx context.Context, actorID uuid.UUID) error
	Status(ctx context.Context) (*PauseState, error)
}

type service struct {
	repo      Repository
	roles     accesscontrol.Service
	publisher notifications.Publisher
	log       *logger.Logger
}

func NewService(repo Repository, roles accesscontrol.Service, publisher notifications.Publisher, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		roles:     roles,
		publisher: publisher,
		log:       log,
	}
}

func (s *service) IsPaused(ctx context.Context) (bool, error) {
	state, err := s.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	return state.Paused, nil
}

// RequireActive returns ErrContractPaused while the ledger is paused
func (s *service) RequireActive(ctx context.Context) error {
	paused, err := s.IsPaused(ctx)
	if err != nil {
		return err
	}
	if paused {
		return errs.ErrContractPaused
	}
	return nil
}

func (s *service) Pause(ctx context.Context, actorID uuid.UUID) error {
	if err := s.roles.RequireRole(ctx, accesscontrol.RolePauser, actorID); err != nil {
		return err
	}
	if err := s.repo.SetPaused(ctx, true, actorID); err != nil {
		return err
	}

	s.log.LogPauseChanged(ctx, true, actorID.String())
	s.publish(ctx, notifications.LedgerPaused, actorID)
	return nil
}

func (s *service) Unpause(ctx context.Context, actorID uuid.UUID) error {
	if err := s.roles.RequireRole(ctx, accesscontrol.RolePauser, actorID); err != nil {
		return err
	}
	if err := s.repo.SetPaused(ctx, false, actorID); err != nil {
		return err
	}

	s.log.LogPauseChanged(ctx, false, actorID.String())
	s.publish(ctx, notifications.LedgerUnpaused, actorID)
	return nil
}

func (s *service) Status(ctx context.Context) (*PauseState, error) {
	return s.repo.Get(ctx)
}

func (s *service) publish(ctx context.Context, name string, actorID uuid.UUID) {
	record := notifications.Record{
		Name: name,
		Key:  "pause-state",
		Params: map[string]interface{}{
			"actor_id": actorID.String(),
		},
	}
	if err := s.publisher.Publish(ctx, record); err != nil {
		s.log.Error("Failed to publish pause notification", "name", name, "error", err)
	}
}
