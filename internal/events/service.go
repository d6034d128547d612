package events

import (
	"context"
	"time"

	"ticketforge/internal/accesscontrol"
	"ticketforge/internal/notifications"
	"ticketforge/internal/pausegate"
	"ticketforge/internal/shared/constants"
	"ticketforge/internal/shared/errs"
	"ticketforge/pkg/cache"
	"ticketforge/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	CreateEvent(ctx context.Context, actorID uuid.UUID, req *CreateEventRequest) (*Event, error)
	UpdateEvent(ctx context.Context, actorID uuid.UUID, id uint64, req *UpdateEventRequest) (*Event, error)
	SetEventStatus(ctx context.Context, actorID uuid.UUID, id uint64, active bool) (*Event, error)
	GetEventMetadata(ctx context.Context, id uint64) (*Event, error)
	ListEvents(ctx context.Context, limit, offset int) ([]Event, error)
	IsEventActive(ctx context.Context, id uint64) (bool, error)
	IsEventOrganizer(ctx context.Context, id uint64, principalID uuid.UUID) (bool, error)
	TotalEvents(ctx context.Context) (int64, error)
	EventByIndex(ctx context.Context, index int64) (*Event, error)
}

type service struct {
	repo      Repository
	roles     accesscontrol.Service
	gate      pausegate.Gate
	cache     cache.Service
	publisher notifications.Publisher
	log       *logger.Logger
}

func NewService(repo Repository, roles accesscontrol.Service, gate pausegate.Gate, cacheService cache.Service, publisher notifications.Publisher, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		roles:     roles,
		gate:      gate,
		cache:     cacheService,
		publisher: publisher,
		log:       log,
	}
}

// CreateEvent registers a new event. Only organizers may create, and the
// resale policy is validated up front.
func (s *service) CreateEvent(ctx context.Context, actorID uuid.UUID, req *CreateEventRequest) (*Event, error) {
	if err := s.roles.RequireRole(ctx, accesscontrol.RoleOrganizer, actorID); err != nil {
		return nil, err
	}
	if err := s.gate.RequireActive(ctx); err != nil {
		return nil, err
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, errs.ErrInvalidTimeRange
	}
	if req.RoyaltyBps < 0 || req.RoyaltyBps > MaxRoyaltyBps {
		return nil, errs.ErrInvalidRoyalty
	}
	if req.MaxResalePrice > 0 && req.MinResalePrice > req.MaxResalePrice {
		return nil, errs.ErrInvalidResaleBounds
	}

	event := &Event{
		Organizer:      actorID,
		Name:           req.Name,
		MetadataRef:    req.MetadataRef,
		StartTime:      req.StartTime.UTC(),
		EndTime:        req.EndTime.UTC(),
		Active:         true,
		RoyaltyBps:     req.RoyaltyBps,
		MinResalePrice: req.MinResalePrice,
		MaxResalePrice: req.MaxResalePrice,
		CreatedBy:      actorID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateListCaches(ctx)
	s.log.LogEventCreated(ctx, event.ID, event.Organizer.String())
	s.publish(ctx, notifications.EventCreated, event, actorID)

	return event, nil
}

// UpdateEvent changes mutable event fields. Only the event's organizer
// or an admin may update it.
func (s *service) UpdateEvent(ctx context.Context, actorID uuid.UUID, id uint64, req *UpdateEventRequest) (*Event, error) {
	if err := s.gate.RequireActive(ctx); err != nil {
		return nil, err
	}
	isAdmin, err := s.roles.HasRole(ctx, accesscontrol.RoleAdmin, actorID)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.Update(ctx, id, func(event *Event) error {
		if event.Organizer != actorID && !isAdmin {
			return errs.ErrNotEventOrganizer
		}

		if req.Name != nil {
			event.Name = *req.Name
		}
		if req.MetadataRef != nil {
			event.MetadataRef = *req.MetadataRef
		}
		if req.StartTime != nil {
			event.StartTime = req.StartTime.UTC()
		}
		if req.EndTime != nil {
			event.EndTime = req.EndTime.UTC()
		}
		if !event.StartTime.Before(event.EndTime) {
			return errs.ErrInvalidTimeRange
		}

		event.UpdatedBy = &actorID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateEventCaches(ctx, id)
	s.publish(ctx, notifications.EventUpdated, event, actorID)

	return event, nil
}

// SetEventStatus toggles an event between active and inactive. Inactive
// events invalidate all of their tickets.
func (s *service) SetEventStatus(ctx context.Context, actorID uuid.UUID, id uint64, active bool) (*Event, error) {
	if err := s.gate.RequireActive(ctx); err != nil {
		return nil, err
	}
	isAdmin, err := s.roles.HasRole(ctx, accesscontrol.RoleAdmin, actorID)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.Update(ctx, id, func(event *Event) error {
		if event.Organizer != actorID && !isAdmin {
			return errs.ErrNotEventOrganizer
		}
		event.Active = active
		event.UpdatedBy = &actorID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateEventCaches(ctx, id)
	s.publish(ctx, notifications.EventStatusChanged, event, actorID)

	return event, nil
}

// GetEventMetadata returns an event, served cache-first
func (s *service) GetEventMetadata(ctx context.Context, id uint64) (*Event, error) {
	var event Event
	key := constants.BuildEventDetailKey(id)

	err := s.cache.GetOrSet(ctx, key, constants.TTL_EVENT_DETAIL, func() (interface{}, error) {
		fetched, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return fetched, nil
	}, &event)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (s *service) ListEvents(ctx context.Context, limit, offset int) ([]Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *service) IsEventActive(ctx context.Context, id uint64) (bool, error) {
	event, err := s.GetEventMetadata(ctx, id)
	if err != nil {
		return false, err
	}
	return event.Active, nil
}

func (s *service) IsEventOrganizer(ctx context.Context, id uint64, principalID uuid.UUID) (bool, error) {
	event, err := s.GetEventMetadata(ctx, id)
	if err != nil {
		return false, err
	}
	return event.Organizer == principalID, nil
}

// TotalEvents returns the lifetime count of registered events
func (s *service) TotalEvents(ctx context.Context) (int64, error) {
	var total int64

	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_EVENT_TOTAL, constants.TTL_SUPPLY, func() (interface{}, error) {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return nil, err
		}
		return count, nil
	}, &total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (s *service) EventByIndex(ctx context.Context, index int64) (*Event, error) {
	return s.repo.ByIndex(ctx, index)
}

func (s *service) invalidateEventCaches(ctx context.Context, id uint64) {
	if err := s.cache.Delete(ctx, constants.BuildEventDetailKey(id)); err != nil {
		s.log.Warn("Failed to invalidate event cache", "event_id", id, "error", err)
	}
}

func (s *service) invalidateListCaches(ctx context.Context) {
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_EVENT_TOTAL); err != nil {
		s.log.Warn("Failed to invalidate event total cache", "error", err)
	}
}

func (s *service) publish(ctx context.Context, name string, event *Event, actorID uuid.UUID) {
	record := notifications.Record{
		Name: name,
		Key:  event.Organizer.String(),
		At:   time.Now().UTC(),
		Params: map[string]interface{}{
			"event_id":  event.ID,
			"organizer": event.Organizer.String(),
			"active":    event.Active,
			"actor_id":  actorID.String(),
		},
	}
	if err := s.publisher.Publish(ctx, record); err != nil {
		s.log.Error("Failed to publish event notification", "name", name, "error", err)
	}
}
