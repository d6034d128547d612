package tickets

import (
	"context"
	"errors"
	"time"

	"ticketforge/internal/accesscontrol"
	"ticketforge/internal/events"
	"ticketforge/internal/notifications"
	"ticketforge/internal/pausegate"
	"ticketforge/internal/shared/constants"
	"ticketforge/internal/shared/errs"
	"ticketforge/pkg/cache"
	"ticketforge/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	MintTicketForEvent(ctx context.Context, actorID uuid.UUID, req *MintTicketRequest) (*Ticket, error)
	OrganizerMintTicket(ctx context.Context, actorID uuid.UUID, req *MintTicketRequest) (*Ticket, error)
	BatchMintTickets(ctx context.Context, actorID uuid.UUID, req *BatchMintRequest) ([]Ticket, error)
	Transfer(ctx context.Context, actorID uuid.UUID, ticketID uint64, to uuid.UUID) (*Ticket, error)
	Burn(ctx context.Context, actorID uuid.UUID, ticketID uint64) error
	GetTicketMetadata(ctx context.Context, id uint64) (*Ticket, error)
	IsTicketValid(ctx context.Context, id uint64, at time.Time) (bool, error)
	GetTicketsForEvent(ctx context.Context, eventID uint64) ([]Ticket, error)
	GetTicketsForOwner(ctx context.Context, owner uuid.UUID) ([]Ticket, error)
	TotalSupply(ctx context.Context) (int64, error)
	TokenByIndex(ctx context.Context, index int64) (*Ticket, error)
}

type service struct {
	repo      Repository
	events    events.Service
	roles     accesscontrol.Service
	gate      pausegate.Gate
	cache     cache.Service
	publisher notifications.Publisher
	log       *logger.Logger
}

func NewService(repo Repository, eventService events.Service, roles accesscontrol.Service, gate pausegate.Gate, cacheService cache.Service, publisher notifications.Publisher, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		events:    eventService,
		roles:     roles,
		gate:      gate,
		cache:     cacheService,
		publisher: publisher,
		log:       log,
	}
}

// MintTicketForEvent issues one ticket. The caller must hold the minter
// role.
func (s *service) MintTicketForEvent(ctx context.Context, actorID uuid.UUID, req *MintTicketRequest) (*Ticket, error) {
	if err := s.roles.RequireRole(ctx, accesscontrol.RoleMinter, actorID); err != nil {
		return nil, err
	}
	if err := s.gate.RequireActive(ctx); err != nil {
		return nil, err
	}
	return s.mintOne(ctx, actorID, req)
}

// OrganizerMintTicket issues one ticket on behalf of the event's
// organizer. Ownership of the event replaces the minter role.
func (s *service) OrganizerMintTicket(ctx context.Context, actorID uuid.UUID, req *MintTicketRequest) (*Ticket, error) {
	isOrganizer, err := s.events.IsEventOrganizer(ctx, req.EventID, actorID)
	if errors.Is(err, errs.ErrEventDoesNotExist) {
		return nil, errs.ErrEventDoesNotExistOrInactive
	}
	if err != nil {
		return nil, err
	}
	if !isOrganizer {
		return nil, errs.ErrNotEventOrganizer
	}
	if err := s.gate.RequireActive(ctx); err != nil {
		return nil, err
	}
	return s.mintOne(ctx, actorID, req)
}

// BatchMintTickets issues one ticket per recipient atomically. The
// caller must hold the minter role.
func (s *service) BatchMintTickets(ctx context.Context, actorID uuid.UUID, req *BatchMintRequest) ([]Ticket, error) {
	if err := s.roles.RequireRole(ctx, accesscontrol.RoleMinter, actorID); err != nil {
		return nil, err
	}
	if err := s.gate.RequireActive(ctx); err != nil {
		return nil, err
	}

	minted, err := s.repo.MintForEvent(ctx, req.EventID, func(event *events.Event) ([]Ticket, error) {
		if err := validateMintWindow(event, req.ValidFrom, req.ValidUntil); err != nil {
			return nil, err
		}

		batch := make([]Ticket, len(req.Recipients))
		for i, recipient := range req.Recipients {
			batch[i] = Ticket{
				EventID:        req.EventID,
				Owner:          recipient,
				Price:          req.Price,
				ValidFrom:      req.ValidFrom.UTC(),
				ValidUntil:     req.ValidUntil.UTC(),
				IsTransferable: *req.IsTransferable,
				MintedBy:       actorID,
			}
		}
		return batch, nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSupplyCaches(ctx, req.EventID)
	for i := range minted {
		s.log.LogTicketMinted(ctx, minted[i].ID, minted[i].EventID, minted[i].Owner.String())
		s.publishTicket(ctx, notifications.TicketMinted, &minted[i], actorID)
	}

	return minted, nil
}

func (s *service) mintOne(ctx context.Context, actorID uuid.UUID, req *MintTicketRequest) (*Ticket, error) {
	minted, err := s.repo.MintForEvent(ctx, req.EventID, func(event *events.Event) ([]Ticket, error) {
		if err := validateMintWindow(event, req.ValidFrom, req.ValidUntil); err != nil {
			return nil, err
		}

		return []Ticket{{
			EventID:        req.EventID,
			Owner:          req.To,
			Price:          req.Price,
			ValidFrom:      req.ValidFrom.UTC(),
			ValidUntil:     req.ValidUntil.UTC(),
			IsTransferable: *req.IsTransferable,
			MintedBy:       actorID,
		}}, nil
	})
	if err != nil {
		return nil, err
	}

	ticket := &minted[0]
	s.invalidateSupplyCaches(ctx, req.EventID)
	s.log.LogTicketMinted(ctx, ticket.ID, ticket.EventID, ticket.Owner.String())
	s.publishTicket(ctx, notifications.TicketMinted, ticket, actorID)

	return ticket, nil
}

// validateMintWindow rejects mints against missing or inactive events,
// inverted validity windows, and windows that outlive the event.
func validateMintWindow(event *events.Event, validFrom, validUntil time.Time) error {
	if !event.Active {
		return errs.ErrEventDoesNotExistOrInactive
	}
	if !validFrom.Before(validUntil) {
		return errs.ErrInvalidTicketTimeRange
	}
	if validFrom.Before(event.StartTime) || validUntil.After(event.EndTime) {
		return errs.ErrEventTimeConstraintViolation
	}
	return nil
}

// Transfer moves a ticket to another principal. The caller must own the
// ticket and the ticket must be transferable.
func (s *service) Transfer(ctx context.Context, actorID uuid.UUID, ticketID uint64, to uuid.UUID) (*Ticket, error) {
	if err := s.gate.RequireActive(ctx); err != nil {
		return nil, err
	}

	ticket, err := s.repo.Transfer(ctx, ticketID, actorID, to)
	if err != nil {
		return nil, err
	}

	s.invalidateTicketCaches(ctx, ticket)
	s.log.LogTicketTransferred(ctx, ticket.ID, actorID.String(), to.String())
	s.publishTicket(ctx, notifications.TicketTransferred, ticket, actorID)

	return ticket, nil
}

// Burn permanently destroys a ticket the caller owns
func (s *service) Burn(ctx context.Context, actorID uuid.UUID, ticketID uint64) error {
	if err := s.gate.RequireActive(ctx); err != nil {
		return err
	}

	ticket, err := s.repo.Burn(ctx, ticketID, actorID)
	if err != nil {
		return err
	}

	s.invalidateTicketCaches(ctx, ticket)
	s.publishTicket(ctx, notifications.TicketBurned, ticket, actorID)

	return nil
}

// GetTicketMetadata returns a ticket, served cache-first
func (s *service) GetTicketMetadata(ctx context.Context, id uint64) (*Ticket, error) {
	var ticket Ticket
	key := constants.BuildTicketDetailKey(id)

	err := s.cache.GetOrSet(ctx, key, constants.TTL_TICKET_DETAIL, func() (interface{}, error) {
		fetched, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return fetched, nil
	}, &ticket)
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}

// IsTicketValid evaluates the ticket at an instant. The verdict is
// computed fresh, never cached.
func (s *service) IsTicketValid(ctx context.Context, id uint64, at time.Time) (bool, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	event, err := s.events.GetEventMetadata(ctx, ticket.EventID)
	if err != nil {
		return false, err
	}
	return IsValidAt(ticket, event, at), nil
}

func (s *service) GetTicketsForEvent(ctx context.Context, eventID uint64) ([]Ticket, error) {
	var list []Ticket
	key := constants.BuildEventTicketsKey(eventID)

	err := s.cache.GetOrSet(ctx, key, constants.TTL_EVENT_TICKETS, func() (interface{}, error) {
		fetched, err := s.repo.ListByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return fetched, nil
	}, &list)
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (s *service) GetTicketsForOwner(ctx context.Context, owner uuid.UUID) ([]Ticket, error) {
	return s.repo.ListByOwner(ctx, owner)
}

// TotalSupply counts tickets currently in circulation. Burns shrink it.
func (s *service) TotalSupply(ctx context.Context) (int64, error) {
	var total int64

	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_TOTAL_SUPPLY, constants.TTL_SUPPLY, func() (interface{}, error) {
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

func (s *service) TokenByIndex(ctx context.Context, index int64) (*Ticket, error) {
	return s.repo.ByIndex(ctx, index)
}

func (s *service) invalidateTicketCaches(ctx context.Context, ticket *Ticket) {
	if err := s.cache.Delete(ctx, constants.BuildTicketDetailKey(ticket.ID)); err != nil {
		s.log.Warn("Failed to invalidate ticket cache", "ticket_id", ticket.ID, "error", err)
	}
	s.invalidateSupplyCaches(ctx, ticket.EventID)
}

func (s *service) invalidateSupplyCaches(ctx context.Context, eventID uint64) {
	if err := s.cache.Delete(ctx, constants.BuildEventTicketsKey(eventID)); err != nil {
		s.log.Warn("Failed to invalidate event tickets cache", "event_id", eventID, "error", err)
	}
	if err := s.cache.Delete(ctx, constants.CACHE_KEY_TOTAL_SUPPLY); err != nil {
		s.log.Warn("Failed to invalidate supply cache", "error", err)
	}
}

func (s *service) publishTicket(ctx context.Context, name string, ticket *Ticket, actorID uuid.UUID) {
	record := notifications.Record{
		Name: name,
		Key:  ticket.Owner.String(),
		At:   time.Now().UTC(),
		Params: map[string]interface{}{
			"ticket_id": ticket.ID,
			"event_id":  ticket.EventID,
			"owner":     ticket.Owner.String(),
			"actor_id":  actorID.String(),
		},
	}
	if err := s.publisher.Publish(ctx, record); err != nil {
		s.log.Error("Failed to publish ticket notification", "name", name, "error", err)
	}
}
