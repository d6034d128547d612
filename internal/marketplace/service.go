package marketplace

import (
	"context"
	"time"

	"ticketforge/internal/events"
	"ticketforge/internal/notifications"
	"ticketforge/internal/pausegate"
	"ticketforge/internal/shared/errs"
	"ticketforge/internal/tickets"
	"ticketforge/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	ListForResale(ctx context.Context, actorID uuid.UUID, ticketID uint64, askPrice int64) (*ResaleListing, error)
	CancelResaleListing(ctx context.Context, actorID uuid.UUID, ticketID uint64) error
	BuyResaleTicket(ctx context.Context, actorID uuid.UUID, ticketID uint64, payment int64) (*SaleReceipt, error)
	GetListing(ctx context.Context, ticketID uint64) (*ResaleListing, error)
	ListingsForEvent(ctx context.Context, eventID uint64) ([]ResaleListing, error)
	BalanceOf(ctx context.Context, principalID uuid.UUID) (int64, error)
}

type service struct {
	repo      Repository
	gate      pausegate.Gate
	publisher notifications.Publisher
	log       *logger.Logger
}

func NewService(repo Repository, gate pausegate.Gate, publisher notifications.Publisher, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		gate:      gate,
		publisher: publisher,
		log:       log,
	}
}

// ListForResale opens (or reprices) a listing for a ticket the caller
// owns. The ask must fall inside the event's resale bounds.
func (s *service) ListForResale(ctx context.Context, actorID uuid.UUID, ticketID uint64, askPrice int64) (*ResaleListing, error) {
	if err := s.gate.RequireActive(ctx); err != nil {
		return nil, err
	}

	listing, err := s.repo.CreateListing(ctx, ticketID, actorID, askPrice, func(ticket *tickets.Ticket, event *events.Event) error {
		if !event.Active {
			return errs.ErrEventDoesNotExistOrInactive
		}
		if askPrice < event.MinResalePrice {
			return errs.ErrResalePriceOutOfRange
		}
		if event.MaxResalePrice > 0 && askPrice > event.MaxResalePrice {
			return errs.ErrResalePriceOutOfRange
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishListing(ctx, notifications.TicketListed, listing, actorID, nil)
	return listing, nil
}

// CancelResaleListing withdraws the caller's open listing
func (s *service) CancelResaleListing(ctx context.Context, actorID uuid.UUID, ticketID uint64) error {
	if err := s.gate.RequireActive(ctx); err != nil {
		return err
	}

	listing, err := s.repo.CancelListing(ctx, ticketID, actorID)
	if err != nil {
		return err
	}

	s.publishListing(ctx, notifications.TicketListingCancelled, listing, actorID, nil)
	return nil
}

// BuyResaleTicket settles an open listing. The payment must cover the
// ask; the organizer's royalty is carved out of the ask and the seller
// is credited the remainder.
func (s *service) BuyResaleTicket(ctx context.Context, actorID uuid.UUID, ticketID uint64, payment int64) (*SaleReceipt, error) {
	if err := s.gate.RequireActive(ctx); err != nil {
		return nil, err
	}

	settlement, err := s.repo.Purchase(ctx, ticketID, actorID, payment)
	if err != nil {
		return nil, err
	}

	receipt := &SaleReceipt{
		TicketID:       settlement.Listing.TicketID,
		EventID:        settlement.Listing.EventID,
		Seller:         settlement.Listing.Seller.String(),
		Buyer:          actorID.String(),
		AskPrice:       settlement.Listing.AskPrice,
		Royalty:        settlement.Royalty,
		SellerProceeds: settlement.SellerProceeds,
	}

	s.log.LogResaleSettled(ctx, ticketID, receipt.Seller, receipt.Buyer, receipt.AskPrice, receipt.Royalty)
	s.publishListing(ctx, notifications.TicketSold, &settlement.Listing, actorID, map[string]interface{}{
		"royalty":         settlement.Royalty,
		"seller_proceeds": settlement.SellerProceeds,
		"buyer":           actorID.String(),
	})

	return receipt, nil
}

func (s *service) GetListing(ctx context.Context, ticketID uint64) (*ResaleListing, error) {
	return s.repo.GetListing(ctx, ticketID)
}

func (s *service) ListingsForEvent(ctx context.Context, eventID uint64) ([]ResaleListing, error) {
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *service) BalanceOf(ctx context.Context, principalID uuid.UUID) (int64, error) {
	return s.repo.BalanceOf(ctx, principalID)
}

func (s *service) publishListing(ctx context.Context, name string, listing *ResaleListing, actorID uuid.UUID, extra map[string]interface{}) {
	params := map[string]interface{}{
		"ticket_id": listing.TicketID,
		"event_id":  listing.EventID,
		"seller":    listing.Seller.String(),
		"ask_price": listing.AskPrice,
		"actor_id":  actorID.String(),
	}
	for k, v := range extra {
		params[k] = v
	}

	record := notifications.Record{
		Name:   name,
		Key:    listing.Seller.String(),
		At:     time.Now().UTC(),
		Params: params,
	}
	if err := s.publisher.Publish(ctx, record); err != nil {
		s.log.Error("Failed to publish marketplace notification", "name", name, "error", err)
	}
}
