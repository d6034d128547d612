package marketplace

import (
	"context"
	"errors"

	"ticketforge/internal/events"
	"ticketforge/internal/shared/errs"
	"ticketforge/internal/tickets"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settlement is the outcome of a purchase transaction
type Settlement struct {
	Listing        ResaleListing
	Organizer      uuid.UUID
	Royalty        int64
	SellerProceeds int64
}

type Repository interface {
	CreateListing(ctx context.Context, ticketID uint64, seller uuid.UUID, askPrice int64, validate func(ticket *tickets.Ticket, event *events.Event) error) (*ResaleListing, error)
	CancelListing(ctx context.Context, ticketID uint64, seller uuid.UUID) (*ResaleListing, error)
	GetListing(ctx context.Context, ticketID uint64) (*ResaleListing, error)
	ListByEvent(ctx context.Context, eventID uint64) ([]ResaleListing, error)
	Purchase(ctx context.Context, ticketID uint64, buyer uuid.UUID, payment int64) (*Settlement, error)
	BalanceOf(ctx context.Context, principalID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateListing locks the ticket and its event, runs the caller's
// validation against both, then inserts the listing. A second listing
// for the same ticket replaces the ask price.
func (r *repository) CreateListing(ctx context.Context, ticketID uint64, seller uuid.UUID, askPrice int64, validate func(ticket *tickets.Ticket, event *events.Event) error) (*ResaleListing, error) {
	var created *ResaleListing

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, event, err := lockTicketAndEvent(tx, ticketID)
		if err != nil {
			return err
		}

		if ticket.Owner != seller {
			return errs.ErrTicketNotOwnedBy
		}
		if !ticket.IsTransferable {
			return errs.ErrTicketNotTransferable
		}
		if err := validate(ticket, event); err != nil {
			return err
		}

		var listing ResaleListing
		err = tx.Set("gorm:query_option", "FOR UPDATE").
			Where("ticket_id = ?", ticketID).
			First(&listing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			listing = ResaleListing{
				TicketID: ticketID,
				EventID:  ticket.EventID,
				Seller:   seller,
				AskPrice: askPrice,
			}
			if err := tx.Create(&listing).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			listing.Seller = seller
			listing.AskPrice = askPrice
			if err := tx.Save(&listing).Error; err != nil {
				return err
			}
		}

		created = &listing
		return nil
	})

	return created, err
}

func (r *repository) CancelListing(ctx context.Context, ticketID uint64, seller uuid.UUID) (*ResaleListing, error) {
	var cancelled *ResaleListing

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing ResaleListing
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("ticket_id = ?", ticketID).
			First(&listing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrListingStale
		}
		if err != nil {
			return err
		}

		if listing.Seller != seller {
			return errs.ErrTicketNotOwnedBy
		}

		if err := tx.Delete(&listing).Error; err != nil {
			return err
		}

		cancelled = &listing
		return nil
	})

	return cancelled, err
}

func (r *repository) GetListing(ctx context.Context, ticketID uint64) (*ResaleListing, error) {
	var listing ResaleListing
	err := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrListingStale
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID uint64) ([]ResaleListing, error) {
	var list []ResaleListing
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

// Purchase settles a resale in one transaction: revalidate the listing
// against the live ticket, move ownership, split the payment between
// the organizer's royalty and the seller's proceeds, drop the listing.
func (r *repository) Purchase(ctx context.Context, ticketID uint64, buyer uuid.UUID, payment int64) (*Settlement, error) {
	var settlement *Settlement

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Ticket before listing: CreateListing, Transfer and Burn take
		// their row locks in this order, so every writer shares one
		// acquisition order. A vanished ticket means the listing it
		// backed is stale.
		ticket, event, err := lockTicketAndEvent(tx, ticketID)
		if errors.Is(err, errs.ErrTicketDoesNotExist) {
			return errs.ErrListingStale
		}
		if err != nil {
			return err
		}

		var listing ResaleListing
		err = tx.Set("gorm:query_option", "FOR UPDATE").
			Where("ticket_id = ?", ticketID).
			First(&listing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrListingStale
		}
		if err != nil {
			return err
		}

		// The listing goes stale if the seller lost the ticket or the
		// event was deactivated after listing.
		if ticket.Owner != listing.Seller || !ticket.IsTransferable || !event.Active {
			return errs.ErrListingStale
		}
		if payment < listing.AskPrice {
			return errs.ErrInsufficientPayment
		}

		royalty := listing.AskPrice * event.RoyaltyBps / 10000
		proceeds := listing.AskPrice - royalty

		if err := tx.Exec("UPDATE tickets SET owner = ?, updated_at = NOW() WHERE id = ?", buyer, ticketID).Error; err != nil {
			return err
		}
		if royalty > 0 {
			if err := credit(tx, event.Organizer, royalty); err != nil {
				return err
			}
		}
		if err := credit(tx, listing.Seller, proceeds); err != nil {
			return err
		}
		if err := tx.Delete(&listing).Error; err != nil {
			return err
		}

		settlement = &Settlement{
			Listing:        listing,
			Organizer:      event.Organizer,
			Royalty:        royalty,
			SellerProceeds: proceeds,
		}
		return nil
	})

	return settlement, err
}

func (r *repository) BalanceOf(ctx context.Context, principalID uuid.UUID) (int64, error) {
	var balance Balance
	err := r.db.WithContext(ctx).Where("principal_id = ?", principalID).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance.Amount, nil
}

func credit(tx *gorm.DB, principalID uuid.UUID, amount int64) error {
	return tx.Exec(`
		INSERT INTO balances (id, principal_id, amount, updated_at)
		VALUES (uuid_generate_v4(), ?, ?, NOW())
		ON CONFLICT (principal_id)
		DO UPDATE SET amount = balances.amount + EXCLUDED.amount, updated_at = NOW()`,
		principalID, amount).Error
}

func lockTicketAndEvent(tx *gorm.DB, ticketID uint64) (*tickets.Ticket, *events.Event, error) {
	var ticket tickets.Ticket
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", ticketID).
		First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, errs.ErrTicketDoesNotExist
	}
	if err != nil {
		return nil, nil, err
	}

	var event events.Event
	err = tx.Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", ticket.EventID).
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, errs.ErrEventDoesNotExist
	}
	if err != nil {
		return nil, nil, err
	}

	return &ticket, &event, nil
}
