package tickets

import (
	"context"
	"errors"

	"ticketforge/internal/events"
	"ticketforge/internal/shared/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	MintForEvent(ctx context.Context, eventID uint64, mint func(event *events.Event) ([]Ticket, error)) ([]Ticket, error)
	Transfer(ctx context.Context, id uint64, from, to uuid.UUID) (*Ticket, error)
	Burn(ctx context.Context, id uint64, owner uuid.UUID) (*Ticket, error)
	GetByID(ctx context.Context, id uint64) (*Ticket, error)
	ListByEvent(ctx context.Context, eventID uint64) ([]Ticket, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]Ticket, error)
	Count(ctx context.Context) (int64, error)
	ByIndex(ctx context.Context, index int64) (*Ticket, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// MintForEvent locks the event row, lets the caller validate it and
// produce ticket rows, then inserts them in the same transaction. The
// whole batch lands or none of it does.
func (r *repository) MintForEvent(ctx context.Context, eventID uint64, mint func(event *events.Event) ([]Ticket, error)) ([]Ticket, error) {
	var minted []Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event events.Event
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", eventID).
			First(&event).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrEventDoesNotExistOrInactive
		}
		if err != nil {
			return err
		}

		batch, err := mint(&event)
		if err != nil {
			return err
		}

		if err := tx.Create(&batch).Error; err != nil {
			return err
		}

		minted = batch
		return nil
	})

	return minted, err
}

// Transfer moves ownership under a row lock, re-checking ownership and
// transferability inside the transaction. Any open resale listing for
// the ticket is dropped.
func (r *repository) Transfer(ctx context.Context, id uint64, from, to uuid.UUID) (*Ticket, error) {
	var transferred *Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := lockTicket(tx, id)
		if err != nil {
			return err
		}

		if ticket.Owner != from {
			return errs.ErrTicketNotOwnedBy
		}
		if !ticket.IsTransferable {
			return errs.ErrTicketNotTransferable
		}

		ticket.Owner = to
		if err := tx.Save(ticket).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM resale_listings WHERE ticket_id = ?", id).Error; err != nil {
			return err
		}

		transferred = ticket
		return nil
	})

	return transferred, err
}

// Burn deletes a ticket the caller owns. Open listings for the ticket
// are dropped.
func (r *repository) Burn(ctx context.Context, id uint64, owner uuid.UUID) (*Ticket, error) {
	var burned *Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := lockTicket(tx, id)
		if err != nil {
			return err
		}

		if ticket.Owner != owner {
			return errs.ErrTicketNotOwnedBy
		}

		if err := tx.Exec("DELETE FROM resale_listings WHERE ticket_id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Delete(ticket).Error; err != nil {
			return err
		}

		burned = ticket
		return nil
	})

	return burned, err
}

func (r *repository) GetByID(ctx context.Context, id uint64) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrTicketDoesNotExist
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID uint64) ([]Ticket, error) {
	var list []Ticket
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]Ticket, error) {
	var list []Ticket
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Ticket{}).Count(&count).Error
	return count, err
}

// ByIndex returns the ticket at a zero-based position in id order
func (r *repository) ByIndex(ctx context.Context, index int64) (*Ticket, error) {
	if index < 0 {
		return nil, errs.ErrIndexOutOfBounds
	}

	var ticket Ticket
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(int(index)).
		Limit(1).
		First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrIndexOutOfBounds
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func lockTicket(tx *gorm.DB, id uint64) (*Ticket, error) {
	var ticket Ticket
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", id).
		First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrTicketDoesNotExist
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
