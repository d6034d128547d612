package marketplace

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ticketforge/internal/events"
	"ticketforge/internal/notifications"
	"ticketforge/internal/shared/errs"
	"ticketforge/internal/tickets"
	"ticketforge/pkg/logger"

	"github.com/google/uuid"
)

// fakeRepo keeps tickets, events, listings and balances in memory and
// mirrors the transactional checks of the real repository.
type fakeRepo struct {
	mu       sync.Mutex
	events   map[uint64]events.Event
	tickets  map[uint64]tickets.Ticket
	listings map[uint64]ResaleListing
	balances map[uuid.UUID]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events:   make(map[uint64]events.Event),
		tickets:  make(map[uint64]tickets.Ticket),
		listings: make(map[uint64]ResaleListing),
		balances: make(map[uuid.UUID]int64),
	}
}

func (f *fakeRepo) CreateListing(ctx context.Context, ticketID uint64, seller uuid.UUID, askPrice int64, validate func(ticket *tickets.Ticket, event *events.Event) error) (*ResaleListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return nil, errs.ErrTicketDoesNotExist
	}
	if ticket.Owner != seller {
		return nil, errs.ErrTicketNotOwnedBy
	}
	if !ticket.IsTransferable {
		return nil, errs.ErrTicketNotTransferable
	}
	event := f.events[ticket.EventID]
	if err := validate(&ticket, &event); err != nil {
		return nil, err
	}
	listing := ResaleListing{TicketID: ticketID, EventID: ticket.EventID, Seller: seller, AskPrice: askPrice}
	f.listings[ticketID] = listing
	return &listing, nil
}

func (f *fakeRepo) CancelListing(ctx context.Context, ticketID uint64, seller uuid.UUID) (*ResaleListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	listing, ok := f.listings[ticketID]
	if !ok {
		return nil, errs.ErrListingStale
	}
	if listing.Seller != seller {
		return nil, errs.ErrTicketNotOwnedBy
	}
	delete(f.listings, ticketID)
	return &listing, nil
}

func (f *fakeRepo) GetListing(ctx context.Context, ticketID uint64) (*ResaleListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	listing, ok := f.listings[ticketID]
	if !ok {
		return nil, errs.ErrListingStale
	}
	return &listing, nil
}

func (f *fakeRepo) ListByEvent(ctx context.Context, eventID uint64) ([]ResaleListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ResaleListing
	for _, listing := range f.listings {
		if listing.EventID == eventID {
			out = append(out, listing)
		}
	}
	return out, nil
}

func (f *fakeRepo) Purchase(ctx context.Context, ticketID uint64, buyer uuid.UUID, payment int64) (*Settlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return nil, errs.ErrListingStale
	}
	listing, ok := f.listings[ticketID]
	if !ok {
		return nil, errs.ErrListingStale
	}
	event := f.events[ticket.EventID]
	if ticket.Owner != listing.Seller || !ticket.IsTransferable || !event.Active {
		return nil, errs.ErrListingStale
	}
	if payment < listing.AskPrice {
		return nil, errs.ErrInsufficientPayment
	}

	royalty := listing.AskPrice * event.RoyaltyBps / 10000
	proceeds := listing.AskPrice - royalty

	ticket.Owner = buyer
	f.tickets[ticketID] = ticket
	f.balances[event.Organizer] += royalty
	f.balances[listing.Seller] += proceeds
	delete(f.listings, ticketID)

	return &Settlement{Listing: listing, Organizer: event.Organizer, Royalty: royalty, SellerProceeds: proceeds}, nil
}

func (f *fakeRepo) BalanceOf(ctx context.Context, principalID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[principalID], nil
}

type stubGate struct {
	paused bool
}

func (g *stubGate) IsPaused(ctx context.Context) (bool, error) { return g.paused, nil }

func (g *stubGate) RequireActive(ctx context.Context) error {
	if g.paused {
		return errs.ErrContractPaused
	}
	return nil
}

type dropPublisher struct{}

func (dropPublisher) Publish(ctx context.Context, record notifications.Record) error { return nil }

func (dropPublisher) Close() error { return nil }

type fixture struct {
	svc       Service
	repo      *fakeRepo
	gate      *stubGate
	organizer uuid.UUID
	seller    uuid.UUID
	ticketID  uint64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	organizer := uuid.New()
	seller := uuid.New()
	start := time.Date(2026, time.June, 1, 18, 0, 0, 0, time.UTC)

	repo := newFakeRepo()
	repo.events[1] = events.Event{
		ID:             1,
		Organizer:      organizer,
		Active:         true,
		StartTime:      start,
		EndTime:        start.Add(6 * time.Hour),
		RoyaltyBps:     500,
		MinResalePrice: 1000,
		MaxResalePrice: 100000,
	}
	repo.tickets[1] = tickets.Ticket{
		ID:             1,
		EventID:        1,
		Owner:          seller,
		Price:          5000,
		ValidFrom:      start,
		ValidUntil:     start.Add(4 * time.Hour),
		IsTransferable: true,
	}

	gate := &stubGate{}
	svc := NewService(repo, gate, dropPublisher{}, logger.New())

	return &fixture{svc: svc, repo: repo, gate: gate, organizer: organizer, seller: seller, ticketID: 1}
}

func TestListForResale(t *testing.T) {
	ctx := context.Background()

	t.Run("owner lists within bounds", func(t *testing.T) {
		fx := newFixture(t)

		listing, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 8000)
		if err != nil {
			t.Fatalf("ListForResale: %v", err)
		}
		if listing.AskPrice != 8000 {
			t.Fatalf("AskPrice = %d, want 8000", listing.AskPrice)
		}
	})

	t.Run("ask below the minimum is rejected", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 500)
		if !errors.Is(err, errs.ErrResalePriceOutOfRange) {
			t.Fatalf("err = %v, want ErrResalePriceOutOfRange", err)
		}
	})

	t.Run("ask above the maximum is rejected", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 100001)
		if !errors.Is(err, errs.ErrResalePriceOutOfRange) {
			t.Fatalf("err = %v, want ErrResalePriceOutOfRange", err)
		}
	})

	t.Run("non-owner cannot list", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.svc.ListForResale(ctx, uuid.New(), fx.ticketID, 8000)
		if !errors.Is(err, errs.ErrTicketNotOwnedBy) {
			t.Fatalf("err = %v, want ErrTicketNotOwnedBy", err)
		}
	})

	t.Run("non-transferable ticket cannot be listed", func(t *testing.T) {
		fx := newFixture(t)
		ticket := fx.repo.tickets[fx.ticketID]
		ticket.IsTransferable = false
		fx.repo.tickets[fx.ticketID] = ticket

		_, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 8000)
		if !errors.Is(err, errs.ErrTicketNotTransferable) {
			t.Fatalf("err = %v, want ErrTicketNotTransferable", err)
		}
	})

	t.Run("inactive event cannot host listings", func(t *testing.T) {
		fx := newFixture(t)
		event := fx.repo.events[1]
		event.Active = false
		fx.repo.events[1] = event

		_, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 8000)
		if !errors.Is(err, errs.ErrEventDoesNotExistOrInactive) {
			t.Fatalf("err = %v, want ErrEventDoesNotExistOrInactive", err)
		}
	})

	t.Run("rejected while paused", func(t *testing.T) {
		fx := newFixture(t)
		fx.gate.paused = true

		_, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 8000)
		if !errors.Is(err, errs.ErrContractPaused) {
			t.Fatalf("err = %v, want ErrContractPaused", err)
		}
	})
}

func TestCancelResaleListing(t *testing.T) {
	ctx := context.Background()

	t.Run("seller cancels own listing", func(t *testing.T) {
		fx := newFixture(t)
		if _, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 8000); err != nil {
			t.Fatalf("list: %v", err)
		}

		if err := fx.svc.CancelResaleListing(ctx, fx.seller, fx.ticketID); err != nil {
			t.Fatalf("CancelResaleListing: %v", err)
		}

		if _, err := fx.svc.GetListing(ctx, fx.ticketID); !errors.Is(err, errs.ErrListingStale) {
			t.Fatalf("err = %v, want ErrListingStale", err)
		}
	})

	t.Run("cancelling a missing listing fails", func(t *testing.T) {
		fx := newFixture(t)

		err := fx.svc.CancelResaleListing(ctx, fx.seller, fx.ticketID)
		if !errors.Is(err, errs.ErrListingStale) {
			t.Fatalf("err = %v, want ErrListingStale", err)
		}
	})

	t.Run("only the seller may cancel", func(t *testing.T) {
		fx := newFixture(t)
		if _, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 8000); err != nil {
			t.Fatalf("list: %v", err)
		}

		err := fx.svc.CancelResaleListing(ctx, uuid.New(), fx.ticketID)
		if !errors.Is(err, errs.ErrTicketNotOwnedBy) {
			t.Fatalf("err = %v, want ErrTicketNotOwnedBy", err)
		}
	})
}

func TestBuyResaleTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("purchase settles royalty and proceeds", func(t *testing.T) {
		fx := newFixture(t)
		buyer := uuid.New()
		if _, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 10000); err != nil {
			t.Fatalf("list: %v", err)
		}

		receipt, err := fx.svc.BuyResaleTicket(ctx, buyer, fx.ticketID, 10000)
		if err != nil {
			t.Fatalf("BuyResaleTicket: %v", err)
		}

		// 500 bps of 10000 = 500 royalty, 9500 to the seller
		if receipt.Royalty != 500 {
			t.Fatalf("Royalty = %d, want 500", receipt.Royalty)
		}
		if receipt.SellerProceeds != 9500 {
			t.Fatalf("SellerProceeds = %d, want 9500", receipt.SellerProceeds)
		}

		if got := fx.repo.tickets[fx.ticketID].Owner; got != buyer {
			t.Fatal("ticket must belong to the buyer")
		}

		organizerBalance, _ := fx.svc.BalanceOf(ctx, fx.organizer)
		if organizerBalance != 500 {
			t.Fatalf("organizer balance = %d, want 500", organizerBalance)
		}
		sellerBalance, _ := fx.svc.BalanceOf(ctx, fx.seller)
		if sellerBalance != 9500 {
			t.Fatalf("seller balance = %d, want 9500", sellerBalance)
		}

		if _, err := fx.svc.GetListing(ctx, fx.ticketID); !errors.Is(err, errs.ErrListingStale) {
			t.Fatal("listing must be consumed by the sale")
		}
	})

	t.Run("underpayment is rejected", func(t *testing.T) {
		fx := newFixture(t)
		if _, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 10000); err != nil {
			t.Fatalf("list: %v", err)
		}

		_, err := fx.svc.BuyResaleTicket(ctx, uuid.New(), fx.ticketID, 9999)
		if !errors.Is(err, errs.ErrInsufficientPayment) {
			t.Fatalf("err = %v, want ErrInsufficientPayment", err)
		}
	})

	t.Run("listing goes stale when the seller loses the ticket", func(t *testing.T) {
		fx := newFixture(t)
		if _, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 10000); err != nil {
			t.Fatalf("list: %v", err)
		}

		// Ownership changed outside the marketplace after listing
		ticket := fx.repo.tickets[fx.ticketID]
		ticket.Owner = uuid.New()
		fx.repo.tickets[fx.ticketID] = ticket

		_, err := fx.svc.BuyResaleTicket(ctx, uuid.New(), fx.ticketID, 10000)
		if !errors.Is(err, errs.ErrListingStale) {
			t.Fatalf("err = %v, want ErrListingStale", err)
		}
	})

	t.Run("listing goes stale when the ticket is burned", func(t *testing.T) {
		fx := newFixture(t)
		if _, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 10000); err != nil {
			t.Fatalf("list: %v", err)
		}

		// Ticket burned outside the marketplace after listing
		delete(fx.repo.tickets, fx.ticketID)

		_, err := fx.svc.BuyResaleTicket(ctx, uuid.New(), fx.ticketID, 10000)
		if !errors.Is(err, errs.ErrListingStale) {
			t.Fatalf("err = %v, want ErrListingStale", err)
		}
	})

	t.Run("listing goes stale when the event is deactivated", func(t *testing.T) {
		fx := newFixture(t)
		if _, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 10000); err != nil {
			t.Fatalf("list: %v", err)
		}

		event := fx.repo.events[1]
		event.Active = false
		fx.repo.events[1] = event

		_, err := fx.svc.BuyResaleTicket(ctx, uuid.New(), fx.ticketID, 10000)
		if !errors.Is(err, errs.ErrListingStale) {
			t.Fatalf("err = %v, want ErrListingStale", err)
		}
	})

	t.Run("zero royalty sends everything to the seller", func(t *testing.T) {
		fx := newFixture(t)
		event := fx.repo.events[1]
		event.RoyaltyBps = 0
		fx.repo.events[1] = event

		if _, err := fx.svc.ListForResale(ctx, fx.seller, fx.ticketID, 10000); err != nil {
			t.Fatalf("list: %v", err)
		}
		receipt, err := fx.svc.BuyResaleTicket(ctx, uuid.New(), fx.ticketID, 10000)
		if err != nil {
			t.Fatalf("BuyResaleTicket: %v", err)
		}
		if receipt.Royalty != 0 || receipt.SellerProceeds != 10000 {
			t.Fatalf("split = %d/%d, want 0/10000", receipt.Royalty, receipt.SellerProceeds)
		}
	})

	t.Run("rejected while paused", func(t *testing.T) {
		fx := newFixture(t)
		fx.gate.paused = true

		_, err := fx.svc.BuyResaleTicket(ctx, uuid.New(), fx.ticketID, 10000)
		if !errors.Is(err, errs.ErrContractPaused) {
			t.Fatalf("err = %v, want ErrContractPaused", err)
		}
	})
}
