package marketplace

import (
	"time"

	"github.com/google/uuid"
)

// ResaleListing is an open ask for a ticket. One listing per ticket.
type ResaleListing struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	TicketID  uint64    `json:"ticket_id" gorm:"not null;uniqueIndex"`
	EventID   uint64    `json:"event_id" gorm:"not null;index"`
	Seller    uuid.UUID `json:"seller" gorm:"type:uuid;not null;index"`
	AskPrice  int64     `json:"ask_price" gorm:"not null;check:ask_price >= 0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ResaleListing) TableName() string {
	return "resale_listings"
}

// Balance is a principal's ledger-internal settlement account. Sales
// credit it; withdrawals are outside this system's scope.
type Balance struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	PrincipalID uuid.UUID `json:"principal_id" gorm:"type:uuid;not null;uniqueIndex"`
	Amount      int64     `json:"amount" gorm:"not null;default:0;check:amount >= 0"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Balance) TableName() string {
	return "balances"
}

type ListingResponse struct {
	TicketID  uint64    `json:"ticket_id"`
	EventID   uint64    `json:"event_id"`
	Seller    string    `json:"seller"`
	AskPrice  int64     `json:"ask_price"`
	CreatedAt time.Time `json:"created_at"`
}

// SaleReceipt summarizes a settled resale
type SaleReceipt struct {
	TicketID       uint64 `json:"ticket_id"`
	EventID        uint64 `json:"event_id"`
	Seller         string `json:"seller"`
	Buyer          string `json:"buyer"`
	AskPrice       int64  `json:"ask_price"`
	Royalty        int64  `json:"royalty"`
	SellerProceeds int64  `json:"seller_proceeds"`
}

func ToListingResponse(listing *ResaleListing) ListingResponse {
	return ListingResponse{
		TicketID:  listing.TicketID,
		EventID:   listing.EventID,
		Seller:    listing.Seller.String(),
		AskPrice:  listing.AskPrice,
		CreatedAt: listing.CreatedAt,
	}
}

func ToListingResponses(list []ResaleListing) []ListingResponse {
	responses := make([]ListingResponse, len(list))
	for i := range list {
		responses[i] = ToListingResponse(&list[i])
	}
	return responses
}
