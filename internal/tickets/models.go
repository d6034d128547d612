package tickets

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	ID             uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	EventID        uint64    `json:"event_id" gorm:"not null;index"`
	Owner          uuid.UUID `json:"owner" gorm:"type:uuid;not null;index"`
	Price          int64     `json:"price" gorm:"not null;check:price >= 0"`
	ValidFrom      time.Time `json:"valid_from" gorm:"not null"`
	ValidUntil     time.Time `json:"valid_until" gorm:"not null"`
	IsTransferable bool      `json:"is_transferable" gorm:"not null;default:true"`

	MintedBy  uuid.UUID `json:"minted_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Ticket) TableName() string {
	return "tickets"
}

type TicketResponse struct {
	ID             uint64    `json:"id"`
	EventID        uint64    `json:"event_id"`
	Owner          string    `json:"owner"`
	Price          int64     `json:"price"`
	ValidFrom      time.Time `json:"valid_from"`
	ValidUntil     time.Time `json:"valid_until"`
	IsTransferable bool      `json:"is_transferable"`
	CreatedAt      time.Time `json:"created_at"`
}

// ValidityResponse carries a point-in-time validity verdict
type ValidityResponse struct {
	TicketID  uint64    `json:"ticket_id"`
	Valid     bool      `json:"valid"`
	CheckedAt time.Time `json:"checked_at"`
}

func ToTicketResponse(ticket *Ticket) TicketResponse {
	return TicketResponse{
		ID:             ticket.ID,
		EventID:        ticket.EventID,
		Owner:          ticket.Owner.String(),
		Price:          ticket.Price,
		ValidFrom:      ticket.ValidFrom,
		ValidUntil:     ticket.ValidUntil,
		IsTransferable: ticket.IsTransferable,
		CreatedAt:      ticket.CreatedAt,
	}
}

func ToTicketResponses(list []Ticket) []TicketResponse {
	responses := make([]TicketResponse, len(list))
	for i := range list {
		responses[i] = ToTicketResponse(&list[i])
	}
	return responses
}
