package tickets

import (
	"time"

	"github.com/google/uuid"
)

type MintTicketRequest struct {
	To             uuid.UUID `json:"to" binding:"required"`
	EventID        uint64    `json:"event_id" binding:"required"`
	Price          int64     `json:"price" binding:"min=0"`
	ValidFrom      time.Time `json:"valid_from" binding:"required"`
	ValidUntil     time.Time `json:"valid_until" binding:"required"`
	IsTransferable *bool     `json:"is_transferable" binding:"required"`
}

type BatchMintRequest struct {
	Recipients     []uuid.UUID `json:"recipients" binding:"required,min=1,max=100"`
	EventID        uint64      `json:"event_id" binding:"required"`
	Price          int64       `json:"price" binding:"min=0"`
	ValidFrom      time.Time   `json:"valid_from" binding:"required"`
	ValidUntil     time.Time   `json:"valid_until" binding:"required"`
	IsTransferable *bool       `json:"is_transferable" binding:"required"`
}

type TransferRequest struct {
	To uuid.UUID `json:"to" binding:"required"`
}
