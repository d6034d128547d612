package notifications

import "time"

// Record is a single ledger notification published to Kafka
type Record struct {
	Name   string                 `json:"name"`
	Key    string                 `json:"key"`
	Params map[string]interface{} `json:"params"`
	At     time.Time              `json:"at"`
}

// Notification names, one per observable ledger mutation
const (
	EventCreated           = "event.created"
	EventUpdated           = "event.updated"
	EventStatusChanged     = "event.status_changed"
	TicketMinted           = "ticket.minted"
	TicketTransferred      = "ticket.transferred"
	TicketBurned           = "ticket.burned"
	TicketListed           = "ticket.listed"
	TicketListingCancelled = "ticket.listing_cancelled"
	TicketSold             = "ticket.sold"
	RoleGranted            = "role.granted"
	RoleRevoked            = "role.revoked"
	LedgerPaused           = "ledger.paused"
	LedgerUnpaused         = "ledger.unpaused"
)
