package tickets

import (
	"time"

	"ticketforge/internal/events"
)

// IsValidAt evaluates a ticket's validity at a point in time. A ticket
// is valid when its event is active and the instant falls inside the
// half-open window [ValidFrom, ValidUntil).
func IsValidAt(ticket *Ticket, event *events.Event, at time.Time) bool {
	if ticket == nil || event == nil {
		return false
	}
	if !event.Active {
		return false
	}
	if at.Before(ticket.ValidFrom) {
		return false
	}
	return at.Before(ticket.ValidUntil)
}
