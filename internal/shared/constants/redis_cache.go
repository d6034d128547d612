package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Centralizes all Redis cache keys and TTL values for the ledger service.
// Pattern: ticketforge:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	// Event metadata changes only through explicit organizer updates.
	TTL_EVENT_DETAIL = 2 * time.Hour
	TTL_EVENT_LIST   = 15 * time.Minute

	// Ticket metadata is immutable apart from ownership, which mutations
	// invalidate eagerly.
	TTL_TICKET_DETAIL = 10 * time.Minute
	TTL_EVENT_TICKETS = 5 * time.Minute
	TTL_SUPPLY        = 1 * time.Minute

	// Listings churn with trading activity.
	TTL_LISTING = 30 * time.Second
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "ticketforge"
)

// ================== EVENT REGISTRY ==================

const (
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:id:" // + event-id
	CACHE_KEY_EVENT_TOTAL  = CACHE_PREFIX + ":events:total"

	PATTERN_INVALIDATE_EVENT_ALL    = CACHE_PREFIX + ":events:*"
	PATTERN_INVALIDATE_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:id:" // + event-id + *
)

// ================== TICKET LEDGER ==================

const (
	CACHE_KEY_TICKET_DETAIL = CACHE_PREFIX + ":tickets:detail:id:"  // + ticket-id
	CACHE_KEY_EVENT_TICKETS = CACHE_PREFIX + ":tickets:by_event:id:" // + event-id
	CACHE_KEY_TOTAL_SUPPLY  = CACHE_PREFIX + ":tickets:supply"

	PATTERN_INVALIDATE_TICKET_ALL    = CACHE_PREFIX + ":tickets:*"
	PATTERN_INVALIDATE_TICKET_DETAIL = CACHE_PREFIX + ":tickets:detail:id:" // + ticket-id + *
)

// ================== KEY BUILDERS ==================

// BuildEventDetailKey builds the cache key for a single event
func BuildEventDetailKey(eventID uint64) string {
	return fmt.Sprintf("%s%d", CACHE_KEY_EVENT_DETAIL, eventID)
}

// BuildTicketDetailKey builds the cache key for a single ticket
func BuildTicketDetailKey(ticketID uint64) string {
	return fmt.Sprintf("%s%d", CACHE_KEY_TICKET_DETAIL, ticketID)
}

// BuildEventTicketsKey builds the cache key for an event's ticket index
func BuildEventTicketsKey(eventID uint64) string {
	return fmt.Sprintf("%s%d", CACHE_KEY_EVENT_TICKETS, eventID)
}
