// Package errs defines the closed set of ledger failure kinds. Every
// operation surfaces one of these sentinels (possibly wrapped) so callers can
// match failure kinds exhaustively instead of parsing messages.
package errs

import (
	"errors"
	"net/http"
)

// Code is the stable machine-readable identifier of a failure kind.
type Code string

const (
	// Authorization
	CodeUnauthorized         Code = "UNAUTHORIZED"
	CodeCannotRemoveLastAdmin Code = "CANNOT_REMOVE_LAST_ADMIN"
	CodeNotEventOrganizer    Code = "NOT_EVENT_ORGANIZER"

	// Existence
	CodeEventDoesNotExist  Code = "EVENT_DOES_NOT_EXIST"
	CodeTicketDoesNotExist Code = "TICKET_DOES_NOT_EXIST"
	CodeIndexOutOfBounds   Code = "INDEX_OUT_OF_BOUNDS"

	// Temporal / state invariant
	CodeInvalidTimeRange            Code = "INVALID_TIME_RANGE"
	CodeInvalidTicketTimeRange      Code = "INVALID_TICKET_TIME_RANGE"
	CodeEventTimeConstraintViolation Code = "EVENT_TIME_CONSTRAINT_VIOLATION"
	CodeEventDoesNotExistOrInactive Code = "EVENT_DOES_NOT_EXIST_OR_INACTIVE"
	CodeListingStale                Code = "LISTING_STALE"
	CodeInvalidRoyalty              Code = "INVALID_ROYALTY"
	CodeInvalidResaleBounds         Code = "INVALID_RESALE_BOUNDS"
	CodeNotPaused                   Code = "NOT_PAUSED"
	CodeInvalidRole                 Code = "INVALID_ROLE"

	// Transfer policy
	CodeTicketNotTransferable Code = "TICKET_NOT_TRANSFERABLE"
	CodeTicketNotOwnedBy      Code = "TICKET_NOT_OWNED_BY"

	// Payment
	CodeInsufficientPayment  Code = "INSUFFICIENT_PAYMENT"
	CodeResalePriceOutOfRange Code = "RESALE_PRICE_OUT_OF_RANGE"

	// Liveness
	CodeContractPaused Code = "CONTRACT_PAUSED"
)

// Error is a tagged ledger failure.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrUnauthorized          = &Error{CodeUnauthorized, "caller lacks the required role"}
	ErrCannotRemoveLastAdmin = &Error{CodeCannotRemoveLastAdmin, "cannot revoke the last remaining admin"}
	ErrNotEventOrganizer     = &Error{CodeNotEventOrganizer, "caller is not the event's organizer"}

	ErrEventDoesNotExist  = &Error{CodeEventDoesNotExist, "event does not exist"}
	ErrTicketDoesNotExist = &Error{CodeTicketDoesNotExist, "ticket does not exist"}
	ErrIndexOutOfBounds   = &Error{CodeIndexOutOfBounds, "index out of bounds"}

	ErrInvalidTimeRange             = &Error{CodeInvalidTimeRange, "start time must be before end time"}
	ErrInvalidTicketTimeRange       = &Error{CodeInvalidTicketTimeRange, "ticket valid-from must be before valid-until"}
	ErrEventTimeConstraintViolation = &Error{CodeEventTimeConstraintViolation, "ticket validity window must fall within the event window"}
	ErrEventDoesNotExistOrInactive  = &Error{CodeEventDoesNotExistOrInactive, "event does not exist or is inactive"}
	ErrListingStale                 = &Error{CodeListingStale, "resale listing is stale"}
	ErrInvalidRoyalty               = &Error{CodeInvalidRoyalty, "royalty must not exceed 10000 basis points"}
	ErrInvalidResaleBounds          = &Error{CodeInvalidResaleBounds, "minimum resale price must not exceed maximum"}
	ErrInvalidRole                  = &Error{CodeInvalidRole, "unknown role"}
	ErrNotPaused                    = &Error{CodeNotPaused, "ledger is not paused"}

	ErrTicketNotTransferable = &Error{CodeTicketNotTransferable, "ticket is not transferable"}
	ErrTicketNotOwnedBy      = &Error{CodeTicketNotOwnedBy, "ticket is not owned by the given principal"}

	ErrInsufficientPayment   = &Error{CodeInsufficientPayment, "payment amount is below the ask price"}
	ErrResalePriceOutOfRange = &Error{CodeResalePriceOutOfRange, "ask price is outside the event's resale bounds"}

	ErrContractPaused = &Error{CodeContractPaused, "ledger is paused"}
)

// CodeOf extracts the failure code from err, unwrapping as needed.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// HTTPStatus maps a ledger failure to its transport status. Unknown errors
// are internal.
func HTTPStatus(err error) int {
	code, ok := CodeOf(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch code {
	case CodeUnauthorized, CodeNotEventOrganizer, CodeTicketNotOwnedBy:
		return http.StatusForbidden
	case CodeCannotRemoveLastAdmin, CodeListingStale, CodeTicketNotTransferable, CodeNotPaused:
		return http.StatusConflict
	case CodeEventDoesNotExist, CodeTicketDoesNotExist, CodeIndexOutOfBounds:
		return http.StatusNotFound
	case CodeInsufficientPayment:
		return http.StatusPaymentRequired
	case CodeContractPaused:
		return http.StatusServiceUnavailable
	default:
		// Remaining codes are input invariant violations.
		return http.StatusBadRequest
	}
}
