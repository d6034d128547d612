package tickets

import (
	"net/http"
	"strconv"
	"time"

	"ticketforge/internal/shared/middleware"
	"ticketforge/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// MintTicket handles POST /tickets/mint
func (ctrl *Controller) MintTicket(c *gin.Context) {
	actorID, ok := middleware.Principal(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req MintTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ticket, err := ctrl.service.MintTicketForEvent(c.Request.Context(), actorID, &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Ticket minted", ToTicketResponse(ticket), nil)
}

// OrganizerMintTicket handles POST /tickets/organizer-mint
func (ctrl *Controller) OrganizerMintTicket(c *gin.Context) {
	actorID, ok := middleware.Principal(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req MintTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ticket, err := ctrl.service.OrganizerMintTicket(c.Request.Context(), actorID, &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Ticket minted", ToTicketResponse(ticket), nil)
}

// BatchMintTickets handles POST /tickets/batch-mint
func (ctrl *Controller) BatchMintTickets(c *gin.Context) {
	actorID, ok := middleware.Principal(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req BatchMintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	minted, err := ctrl.service.BatchMintTickets(c.Request.Context(), actorID, &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Tickets minted", ToTicketResponses(minted), nil)
}

// Transfer handles POST /tickets/:id/transfer
func (ctrl *Controller) Transfer(c *gin.Context) {
	actorID, ok := middleware.Principal(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	id, err := parseTicketID(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ticket, err := ctrl.service.Transfer(c.Request.Context(), actorID, id, req.To)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket transferred", ToTicketResponse(ticket), nil)
}

// Burn handles DELETE /tickets/:id
func (ctrl *Controller) Burn(c *gin.Context) {
	actorID, ok := middleware.Principal(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	id, err := parseTicketID(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	if err := ctrl.service.Burn(c.Request.Context(), actorID, id); err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket burned", nil, nil)
}

// GetTicket handles GET /tickets/:id
func (ctrl *Controller) GetTicket(c *gin.Context) {
	id, err := parseTicketID(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	ticket, err := ctrl.service.GetTicketMetadata(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket fetched", ToTicketResponse(ticket), nil)
}

// CheckValidity handles GET /tickets/:id/validity?at=RFC3339
func (ctrl *Controller) CheckValidity(c *gin.Context) {
	id, err := parseTicketID(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	at := time.Now().UTC()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid timestamp, expected RFC3339", nil, nil)
			return
		}
		at = parsed.UTC()
	}

	valid, err := ctrl.service.IsTicketValid(c.Request.Context(), id, at)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Validity checked", ValidityResponse{
		TicketID:  id,
		Valid:     valid,
		CheckedAt: at,
	}, nil)
}

// TicketsForEvent handles GET /events/:id/tickets
func (ctrl *Controller) TicketsForEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	list, err := ctrl.service.GetTicketsForEvent(c.Request.Context(), eventID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Tickets fetched", ToTicketResponses(list), nil)
}

// TicketsForOwner handles GET /principals/:principalId/tickets
func (ctrl *Controller) TicketsForOwner(c *gin.Context) {
	owner, err := uuid.Parse(c.Param("principalId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid principal ID", nil, nil)
		return
	}

	list, err := ctrl.service.GetTicketsForOwner(c.Request.Context(), owner)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Tickets fetched", ToTicketResponses(list), nil)
}

// TotalSupply handles GET /tickets/supply
func (ctrl *Controller) TotalSupply(c *gin.Context) {
	total, err := ctrl.service.TotalSupply(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Supply fetched", gin.H{"total": total}, nil)
}

// TokenByIndex handles GET /tickets/index/:index
func (ctrl *Controller) TokenByIndex(c *gin.Context) {
	index, err := strconv.ParseInt(c.Param("index"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid index", nil, nil)
		return
	}

	ticket, err := ctrl.service.TokenByIndex(c.Request.Context(), index)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket fetched", ToTicketResponse(ticket), nil)
}

func parseTicketID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
