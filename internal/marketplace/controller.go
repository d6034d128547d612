package marketplace

import (
	"net/http"
	"strconv"

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

// ListForResale handles POST /marketplace/listings/:ticketId
func (ctrl *Controller) ListForResale(c *gin.Context) {
	actorID, ok := middleware.Principal(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	var req ListForResaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	listing, err := ctrl.service.ListForResale(c.Request.Context(), actorID, ticketID, req.AskPrice)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Ticket listed for resale", ToListingResponse(listing), nil)
}

// CancelListing handles DELETE /marketplace/listings/:ticketId
func (ctrl *Controller) CancelListing(c *gin.Context) {
	actorID, ok := middleware.Principal(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	if err := ctrl.service.CancelResaleListing(c.Request.Context(), actorID, ticketID); err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Listing cancelled", nil, nil)
}

// BuyResaleTicket handles POST /marketplace/listings/:ticketId/buy
func (ctrl *Controller) BuyResaleTicket(c *gin.Context) {
	actorID, ok := middleware.Principal(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	var req BuyResaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	receipt, err := ctrl.service.BuyResaleTicket(c.Request.Context(), actorID, ticketID, req.Payment)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Resale settled", receipt, nil)
}

// GetListing handles GET /marketplace/listings/:ticketId
func (ctrl *Controller) GetListing(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	listing, err := ctrl.service.GetListing(c.Request.Context(), ticketID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Listing fetched", ToListingResponse(listing), nil)
}

// ListingsForEvent handles GET /marketplace/events/:id/listings
func (ctrl *Controller) ListingsForEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	list, err := ctrl.service.ListingsForEvent(c.Request.Context(), eventID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Listings fetched", ToListingResponses(list), nil)
}

// Balance handles GET /marketplace/balances/:principalId
func (ctrl *Controller) Balance(c *gin.Context) {
	principalID, err := uuid.Parse(c.Param("principalId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid principal ID", nil, nil)
		return
	}

	amount, err := ctrl.service.BalanceOf(c.Request.Context(), principalID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Balance fetched", gin.H{
		"principal_id": principalID,
		"amount":       amount,
	}, nil)
}

func parseTicketID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("ticketId"), 10, 64)
}
