package pausegate

import (
	"net/http"

	"ticketforge/internal/shared/middleware"
	"ticketforge/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Status handles GET /pause
func (ctrl *Controller) Status(c *gin.Context) {
	state, err := ctrl.service.Status(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Pause status fetched", PauseStatusResponse{
		Paused:    state.Paused,
		ChangedBy: state.ChangedBy,
		ChangedAt: state.ChangedAt,
	}, nil)
}

// Pause handles POST /admin/pause
func (ctrl *Controller) Pause(c *gin.Context) {
	actorID, ok := middleware.Principal(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	if err := ctrl.service.Pause(c.Request.Context(), actorID); err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ledger paused", nil, nil)
}

// Unpause handles POST /admin/unpause
func (ctrl *Controller) Unpause(c *gin.Context) {
	actorID, ok := middleware.Principal(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	if err := ctrl.service.Unpause(c.Request.Context(), actorID); err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ledger unpaused", nil, nil)
}
