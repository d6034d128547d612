package accesscontrol

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

// GrantRole handles POST /admin/roles/grant
func (ctrl *Controller) GrantRole(c *gin.Context) {
	actorID, ok := middleware.Principal(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req RoleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	changed, err := ctrl.service.GrantRole(c.Request.Context(), actorID, req.Role, req.PrincipalID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Role grant processed", RoleChangeResponse{
		Role:        req.Role,
		PrincipalID: req.PrincipalID,
		Changed:     changed,
	}, nil)
}

// RevokeRole handles POST /admin/roles/revoke
func (ctrl *Controller) RevokeRole(c *gin.Context) {
	actorID, ok := middleware.Principal(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req RoleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	changed, err := ctrl.service.RevokeRole(c.Request.Context(), actorID, req.Role, req.PrincipalID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Role revoke processed", RoleChangeResponse{
		Role:        req.Role,
		PrincipalID: req.PrincipalID,
		Changed:     changed,
	}, nil)
}

// CheckRole handles GET /roles/:role/principals/:principalId
func (ctrl *Controller) CheckRole(c *gin.Context) {
	role := Role(c.Param("role"))
	if !role.IsValid() {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Unknown role", nil, nil)
		return
	}

	principalID, err := uuid.Parse(c.Param("principalId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid principal ID", nil, err.Error())
		return
	}

	has, err := ctrl.service.HasRole(c.Request.Context(), role, principalID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Role check completed", RoleCheckResponse{
		Role:        role,
		PrincipalID: principalID,
		HasRole:     has,
	}, nil)
}

// ListGrants handles GET /admin/roles/:role/grants
func (ctrl *Controller) ListGrants(c *gin.Context) {
	role := Role(c.Param("role"))
	if !role.IsValid() {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Unknown role", nil, nil)
		return
	}

	grants, err := ctrl.service.ListGrants(c.Request.Context(), role)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Role grants fetched", ToRoleGrantResponses(grants), nil)
}

// AuditTrail handles GET /admin/roles/audit/:principalId
func (ctrl *Controller) AuditTrail(c *gin.Context) {
	principalID, err := uuid.Parse(c.Param("principalId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid principal ID", nil, err.Error())
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid limit", nil, nil)
			return
		}
		limit = parsed
	}

	entries, err := ctrl.service.AuditTrail(c.Request.Context(), principalID, limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Audit trail fetched", entries, nil)
}
