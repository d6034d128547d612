package accesscontrol

import (
	"ticketforge/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts role management endpoints
func RegisterRoutes(rg *gin.RouterGroup, controller *Controller) {
	roles := rg.Group("/roles")
	{
		roles.GET("/:role/principals/:principalId", controller.CheckRole)
	}

	admin := rg.Group("/admin/roles")
	admin.Use(middleware.JWTAuth())
	{
		admin.POST("/grant", controller.GrantRole)
		admin.POST("/revoke", controller.RevokeRole)
		admin.GET("/:role/grants", controller.ListGrants)
		admin.GET("/audit/:principalId", controller.AuditTrail)
	}
}
