package pausegate

import (
	"ticketforge/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the pause gate endpoints
func RegisterRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/pause", controller.Status)

	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth())
	{
		admin.POST("/pause", controller.Pause)
		admin.POST("/unpause", controller.Unpause)
	}
}
