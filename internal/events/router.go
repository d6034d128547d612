package events

import (
	"ticketforge/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts event endpoints
func RegisterRoutes(rg *gin.RouterGroup, controller *Controller) {
	public := rg.Group("/events")
	{
		public.GET("", controller.ListEvents)
		public.GET("/total", controller.TotalEvents)
		public.GET("/index/:index", controller.EventByIndex)
		public.GET("/:id", controller.GetEvent)
	}

	protected := rg.Group("/events")
	protected.Use(middleware.JWTAuth())
	{
		protected.POST("", controller.CreateEvent)
		protected.PUT("/:id", controller.UpdateEvent)
		protected.PATCH("/:id/status", controller.SetEventStatus)
	}
}
