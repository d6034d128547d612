package tickets

import (
	"ticketforge/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts ticket endpoints
func RegisterRoutes(rg *gin.RouterGroup, controller *Controller) {
	public := rg.Group("/tickets")
	{
		public.GET("/supply", controller.TotalSupply)
		public.GET("/index/:index", controller.TokenByIndex)
		public.GET("/:id", controller.GetTicket)
		public.GET("/:id/validity", controller.CheckValidity)
	}

	rg.GET("/events/:id/tickets", controller.TicketsForEvent)
	rg.GET("/principals/:principalId/tickets", controller.TicketsForOwner)

	protected := rg.Group("/tickets")
	protected.Use(middleware.JWTAuth())
	{
		protected.POST("/mint", controller.MintTicket)
		protected.POST("/organizer-mint", controller.OrganizerMintTicket)
		protected.POST("/batch-mint", controller.BatchMintTickets)
		protected.POST("/:id/transfer", controller.Transfer)
		protected.DELETE("/:id", controller.Burn)
	}
}
