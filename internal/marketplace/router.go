package marketplace

import (
	"ticketforge/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts marketplace endpoints
func RegisterRoutes(rg *gin.RouterGroup, controller *Controller) {
	public := rg.Group("/marketplace")
	{
		public.GET("/listings/:ticketId", controller.GetListing)
		public.GET("/events/:id/listings", controller.ListingsForEvent)
		public.GET("/balances/:principalId", controller.Balance)
	}

	protected := rg.Group("/marketplace")
	protected.Use(middleware.JWTAuth())
	{
		protected.POST("/listings/:ticketId", controller.ListForResale)
		protected.DELETE("/listings/:ticketId", controller.CancelListing)
		protected.POST("/listings/:ticketId/buy", controller.BuyResaleTicket)
	}
}
