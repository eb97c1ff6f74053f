package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/minishop-dev/minishop-api/controllers/order"
	"github.com/minishop-dev/minishop-api/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers all "/api/order/*" endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/order")
	{
		// Convert the session's cart into an order
		orders.POST("/checkout",
			middleware.RequireSession,
			middleware.OptionalToken,
			orderControllers.CheckoutHandler(db))

		// Self-collection confirmation by pickup code
		orders.POST("/pickup", orderControllers.PickupHandler(db))

		// websocket endpoint for real-time fulfilment updates
		orders.GET("/ws/fulfilments", orderControllers.FulfilmentFeedHandler)

		// Fetch a single order with its items
		orders.GET("/:id", orderControllers.GetOrderHandler(db))
	}
}
