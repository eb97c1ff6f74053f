package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/minishop-dev/minishop-api/controllers/cart"
	"github.com/minishop-dev/minishop-api/middleware"
	"gorm.io/gorm"
)

// SetupCartRoutes registers all "/api/cart/*" endpoints. Every cart call is
// keyed by the X-Session-Id header.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart")
	cart.Use(middleware.RequireSession)
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("/add", cartControllers.AddItem(db))
		cart.POST("/remove", cartControllers.RemoveItem(db))
		cart.POST("/clear", cartControllers.ClearCart(db))
	}
}
