package routes

import (
	"github.com/gin-gonic/gin"
	catalogControllers "github.com/minishop-dev/minishop-api/controllers/catalog"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers the read-only product endpoints.
func SetupCatalogRoutes(api *gin.RouterGroup, db *gorm.DB) {
	catalog := api.Group("/catalog")
	{
		catalog.GET("", catalogControllers.ListProducts(db))
		catalog.GET("/search", catalogControllers.SearchProducts(db))
	}
}
