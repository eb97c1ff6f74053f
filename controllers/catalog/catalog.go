package catalogControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minishop-dev/minishop-api/cache"
	"github.com/minishop-dev/minishop-api/models"
	"gorm.io/gorm"
)

const (
	catalogCacheKey = "catalog:all"
	catalogCacheTTL = 5 * time.Minute
)

// GET /api/catalog
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		products := []models.Product{}
		if cache.GetJSON(ctx, catalogCacheKey, &products) {
			c.JSON(http.StatusOK, products)
			return
		}

		if err := db.Order("id").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		// Catalog is read-only in this service, so a short TTL is the only
		// invalidation needed.
		cache.SetJSON(ctx, catalogCacheKey, products, catalogCacheTTL)
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/catalog/search?q=keyword
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")

		// Searching with nothing yields nothing; "browse all" is the
		// plain catalog listing, not an empty search.
		products := []models.Product{}
		if q == "" {
			c.JSON(http.StatusOK, products)
			return
		}

		pattern := "%" + q + "%"
		if err := db.
			Where("LOWER(name) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)", pattern, pattern).
			Order("id").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
