package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/minishop-dev/minishop-api/auth"
	"github.com/minishop-dev/minishop-api/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))
		authGroup.POST("/login", auth.Login(db))
		authGroup.POST("/session", auth.CreateSession())
		authGroup.GET("/me", middleware.ValidateToken, auth.Me(db))
	}
}
