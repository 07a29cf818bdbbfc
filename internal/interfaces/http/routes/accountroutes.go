package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/interfaces/http/handlers"
	"github.com/lumastory/lumastory/internal/interfaces/http/middleware"
)

// AccountRouteConfig holds dependencies for the signed-in user's account routes.
type AccountRouteConfig struct {
	AccountHandler *handlers.AccountHandler
	UsageHandler   *handlers.UsageHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAccountRoutes configures /me and /usage.
func SetupAccountRoutes(api *gin.RouterGroup, cfg *AccountRouteConfig) {
	me := api.Group("/me")
	me.Use(cfg.AuthMiddleware.RequireAuth())
	{
		me.POST("/sync", cfg.AccountHandler.Sync)
		me.GET("", cfg.AccountHandler.Me)
	}

	usage := api.Group("/usage")
	usage.Use(cfg.AuthMiddleware.RequireAuth())
	{
		usage.GET("/stats", cfg.UsageHandler.GetStats)
		usage.GET("/check", cfg.UsageHandler.Check)
		usage.GET("/trial", cfg.UsageHandler.TrialStatus)
	}
}
