package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/interfaces/http/handlers"
	"github.com/lumastory/lumastory/internal/interfaces/http/middleware"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// IntegrationRouteConfig holds the routes called by other systems rather than users.
type IntegrationRouteConfig struct {
	WebhookHandler *handlers.WebhookHandler
	CronHandler    *handlers.CronHandler
	CronSecret     string
	Logger         logger.Interface
}

// SetupIntegrationRoutes configures payment webhooks and internal cron triggers.
func SetupIntegrationRoutes(api *gin.RouterGroup, cfg *IntegrationRouteConfig) {
	webhooks := api.Group("/webhooks")
	{
		webhooks.POST("/stripe", cfg.WebhookHandler.Stripe)
	}

	cron := api.Group("/internal/cron")
	cron.Use(middleware.RequireCronSecret(cfg.CronSecret, cfg.Logger))
	{
		cron.POST("/reset-usage", cfg.CronHandler.ResetUsage)
	}
}
