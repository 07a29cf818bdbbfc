package http

import (
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers"
	adminHandlers "github.com/lumastory/lumastory/internal/interfaces/http/handlers/admin"
	supportHandlers "github.com/lumastory/lumastory/internal/interfaces/http/handlers/support"
)

// allHandlers holds all HTTP handler instances used by the container.
type allHandlers struct {
	healthHandler       *handlers.HealthHandler
	accountHandler      *handlers.AccountHandler
	usageHandler        *handlers.UsageHandler
	childProfileHandler *handlers.ChildProfileHandler
	storyHandler        *handlers.StoryHandler
	webhookHandler      *handlers.WebhookHandler
	cronHandler         *handlers.CronHandler
	supportHandler      *supportHandlers.Handler

	adminReportHandler    *adminHandlers.ReportHandler
	adminUserHandler      *adminHandlers.UserHandler
	adminSystemHandler    *adminHandlers.SystemHandler
	adminAnalyticsHandler *adminHandlers.AnalyticsHandler
}
