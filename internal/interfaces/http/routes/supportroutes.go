package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/infrastructure/ratelimit"
	supporthandlers "github.com/lumastory/lumastory/internal/interfaces/http/handlers/support"
	"github.com/lumastory/lumastory/internal/interfaces/http/middleware"
)

type SupportRouteConfig struct {
	SupportHandler *supporthandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	ContactRule    ratelimit.Rule
}

// SetupSupportRoutes configures the public contact form. Signed-in callers
// are attached to their ticket and limited per user instead of per IP.
func SetupSupportRoutes(api *gin.RouterGroup, cfg *SupportRouteConfig) {
	support := api.Group("/support")
	{
		support.POST("/contact",
			cfg.AuthMiddleware.OptionalAuth(),
			cfg.RateLimiter.Limit("support_contact", cfg.ContactRule),
			cfg.SupportHandler.Contact)
	}
}
