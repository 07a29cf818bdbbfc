package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/lumastory/lumastory/docs"
	"github.com/lumastory/lumastory/internal/infrastructure/ratelimit"
	"github.com/lumastory/lumastory/internal/interfaces/http/middleware"
	"github.com/lumastory/lumastory/internal/interfaces/http/routes"
	"github.com/lumastory/lumastory/internal/shared/utils"
)

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container
	utils.RegisterBindingTagNames()

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", c.hdlrs.healthHandler.Health)

	if r.cfg.Server.Mode != gin.ReleaseMode {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.engine.Group("/api")

	routes.SetupAccountRoutes(api, &routes.AccountRouteConfig{
		AccountHandler: c.hdlrs.accountHandler,
		UsageHandler:   c.hdlrs.usageHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupStoryRoutes(api, &routes.StoryRouteConfig{
		StoryHandler:        c.hdlrs.storyHandler,
		ChildProfileHandler: c.hdlrs.childProfileHandler,
		AuthMiddleware:      c.authMiddleware,
	})

	routes.SetupSupportRoutes(api, &routes.SupportRouteConfig{
		SupportHandler: c.hdlrs.supportHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.rateLimiter,
		ContactRule: ratelimit.Rule{
			Limit:  r.cfg.RateLimit.SupportContact.Limit,
			Window: r.cfg.RateLimit.SupportContact.Window,
		},
	})

	routes.SetupIntegrationRoutes(api, &routes.IntegrationRouteConfig{
		WebhookHandler: c.hdlrs.webhookHandler,
		CronHandler:    c.hdlrs.cronHandler,
		CronSecret:     r.cfg.Cron.Secret,
		Logger:         r.logger,
	})

	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		ReportHandler:        c.hdlrs.adminReportHandler,
		SupportHandler:       c.hdlrs.supportHandler,
		UserHandler:          c.hdlrs.adminUserHandler,
		SystemHandler:        c.hdlrs.adminSystemHandler,
		AnalyticsHandler:     c.hdlrs.adminAnalyticsHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Shutdown releases the container's clients. Call it after the HTTP server
// has stopped accepting requests.
func (r *Router) Shutdown() {
	r.container.Shutdown()
}
