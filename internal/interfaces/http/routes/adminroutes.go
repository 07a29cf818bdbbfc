package routes

import (
	"github.com/gin-gonic/gin"

	adminhandlers "github.com/lumastory/lumastory/internal/interfaces/http/handlers/admin"
	supporthandlers "github.com/lumastory/lumastory/internal/interfaces/http/handlers/support"
	"github.com/lumastory/lumastory/internal/interfaces/http/middleware"
	"github.com/lumastory/lumastory/internal/shared/authorization"
)

// AdminRouteConfig holds dependencies for admin-only routes.
type AdminRouteConfig struct {
	ReportHandler        *adminhandlers.ReportHandler
	SupportHandler       *supporthandlers.Handler
	UserHandler          *adminhandlers.UserHandler
	SystemHandler        *adminhandlers.SystemHandler
	AnalyticsHandler     *adminhandlers.AnalyticsHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAdminRoutes configures admin-only routes. Every group requires a
// session; each route is then checked against the permission policy.
func SetupAdminRoutes(api *gin.RouterGroup, cfg *AdminRouteConfig) {
	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())

	perm := cfg.PermissionMiddleware.RequirePermission

	reports := admin.Group("/content/reports")
	{
		reports.GET("",
			perm(authorization.ResourceAdminContent, authorization.ActionRead),
			cfg.ReportHandler.ListReports)
		reports.POST("/:id/resolve",
			perm(authorization.ResourceAdminContent, authorization.ActionWrite),
			cfg.ReportHandler.ResolveReport)
		reports.GET("/:id",
			perm(authorization.ResourceAdminContent, authorization.ActionRead),
			cfg.ReportHandler.GetReport)
		reports.PATCH("/:id",
			perm(authorization.ResourceAdminContent, authorization.ActionWrite),
			cfg.ReportHandler.ReviewReport)
	}

	tickets := admin.Group("/support/tickets")
	{
		tickets.GET("",
			perm(authorization.ResourceAdminSupport, authorization.ActionRead),
			cfg.SupportHandler.ListTickets)
		tickets.GET("/:id",
			perm(authorization.ResourceAdminSupport, authorization.ActionRead),
			cfg.SupportHandler.GetTicket)
		tickets.PATCH("/:id",
			perm(authorization.ResourceAdminSupport, authorization.ActionWrite),
			cfg.SupportHandler.UpdateTicket)
	}

	users := admin.Group("/users")
	{
		users.GET("/:id",
			perm(authorization.ResourceAdminUsers, authorization.ActionRead),
			cfg.UserHandler.GetUser)
		users.PATCH("/:id/subscription",
			perm(authorization.ResourceAdminUsers, authorization.ActionWrite),
			cfg.UserHandler.ChangeTier)
		users.PATCH("/:id/role",
			perm(authorization.ResourceAdminUsers, authorization.ActionWrite),
			cfg.UserHandler.ChangeRole)
	}

	system := admin.Group("/system")
	{
		system.GET("/activity",
			perm(authorization.ResourceAdminSystem, authorization.ActionRead),
			cfg.SystemHandler.GetActivity)
		system.GET("/activity/export",
			perm(authorization.ResourceAdminSystem, authorization.ActionRead),
			cfg.SystemHandler.ExportActivity)
		system.POST("/usage/reset",
			perm(authorization.ResourceAdminSystem, authorization.ActionWrite),
			cfg.SystemHandler.ResetUsage)
	}

	admin.GET("/analytics/overview",
		perm(authorization.ResourceAdminAnalytics, authorization.ActionRead),
		cfg.AnalyticsHandler.Overview)
}
