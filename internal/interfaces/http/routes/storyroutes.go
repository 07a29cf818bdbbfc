package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lumastory/lumastory/internal/interfaces/http/handlers"
	"github.com/lumastory/lumastory/internal/interfaces/http/middleware"
)

type StoryRouteConfig struct {
	StoryHandler        *handlers.StoryHandler
	ChildProfileHandler *handlers.ChildProfileHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// SetupStoryRoutes configures story and child profile routes.
func SetupStoryRoutes(api *gin.RouterGroup, cfg *StoryRouteConfig) {
	stories := api.Group("/stories")
	stories.Use(cfg.AuthMiddleware.RequireAuth())
	{
		stories.POST("", cfg.StoryHandler.Create)
		stories.GET("", cfg.StoryHandler.List)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		stories.PATCH("/:id/visibility", cfg.StoryHandler.ChangeVisibility)
		stories.POST("/:id/report", cfg.StoryHandler.Report)

		stories.GET("/:id", cfg.StoryHandler.Get)
		stories.DELETE("/:id", cfg.StoryHandler.Delete)
	}

	profiles := api.Group("/child-profiles")
	profiles.Use(cfg.AuthMiddleware.RequireAuth())
	{
		profiles.POST("", cfg.ChildProfileHandler.Create)
		profiles.GET("", cfg.ChildProfileHandler.List)
		profiles.POST("/:id/avatar", cfg.ChildProfileHandler.GenerateAvatar)
		profiles.DELETE("/:id", cfg.ChildProfileHandler.Delete)
	}
}
