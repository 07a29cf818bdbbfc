package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lumastory/lumastory/internal/infrastructure/config"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// Router exposes the wired container as a gin engine.
type Router struct {
	container *Container
	engine    *gin.Engine
	cfg       *config.Config
	logger    logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{
		container: c,
		engine:    c.engine,
		cfg:       cfg,
		logger:    log,
	}, nil
}
