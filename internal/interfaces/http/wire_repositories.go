package http

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/lumastory/lumastory/internal/domain/audit"
	"github.com/lumastory/lumastory/internal/domain/childprofile"
	"github.com/lumastory/lumastory/internal/domain/moderation"
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/domain/support"
	"github.com/lumastory/lumastory/internal/domain/usage"
	"github.com/lumastory/lumastory/internal/infrastructure/cache"
	"github.com/lumastory/lumastory/internal/infrastructure/config"
	"github.com/lumastory/lumastory/internal/infrastructure/repository"
	shareddb "github.com/lumastory/lumastory/internal/shared/db"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// repositories holds all repository instances used by the container.
type repositories struct {
	// userRepo reads through the Redis user cache; writes invalidate it.
	userRepo    *cache.CachedUserRepository
	profileRepo childprofile.Repository
	storyRepo   story.Repository
	reportRepo  moderation.Repository
	ticketRepo  support.Repository
	auditRepo   audit.Repository
	usageLedger usage.Ledger
	txManager   *shareddb.TransactionManager
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *repositories {
	return &repositories{
		userRepo: cache.NewCachedUserRepository(
			repository.NewUserRepository(db, log), redisClient, cfg.Cache.UserTTL, log,
		),
		profileRepo: repository.NewChildProfileRepository(db, log),
		storyRepo:   repository.NewStoryRepository(db, log),
		reportRepo:  repository.NewReportRepository(db, log),
		ticketRepo:  repository.NewTicketRepository(db, log),
		auditRepo:   repository.NewAuditRepository(db),
		usageLedger: repository.NewUsageLedger(db),
		txManager:   shareddb.NewTransactionManager(db),
	}
}
