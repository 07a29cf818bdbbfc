package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	adminUsecases "github.com/lumastory/lumastory/internal/application/admin/usecases"
	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	auditUsecases "github.com/lumastory/lumastory/internal/application/audit/usecases"
	childprofileUsecases "github.com/lumastory/lumastory/internal/application/childprofile/usecases"
	moderationUsecases "github.com/lumastory/lumastory/internal/application/moderation/usecases"
	paymentUsecases "github.com/lumastory/lumastory/internal/application/payment/usecases"
	storyUsecases "github.com/lumastory/lumastory/internal/application/story/usecases"
	supportUsecases "github.com/lumastory/lumastory/internal/application/support/usecases"
	usageApp "github.com/lumastory/lumastory/internal/application/usage"
	usageUsecases "github.com/lumastory/lumastory/internal/application/usage/usecases"
	userUsecases "github.com/lumastory/lumastory/internal/application/user/usecases"
	"github.com/lumastory/lumastory/internal/infrastructure/ai"
	"github.com/lumastory/lumastory/internal/infrastructure/auth"
	"github.com/lumastory/lumastory/internal/infrastructure/config"
	"github.com/lumastory/lumastory/internal/infrastructure/email"
	"github.com/lumastory/lumastory/internal/infrastructure/export"
	"github.com/lumastory/lumastory/internal/infrastructure/payment"
	"github.com/lumastory/lumastory/internal/infrastructure/permission"
	"github.com/lumastory/lumastory/internal/infrastructure/ratelimit"
	"github.com/lumastory/lumastory/internal/infrastructure/storage"
	"github.com/lumastory/lumastory/internal/interfaces/http/handlers"
	adminHandlers "github.com/lumastory/lumastory/internal/interfaces/http/handlers/admin"
	supportHandlers "github.com/lumastory/lumastory/internal/interfaces/http/handlers/support"
	"github.com/lumastory/lumastory/internal/interfaces/http/middleware"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// ticketNotifyTimeout bounds the background support emails of one ticket.
const ticketNotifyTimeout = 30 * time.Second

// Container holds all infrastructure components, repositories, use cases and
// handlers, and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter

	// Infrastructure services
	jwtSvc          *auth.JWTService
	enforcer        *permission.Enforcer
	storyGenerator  storyUsecases.StoryGenerator
	avatarGenerator childprofileUsecases.AvatarGenerator
	avatarStore     childprofileUsecases.AvatarStore
	ticketNotifier  supportUsecases.TicketNotifier
}

// NewContainer creates a new Container with all dependencies wired together.
// Redis and the permission policy are required; the AI, storage and email
// providers fall back to disabled implementations when not configured.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, repositories, auth, permissions
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: External providers - AI, object storage, email
	c.initProviders()

	// Section 3: Use cases
	if err := c.initUseCases(); err != nil {
		return nil, err
	}

	// Section 4: Handlers and middlewares
	c.initHandlers()

	return c, nil
}

// ============================================================
// Section 1: Infrastructure
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	redisClient, err := initRedis(cfg, c.log)
	if err != nil {
		return err
	}
	c.redis = redisClient

	c.repos = newRepositories(c.db, c.redis, cfg, c.log)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT)

	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	policy, err := permission.LoadPolicyFile(cfg.Permission.PolicyFile)
	if err != nil {
		return err
	}
	if err := enforcer.Sync(policy); err != nil {
		return fmt.Errorf("failed to sync permission policy: %w", err)
	}
	c.enforcer = enforcer

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, cfg.Auth.JWT.CookieName, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.repos.userRepo, c.log)
	c.rateLimiter = middleware.NewRateLimiter(ratelimit.NewRedisRateLimiter(c.redis), c.log)
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "address", cfg.Redis.GetAddr())

	return redisClient, nil
}

// ============================================================
// Section 2: External providers
// ============================================================

func (c *Container) initProviders() {
	cfg := c.cfg
	log := c.log

	gemini, err := ai.NewGeminiStoryGenerator(context.Background(),
		cfg.AI.GeminiAPIKey, cfg.AI.StoryModel, cfg.AI.GenerationTimeout, log)
	if err != nil {
		log.Warnw("story generation disabled", "reason", err)
		c.storyGenerator = ai.DisabledStoryGenerator{}
	} else {
		c.storyGenerator = gemini
	}

	avatars, err := ai.NewHTTPAvatarGenerator(cfg.AI.ImageEndpoint, cfg.AI.ImageAPIKey, cfg.AI.GenerationTimeout)
	if err != nil {
		log.Warnw("avatar generation disabled", "reason", err)
		c.avatarGenerator = ai.DisabledAvatarGenerator{}
	} else {
		c.avatarGenerator = avatars
	}

	c.avatarStore = storage.PassthroughAvatarStore{}
	if cfg.Storage.IsConfigured() {
		store, err := storage.NewMinioAvatarStore(context.Background(), cfg.Storage, log)
		if err != nil {
			log.Warnw("object storage unavailable, avatars keep provider URLs", "error", err)
		} else {
			c.avatarStore = store
		}
	}

	if cfg.Email.IsConfigured() {
		mailer := email.NewSMTPEmailService(cfg.Email)
		c.ticketNotifier = email.NewAsyncTicketNotifier(
			email.NewTicketNotifier(mailer, cfg.Email.SupportInbox, log),
			ticketNotifyTimeout, log,
		)
	} else {
		c.ticketNotifier = email.NewDisabledTicketNotifier(log)
	}
}

// ============================================================
// Section 3: Use cases
// ============================================================

func (c *Container) initUseCases() error {
	log := c.log
	repos := c.repos

	policy, err := c.cfg.TierPolicy()
	if err != nil {
		return fmt.Errorf("invalid tier policy: %w", err)
	}
	priceTiers, err := c.cfg.PriceTiers()
	if err != nil {
		return fmt.Errorf("invalid price tiers: %w", err)
	}

	limits := usageApp.NewLimitCheckService(repos.userRepo, repos.usageLedger, policy, log)
	recorder := appaudit.NewActivityLogger(repos.auditRepo, log)

	c.ucs = &allUseCases{
		limitService: limits,
		syncUser:     userUsecases.NewSyncUserUseCase(repos.userRepo, log),
		getAccount:   userUsecases.NewGetAccountUseCase(repos.userRepo, limits, log),
		resetUsage:   usageUsecases.NewResetDailyUsageUseCase(repos.usageLedger, recorder, log),

		createChildProfile: childprofileUsecases.NewCreateChildProfileUseCase(repos.profileRepo, limits, log),
		listChildProfiles:  childprofileUsecases.NewListChildProfilesUseCase(repos.profileRepo, log),
		deleteChildProfile: childprofileUsecases.NewDeleteChildProfileUseCase(repos.profileRepo, log),
		generateAvatar: childprofileUsecases.NewGenerateAvatarUseCase(
			repos.profileRepo, limits, c.avatarGenerator, c.avatarStore, log,
		),

		createStory: storyUsecases.NewCreateStoryUseCase(
			repos.userRepo, repos.storyRepo, repos.profileRepo, limits,
			c.storyGenerator, repos.txManager, log,
		),
		listStories:      storyUsecases.NewListStoriesUseCase(repos.storyRepo, log),
		getStory:         storyUsecases.NewGetStoryUseCase(repos.storyRepo, log),
		changeVisibility: storyUsecases.NewChangeVisibilityUseCase(repos.storyRepo, log),
		deleteStory:      storyUsecases.NewDeleteStoryUseCase(repos.storyRepo, log),

		fileReport:  moderationUsecases.NewFileReportUseCase(repos.reportRepo, repos.storyRepo, log),
		listReports: moderationUsecases.NewListReportsUseCase(repos.reportRepo, log),
		getReport:   moderationUsecases.NewGetReportUseCase(repos.reportRepo, repos.storyRepo, recorder, log),
		reviewReport: moderationUsecases.NewReviewReportUseCase(
			repos.reportRepo, repos.storyRepo, repos.txManager, recorder, log,
		),

		createTicket: supportUsecases.NewCreateTicketUseCase(repos.ticketRepo, c.ticketNotifier, log),
		listTickets:  supportUsecases.NewListTicketsUseCase(repos.ticketRepo, log),
		getTicket:    supportUsecases.NewGetTicketUseCase(repos.ticketRepo, recorder, log),
		updateTicket: supportUsecases.NewUpdateTicketUseCase(repos.ticketRepo, recorder, log),

		activityLogger: recorder,
		getAdminUser:   adminUsecases.NewGetUserUseCase(repos.userRepo, limits, recorder, log),
		changeTier:     adminUsecases.NewChangeTierUseCase(repos.userRepo, recorder, log),
		changeRole:     adminUsecases.NewChangeRoleUseCase(repos.userRepo, recorder, log),
		analyticsOverview: adminUsecases.NewGetAnalyticsOverviewUseCase(
			repos.userRepo, repos.storyRepo, repos.reportRepo, repos.ticketRepo,
			repos.auditRepo, recorder, recorder, log,
		),
		getActivityLog: auditUsecases.NewGetActivityLogUseCase(repos.auditRepo, log),
		exportActivityLog: auditUsecases.NewExportActivityLogUseCase(
			repos.auditRepo, export.NewActivityXLSXExporter(), recorder, log,
		),

		subscriptionWebhook: paymentUsecases.NewHandleSubscriptionWebhookUseCase(
			repos.userRepo, payment.NewStripeWebhookVerifier(c.cfg.Payment.Stripe.WebhookSecret), priceTiers, log,
		),
	}
	return nil
}

// ============================================================
// Section 4: Handlers
// ============================================================

func (c *Container) initHandlers() {
	log := c.log
	ucs := c.ucs

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(map[string]handlers.HealthCheck{
			"database": c.pingDatabase,
			"redis": func(ctx context.Context) error {
				return c.redis.Ping(ctx).Err()
			},
		}),
		accountHandler: handlers.NewAccountHandler(ucs.syncUser, ucs.getAccount, log),
		usageHandler:   handlers.NewUsageHandler(ucs.limitService, log),
		childProfileHandler: handlers.NewChildProfileHandler(
			ucs.createChildProfile, ucs.listChildProfiles, ucs.deleteChildProfile, ucs.generateAvatar, log,
		),
		storyHandler: handlers.NewStoryHandler(
			ucs.createStory, ucs.listStories, ucs.getStory, ucs.changeVisibility, ucs.deleteStory,
			ucs.fileReport, log,
		),
		webhookHandler: handlers.NewWebhookHandler(ucs.subscriptionWebhook, log),
		cronHandler:    handlers.NewCronHandler(ucs.resetUsage, log),
		supportHandler: supportHandlers.NewHandler(
			ucs.createTicket, ucs.getTicket, ucs.listTickets, ucs.updateTicket, log,
		),

		adminReportHandler:    adminHandlers.NewReportHandler(ucs.listReports, ucs.getReport, ucs.reviewReport, log),
		adminUserHandler:      adminHandlers.NewUserHandler(ucs.getAdminUser, ucs.changeTier, ucs.changeRole, log),
		adminSystemHandler:    adminHandlers.NewSystemHandler(ucs.getActivityLog, ucs.exportActivityLog, ucs.resetUsage, log),
		adminAnalyticsHandler: adminHandlers.NewAnalyticsHandler(ucs.analyticsOverview, log),
	}
}

func (c *Container) pingDatabase(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Shutdown releases provider clients and the Redis connection.
func (c *Container) Shutdown() {
	if closer, ok := c.storyGenerator.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			c.log.Warnw("failed to close story generator", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
