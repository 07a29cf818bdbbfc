package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	"github.com/lumastory/lumastory/internal/application/usage/usecases"
	"github.com/lumastory/lumastory/internal/infrastructure/config"
	"github.com/lumastory/lumastory/internal/infrastructure/database"
	"github.com/lumastory/lumastory/internal/infrastructure/repository"
	"github.com/lumastory/lumastory/internal/infrastructure/scheduler"
	"github.com/lumastory/lumastory/internal/shared/biztime"
	"github.com/lumastory/lumastory/internal/shared/constants"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

func main() {
	// Parse environment from command line or env variable
	env := constants.EnvDevelopment
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	log.Infow("starting usage worker", "environment", env)

	// Cron expressions and day keys both follow the business timezone
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		log.Fatalw("failed to initialize business timezone", "error", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	db := database.Get()
	resetUC := usecases.NewResetDailyUsageUseCase(
		repository.NewUsageLedger(db),
		appaudit.NewActivityLogger(repository.NewAuditRepository(db), log),
		log,
	)

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		log.Fatalw("failed to create scheduler", "error", err)
	}
	if err := manager.RegisterUsageResetJobs(cfg.Cron.ResetSchedule, resetUC); err != nil {
		log.Fatalw("failed to register usage reset jobs", "error", err)
	}
	manager.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig.String())
	if err := manager.Stop(); err != nil {
		log.Errorw("scheduler stopped with error", "error", err)
	}
	log.Infow("usage worker stopped")
}
