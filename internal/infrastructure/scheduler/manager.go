// Package scheduler runs the worker's periodic jobs on gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/lumastory/lumastory/internal/application/usage/usecases"
	"github.com/lumastory/lumastory/internal/shared/biztime"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

const (
	// DefaultResetSchedule fires at midnight in the business timezone.
	DefaultResetSchedule = "0 0 * * *"

	resetJobTimeout = 5 * time.Minute
)

// UsageResetter clears daily story counters.
type UsageResetter interface {
	Execute(ctx context.Context, cmd usecases.ResetDailyUsageCommand) (*usecases.ResetDailyUsageResult, error)
}

// SchedulerManager owns the single gocron scheduler of the worker process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager evaluates cron expressions in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterUsageResetJobs registers the daily counter reset on schedule plus a
// one-off catch-up run at start, covering a worker that was down at midnight.
// The reset is idempotent within a day.
func (m *SchedulerManager) RegisterUsageResetJobs(schedule string, resetter UsageResetter) error {
	if schedule == "" {
		schedule = DefaultResetSchedule
	}

	_, err := m.scheduler.NewJob(
		gocron.CronJob(schedule, false),
		gocron.NewTask(func() {
			m.runUsageReset(resetter, "schedule")
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("usage", "daily-reset"),
		gocron.WithName("usage-daily-reset"),
	)
	if err != nil {
		return err
	}

	_, err = m.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()),
		gocron.NewTask(func() {
			m.runUsageReset(resetter, "startup")
		}),
		gocron.WithTags("usage", "catch-up"),
		gocron.WithName("usage-reset-catch-up"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered usage reset jobs", "schedule", schedule, "timezone", biztime.Location().String())
	return nil
}

func (m *SchedulerManager) runUsageReset(resetter UsageResetter, trigger string) {
	ctx, cancel := context.WithTimeout(context.Background(), resetJobTimeout)
	defer cancel()

	start := biztime.NowUTC()
	result, err := resetter.Execute(ctx, usecases.ResetDailyUsageCommand{})
	if err != nil {
		m.logger.Errorw("daily usage reset failed",
			"trigger", trigger,
			"error", err,
			"duration", time.Since(start),
		)
		return
	}

	m.logger.Infow("daily usage reset completed",
		"trigger", trigger,
		"day", result.Day,
		"rows", result.Reset,
		"duration", time.Since(start),
	)
}

// Start is a no-op when already started.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
