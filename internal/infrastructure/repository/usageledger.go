package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lumastory/lumastory/internal/domain/usage"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/mappers"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
	"github.com/lumastory/lumastory/internal/shared/db"
)

// Assignment order matters: MySQL evaluates SET left to right against the
// already-updated row, so every expression below only reads columns that are
// assigned after it.
const (
	incrementDailySQL = `UPDATE usage_records SET
	stories_generated_today = CASE WHEN counter_date = ? THEN stories_generated_today + 1 ELSE 1 END,
	counter_date = ?,
	updated_at = ?
WHERE user_id = ?`

	incrementTrialSQL = `UPDATE usage_records SET
	stories_generated_today = CASE WHEN counter_date = ? THEN stories_generated_today + 1 ELSE 1 END,
	counter_date = ?,
	trial_completed = CASE WHEN trial_completed OR trial_stories_generated + 1 >= ? THEN TRUE ELSE FALSE END,
	trial_stories_generated = trial_stories_generated + 1,
	updated_at = ?
WHERE user_id = ?`

	childProfileCountSQL = "(SELECT COUNT(*) FROM child_profiles WHERE child_profiles.user_id = usage_records.user_id) AS child_profile_count"
)

// UsageLedger implements usage.Ledger. Counters are only changed by single SQL
// statements; application code never writes back a value it has read.
type UsageLedger struct {
	db *gorm.DB
}

func NewUsageLedger(db *gorm.DB) *UsageLedger {
	return &UsageLedger{db: db}
}

type usageRow struct {
	models.UsageRecordModel
	ChildProfileCount int
}

func (l *UsageLedger) GetUsage(ctx context.Context, userID string) (*usage.Record, error) {
	tx := db.GetTxFromContext(ctx, l.db)

	var row usageRow
	err := tx.Model(&models.UsageRecordModel{}).
		Select("usage_records.*, "+childProfileCountSQL).
		Where("user_id = ?", userID).
		Take(&row).Error
	if err == nil {
		record := mappers.UsageRecordToDomain(&row.UsageRecordModel)
		record.ChildProfileCount = row.ChildProfileCount
		return record, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get usage record: %w", err)
	}

	var profiles int64
	if err := tx.Model(&models.ChildProfileModel{}).Where("user_id = ?", userID).Count(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to count child profiles: %w", err)
	}
	record := usage.EmptyRecord(userID)
	record.ChildProfileCount = int(profiles)
	return record, nil
}

// IncrementStoryCount inserts the row if absent and then applies one UPDATE.
// Inside an outer transaction the pair runs under a savepoint.
func (l *UsageLedger) IncrementStoryCount(ctx context.Context, userID string, opts usage.IncrementOptions) (*usage.Record, error) {
	err := db.GetTxFromContext(ctx, l.db).Transaction(func(tx *gorm.DB) error {
		seed := &models.UsageRecordModel{UserID: userID, CounterDate: opts.Day}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
			return fmt.Errorf("failed to create usage record: %w", err)
		}

		now := time.Now().UTC()
		var result *gorm.DB
		if opts.CountTrial {
			result = tx.Exec(incrementTrialSQL, opts.Day, opts.Day, opts.TrialCap, now, userID)
		} else {
			result = tx.Exec(incrementDailySQL, opts.Day, opts.Day, now, userID)
		}
		if result.Error != nil {
			return fmt.Errorf("failed to increment usage record: %w", result.Error)
		}
		if result.RowsAffected != 1 {
			return fmt.Errorf("usage record for %s not updated", userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return l.GetUsage(ctx, userID)
}

// ResetDailyCounters zeroes every counter that does not already belong to day.
func (l *UsageLedger) ResetDailyCounters(ctx context.Context, day string) (int64, error) {
	result := db.GetTxFromContext(ctx, l.db).
		Model(&models.UsageRecordModel{}).
		Where("counter_date <> ?", day).
		Updates(map[string]interface{}{
			"stories_generated_today": 0,
			"counter_date":            day,
			"updated_at":              time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reset daily usage counters: %w", result.Error)
	}
	return result.RowsAffected, nil
}
