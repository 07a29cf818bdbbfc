package mappers

import (
	"github.com/lumastory/lumastory/internal/domain/usage"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
)

// UsageRecordToDomain converts a counters row. ChildProfileCount is filled by
// the caller because it is not stored on the row.
func UsageRecordToDomain(model *models.UsageRecordModel) *usage.Record {
	return &usage.Record{
		UserID:                model.UserID,
		StoriesGeneratedToday: model.StoriesGeneratedToday,
		CounterDate:           model.CounterDate,
		TrialStoriesGenerated: model.TrialStoriesGenerated,
		TrialCompleted:        model.TrialCompleted,
		UpdatedAt:             model.UpdatedAt,
	}
}
