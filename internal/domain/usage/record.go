package usage

import "time"

// Record is a snapshot of one user's usage counters.
//
// TrialStoriesGenerated never decreases and TrialCompleted never reverts once
// set. StoriesGeneratedToday belongs to CounterDate; a snapshot read on a later
// business day reports zero for it.
type Record struct {
	UserID                string
	StoriesGeneratedToday int
	CounterDate           string
	TrialStoriesGenerated int
	TrialCompleted        bool
	ChildProfileCount     int
	UpdatedAt             time.Time
}

// EmptyRecord is the zero-valued record returned for users with no activity.
func EmptyRecord(userID string) *Record {
	return &Record{UserID: userID}
}

// ForDay returns a copy whose daily counter is zero when it belongs to another day.
func (r Record) ForDay(day string) Record {
	if r.CounterDate != day {
		r.StoriesGeneratedToday = 0
		r.CounterDate = day
	}
	return r
}
