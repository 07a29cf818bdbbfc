package dto

import (
	"github.com/lumastory/lumastory/internal/domain/usage"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
)

// DecisionDTO is the wire form of a limit check.
type DecisionDTO struct {
	Action          string `json:"action"`
	Allowed         bool   `json:"allowed"`
	Reason          string `json:"reason,omitempty"`
	CurrentCount    int    `json:"currentCount"`
	MaxCount        int    `json:"maxCount"`
	RequiresUpgrade bool   `json:"requiresUpgrade"`
}

type TrialStatusDTO struct {
	TrialExhausted  bool `json:"trialExhausted"`
	RequiresUpgrade bool `json:"requiresUpgrade"`
}

type LimitsDTO struct {
	MaxStoriesPerDay int  `json:"maxStoriesPerDay"`
	UnlimitedStories bool `json:"unlimitedStories"`
	MaxChildProfiles int  `json:"maxChildProfiles"`
	ImagesAllowed    bool `json:"imagesAllowed"`
	TrialStoryCap    int  `json:"trialStoryCap,omitempty"`
}

// UsageStatsDTO is returned by GET /api/usage/stats. StoriesRemainingToday is
// null for tiers without a daily cap.
type UsageStatsDTO struct {
	Tier                  string    `json:"tier"`
	StoriesGeneratedToday int       `json:"storiesGeneratedToday"`
	StoriesRemainingToday *int      `json:"storiesRemainingToday"`
	TrialStoriesGenerated int       `json:"trialStoriesGenerated"`
	TrialCompleted        bool      `json:"trialCompleted"`
	ChildProfileCount     int       `json:"childProfileCount"`
	Limits                LimitsDTO `json:"limits"`
}

func ToDecisionDTO(action usage.Action, d usage.Decision) *DecisionDTO {
	return &DecisionDTO{
		Action:          action.String(),
		Allowed:         d.Allowed,
		Reason:          string(d.Reason),
		CurrentCount:    d.CurrentCount,
		MaxCount:        d.MaxCount,
		RequiresUpgrade: d.RequiresUpgrade,
	}
}

func ToUsageStatsDTO(tier vo.Tier, limits usage.TierLimits, record usage.Record, remaining *int) *UsageStatsDTO {
	out := &UsageStatsDTO{
		Tier:                  tier.String(),
		StoriesGeneratedToday: record.StoriesGeneratedToday,
		StoriesRemainingToday: remaining,
		TrialStoriesGenerated: record.TrialStoriesGenerated,
		TrialCompleted:        record.TrialCompleted,
		ChildProfileCount:     record.ChildProfileCount,
		Limits: LimitsDTO{
			MaxStoriesPerDay: limits.MaxStoriesPerDay,
			UnlimitedStories: limits.UnlimitedStories,
			MaxChildProfiles: limits.MaxChildProfiles,
			ImagesAllowed:    limits.ImagesAllowed,
		},
	}
	if tier.IsTrial() {
		out.Limits.TrialStoryCap = limits.TrialStoryCap
	}
	return out
}
