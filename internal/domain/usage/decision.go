package usage

import (
	"fmt"

	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
)

// DenialReason is the machine-readable cause of a denied action.
type DenialReason string

const (
	ReasonTrialExhausted           DenialReason = "trial_exhausted"
	ReasonDailyLimitReached        DenialReason = "daily_limit_reached"
	ReasonChildProfileLimitReached DenialReason = "child_profile_limit_reached"
	ReasonImagesNotAllowed         DenialReason = "images_not_allowed"
)

// Decision is the outcome of a limit check. A denial is an ordinary value.
type Decision struct {
	Allowed         bool
	Reason          DenialReason
	CurrentCount    int
	MaxCount        int
	RequiresUpgrade bool
}

func allow(current, max int) Decision {
	return Decision{Allowed: true, CurrentCount: current, MaxCount: max}
}

func deny(reason DenialReason, current, max int, requiresUpgrade bool) Decision {
	return Decision{
		Reason:          reason,
		CurrentCount:    current,
		MaxCount:        max,
		RequiresUpgrade: requiresUpgrade,
	}
}

// Evaluate compares a usage snapshot against the tier's limits. The record must
// already be normalized to the current business day.
func (p *Policy) Evaluate(tier vo.Tier, action Action, record Record) (Decision, error) {
	limits, err := p.LimitsFor(tier)
	if err != nil {
		return Decision{}, err
	}

	switch action {
	case ActionCreateStory:
		if tier.IsTrial() {
			if record.TrialCompleted || record.TrialStoriesGenerated >= limits.TrialStoryCap {
				return deny(ReasonTrialExhausted, record.TrialStoriesGenerated, limits.TrialStoryCap, true), nil
			}
			return allow(record.TrialStoriesGenerated, limits.TrialStoryCap), nil
		}
		if limits.UnlimitedStories {
			return allow(record.StoriesGeneratedToday, 0), nil
		}
		if record.StoriesGeneratedToday >= limits.MaxStoriesPerDay {
			return deny(ReasonDailyLimitReached, record.StoriesGeneratedToday, limits.MaxStoriesPerDay,
				p.upgradeRaisesStories(tier, limits)), nil
		}
		return allow(record.StoriesGeneratedToday, limits.MaxStoriesPerDay), nil

	case ActionCreateChildProfile:
		if record.ChildProfileCount >= limits.MaxChildProfiles {
			return deny(ReasonChildProfileLimitReached, record.ChildProfileCount, limits.MaxChildProfiles,
				p.upgradeRaisesProfiles(tier, limits)), nil
		}
		return allow(record.ChildProfileCount, limits.MaxChildProfiles), nil

	case ActionGenerateImage:
		if !limits.ImagesAllowed {
			return deny(ReasonImagesNotAllowed, 0, 0, p.upgradeAllowsImages(tier)), nil
		}
		return allow(0, 0), nil
	}

	return Decision{}, fmt.Errorf("unsupported action: %s", action)
}

// IsTrialExhausted reports whether a trial-tier user has used up the lifetime
// allowance. Always false for paid tiers.
func (p *Policy) IsTrialExhausted(tier vo.Tier, record Record) (bool, error) {
	if !tier.IsTrial() {
		return false, nil
	}
	limits, err := p.LimitsFor(tier)
	if err != nil {
		return false, err
	}
	return record.TrialCompleted || record.TrialStoriesGenerated >= limits.TrialStoryCap, nil
}

// StoriesRemainingToday returns how many stories the user may still create on
// the current day, or nil when the tier is unlimited. For trial users it is the
// remaining lifetime allowance.
func (p *Policy) StoriesRemainingToday(tier vo.Tier, record Record) (*int, error) {
	limits, err := p.LimitsFor(tier)
	if err != nil {
		return nil, err
	}

	var remaining int
	switch {
	case tier.IsTrial():
		if !record.TrialCompleted {
			remaining = limits.TrialStoryCap - record.TrialStoriesGenerated
		}
	case limits.UnlimitedStories:
		return nil, nil
	default:
		remaining = limits.MaxStoriesPerDay - record.StoriesGeneratedToday
	}
	if remaining < 0 {
		remaining = 0
	}
	return &remaining, nil
}
