package usage

import (
	"errors"
	"fmt"

	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
)

// ErrUnknownTier means a user carries a tier the policy table has no row for.
// It is a configuration fault, not a quota outcome.
var ErrUnknownTier = errors.New("no limits configured for tier")

// TierLimits is the entitlement row for one tier.
type TierLimits struct {
	MaxStoriesPerDay int
	UnlimitedStories bool
	MaxChildProfiles int
	ImagesAllowed    bool
	// TrialStoryCap is the lifetime story allowance; only read for the trial tier.
	TrialStoryCap int
}

// Policy is the static tier -> limits table.
type Policy struct {
	limits map[vo.Tier]TierLimits
}

// NewPolicy requires a row for every known tier.
func NewPolicy(limits map[vo.Tier]TierLimits) (*Policy, error) {
	table := make(map[vo.Tier]TierLimits, len(limits))
	for _, tier := range vo.AllTiers {
		l, ok := limits[tier]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTier, tier)
		}
		if l.MaxStoriesPerDay < 0 || l.MaxChildProfiles < 0 || l.TrialStoryCap < 0 {
			return nil, fmt.Errorf("negative limit configured for tier %s", tier)
		}
		table[tier] = l
	}
	return &Policy{limits: table}, nil
}

// LimitsFor returns the limits of tier.
func (p *Policy) LimitsFor(tier vo.Tier) (TierLimits, error) {
	l, ok := p.limits[tier]
	if !ok {
		return TierLimits{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return l, nil
}

// higherTiers returns the limits of every tier ranked above tier.
func (p *Policy) higherTiers(tier vo.Tier) []TierLimits {
	var out []TierLimits
	above := false
	for _, t := range vo.AllTiers {
		if above {
			out = append(out, p.limits[t])
		}
		if t == tier {
			above = true
		}
	}
	return out
}

func (p *Policy) upgradeRaisesStories(tier vo.Tier, current TierLimits) bool {
	for _, l := range p.higherTiers(tier) {
		if l.UnlimitedStories || (!current.UnlimitedStories && l.MaxStoriesPerDay > current.MaxStoriesPerDay) {
			return true
		}
	}
	return false
}

func (p *Policy) upgradeRaisesProfiles(tier vo.Tier, current TierLimits) bool {
	for _, l := range p.higherTiers(tier) {
		if l.MaxChildProfiles > current.MaxChildProfiles {
			return true
		}
	}
	return false
}

func (p *Policy) upgradeAllowsImages(tier vo.Tier) bool {
	for _, l := range p.higherTiers(tier) {
		if l.ImagesAllowed {
			return true
		}
	}
	return false
}
