package valueobjects

import "fmt"

// Tier is the subscription level that governs entitlements.
type Tier string

const (
	TierTrial  Tier = "trial"
	TierPro    Tier = "pro"
	TierFamily Tier = "family"
)

var validTiers = map[Tier]bool{
	TierTrial:  true,
	TierPro:    true,
	TierFamily: true,
}

// AllTiers lists tiers from lowest to highest.
var AllTiers = []Tier{TierTrial, TierPro, TierFamily}

func (t Tier) String() string {
	return string(t)
}

func (t Tier) IsValid() bool {
	return validTiers[t]
}

func (t Tier) IsTrial() bool {
	return t == TierTrial
}

// IsHighest reports whether no tier above t exists.
func (t Tier) IsHighest() bool {
	return t == AllTiers[len(AllTiers)-1]
}

func NewTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid subscription tier: %s", s)
	}
	return t, nil
}
