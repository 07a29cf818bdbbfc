package testutil

import (
	"time"

	"github.com/lumastory/lumastory/internal/domain/usage"
	"github.com/lumastory/lumastory/internal/domain/user"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	"github.com/lumastory/lumastory/internal/shared/authorization"
)

// DefaultPolicy mirrors the shipped tier defaults.
func DefaultPolicy() *usage.Policy {
	p, err := usage.NewPolicy(map[vo.Tier]usage.TierLimits{
		vo.TierTrial:  {TrialStoryCap: 1},
		vo.TierPro:    {MaxStoriesPerDay: 10, MaxChildProfiles: 1, ImagesAllowed: true},
		vo.TierFamily: {UnlimitedStories: true, MaxChildProfiles: 3, ImagesAllowed: true},
	})
	if err != nil {
		panic(err)
	}
	return p
}

// NewUser builds a persisted-looking user on the given tier.
func NewUser(id string, tier vo.Tier) *user.User {
	return newUser(id, tier, authorization.RoleUser)
}

// NewAdmin builds a superadmin user.
func NewAdmin(id string) *user.User {
	return newUser(id, vo.TierFamily, authorization.RoleSuperadmin)
}

func newUser(id string, tier vo.Tier, role authorization.UserRole) *user.User {
	now := time.Now().UTC()
	u, err := user.ReconstructUser(id, id+"@example.com", "User "+id, tier, role, nil, now, now)
	if err != nil {
		panic(err)
	}
	return u
}
