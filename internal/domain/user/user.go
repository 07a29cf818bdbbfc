package user

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	"github.com/lumastory/lumastory/internal/shared/authorization"
)

// User is the account that owns stories, child profiles and a usage record.
// Identity itself is managed outside this service; users arrive with a JWT.
type User struct {
	id               string
	email            string
	displayName      string
	tier             vo.Tier
	role             authorization.UserRole
	stripeCustomerID *string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewUser creates a trial-tier user with the default role.
func NewUser(id, email, displayName string) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	now := time.Now().UTC()
	return &User{
		id:          id,
		email:       email,
		displayName: displayName,
		tier:        vo.TierTrial,
		role:        authorization.RoleUser,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(
	id, email, displayName string,
	tier vo.Tier,
	role authorization.UserRole,
	stripeCustomerID *string,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("invalid tier %q for user %s", tier, id)
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q for user %s", role, id)
	}

	return &User{
		id:               id,
		email:            email,
		displayName:      displayName,
		tier:             tier,
		role:             role,
		stripeCustomerID: stripeCustomerID,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (u *User) ID() string                   { return u.id }
func (u *User) Email() string                { return u.email }
func (u *User) DisplayName() string          { return u.displayName }
func (u *User) Tier() vo.Tier                { return u.tier }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) StripeCustomerID() *string    { return u.stripeCustomerID }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

// ChangeTier switches the subscription tier and returns the previous one.
func (u *User) ChangeTier(tier vo.Tier) (vo.Tier, error) {
	if !tier.IsValid() {
		return "", fmt.Errorf("invalid tier: %s", tier)
	}
	previous := u.tier
	if previous != tier {
		u.tier = tier
		u.updatedAt = time.Now().UTC()
	}
	return previous, nil
}

// ChangeRole switches the role and returns the previous one.
func (u *User) ChangeRole(role authorization.UserRole) (authorization.UserRole, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", role)
	}
	previous := u.role
	if previous != role {
		u.role = role
		u.updatedAt = time.Now().UTC()
	}
	return previous, nil
}

// LinkStripeCustomer records the payment provider customer id.
func (u *User) LinkStripeCustomer(customerID string) {
	if customerID == "" {
		return
	}
	u.stripeCustomerID = &customerID
	u.updatedAt = time.Now().UTC()
}

// Rename updates the display name. It reports whether anything changed.
func (u *User) Rename(displayName string) bool {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" || displayName == u.displayName {
		return false
	}
	u.displayName = displayName
	u.updatedAt = time.Now().UTC()
	return true
}
