package dto

import (
	"time"

	usagedto "github.com/lumastory/lumastory/internal/application/usage/dto"
	"github.com/lumastory/lumastory/internal/domain/user"
)

// UserDTO is the public representation of an account.
type UserDTO struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"displayName"`
	SubscriptionTier string    `json:"subscriptionTier"`
	Role             string    `json:"role"`
	StripeCustomerID *string   `json:"stripeCustomerId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// AccountDTO pairs a user with their current usage.
type AccountDTO struct {
	User  *UserDTO                `json:"user"`
	Usage *usagedto.UsageStatsDTO `json:"usage"`
}

func ToUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:               u.ID(),
		Email:            u.Email(),
		DisplayName:      u.DisplayName(),
		SubscriptionTier: u.Tier().String(),
		Role:             u.Role().String(),
		StripeCustomerID: u.StripeCustomerID(),
		CreatedAt:        u.CreatedAt(),
		UpdatedAt:        u.UpdatedAt(),
	}
}
