package user

import (
	"context"

	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
)

// Repository defines the interface for user data operations.
// Lookups return (nil, nil) when the user does not exist.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*User, error)
	Update(ctx context.Context, user *User) error
	CountByTier(ctx context.Context) (map[vo.Tier]int64, error)
}
