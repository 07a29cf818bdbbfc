package mappers

import (
	"github.com/lumastory/lumastory/internal/domain/user"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
	"github.com/lumastory/lumastory/internal/shared/authorization"
)

// UserMapper handles the conversion between user entities and persistence models.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
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

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.Email,
		model.DisplayName,
		vo.Tier(model.SubscriptionTier),
		authorization.UserRole(model.Role),
		model.StripeCustomerID,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
