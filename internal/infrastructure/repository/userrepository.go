package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lumastory/lumastory/internal/domain/user"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/mappers"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
	"github.com/lumastory/lumastory/internal/shared/db"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

// UserRepository implements user.Repository with GORM.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user in database", "id", u.ID(), "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*user.User, error) {
	return r.findOne(ctx, "stripe_customer_id = ?", customerID)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where(where, arg).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	entity, err := r.mapper.ToDomain(&model)
	if err != nil {
		r.logger.Errorw("failed to map user model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map user: %w", err)
	}
	return entity, nil
}

// Update writes the mutable columns. Email is owned by the identity provider.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"display_name":       model.DisplayName,
			"subscription_tier":  model.SubscriptionTier,
			"role":               model.Role,
			"stripe_customer_id": model.StripeCustomerID,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update user", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

func (r *UserRepository) CountByTier(ctx context.Context) (map[vo.Tier]int64, error) {
	var rows []struct {
		SubscriptionTier string
		Count            int64
	}
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Select("subscription_tier, COUNT(*) AS count").
		Group("subscription_tier").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count users by tier: %w", err)
	}

	counts := make(map[vo.Tier]int64, len(vo.AllTiers))
	for _, tier := range vo.AllTiers {
		counts[tier] = 0
	}
	for _, row := range rows {
		counts[vo.Tier(row.SubscriptionTier)] = row.Count
	}
	return counts, nil
}
