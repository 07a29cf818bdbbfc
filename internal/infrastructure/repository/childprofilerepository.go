package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lumastory/lumastory/internal/domain/childprofile"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/mappers"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
	"github.com/lumastory/lumastory/internal/shared/db"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type ChildProfileRepository struct {
	db     *gorm.DB
	mapper mappers.ChildProfileMapper
	logger logger.Interface
}

func NewChildProfileRepository(db *gorm.DB, logger logger.Interface) *ChildProfileRepository {
	return &ChildProfileRepository{
		db:     db,
		mapper: mappers.NewChildProfileMapper(),
		logger: logger,
	}
}

func (r *ChildProfileRepository) CreateWithinLimit(ctx context.Context, profile *childprofile.ChildProfile, limit int) (bool, error) {
	created := false
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		// the owner row lock orders concurrent creates; sqlite ignores FOR UPDATE
		// and serializes writers on its own
		var owner models.UserModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", profile.UserID()).
			Take(&owner).Error; err != nil {
			return fmt.Errorf("failed to lock profile owner: %w", err)
		}

		var count int64
		if err := tx.Model(&models.ChildProfileModel{}).
			Where("user_id = ?", profile.UserID()).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count child profiles: %w", err)
		}
		if count >= int64(limit) {
			return nil
		}

		if err := tx.Create(r.mapper.ToModel(profile)).Error; err != nil {
			return fmt.Errorf("failed to create child profile: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to create child profile", "id", profile.ID(), "user_id", profile.UserID(), "error", err)
		return false, err
	}
	return created, nil
}

func (r *ChildProfileRepository) GetByID(ctx context.Context, id string) (*childprofile.ChildProfile, error) {
	var model models.ChildProfileModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get child profile: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListByUser returns a user's profiles oldest first.
func (r *ChildProfileRepository) ListByUser(ctx context.Context, userID string) ([]*childprofile.ChildProfile, error) {
	var rows []models.ChildProfileModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list child profiles", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list child profiles: %w", err)
	}

	profiles := make([]*childprofile.ChildProfile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, r.mapper.ToDomain(&rows[i]))
	}
	return profiles, nil
}

func (r *ChildProfileRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ChildProfileModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count child profiles: %w", err)
	}
	return int(count), nil
}

func (r *ChildProfileRepository) ExistsByNameKey(ctx context.Context, userID, nameKey string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ChildProfileModel{}).
		Where("user_id = ? AND name_key = ?", userID, nameKey).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check child profile name: %w", err)
	}
	return count > 0, nil
}

func (r *ChildProfileRepository) UpdateAvatar(ctx context.Context, profile *childprofile.ChildProfile) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ChildProfileModel{}).
		Where("id = ?", profile.ID()).
		Updates(map[string]interface{}{
			"avatar_url": profile.AvatarURL(),
			"updated_at": profile.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update child profile avatar", "id", profile.ID(), "error", result.Error)
		return fmt.Errorf("failed to update child profile avatar: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("child profile not found")
	}
	return nil
}

func (r *ChildProfileRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.ChildProfileModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete child profile", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete child profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("child profile not found")
	}
	return nil
}
