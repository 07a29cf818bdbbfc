package mappers

import (
	"github.com/lumastory/lumastory/internal/domain/childprofile"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
)

type ChildProfileMapper interface {
	ToModel(p *childprofile.ChildProfile) *models.ChildProfileModel
	ToDomain(model *models.ChildProfileModel) *childprofile.ChildProfile
}

type ChildProfileMapperImpl struct{}

func NewChildProfileMapper() ChildProfileMapper {
	return &ChildProfileMapperImpl{}
}

func (m *ChildProfileMapperImpl) ToModel(p *childprofile.ChildProfile) *models.ChildProfileModel {
	return &models.ChildProfileModel{
		ID:         p.ID(),
		UserID:     p.UserID(),
		Name:       p.Name(),
		NameKey:    p.NameKey(),
		Nickname:   p.Nickname(),
		BirthDate:  p.BirthDate(),
		Appearance: p.Appearance(),
		AvatarURL:  p.AvatarURL(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}
}

func (m *ChildProfileMapperImpl) ToDomain(model *models.ChildProfileModel) *childprofile.ChildProfile {
	return childprofile.ReconstructChildProfile(
		model.ID,
		model.UserID,
		model.Name,
		model.Nickname,
		model.BirthDate,
		model.Appearance,
		model.AvatarURL,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
