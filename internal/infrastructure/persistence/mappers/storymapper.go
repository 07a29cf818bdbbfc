package mappers

import (
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
)

type StoryMapper interface {
	ToModel(s *story.Story) *models.StoryModel
	ToDomain(model *models.StoryModel) *story.Story
}

type StoryMapperImpl struct{}

func NewStoryMapper() StoryMapper {
	return &StoryMapperImpl{}
}

func (m *StoryMapperImpl) ToModel(s *story.Story) *models.StoryModel {
	return &models.StoryModel{
		ID:             s.ID(),
		UserID:         s.UserID(),
		ChildProfileID: s.ChildProfileID(),
		Title:          s.Title(),
		Prompt:         s.Prompt(),
		Content:        s.Content(),
		Visibility:     s.Visibility().String(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

func (m *StoryMapperImpl) ToDomain(model *models.StoryModel) *story.Story {
	return story.ReconstructStory(
		model.ID,
		model.UserID,
		model.ChildProfileID,
		model.Title,
		model.Prompt,
		model.Content,
		story.Visibility(model.Visibility),
		model.CreatedAt,
		model.UpdatedAt,
	)
}
