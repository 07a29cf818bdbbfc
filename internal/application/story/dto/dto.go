package dto

import (
	"time"

	"github.com/lumastory/lumastory/internal/domain/story"
)

type StoryDTO struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ChildProfileID *string   `json:"childProfileId,omitempty"`
	Title          string    `json:"title"`
	Prompt         string    `json:"prompt"`
	Content        string    `json:"content"`
	Visibility     string    `json:"visibility"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// StoryListItemDTO omits the story body.
type StoryListItemDTO struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	ChildProfileID *string   `json:"childProfileId,omitempty"`
	Visibility     string    `json:"visibility"`
	CreatedAt      time.Time `json:"createdAt"`
}

func ToStoryDTO(s *story.Story) *StoryDTO {
	if s == nil {
		return nil
	}
	return &StoryDTO{
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

func ToStoryListItemDTO(s *story.Story) *StoryListItemDTO {
	return &StoryListItemDTO{
		ID:             s.ID(),
		Title:          s.Title(),
		ChildProfileID: s.ChildProfileID(),
		Visibility:     s.Visibility().String(),
		CreatedAt:      s.CreatedAt(),
	}
}
