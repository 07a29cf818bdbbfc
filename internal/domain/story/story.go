package story

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const maxTitleLength = 200

// Story is a generated story owned by a user.
type Story struct {
	id             string
	userID         string
	childProfileID *string
	title          string
	prompt         string
	content        string
	visibility     Visibility
	createdAt      time.Time
	updatedAt      time.Time
}

// NewStory creates a private story from generated content.
func NewStory(id, userID string, childProfileID *string, title, prompt, content string) (*Story, error) {
	if id == "" || userID == "" {
		return nil, fmt.Errorf("story ID and owner are required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		title = string([]rune(title)[:maxTitleLength])
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("story content is empty")
	}

	now := time.Now().UTC()
	return &Story{
		id:             id,
		userID:         userID,
		childProfileID: childProfileID,
		title:          title,
		prompt:         prompt,
		content:        content,
		visibility:     VisibilityPrivate,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructStory rebuilds a story from persistence.
func ReconstructStory(
	id, userID string,
	childProfileID *string,
	title, prompt, content string,
	visibility Visibility,
	createdAt, updatedAt time.Time,
) *Story {
	return &Story{
		id:             id,
		userID:         userID,
		childProfileID: childProfileID,
		title:          title,
		prompt:         prompt,
		content:        content,
		visibility:     visibility,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (s *Story) ID() string              { return s.id }
func (s *Story) UserID() string          { return s.userID }
func (s *Story) ChildProfileID() *string { return s.childProfileID }
func (s *Story) Title() string           { return s.title }
func (s *Story) Prompt() string          { return s.prompt }
func (s *Story) Content() string         { return s.content }
func (s *Story) Visibility() Visibility  { return s.visibility }
func (s *Story) CreatedAt() time.Time    { return s.createdAt }
func (s *Story) UpdatedAt() time.Time    { return s.updatedAt }

func (s *Story) IsOwnedBy(userID string) bool {
	return s.userID == userID
}

// IsVisibleTo reports whether userID may read the story.
func (s *Story) IsVisibleTo(userID string) bool {
	return s.visibility == VisibilityPublic || s.IsOwnedBy(userID)
}
