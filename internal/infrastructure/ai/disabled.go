package ai

import (
	"context"
	"errors"

	childusecases "github.com/lumastory/lumastory/internal/application/childprofile/usecases"
	"github.com/lumastory/lumastory/internal/application/story/usecases"
)

// ErrProviderNotConfigured is returned by the disabled generators.
var ErrProviderNotConfigured = errors.New("generation provider not configured")

// DisabledStoryGenerator stands in when no Gemini key is configured, so the
// API still starts and story creation fails with a gateway error.
type DisabledStoryGenerator struct{}

func (DisabledStoryGenerator) Generate(context.Context, usecases.StoryRequest) (*usecases.GeneratedStory, error) {
	return nil, ErrProviderNotConfigured
}

// DisabledAvatarGenerator stands in when no image endpoint is configured.
type DisabledAvatarGenerator struct{}

func (DisabledAvatarGenerator) GenerateAvatar(context.Context, childusecases.AvatarRequest) (string, error) {
	return "", ErrProviderNotConfigured
}
