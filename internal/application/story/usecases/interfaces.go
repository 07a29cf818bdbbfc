package usecases

import (
	"context"

	"github.com/lumastory/lumastory/internal/application/story/dto"
	"github.com/lumastory/lumastory/internal/domain/usage"
	"github.com/lumastory/lumastory/internal/domain/user"
)

// StoryRequest is what the generator needs to write a story.
type StoryRequest struct {
	Prompt          string
	Title           string
	ChildName       string
	ChildNickname   string
	ChildAppearance string
	ChildAgeYears   int
}

type GeneratedStory struct {
	Title   string
	Content string
}

// StoryGenerator produces story text. Implementations bound their own latency.
type StoryGenerator interface {
	Generate(ctx context.Context, req StoryRequest) (*GeneratedStory, error)
}

// LimitChecker gates and records story creation.
type LimitChecker interface {
	CanPerform(ctx context.Context, userID string, action usage.Action) (usage.Decision, error)
	RecordStoryCreated(ctx context.Context, u *user.User) (*usage.Record, error)
}

type CreateStoryExecutor interface {
	Execute(ctx context.Context, cmd CreateStoryCommand) (*CreateStoryResult, error)
}

type ListStoriesExecutor interface {
	Execute(ctx context.Context, query ListStoriesQuery) (*ListStoriesResult, error)
}

type GetStoryExecutor interface {
	Execute(ctx context.Context, query GetStoryQuery) (*dto.StoryDTO, error)
}

type ChangeVisibilityExecutor interface {
	Execute(ctx context.Context, cmd ChangeVisibilityCommand) (*dto.StoryDTO, error)
}

type DeleteStoryExecutor interface {
	Execute(ctx context.Context, cmd DeleteStoryCommand) error
}
