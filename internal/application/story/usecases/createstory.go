package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumastory/lumastory/internal/application/story/dto"
	usagedto "github.com/lumastory/lumastory/internal/application/usage/dto"
	"github.com/lumastory/lumastory/internal/domain/childprofile"
	"github.com/lumastory/lumastory/internal/domain/story"
	"github.com/lumastory/lumastory/internal/domain/usage"
	"github.com/lumastory/lumastory/internal/domain/user"
	"github.com/lumastory/lumastory/internal/shared/db"
	"github.com/lumastory/lumastory/internal/shared/errors"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

const (
	maxPromptLength = 2000
	fallbackTitle   = "A New Story"
)

type CreateStoryCommand struct {
	UserID         string
	Prompt         string
	Title          string
	ChildProfileID string
}

// CreateStoryResult carries either the new story or the denial that
// prevented it.
type CreateStoryResult struct {
	Denied *usagedto.DecisionDTO
	Story  *dto.StoryDTO
	Usage  *UsageSnapshot
}

type UsageSnapshot struct {
	StoriesGeneratedToday int  `json:"storiesGeneratedToday"`
	TrialStoriesGenerated int  `json:"trialStoriesGenerated"`
	TrialCompleted        bool `json:"trialCompleted"`
}

type CreateStoryUseCase struct {
	userRepo    user.Repository
	storyRepo   story.Repository
	profileRepo childprofile.Repository
	limits      LimitChecker
	generator   StoryGenerator
	txManager   db.Runner
	logger      logger.Interface
}

func NewCreateStoryUseCase(
	userRepo user.Repository,
	storyRepo story.Repository,
	profileRepo childprofile.Repository,
	limits LimitChecker,
	generator StoryGenerator,
	txManager db.Runner,
	logger logger.Interface,
) *CreateStoryUseCase {
	return &CreateStoryUseCase{
		userRepo:    userRepo,
		storyRepo:   storyRepo,
		profileRepo: profileRepo,
		limits:      limits,
		generator:   generator,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *CreateStoryUseCase) Execute(ctx context.Context, cmd CreateStoryCommand) (*CreateStoryResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	decision, err := uc.limits.CanPerform(ctx, cmd.UserID, usage.ActionCreateStory)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return &CreateStoryResult{Denied: usagedto.ToDecisionDTO(usage.ActionCreateStory, decision)}, nil
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	req := StoryRequest{Prompt: strings.TrimSpace(cmd.Prompt), Title: strings.TrimSpace(cmd.Title)}
	var childProfileID *string
	if cmd.ChildProfileID != "" {
		profile, err := uc.profileRepo.GetByID(ctx, cmd.ChildProfileID)
		if err != nil {
			return nil, fmt.Errorf("failed to load child profile: %w", err)
		}
		if profile == nil {
			return nil, errors.NewNotFoundError("child profile not found")
		}
		if !profile.IsOwnedBy(cmd.UserID) {
			uc.logger.Warnw("story requested for foreign child profile",
				"user_id", cmd.UserID,
				"child_profile_id", cmd.ChildProfileID,
			)
			return nil, errors.NewForbiddenError("child profile belongs to another user")
		}
		applyProfile(&req, profile)
		id := profile.ID()
		childProfileID = &id
	}

	generated, err := uc.generator.Generate(ctx, req)
	if err != nil {
		uc.logger.Errorw("story generation failed", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewBadGatewayError("story generation failed, please try again")
	}

	title := req.Title
	if title == "" {
		title = generated.Title
	}
	if strings.TrimSpace(title) == "" {
		title = fallbackTitle
	}

	newStory, err := story.NewStory(uuid.NewString(), cmd.UserID, childProfileID, title, req.Prompt, generated.Content)
	if err != nil {
		uc.logger.Errorw("generated story rejected", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewBadGatewayError("story generation returned an empty story")
	}

	var record *usage.Record
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.storyRepo.Create(txCtx, newStory); err != nil {
			return fmt.Errorf("failed to save story: %w", err)
		}
		record, err = uc.limits.RecordStoryCreated(txCtx, u)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to persist story", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("story created",
		"story_id", newStory.ID(),
		"user_id", cmd.UserID,
		"tier", u.Tier(),
		"stories_today", record.StoriesGeneratedToday,
	)

	return &CreateStoryResult{
		Story: dto.ToStoryDTO(newStory),
		Usage: &UsageSnapshot{
			StoriesGeneratedToday: record.StoriesGeneratedToday,
			TrialStoriesGenerated: record.TrialStoriesGenerated,
			TrialCompleted:        record.TrialCompleted,
		},
	}, nil
}

func (uc *CreateStoryUseCase) validateCommand(cmd CreateStoryCommand) error {
	if cmd.UserID == "" {
		return errors.NewUnauthorizedError("authentication required")
	}
	prompt := strings.TrimSpace(cmd.Prompt)
	if prompt == "" {
		return errors.NewValidationError("prompt is required")
	}
	if len([]rune(prompt)) > maxPromptLength {
		return errors.NewValidationError(fmt.Sprintf("prompt exceeds maximum length of %d characters", maxPromptLength))
	}
	return nil
}

func applyProfile(req *StoryRequest, p *childprofile.ChildProfile) {
	req.ChildName = p.Name()
	if n := p.Nickname(); n != nil {
		req.ChildNickname = *n
	}
	if a := p.Appearance(); a != nil {
		req.ChildAppearance = *a
	}
	if b := p.BirthDate(); b != nil {
		req.ChildAgeYears = ageInYears(*b, time.Now().UTC())
	}
}

func ageInYears(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
