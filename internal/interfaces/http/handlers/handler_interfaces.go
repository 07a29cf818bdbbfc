package handlers

import (
	"context"

	cpdto "github.com/lumastory/lumastory/internal/application/childprofile/dto"
	cpusecases "github.com/lumastory/lumastory/internal/application/childprofile/usecases"
	moddto "github.com/lumastory/lumastory/internal/application/moderation/dto"
	modusecases "github.com/lumastory/lumastory/internal/application/moderation/usecases"
	payusecases "github.com/lumastory/lumastory/internal/application/payment/usecases"
	usagedto "github.com/lumastory/lumastory/internal/application/usage/dto"
	usageusecases "github.com/lumastory/lumastory/internal/application/usage/usecases"
	userdto "github.com/lumastory/lumastory/internal/application/user/dto"
	userusecases "github.com/lumastory/lumastory/internal/application/user/usecases"
	"github.com/lumastory/lumastory/internal/domain/usage"
)

// Use case interfaces for the user-facing handlers

type syncUserUseCase interface {
	Execute(ctx context.Context, cmd userusecases.SyncUserCommand) (*userusecases.SyncUserResult, error)
}

type getAccountUseCase interface {
	Execute(ctx context.Context, userID string) (*userdto.AccountDTO, error)
}

type limitChecker interface {
	CanPerform(ctx context.Context, userID string, action usage.Action) (usage.Decision, error)
	IsTrialExhausted(ctx context.Context, userID string) (bool, error)
	GetUsageStats(ctx context.Context, userID string) (*usagedto.UsageStatsDTO, error)
}

type createChildProfileUseCase interface {
	Execute(ctx context.Context, cmd cpusecases.CreateChildProfileCommand) (*cpusecases.CreateChildProfileResult, error)
}

type listChildProfilesUseCase interface {
	Execute(ctx context.Context, userID string) ([]*cpdto.ChildProfileDTO, error)
}

type deleteChildProfileUseCase interface {
	Execute(ctx context.Context, cmd cpusecases.DeleteChildProfileCommand) error
}

type generateAvatarUseCase interface {
	Execute(ctx context.Context, cmd cpusecases.GenerateAvatarCommand) (*cpusecases.GenerateAvatarResult, error)
}

type fileReportUseCase interface {
	Execute(ctx context.Context, cmd modusecases.FileReportCommand) (*moddto.ReportDTO, error)
}

type subscriptionWebhookUseCase interface {
	Execute(ctx context.Context, cmd payusecases.HandleSubscriptionWebhookCommand) (*payusecases.HandleSubscriptionWebhookResult, error)
}

type resetDailyUsageUseCase interface {
	Execute(ctx context.Context, cmd usageusecases.ResetDailyUsageCommand) (*usageusecases.ResetDailyUsageResult, error)
}
