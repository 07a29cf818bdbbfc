package usecases

import (
	"context"

	"github.com/lumastory/lumastory/internal/domain/usage"
)

type AvatarRequest struct {
	Name       string
	Appearance string
	AgeYears   int
}

// AvatarGenerator returns a URL of a freshly generated avatar image.
type AvatarGenerator interface {
	GenerateAvatar(ctx context.Context, req AvatarRequest) (string, error)
}

// AvatarStore copies a generated image into durable storage. It returns the
// stored URL, or sourceURL when the copy could not be made.
type AvatarStore interface {
	Store(ctx context.Context, profileID, sourceURL string) string
}

type LimitChecker interface {
	CanPerform(ctx context.Context, userID string, action usage.Action) (usage.Decision, error)
}
