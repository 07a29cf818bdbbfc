package usecases

import (
	"context"

	"github.com/lumastory/lumastory/internal/domain/usage"
)

type mockAvatarGenerator struct {
	GenerateAvatarFunc func(ctx context.Context, req AvatarRequest) (string, error)
}

func (m *mockAvatarGenerator) GenerateAvatar(ctx context.Context, req AvatarRequest) (string, error) {
	if m.GenerateAvatarFunc != nil {
		return m.GenerateAvatarFunc(ctx, req)
	}
	return "https://images.example.com/raw.png", nil
}

type mockAvatarStore struct {
	StoreFunc func(ctx context.Context, profileID, sourceURL string) string
}

func (m *mockAvatarStore) Store(ctx context.Context, profileID, sourceURL string) string {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, profileID, sourceURL)
	}
	return sourceURL
}

// staleLimitChecker answers the first check with a fixed decision and
// delegates afterwards.
type staleLimitChecker struct {
	next  LimitChecker
	first *usage.Decision
}

func (m *staleLimitChecker) CanPerform(ctx context.Context, userID string, action usage.Action) (usage.Decision, error) {
	if m.first != nil {
		d := *m.first
		m.first = nil
		return d, nil
	}
	return m.next.CanPerform(ctx, userID, action)
}
