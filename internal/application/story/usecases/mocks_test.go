package usecases

import (
	"context"
	"sync"
)

type mockStoryGenerator struct {
	mu           sync.Mutex
	GenerateFunc func(ctx context.Context, req StoryRequest) (*GeneratedStory, error)
	Requests     []StoryRequest
}

func (m *mockStoryGenerator) Generate(ctx context.Context, req StoryRequest) (*GeneratedStory, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return &GeneratedStory{Title: "The Brave Little Fox", Content: "Once upon a time..."}, nil
}
