// Package ai adapts the story and image generation providers.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/lumastory/lumastory/internal/application/story/usecases"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

const (
	defaultStoryModel        = "gemini-1.5-flash"
	defaultGenerationTimeout = 60 * time.Second
)

const storySystemPrompt = `You write gentle bedtime stories for children aged 3 to 10.
Keep the language simple and warm, avoid violence and scary scenes, and end on a calm note.
Answer with a JSON object {"title": string, "content": string}. Separate paragraphs in content with blank lines.`

// contentGenerator is the part of *genai.GenerativeModel the generator uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiStoryGenerator writes stories with the Gemini API.
type GeminiStoryGenerator struct {
	client  *genai.Client
	model   contentGenerator
	timeout time.Duration
	logger  logger.Interface
}

func NewGeminiStoryGenerator(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logger.Interface) (*GeminiStoryGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key required")
	}
	if modelName == "" {
		modelName = defaultStoryModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(storySystemPrompt)}}
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.9)

	return newStoryGenerator(client, model, timeout, logger), nil
}

func newStoryGenerator(client *genai.Client, model contentGenerator, timeout time.Duration, logger logger.Interface) *GeminiStoryGenerator {
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	return &GeminiStoryGenerator{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

func (g *GeminiStoryGenerator) Generate(ctx context.Context, req usecases.StoryRequest) (*usecases.GeneratedStory, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildStoryPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	story, err := parseStoryResponse(resp)
	if err != nil {
		return nil, err
	}

	g.logger.Debugw("story generated",
		"duration_ms", time.Since(start).Milliseconds(),
		"content_length", len(story.Content),
	)
	return story, nil
}

func (g *GeminiStoryGenerator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func buildStoryPrompt(req usecases.StoryRequest) string {
	var b strings.Builder
	b.WriteString("Write a story about: ")
	b.WriteString(strings.TrimSpace(req.Prompt))
	b.WriteString("\n")

	if req.Title != "" {
		fmt.Fprintf(&b, "Use the title %q.\n", req.Title)
	}
	if req.ChildName != "" {
		fmt.Fprintf(&b, "The hero is a child named %s", req.ChildName)
		if req.ChildNickname != "" {
			fmt.Fprintf(&b, " (called %s by family)", req.ChildNickname)
		}
		b.WriteString(".\n")
	}
	if req.ChildAgeYears > 0 {
		fmt.Fprintf(&b, "The listener is %d years old; pitch vocabulary and length to that age.\n", req.ChildAgeYears)
	}
	if req.ChildAppearance != "" {
		fmt.Fprintf(&b, "The hero looks like this: %s\n", req.ChildAppearance)
	}
	return b.String()
}

type storyPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func parseStoryResponse(resp *genai.GenerateContentResponse) (*usecases.GeneratedStory, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	raw := strings.TrimSpace(text.String())
	if raw == "" {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var payload storyPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		// plain prose: first line is the title
		title, content, _ := strings.Cut(raw, "\n")
		payload = storyPayload{
			Title:   strings.TrimSpace(strings.TrimLeft(title, "# ")),
			Content: strings.TrimSpace(content),
		}
	}
	if strings.TrimSpace(payload.Content) == "" {
		return nil, fmt.Errorf("gemini returned no story content")
	}

	return &usecases.GeneratedStory{
		Title:   strings.TrimSpace(payload.Title),
		Content: strings.TrimSpace(payload.Content),
	}, nil
}
