package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lumastory/lumastory/internal/application/childprofile/usecases"
)

// HTTPAvatarGenerator calls an image generation endpoint that accepts
// {"prompt": ...} and answers {"url": ...}.
type HTTPAvatarGenerator struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPAvatarGenerator(endpoint, apiKey string, timeout time.Duration) (*HTTPAvatarGenerator, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("image endpoint required")
	}
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	return &HTTPAvatarGenerator{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type avatarRequest struct {
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
}

type avatarResponse struct {
	URL   string `json:"url"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *HTTPAvatarGenerator) GenerateAvatar(ctx context.Context, req usecases.AvatarRequest) (string, error) {
	body, err := json.Marshal(avatarRequest{Prompt: buildAvatarPrompt(req), Size: "512x512"})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build image request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("image api request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var out avatarResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && resp.StatusCode < 400 {
		return "", fmt.Errorf("failed to decode image api response: %w", err)
	}
	if resp.StatusCode >= 400 {
		if out.Error.Message != "" {
			return "", fmt.Errorf("image api error: %s", out.Error.Message)
		}
		return "", fmt.Errorf("image api error: %s", resp.Status)
	}
	if out.URL == "" {
		return "", fmt.Errorf("image api returned no url")
	}
	return out.URL, nil
}

func buildAvatarPrompt(req usecases.AvatarRequest) string {
	var b strings.Builder
	b.WriteString("A friendly storybook-style portrait of a child")
	if req.Name != "" {
		fmt.Fprintf(&b, " named %s", req.Name)
	}
	if req.AgeYears > 0 {
		fmt.Fprintf(&b, ", about %d years old", req.AgeYears)
	}
	if req.Appearance != "" {
		fmt.Fprintf(&b, ". Appearance: %s", req.Appearance)
	}
	b.WriteString(". Soft watercolor colors, plain background, no text.")
	return b.String()
}
