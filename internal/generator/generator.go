// Package generator is the gateway to the external language-model provider.
//
// The provider is treated as an opaque chat-completions HTTP service: one
// system turn (the category's prompt template), one user turn (a short
// instruction naming the category), creative temperature, bounded output.
// The gateway classifies failures into the apperror taxonomy; it never
// retries — the caller surfaces the failure and the user re-triggers.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/idea-generator/internal/apperror"
	"github.com/sakif/idea-generator/internal/catalog"
)

// DefaultBaseURL is the production provider endpoint. Tests point the gateway
// at an httptest server instead.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// NoContentFallback is returned as a successful result when the provider
// answers with an empty completion. A deliberate soft failure — the UI must
// never crash on an empty choice, so this is NOT an error.
const NoContentFallback = "응답을 생성할 수 없습니다."

// Request shape as the provider expects it. temperature is pinned at 1
// (creative, non-deterministic output wanted) and max_tokens bounds the
// completion so a runaway generation can't blow up the response.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Gateway sends generation requests to the provider.
type Gateway struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Gateway. An empty apiKey is allowed — Generate reports a
// classified missing-credential failure per call, so the server can boot and
// serve stored ideas without provider configuration.
func New(apiKey, model, baseURL string, logger *slog.Logger) *Gateway {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Gateway{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Generate produces idea content for the given category.
//
// Preconditions first: the category must resolve in the catalog, otherwise
// this fails with ErrUnsupportedCategory before any network I/O. Failure
// classification after that:
//
//	ErrMissingCredential — no API key configured (checked before the call)
//	ErrNetwork           — transport failure, no response obtained
//	ErrUpstream          — non-2xx from the provider (status + body kept)
//
// An empty completion is a SUCCESS returning NoContentFallback.
func (g *Gateway) Generate(ctx context.Context, category string) (string, error) {
	cat, err := catalog.Get(category)
	if err != nil {
		return "", err
	}

	if g.apiKey == "" {
		return "", apperror.MissingCredential("OPENROUTER_API_KEY")
	}

	userPrompt := fmt.Sprintf(
		"Please generate one creative and practical idea for the %s category. Respond in Korean using the format specified in the system prompt.",
		category,
	)

	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: cat.SystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 1,
		MaxTokens:   4000,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("generator: marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("generator: creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("X-Title", "AI Idea Generator")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", apperror.Network(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperror.Network(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Error("provider returned an error",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return "", apperror.Upstream(resp.StatusCode, string(body))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		// 2xx with an unreadable body is still a provider-side fault.
		return "", apperror.Upstream(resp.StatusCode, string(body))
	}

	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		g.logger.Warn("provider returned an empty completion",
			slog.String("category", category),
		)
		return NoContentFallback, nil
	}

	return apiResp.Choices[0].Message.Content, nil
}
