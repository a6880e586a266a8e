// Package coach is an optional helper that drafts a short action-plan
// suggestion from a scored profile via an OpenAI-compatible API. It
// is an embellishment on top of the deterministic pipeline: when the
// backend is missing or failing, Suggest falls back to a fixed
// template so the page never depends on the remote service.
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/everinsight/discprofile/internal/model"
)

// FallbackSuggestion is served whenever the backend is unavailable.
// Fixed fragments, no scoring dependency.
const FallbackSuggestion = "Choisissez une situation récente qui compte pour vous. " +
	"Notez ce que vous avez fait concrètement, ce qui a bien fonctionné, " +
	"et un micro-comportement à tester la semaine prochaine. " +
	"Relisez votre profil DISC avant votre prochaine réunion d’équipe."

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a coach client against an OpenAI-compatible endpoint.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

// Ping verifies the endpoint answers at all.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("coach endpoint: %w", err)
	}
	return nil
}

// Suggest produces a short, personal action-plan hint for a profile.
// Any backend failure degrades to FallbackSuggestion; the error is
// logged, never surfaced.
func (c *Client) Suggest(ctx context.Context, ranking model.Ranking) string {
	if c == nil || c.api == nil {
		return FallbackSuggestion
	}

	top := ranking.TopTwo()
	prompt := buildPrompt(top)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		slog.Warn("coach suggestion failed, using fallback", "error", err)
		return FallbackSuggestion
	}
	if len(resp.Choices) == 0 {
		slog.Warn("coach returned no choices, using fallback")
		return FallbackSuggestion
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return FallbackSuggestion
	}
	return text
}

const systemPrompt = "Tu es un coach professionnel bienveillant. " +
	"Tu réponds en français, en 3 phrases maximum, sans jargon, " +
	"avec une suggestion de micro-comportement concret et réaliste."

func buildPrompt(top [2]model.Dimension) string {
	var sb strings.Builder
	sb.WriteString("Profil DISC : énergie principale ")
	sb.WriteString(model.DimensionName(top[0]))
	sb.WriteString(", énergie secondaire ")
	sb.WriteString(model.DimensionName(top[1]))
	sb.WriteString(". Propose une piste de plan d'action personnel pour la semaine.")
	return sb.String()
}
