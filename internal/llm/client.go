// internal/llm/client.go
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// Generator is the text-generation collaborator contract. Failures are
// recoverable per-record errors; callers substitute a placeholder and
// keep going.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Enabled() bool
}

// Client wraps a langchaingo chat model. With generation disabled it
// never calls out; the pipeline then records prompts and preview text
// only.
type Client struct {
	model   llms.Model
	enabled bool
	log     *zap.Logger
}

// New builds a generation client. Pass enabled=false for prompt preview
// mode; the API key is only required when generation is on.
func New(apiKey, modelName string, enabled bool, log *zap.Logger) (*Client, error) {
	if !enabled {
		log.Info("running in prompt preview mode - generation calls disabled")
		return &Client{enabled: false, log: log}, nil
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	model, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return &Client{model: model, enabled: true, log: log}, nil
}

func (c *Client) Enabled() bool { return c.enabled }

// Generate sends one system+user prompt pair and returns the trimmed
// completion.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("generation disabled")
	}

	resp, err := c.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
		},
		llms.WithMaxTokens(100),
		llms.WithTemperature(0.7),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// PreviewText is what stands in for a completion when generation is
// disabled.
func PreviewText(campaignName string) string {
	if campaignName == "" {
		campaignName = "Unknown"
	}
	if len(campaignName) > 50 {
		campaignName = campaignName[:50]
	}
	return "[PROMPT PREVIEW MODE] Campaign: " + campaignName + "..."
}
