package openai

import (
	"context"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
)

// Ensure TextGenerator implements the interface.
var _ driven.TextGenerator = (*TextGenerator)(nil)

// TextGenerator produces completions using the OpenAI chat API.
type TextGenerator struct {
	client *openai.Client
	model  string
}

// NewTextGenerator creates a new OpenAI text generator.
func NewTextGenerator(cfg Config) (*TextGenerator, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	model := cfg.ChatModel
	if model == "" {
		model = DefaultChatModel
	}
	return &TextGenerator{
		client: client,
		model:  model,
	}, nil
}

// Generate produces a completion for the prompt.
func (g *TextGenerator) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	// The client drops a zero temperature from the request, which falls
	// back to the provider default. Send the smallest representable
	// value to actually get deterministic output.
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: temperature,
		MaxTokens:   opts.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w: %w", domain.ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty completion: %w", domain.ErrGenerationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}

// ModelName returns the name of the model being used.
func (g *TextGenerator) ModelName() string {
	return g.model
}
