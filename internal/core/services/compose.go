package services

import (
	"context"
	"fmt"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
	"github.com/lucerne-labs/fundreply/internal/logger"
)

// Ensure ComposerService implements the interface.
var _ driving.Composer = (*ComposerService)(nil)

// ComposeTemperature matches the drafter: some phrasing variety is
// wanted here, unlike extraction which must be deterministic.
const ComposeTemperature = 0.7

const composePrompt = `You are a professional and experienced investment fund representative. Your task is to compose a complete, personalized email response to a potential investment opportunity.

EXTRACTED INFORMATION FROM THE ORIGINAL EMAIL:
%s

STYLE-BASED DRAFT (based on past similar responses):
%s

RESEARCH FINDINGS ABOUT THE COMPANY:
%s

INSTRUCTIONS:
1. Create a polished, complete email response that maintains the style and tone from the draft.
2. Incorporate relevant details from the research findings to demonstrate knowledge about the company and industry.
3. Address the specific request or ask mentioned in the original email.
4. Be specific and personalized, referencing the company name, founder names, and industry details where appropriate.
5. Include a clear next step or call to action if appropriate.
6. Keep the response professional but warm.
7. Sign off politely without sender's information (i.e. don't indicate [Your Name] or [Your Title] or [Your Company]).

COMPLETE EMAIL RESPONSE:`

// ComposerService merges the style draft, the extracted fields, and the
// research brief into one final reply in a single generative pass.
// There is no retry or self-correction loop: the model output is
// returned as-is.
type ComposerService struct {
	generator driven.TextGenerator
}

// NewComposerService creates a composer bound to a generator.
func NewComposerService(generator driven.TextGenerator) *ComposerService {
	return &ComposerService{generator: generator}
}

// Compose produces the final reply text.
func (s *ComposerService) Compose(ctx context.Context, fields domain.ExtractedFields, styleDraft, research string) (string, error) {
	logger.Stage("Response Composition")

	if research == "" {
		research = "No research findings available."
	}

	prompt := fmt.Sprintf(composePrompt, fields.PromptText(), styleDraft, research)

	reply, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{Temperature: ComposeTemperature})
	if err != nil {
		return "", fmt.Errorf("composing response: %w", err)
	}

	logger.Debug("composed %d characters with model %s", len(reply), s.generator.ModelName())
	return reply, nil
}
