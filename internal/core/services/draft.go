package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
	"github.com/lucerne-labs/fundreply/internal/logger"
)

// Ensure DrafterService implements the interface.
var _ driving.Drafter = (*DrafterService)(nil)

// FallbackDraft is returned when the index holds no similar examples.
// A cold-start system has no style signal yet; this is a deliberate
// fallback, not an error, and it never triggers a model call.
const FallbackDraft = "Thank you for reaching out to us. We appreciate your interest in our fund."

// DraftTemperature gives the drafter some phrasing variety.
const DraftTemperature = 0.7

const styleDraftPrompt = `You are a professional investment fund email writer. Your task is to generate a draft response based on the style, tone, and structure of similar past responses, but adapted for the new inquiry.

New inquiry to respond to:
%s

Extracted information about the inquiry:
%s

Similar historical email-response pair examples:
%s

Based on the style and tone of these historical responses, draft a partial response to the new inquiry. Focus on matching the writing style, tone, greeting style, sign-off style, and overall structure.

The draft should be well-structured but incomplete, as we will add specific details about the company later.`

// DrafterService produces a tone/structure-matched draft biased by the
// nearest historical exemplars. Company-specific facts are deliberately
// deferred to the composer, which has the research brief.
type DrafterService struct {
	generator driven.TextGenerator
}

// NewDrafterService creates a drafter bound to a generator.
func NewDrafterService(generator driven.TextGenerator) *DrafterService {
	return &DrafterService{generator: generator}
}

// Draft generates a style-matched partial draft from the examples
// retrieved for the email, using at most the three nearest. With zero
// examples it short-circuits to the fixed fallback acknowledgment.
func (s *DrafterService) Draft(ctx context.Context, queryEmail string, fields domain.ExtractedFields, examples []domain.RetrievedExample) (string, error) {
	logger.Stage("Style Drafting")

	if len(examples) > DefaultExampleCount {
		examples = examples[:DefaultExampleCount]
	}

	if len(examples) == 0 {
		logger.Info("no similar examples, using fallback draft")
		return FallbackDraft, nil
	}

	prompt := fmt.Sprintf(styleDraftPrompt, queryEmail, fields.PromptText(), FormatExamples(examples))

	draft, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{Temperature: DraftTemperature})
	if err != nil {
		return "", fmt.Errorf("generating style draft: %w", err)
	}
	return draft, nil
}

// FormatExamples renders retrieved examples as numbered blocks in
// retrieval order, nearest first. Position matters: ordering-sensitive
// generative models weight the closest exemplar most heavily.
func FormatExamples(examples []domain.RetrievedExample) string {
	var b strings.Builder
	for i, ex := range examples {
		fmt.Fprintf(&b, "Example %d:\n", i+1)
		fmt.Fprintf(&b, "Email: %s\n", ex.Email)
		fmt.Fprintf(&b, "Response: %s\n\n", ex.Response)
	}
	return b.String()
}
