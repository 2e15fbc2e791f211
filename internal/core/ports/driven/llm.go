package driven

import "context"

// GenerateOptions configures a single text generation call.
type GenerateOptions struct {
	// Temperature controls sampling randomness (0.0 = deterministic).
	// Extraction and research query generation run at 0; drafting and
	// composition deliberately use a fixed non-zero temperature.
	Temperature float32

	// MaxTokens caps the completion length. Zero means provider default.
	MaxTokens int
}

// TextGenerator produces text from a prompt via an external generative
// model. Failures (rate limit, malformed response) surface to the calling
// component wrapped in domain.ErrGenerationFailed; callers decide whether
// to retry the single stage.
type TextGenerator interface {
	// Generate produces a completion for the prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}
