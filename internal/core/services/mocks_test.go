package services

import (
	"context"
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService with a canned vector.
// When failOn is non-empty, any text containing it fails with embedErr,
// and EmbedBatch fails wholesale (as a real batch call would).
type mockEmbedder struct {
	vector   []float32
	embedErr error
	failOn   string
	batched  [][]string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.failOn != "" && strings.Contains(text, m.failOn) {
		return nil, m.embedErr
	}
	return m.vector, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.batched = append(m.batched, texts)
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int   { return len(m.vector) }
func (m *mockEmbedder) ModelName() string { return "mock-embedder" }

// hashEmbedder is a deterministic bag-of-words embedder: every token is
// hashed into a fixed-size bucket vector. Good enough for similarity
// behaviour in tests without a real provider.
type hashEmbedder struct {
	dims int
}

var tokenRe = regexp.MustCompile(`[a-z0-9-]+`)

func (h *hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dims)
	for _, tok := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		f := fnv.New64a()
		f.Write([]byte(tok))
		vec[f.Sum64()%uint64(h.dims)]++
	}
	return vec, nil
}

func (h *hashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := h.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (h *hashEmbedder) Dimensions() int   { return h.dims }
func (h *hashEmbedder) ModelName() string { return "hash-embedder" }

// mockGenerator implements driven.TextGenerator, capturing prompts.
type mockGenerator struct {
	output       string
	err          error
	prompts      []string
	temperatures []float32
}

func (m *mockGenerator) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.temperatures = append(m.temperatures, opts.Temperature)
	if m.err != nil {
		return "", m.err
	}
	return m.output, nil
}

func (m *mockGenerator) ModelName() string { return "mock-generator" }

// mockRetriever implements driving.Retriever with canned examples.
type mockRetriever struct {
	examples []domain.RetrievedExample
	err      error
	calls    int
}

func (m *mockRetriever) Retrieve(_ context.Context, _ string, _ int) ([]domain.RetrievedExample, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.examples, nil
}

// mockExtractor implements driven.FieldExtractor.
type mockExtractor struct {
	fields domain.ExtractedFields
	err    error
}

func (m *mockExtractor) Extract(_ context.Context, _ string) (domain.ExtractedFields, error) {
	if m.err != nil {
		return domain.ExtractedFields{}, m.err
	}
	return m.fields, nil
}

// mockResearcher implements driven.Researcher.
type mockResearcher struct {
	brief string
	err   error
	calls int
}

func (m *mockResearcher) Research(_ context.Context, _ domain.ExtractedFields) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.brief, nil
}

// mockDrafter implements driving.Drafter.
type mockDrafter struct {
	draft    string
	err      error
	examples []domain.RetrievedExample
}

func (m *mockDrafter) Draft(_ context.Context, _ string, _ domain.ExtractedFields, examples []domain.RetrievedExample) (string, error) {
	m.examples = examples
	if m.err != nil {
		return "", m.err
	}
	return m.draft, nil
}

// mockComposer implements driving.Composer.
type mockComposer struct {
	reply string
	err   error
}

func (m *mockComposer) Compose(_ context.Context, _ domain.ExtractedFields, _, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}
