package duckduckgo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
	"github.com/lucerne-labs/fundreply/internal/logger"
)

// Ensure Researcher implements the interface.
var _ driven.Researcher = (*Researcher)(nil)

// MaxQueries caps how many generated search queries are actually run.
const MaxQueries = 3

const queryPrompt = `Based on the following information extracted from an email, generate 3 specific search queries that will help find relevant information about the company and its funding context.

Extracted information:
%s

Format the result as a JSON list of strings, with each string being a search query.
Example output: ["company name funding history", "founder name background", "company name competitors"]`

const summaryPrompt = `You are a research assistant for an investment fund. Summarize the following search results about a company that has reached out for potential investment.

Extracted information about the company:
%s

Search results:
%s

Provide a concise summary with these sections:
1. Company Overview
2. Founders Background
3. Market Analysis
4. Funding History (if available)
5. Strengths and Potential Concerns

Focus on factual information that would be relevant for making an investment decision.`

// Researcher gathers a research brief about the inquiry sender's company.
type Researcher struct {
	generator driven.TextGenerator
	searcher  Searcher
}

// NewResearcher creates a researcher that generates queries and
// summaries with the generator and runs them through the searcher.
func NewResearcher(generator driven.TextGenerator, searcher Searcher) *Researcher {
	return &Researcher{generator: generator, searcher: searcher}
}

// Research generates search queries from the extracted fields, runs
// them, and summarizes the results. Individual search failures are
// logged and skipped; the summary covers whatever results came back.
func (r *Researcher) Research(ctx context.Context, fields domain.ExtractedFields) (string, error) {
	queries, err := r.generateQueries(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("generate search queries: %w", err)
	}
	if len(queries) > MaxQueries {
		queries = queries[:MaxQueries]
	}

	var results []string
	for _, query := range queries {
		logger.Debug("searching: %s", query)
		found, err := r.searcher.Search(ctx, query)
		if err != nil {
			logger.Warn("search failed for %q: %v", query, err)
			found = fmt.Sprintf("Error performing search: %v", err)
		}
		results = append(results, fmt.Sprintf("Query: %s\nResults: %s\n", query, found))
	}

	prompt := fmt.Sprintf(summaryPrompt, fields.PromptText(), strings.Join(results, "\n"))
	summary, err := r.generator.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0})
	if err != nil {
		return "", fmt.Errorf("summarize research: %w", err)
	}
	return summary, nil
}

// generateQueries asks the model for a JSON list of search queries,
// falling back to comma splitting when the output is not valid JSON.
func (r *Researcher) generateQueries(ctx context.Context, fields domain.ExtractedFields) ([]string, error) {
	raw, err := r.generator.Generate(ctx, fmt.Sprintf(queryPrompt, fields.PromptText()), driven.GenerateOptions{
		Temperature: 0,
	})
	if err != nil {
		return nil, err
	}

	raw = stripCodeFence(raw)
	var queries []string
	if err := json.Unmarshal([]byte(raw), &queries); err == nil {
		return queries, nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}

// stripCodeFence removes a markdown code fence the model sometimes wraps
// around JSON output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
