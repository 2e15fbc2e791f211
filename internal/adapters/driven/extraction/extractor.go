// Package extraction pulls structured inquiry fields out of raw inbound
// email text using a generative model, with a regex pre-pass for the
// sender address and basic header and signature cleanup.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.FieldExtractor = (*Extractor)(nil)

const extractionPrompt = `Extract the following information from the email below. If a piece of information is not present, write 'Not mentioned'.

Respond with a JSON object containing exactly these keys:

"sender_name": The full name of the email sender
"sender_email": The email address of the sender
"company_name": The company or organization the sender represents
"industry": The industry or sector the company operates in
"funding_stage": If mentioned, the funding stage of the company (e.g., seed, Series A)
"ask_amount": The amount of funding requested, if specified
"request_summary": A brief summary of what the sender is asking for
"key_points": List of key points mentioned in the email
"founders": Names of founders mentioned in the email
"location": Location of the company if mentioned
"website": Company website if mentioned

EMAIL:
%s

EXTRACTED INFORMATION:
`

var (
	fromHeaderRe  = regexp.MustCompile(`From:.*?[\[<]?([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})[\]>]?`)
	replyToRe     = regexp.MustCompile(`Reply-To:.*?[\[<]?([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})[\]>]?`)
	anyEmailRe    = regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	headerBlockRe = regexp.MustCompile(`From:|To:|Subject:|Date:`)
	blankLineRe   = regexp.MustCompile(`\n\n|\r\n\r\n`)

	signatureRes = []*regexp.Regexp{
		regexp.MustCompile(`(?s)--\s*\n.*`),
		regexp.MustCompile(`(?is)Kind\s+regards,.*$`),
		regexp.MustCompile(`(?is)Best\s+regards,.*$`),
		regexp.MustCompile(`(?is)Sincerely,.*$`),
		regexp.MustCompile(`(?is)Thanks,.*$`),
		regexp.MustCompile(`(?is)Thank\s+you,.*$`),
	}
)

// Extractor extracts inquiry fields from email text via a TextGenerator.
type Extractor struct {
	generator driven.TextGenerator
}

// NewExtractor creates a field extractor backed by the given generator.
func NewExtractor(generator driven.TextGenerator) *Extractor {
	return &Extractor{generator: generator}
}

// extractedJSON mirrors the JSON object the model is asked to produce.
// key_points may come back as either a string or a list.
type extractedJSON struct {
	SenderName     string          `json:"sender_name"`
	SenderEmail    string          `json:"sender_email"`
	CompanyName    string          `json:"company_name"`
	Industry       string          `json:"industry"`
	FundingStage   string          `json:"funding_stage"`
	AskAmount      string          `json:"ask_amount"`
	RequestSummary string          `json:"request_summary"`
	KeyPoints      json.RawMessage `json:"key_points"`
	Founders       json.RawMessage `json:"founders"`
	Location       string          `json:"location"`
	Website        string          `json:"website"`
}

// Extract pulls the fixed field set from the email text. Fields the model
// cannot find come back as the absence sentinel, never empty. A sender
// address found in headers overrides a missing model answer.
func (e *Extractor) Extract(ctx context.Context, emailText string) (domain.ExtractedFields, error) {
	headerEmail := EmailFromHeaders(emailText)
	body := CleanBody(emailText)

	raw, err := e.generator.Generate(ctx, fmt.Sprintf(extractionPrompt, body), driven.GenerateOptions{
		Temperature: 0,
	})
	if err != nil {
		return domain.ExtractedFields{}, fmt.Errorf("extract fields: %w", err)
	}

	var parsed extractedJSON
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return domain.ExtractedFields{}, fmt.Errorf("parse extraction response: %w", err)
	}

	fields := domain.NewExtractedFields()
	setField(&fields.SenderName, parsed.SenderName)
	setField(&fields.SenderEmail, parsed.SenderEmail)
	setField(&fields.CompanyName, parsed.CompanyName)
	setField(&fields.Industry, parsed.Industry)
	setField(&fields.FundingStage, parsed.FundingStage)
	setField(&fields.AskAmount, parsed.AskAmount)
	setField(&fields.RequestSummary, parsed.RequestSummary)
	setField(&fields.KeyPoints, flattenValue(parsed.KeyPoints))
	setField(&fields.Founders, flattenValue(parsed.Founders))
	setField(&fields.Location, parsed.Location)
	setField(&fields.Website, parsed.Website)

	if headerEmail != "" && !domain.Mentioned(fields.SenderEmail) {
		fields.SenderEmail = headerEmail
	}

	return fields, nil
}

func setField(dst *string, value string) {
	value = strings.TrimSpace(value)
	if value != "" {
		*dst = value
	}
}

// flattenValue renders a JSON value that may be a string or a list of
// strings as one comma-separated string.
func flattenValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return strings.Trim(string(raw), `"`)
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

/// EmailFromHeaders pulls the sender address out of From: or Reply-To:
// headers, falling back to any address in the first ten lines.
func EmailFromHeaders(emailText string) string {
	if m := fromHeaderRe.FindStringSubmatch(emailText); m != nil {
		return m[1]
	}
	if m := replyToRe.FindStringSubmatch(emailText); m != nil {
		return m[1]
	}
	lines := strings.Split(emailText, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	if m := anyEmailRe.FindStringSubmatch(strings.Join(lines, "\n")); m != nil {
		return m[1]
	}
	return ""
}

// CleanBody strips a leading header block and trailing signatures so the
// model sees just the message content.
func CleanBody(emailText string) string {
	if headerBlockRe.MatchString(emailText) {
		if loc := blankLineRe.FindStringIndex(emailText); loc != nil {
			emailText = emailText[loc[1]:]
		}
	}
	for _, re := range signatureRes {
		emailText = re.ReplaceAllString(emailText, "")
	}
	return strings.TrimSpace(emailText)
}
