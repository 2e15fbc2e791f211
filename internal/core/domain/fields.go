package domain

import "strings"

// NotMentioned is the sentinel used for fields the extractor could not
// find. Fields are always present; absence is represented by this value,
// never by an empty string.
const NotMentioned = "Not mentioned"

// ExtractedFields holds the structured information pulled from an inbound
// email. The field set is fixed; every field is a string and defaults to
// NotMentioned. The core treats a populated value as read-only input.
type ExtractedFields struct {
	SenderName     string
	SenderEmail    string
	CompanyName    string
	Industry       string
	FundingStage   string
	AskAmount      string
	RequestSummary string
	KeyPoints      string
	Founders       string
	Location       string
	Website        string
}

// NewExtractedFields returns fields with every value set to NotMentioned.
func NewExtractedFields() ExtractedFields {
	return ExtractedFields{
		SenderName:     NotMentioned,
		SenderEmail:    NotMentioned,
		CompanyName:    NotMentioned,
		Industry:       NotMentioned,
		FundingStage:   NotMentioned,
		AskAmount:      NotMentioned,
		RequestSummary: NotMentioned,
		KeyPoints:      NotMentioned,
		Founders:       NotMentioned,
		Location:       NotMentioned,
		Website:        NotMentioned,
	}
}

// Field is a single named field value, used wherever the fields must be
// rendered in a stable order.
type Field struct {
	Name  string
	Value string
}

// Ordered returns the fields as name/value entries in their canonical
// order. Prompt rendering, table output, and audit logging all rely on
// this order being stable.
func (f ExtractedFields) Ordered() []Field {
	return []Field{
		{"sender_name", f.SenderName},
		{"sender_email", f.SenderEmail},
		{"company_name", f.CompanyName},
		{"industry", f.Industry},
		{"funding_stage", f.FundingStage},
		{"ask_amount", f.AskAmount},
		{"request_summary", f.RequestSummary},
		{"key_points", f.KeyPoints},
		{"founders", f.Founders},
		{"location", f.Location},
		{"website", f.Website},
	}
}

// PromptText renders the fields as "name: value" lines for inclusion in a
// generative prompt.
func (f ExtractedFields) PromptText() string {
	ordered := f.Ordered()
	lines := make([]string, len(ordered))
	for i, fld := range ordered {
		lines[i] = fld.Name + ": " + fld.Value
	}
	return strings.Join(lines, "\n")
}

// Mentioned reports whether the value carries real content rather than
// the absence sentinel.
func Mentioned(value string) bool {
	return value != "" && value != NotMentioned
}
