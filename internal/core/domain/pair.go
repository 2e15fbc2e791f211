package domain

import (
	"fmt"
	"strings"
)

// Joint representation markers. The email and the reply are embedded as a
// single document so retrieval similarity reflects both the inbound style
// and the reply style, not just topical similarity of the inbound email.
const (
	jointEmailPrefix = "EMAIL: "
	jointSeparator   = "\n\nRESPONSE: "
)

// HistoricalPair is one past exchange used as a style exemplar: an inbound
// email and the reply that was actually sent, plus free-form labels
// (industry, funding stage, company type).
type HistoricalPair struct {
	// EmailText is the original inbound message, verbatim.
	EmailText string

	// ResponseText is the reply that was actually sent.
	ResponseText string

	// Metadata holds open labels for the pair. Insertion order is irrelevant.
	Metadata map[string]string
}

// Validate checks that both sides of the pair are present.
// Pairs with either side missing must be rejected at ingest.
func (p HistoricalPair) Validate() error {
	if strings.TrimSpace(p.EmailText) == "" {
		return fmt.Errorf("%w: historical pair has empty email text", ErrInvalidInput)
	}
	if strings.TrimSpace(p.ResponseText) == "" {
		return fmt.Errorf("%w: historical pair has empty response text", ErrInvalidInput)
	}
	return nil
}

// JointRepresentation composes the text that gets embedded and stored as
// the record payload: "EMAIL: <email>\n\nRESPONSE: <response>".
func (p HistoricalPair) JointRepresentation() string {
	return jointEmailPrefix + p.EmailText + jointSeparator + p.ResponseText
}

// SplitJointRepresentation parses a stored payload back into its email and
// response parts. ok is false when the payload does not contain exactly one
// separator; such records are malformed and must be skipped, not surfaced.
func SplitJointRepresentation(payload string) (email, response string, ok bool) {
	if strings.Count(payload, jointSeparator) != 1 {
		return "", "", false
	}
	before, after, _ := strings.Cut(payload, jointSeparator)
	return strings.TrimPrefix(before, jointEmailPrefix), after, true
}

// IndexedRecord is the unit stored in the similarity index.
// Records are append-only: callers never mutate one after insertion.
type IndexedRecord struct {
	// ID is unique and stable, assigned by the ingestor. Re-inserting the
	// same ID replaces the payload rather than duplicating it.
	ID string

	// Embedding is the vector for the pair's joint representation. Its
	// length is fixed for the lifetime of one index instance.
	Embedding []float32

	// Payload is the joint representation, kept verbatim so a
	// human-readable example can be reconstructed after retrieval.
	Payload string

	// Metadata carries the pair's labels through storage.
	Metadata map[string]string
}

// RetrievedExample is a historical pair annotated with its distance to a
// query. Transient: created per query, never persisted.
type RetrievedExample struct {
	Email    string
	Response string
	Metadata map[string]string

	// Distance is the cosine distance to the query embedding.
	// Smaller is more similar.
	Distance float64
}
