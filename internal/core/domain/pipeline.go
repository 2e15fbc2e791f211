package domain

import "fmt"

// Stage identifies a step of the per-email reply pipeline.
type Stage string

// Pipeline stages, in processing order. Failed is reachable from any
// stage on an unrecovered error and is terminal for that email.
const (
	StageReceived  Stage = "received"
	StageExtracted Stage = "extracted"
	StageRetrieved Stage = "retrieved"
	StageDrafted   Stage = "drafted"
	StageComposed  Stage = "composed"
	StageSent      Stage = "sent"
	StageSaved     Stage = "saved"
	StageFailed    Stage = "failed"
)

// StageError wraps a failure with the pipeline stage it occurred in, so a
// caller can retry just that stage. Outputs of prior completed stages
// remain available on the PipelineResult.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// PipelineResult accumulates the artifacts of one pipeline run. Fields are
// populated as stages complete; on failure, everything produced before the
// failing stage is still set.
type PipelineResult struct {
	OriginalEmail string
	Fields        ExtractedFields
	Examples      []RetrievedExample

	// Draft is the style-matched, intentionally incomplete draft.
	Draft string

	// Research is the free-text research brief. Opaque to the core.
	Research string

	// FinalResponse is the composed reply text.
	FinalResponse string

	// Stage is the last stage that completed.
	Stage Stage
}
