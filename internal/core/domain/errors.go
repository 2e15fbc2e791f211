package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDimensionMismatch indicates an embedding whose length disagrees
	// with the dimensionality established for the index instance.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrConfiguration indicates missing or invalid configuration
	// (index dimensionality, provider credentials). Fatal, never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrGenerationFailed indicates an external generative call error.
	// The failed stage may be retried by the caller; the pipeline does
	// not retry on its own.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrEmptyCorpus indicates an ingest batch contained no usable pairs.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrDeliveryFailed indicates the outbound message could not be sent.
	ErrDeliveryFailed = errors.New("delivery failed")
)
