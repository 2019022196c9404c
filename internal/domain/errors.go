package domain

import "errors"

var (
	// ErrInput signals a missing or empty required input (seed ids, query text).
	ErrInput = errors.New("invalid input")
	// ErrNoTags signals that the seed products resolved to zero tags.
	ErrNoTags = errors.New("no tags found for the provided products")
	// ErrUpstream signals a document store or generation service failure.
	ErrUpstream = errors.New("upstream failure")

	// ErrProductNotFound signals a missing catalog record.
	ErrProductNotFound = errors.New("product not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a generation provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrVectorDimMismatch signals vectors of different lengths in one index.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
)
