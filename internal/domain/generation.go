package domain

import "context"

// Generator produces one text answer for a prompt grounded in a context.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error)
}

// GenerationRequest is a single completion call.
type GenerationRequest struct {
	Context string // retrieved catalog context
	Prompt  string // rendered instruction
}

// GenerationResult is the raw answer plus usage.
type GenerationResult struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
