package query

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalograg/internal/domain"
)

// DefaultMaxContextChars bounds the rendered context handed to the generation service.
const DefaultMaxContextChars = 24000

const (
	contextHeader = "Context information is below.\n---------------------\n"
	contextFooter = "\n---------------------\n" +
		"Given the context information and not prior knowledge, follow the instruction in the user message."
)

// Synthesizer compacts retrieved documents into one bounded context and makes
// exactly one generation call. No retries, no streaming.
type Synthesizer struct {
	gen             domain.Generator
	maxContextChars int
	timeout         time.Duration
	logger          *zap.Logger
}

// NewSynthesizer creates a synthesizer. maxContextChars <= 0 selects the default;
// timeout <= 0 leaves the call unbounded.
func NewSynthesizer(gen domain.Generator, maxContextChars int, timeout time.Duration, logger *zap.Logger) *Synthesizer {
	if maxContextChars <= 0 {
		maxContextChars = DefaultMaxContextChars
	}
	return &Synthesizer{gen: gen, maxContextChars: maxContextChars, timeout: timeout, logger: logger}
}

// Synthesize implements ResponseSynthesizer.
func (s *Synthesizer) Synthesize(ctx context.Context, retrieved []domain.ScoredDocument, prompt string) (string, error) {
	body, included := compactContext(retrieved, s.maxContextChars)

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := s.gen.Generate(callCtx, domain.GenerationRequest{
		Context: contextHeader + body + contextFooter,
		Prompt:  prompt,
	})
	duration := time.Since(start)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	domain.UsageFromContext(ctx).AddGenerationTokens(res.TotalTokens)

	s.logger.Info("Answer synthesized",
		zap.Duration("duration", duration),
		zap.Int("retrieved", len(retrieved)),
		zap.Int("context_documents", included),
		zap.Int("context_chars", len(body)),
		zap.Int("total_tokens", res.TotalTokens),
	)
	return res.Text, nil
}

// compactContext renders documents as numbered blocks in retrieval order until
// maxChars is reached. A first block that alone exceeds the budget is cut.
// Returns the body and how many documents it holds.
func compactContext(retrieved []domain.ScoredDocument, maxChars int) (string, int) {
	var sb strings.Builder
	n := 0
	for i, hit := range retrieved {
		block := fmt.Sprintf("[%d]\n%s", i+1, hit.Document.Text())
		sep := ""
		if sb.Len() > 0 {
			sep = "\n\n"
		}
		if sb.Len()+len(sep)+len(block) > maxChars {
			if n == 0 {
				sb.WriteString(truncate(block, maxChars))
				n = 1
			}
			break
		}
		sb.WriteString(sep)
		sb.WriteString(block)
		n++
	}
	return sb.String(), n
}

// truncate cuts s to at most maxBytes without splitting a UTF-8 sequence.
func truncate(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	s = s[:maxBytes]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
