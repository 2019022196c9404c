package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalograg/internal/domain"
	"github.com/kailas-cloud/catalograg/internal/domain/answer"
	domquery "github.com/kailas-cloud/catalograg/internal/domain/query"
	"github.com/kailas-cloud/catalograg/internal/domain/tags"
	"github.com/kailas-cloud/catalograg/internal/logger"
	"github.com/kailas-cloud/catalograg/internal/metrics"
)

// TopK is the retrieval budget for both modes.
const TopK = 100

// Catalog projections. Ask also sees cart state.
var (
	RecommendFields = []string{
		domain.FieldID, domain.FieldProductName, domain.FieldProductType,
		domain.FieldDescription, domain.FieldCost, domain.FieldTags,
	}
	AskFields = append(append([]string{}, RecommendFields...), domain.FieldInCart, domain.FieldQuantity)
)

// Config holds orchestrator settings.
type Config struct {
	Collection  string
	LoadTimeout time.Duration // bounds each store call; 0 = none
}

// Recommendation is the result of a recommend query.
type Recommendation struct {
	ProductIDs []string // never nil
	Tags       tags.Set
	Fallback   bool // ProductIDs came from the RecommendFallback
}

// Answer is the result of an ask query. Value is set only when OK.
type Answer struct {
	Value json.RawMessage
	OK    bool
}

// Service runs the retrieval-augmented query pipeline:
// load catalog, build index, retrieve, synthesize, coerce.
type Service struct {
	catalog  CatalogReader
	builder  IndexBuilder
	synth    ResponseSynthesizer
	fallback RecommendFallback
	cfg      Config
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithFallback enables a deterministic fallback for empty recommendation lists.
func WithFallback(f RecommendFallback) Option {
	return func(s *Service) { s.fallback = f }
}

// New creates a query service.
func New(
	catalog CatalogReader, builder IndexBuilder, synth ResponseSynthesizer,
	cfg Config, logger *zap.Logger, opts ...Option,
) *Service {
	s := &Service{
		catalog: catalog,
		builder: builder,
		synth:   synth,
		cfg:     cfg,
		logger:  logger,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Recommend returns products similar to the seeds.
// Errors: domain.ErrInput, domain.ErrNoTags, domain.ErrUpstream.
func (s *Service) Recommend(ctx context.Context, seedIDs []string) (rec Recommendation, err error) {
	defer func() { recordOutcome(domquery.Recommend, err) }()

	q, err := domquery.NewRecommend(seedIDs)
	if err != nil {
		return Recommendation{}, err //nolint:wrapcheck // already carries domain.ErrInput
	}
	log := logger.FromContextOr(ctx, s.logger).With(zap.String("mode", string(q.Mode())))

	seedTags, err := s.aggregate(ctx, q.SeedIDs())
	if err != nil {
		return Recommendation{}, err
	}
	if seedTags.IsEmpty() {
		return Recommendation{}, domain.ErrNoTags
	}
	log.Debug("Seed tags aggregated", zap.Int("seeds", len(q.SeedIDs())), zap.Strings("tags", seedTags.Sorted()))

	prompt, err := RenderPrompt(q, seedTags)
	if err != nil {
		return Recommendation{}, err
	}

	text, retrieved, err := s.run(ctx, log, q.Mode(), RecommendFields, prompt)
	if err != nil {
		return Recommendation{}, err
	}

	res := answer.Coerce(text, answer.List)
	if !res.OK {
		s.coercionFailed(log, q.Mode(), res.Failure, text)
	}

	rec = Recommendation{ProductIDs: res.IDs, Tags: seedTags}
	if len(rec.ProductIDs) == 0 && s.fallback != nil {
		rec.ProductIDs = s.fallback.Pick(seedTags, retrieved, q.SeedIDs())
		rec.Fallback = true
		log.Info("Recommendation fallback used", zap.Int("products", len(rec.ProductIDs)))
	}
	return rec, nil
}

// Ask answers a free-form question over the whole catalog.
// Errors: domain.ErrInput, domain.ErrUpstream.
func (s *Service) Ask(ctx context.Context, text string) (ans Answer, err error) {
	defer func() { recordOutcome(domquery.Ask, err) }()

	q, err := domquery.NewAsk(text)
	if err != nil {
		return Answer{}, err //nolint:wrapcheck // already carries domain.ErrInput
	}
	log := logger.FromContextOr(ctx, s.logger).With(zap.String("mode", string(q.Mode())))

	prompt, err := RenderPrompt(q, tags.Set{})
	if err != nil {
		return Answer{}, err
	}

	raw, _, err := s.run(ctx, log, q.Mode(), AskFields, prompt)
	if err != nil {
		return Answer{}, err
	}

	res := answer.Coerce(raw, answer.Any)
	if !res.OK {
		s.coercionFailed(log, q.Mode(), res.Failure, raw)
	}
	return Answer{Value: res.Value, OK: res.OK}, nil
}

func (s *Service) aggregate(ctx context.Context, seedIDs []string) (tags.Set, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()
	return AggregateTags(ctx, s.catalog, s.cfg.Collection, seedIDs)
}

// run loads the projected catalog, indexes it, retrieves TopK documents and
// synthesizes one answer. Every failure is reported as domain.ErrUpstream.
func (s *Service) run(
	ctx context.Context, log *zap.Logger, mode domquery.Mode, fields []string, prompt string,
) (string, []domain.ScoredDocument, error) {
	docs, err := s.load(ctx, fields)
	if err != nil {
		return "", nil, fmt.Errorf("%w: load catalog: %w", domain.ErrUpstream, err)
	}
	metrics.CatalogDocumentsLoadedTotal.WithLabelValues(string(mode)).Add(float64(len(docs)))
	log.Debug("Catalog loaded", zap.String("collection", s.cfg.Collection), zap.Int("documents", len(docs)))

	idx, err := s.builder.Build(ctx, docs)
	if err != nil {
		return "", nil, fmt.Errorf("%w: build index: %w", domain.ErrUpstream, err)
	}

	retrieved, err := idx.Retrieve(ctx, prompt, TopK)
	if err != nil {
		return "", nil, fmt.Errorf("%w: retrieve: %w", domain.ErrUpstream, err)
	}

	text, err := s.synth.Synthesize(ctx, retrieved, prompt)
	if err != nil {
		return "", nil, fmt.Errorf("%w: synthesize: %w", domain.ErrUpstream, err)
	}
	return text, retrieved, nil
}

func (s *Service) load(ctx context.Context, fields []string) ([]domain.Document, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()
	return s.catalog.Load(ctx, s.cfg.Collection, fields) //nolint:wrapcheck // wrapped by run
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.LoadTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.LoadTimeout)
}

func (s *Service) coercionFailed(log *zap.Logger, mode domquery.Mode, reason answer.Failure, raw string) {
	metrics.CoercionFailuresTotal.WithLabelValues(string(mode), string(reason)).Inc()
	log.Warn("Generation output did not match expected shape",
		zap.String("reason", string(reason)),
		zap.Int("length", len(raw)),
	)
}

func recordOutcome(mode domquery.Mode, err error) {
	metrics.QueriesTotal.WithLabelValues(string(mode), Outcome(err)).Inc()
}

// Outcome classifies an orchestrator error for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInput):
		return "input"
	case errors.Is(err, domain.ErrNoTags):
		return "no_tags"
	default:
		return "upstream"
	}
}
