package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalograg/internal/domain"
	logpkg "github.com/kailas-cloud/catalograg/internal/logger"
	healthuc "github.com/kailas-cloud/catalograg/internal/usecase/health"
	queryuc "github.com/kailas-cloud/catalograg/internal/usecase/query"
	"github.com/kailas-cloud/catalograg/internal/version"
)

const maxBodyBytes = 1 << 20

// QueryService runs catalog queries.
type QueryService interface {
	Recommend(ctx context.Context, seedIDs []string) (queryuc.Recommendation, error)
	Ask(ctx context.Context, text string) (queryuc.Answer, error)
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, body domain.Response) bool

// Server serves the query API.
type Server struct {
	queries       QueryService
	health        HealthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(queries QueryService, health HealthService, logger *zap.Logger) *Server {
	s := &Server{
		queries: queries,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInput, http.StatusBadRequest),
		sentinelHandler(domain.ErrNoTags, http.StatusUnprocessableEntity),
		sentinelHandler(domain.ErrUpstream, http.StatusBadGateway),
	}
	return s
}

type recommendRequest struct {
	UserID     string   `json:"userId"`
	ProductIDs []string `json:"productIds"`
}

type askRequest struct {
	Query string `json:"query"`
}

type healthResponse struct {
	Status  healthuc.Status                 `json:"status"`
	Checks  map[string]healthuc.CheckResult `json:"checks"`
	Version string                          `json:"version"`
}

// Recommend handles POST /v1/recommendations.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	logpkg.FromContextOr(r.Context(), s.logger).Info("Recommendation requested",
		zap.String("user_id", req.UserID),
		zap.Int("seeds", len(req.ProductIDs)),
	)

	ctx, usage := domain.NewContextWithUsage(r.Context())
	rec, err := s.queries.Recommend(ctx, req.ProductIDs)
	setUsageHeaders(w, usage)
	body := queryuc.RecommendationPayload(rec, err)
	if err != nil {
		s.handleDomainError(w, err, body)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// Ask handles POST /v1/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	ans, err := s.queries.Ask(ctx, req.Query)
	setUsageHeaders(w, usage)
	body := queryuc.AnswerPayload(ans, err)
	if err != nil {
		s.handleDomainError(w, err, body)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:  report.Status,
		Checks:  report.Checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func setUsageHeaders(w http.ResponseWriter, usage *domain.Usage) {
	if n := usage.EmbeddingTokens(); n > 0 {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(n))
	}
	if n := usage.GenerationTokens(); n > 0 {
		w.Header().Set("X-Generation-Tokens", strconv.Itoa(n))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, domain.Response{Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, body domain.Response) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeJSON(w, status, body)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error, body domain.Response) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err, body) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
