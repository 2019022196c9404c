package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/v1/recommendations", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"recommendedProducts":[]}`))
	})
	r.Post("/v1/ask", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	return r
}

func TestMiddleware_RecordsByRouteAndStatus(t *testing.T) {
	r := newRouter()

	tests := []struct {
		method string
		path   string
		status string
	}{
		{http.MethodPost, "/v1/recommendations", "200"},
		{http.MethodPost, "/v1/ask", "502"},
		{http.MethodGet, "/health", "503"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.path, tc.status))

			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
			r.ServeHTTP(httptest.NewRecorder(), req)

			after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.path, tc.status))
			if after-before != 1 {
				t.Errorf("expected counter to grow by 1, got %v", after-before)
			}
		})
	}

	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := newRouter()

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/no/such/route", http.NoBody))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))

	if after-before != 1 {
		t.Errorf("expected unmatched counter to grow by 1, got %v", after-before)
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	r := newRouter()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
		t.Errorf("expected 0 in-flight requests, got %v", got)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath(""); got != "unmatched" {
		t.Errorf("normalizePath(\"\") = %q", got)
	}
	if got := normalizePath("/v1/ask"); got != "/v1/ask" {
		t.Errorf("normalizePath(/v1/ask) = %q", got)
	}
}

func TestRegisterTwiceIsSafe(t *testing.T) {
	RegisterEmbeddingMetrics()
	RegisterEmbeddingMetrics()
	RegisterGenerationMetrics()
	RegisterGenerationMetrics()
	RegisterPipelineMetrics()
	RegisterPipelineMetrics()
}
