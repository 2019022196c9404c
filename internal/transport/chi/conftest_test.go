package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	healthuc "github.com/kailas-cloud/catalograg/internal/usecase/health"
	queryuc "github.com/kailas-cloud/catalograg/internal/usecase/query"
)

type mockQueries struct {
	recommendFn func(ctx context.Context, seedIDs []string) (queryuc.Recommendation, error)
	askFn       func(ctx context.Context, text string) (queryuc.Answer, error)
}

func (m *mockQueries) Recommend(ctx context.Context, seedIDs []string) (queryuc.Recommendation, error) {
	if m.recommendFn != nil {
		return m.recommendFn(ctx, seedIDs)
	}
	return queryuc.Recommendation{ProductIDs: []string{}}, nil
}

func (m *mockQueries) Ask(ctx context.Context, text string) (queryuc.Answer, error) {
	if m.askFn != nil {
		return m.askFn(ctx, text)
	}
	return queryuc.Answer{}, nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report {
	return m.report
}

func newTestServer(q *mockQueries) *Server {
	return NewServer(q, &mockHealth{report: healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
	}}, zap.NewNop())
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
