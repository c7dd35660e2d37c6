package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/playperu/alfred0/internal/handler/health"
	"github.com/playperu/alfred0/internal/kv"
)

type mockChecker struct{ err error }

func (m mockChecker) Check(_ context.Context) error { return m.err }

type response struct {
	Status string `json:"status"`
	Checks map[string]struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	} `json:"checks"`
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]health.Checker
		wantStatus int
		wantState  string
		wantChecks map[string]string
	}{
		{
			name:       "no checks",
			checks:     map[string]health.Checker{},
			wantStatus: http.StatusOK,
			wantState:  "ok",
			wantChecks: map[string]string{},
		},
		{
			name: "store healthy",
			checks: map[string]health.Checker{
				"store": mockChecker{},
			},
			wantStatus: http.StatusOK,
			wantState:  "ok",
			wantChecks: map[string]string{"store": "ok"},
		},
		{
			name: "store down",
			checks: map[string]health.Checker{
				"store": mockChecker{err: errors.New("connection refused")},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "degraded",
			wantChecks: map[string]string{"store": "error"},
		},
		{
			name: "memory store through CheckFunc",
			checks: map[string]health.Checker{
				"store": health.CheckFunc(kv.NewMemoryStore().Ping),
			},
			wantStatus: http.StatusOK,
			wantState:  "ok",
			wantChecks: map[string]string{"store": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := health.NewHandler(slog.Default(), tt.checks)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body response
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if body.Status != tt.wantState {
				t.Errorf("overall status = %q, want %q", body.Status, tt.wantState)
			}
			for name, want := range tt.wantChecks {
				if got := body.Checks[name].Status; got != want {
					t.Errorf("%s status = %q, want %q", name, got, want)
				}
			}
		})
	}
}

func TestHandlerReportsError(t *testing.T) {
	h := health.NewHandler(slog.Default(), map[string]health.Checker{
		"store": health.CheckFunc(func(context.Context) error { return errors.New("locked") }),
	})

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body response
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got := body.Checks["store"].Error; got != "locked" {
		t.Errorf("error = %q, want locked", got)
	}
}
