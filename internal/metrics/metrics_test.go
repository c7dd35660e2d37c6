package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/phases/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/phases/{id}", "418"))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/phases/"+id, nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("status = %d", rec.Code)
		}
	}

	got := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/phases/{id}", "418"))
	if got-before != 2 {
		t.Errorf("requests counted = %v, want 2", got-before)
	}
}

func TestConfigChanged(t *testing.T) {
	before := testutil.ToFloat64(configChanges.WithLabelValues("phases"))
	ConfigChanged("phases")
	if got := testutil.ToFloat64(configChanges.WithLabelValues("phases")); got-before != 1 {
		t.Errorf("delta = %v, want 1", got-before)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	ConfigSaveFailed()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alfred0_config_save_failures_total") {
		t.Error("missing save failure counter in exposition")
	}
}
