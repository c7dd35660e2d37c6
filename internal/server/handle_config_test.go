package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/playperu/alfred0/internal/catalog"
	"github.com/playperu/alfred0/internal/kv"
)

func TestExportImportRoundTrip(t *testing.T) {
	src, srcEnv := newTestRouter(t)
	if _, err := srcEnv.catalog.AddPhase(catalog.NewPhase{Title: "Extra", Kind: catalog.KindCustom, IsActive: true}); err != nil {
		t.Fatal(err)
	}

	rec := do(t, src, http.MethodGet, "/api/config/export?download=true", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "alfred0-config.json") {
		t.Errorf("content-disposition = %q", cd)
	}
	exported := rec.Body.String()

	dst, dstEnv := newTestRouter(t)
	rec = do(t, dst, http.MethodPost, "/api/config/import", exported)
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", rec.Code, rec.Body.String())
	}

	if got, want := len(dstEnv.catalog.Phases()), 6; got != want {
		t.Errorf("imported %d phases, want %d", got, want)
	}
	rec = do(t, dst, http.MethodGet, "/api/config/export", nil)
	if rec.Body.String() != exported {
		t.Error("re-export differs from the imported document")
	}
}

func TestImportMalformed(t *testing.T) {
	r, env := newTestRouter(t)
	before := env.catalog.Snapshot()

	for _, body := range []string{`not json`, `{"phases":[]}`, `{"settings":{},"phases":null}`} {
		rec := do(t, r, http.MethodPost, "/api/config/import", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, rec.Code)
		}
	}
	if len(env.catalog.Snapshot().Phases) != len(before.Phases) {
		t.Error("catalog changed after malformed imports")
	}
}

func TestLoadDiscardsUnsavedState(t *testing.T) {
	r, env := newTestRouter(t)

	if rec := do(t, r, http.MethodPost, "/api/config/save", nil); rec.Code != http.StatusOK {
		t.Fatalf("save status = %d", rec.Code)
	}
	if err := env.catalog.DeletePhase("phase-1"); err != nil {
		t.Fatal(err)
	}

	rec := do(t, r, http.MethodPost, "/api/config/load", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("load status = %d", rec.Code)
	}
	if len(env.catalog.Phases()) != 5 {
		t.Errorf("phases = %d, want the 5 saved ones", len(env.catalog.Phases()))
	}
}

func TestResetConfig(t *testing.T) {
	r, env := newTestRouter(t)

	do(t, r, http.MethodDelete, "/api/phases/phase-4", nil)
	do(t, r, http.MethodPost, "/api/tokens/presets/competitive", nil)

	rec := do(t, r, http.MethodPost, "/api/config/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(env.catalog.Phases()) != 5 || env.tokens.PresetID() != "balanced" {
		t.Errorf("reset left %d phases, preset %q", len(env.catalog.Phases()), env.tokens.PresetID())
	}
}

func TestSaveFailure(t *testing.T) {
	r, _ := newTestRouterWith(t, brokenStore{kv.NewMemoryStore()})

	rec := do(t, r, http.MethodPost, "/api/config/save", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
