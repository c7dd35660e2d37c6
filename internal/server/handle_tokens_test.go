package server

import (
	"net/http"
	"testing"

	"github.com/playperu/alfred0/internal/configstore"
	"github.com/playperu/alfred0/internal/tokens"
)

func TestGetTokenConfig(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/tokens/config", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	cfg := decode[TokenConfigResponse](t, rec)
	if cfg.PresetID != "balanced" || cfg.Custom {
		t.Errorf("preset = %q custom = %v", cfg.PresetID, cfg.Custom)
	}
	if cfg.MaxPossibleTokens != 150 {
		t.Errorf("maxPossibleTokens = %d, want 150", cfg.MaxPossibleTokens)
	}
}

func TestLoadPresetPersists(t *testing.T) {
	r, env := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/tokens/presets/high-stakes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[TokenConfigResponse](t, rec).PresetID; got != "high-stakes" {
		t.Errorf("presetId = %q", got)
	}

	stored, err := env.kv.Get(t.Context(), configstore.KeyCurrentPreset)
	if err != nil || string(stored) != "high-stakes" {
		t.Errorf("stored preset = %q, %v", stored, err)
	}

	rec = do(t, r, http.MethodPost, "/api/tokens/presets/unknown", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown preset status = %d, want 404", rec.Code)
	}
}

func TestUpdateTokenConfigBecomesCustom(t *testing.T) {
	r, env := newTestRouter(t)

	rules := tokens.DefaultRules()
	rules.Phase3.Correct = 50
	rec := do(t, r, http.MethodPut, "/api/tokens/config", rules)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	cfg := decode[TokenConfigResponse](t, rec)
	if !cfg.Custom || cfg.MaxPossibleTokens != 175 {
		t.Errorf("custom = %v max = %d", cfg.Custom, cfg.MaxPossibleTokens)
	}
	if env.tokens.PresetID() != "" {
		t.Errorf("calculator still on preset %q", env.tokens.PresetID())
	}

	rules.Phase1.TimeBonus = -1
	rec = do(t, r, http.MethodPut, "/api/tokens/config", rules)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative rules status = %d, want 400", rec.Code)
	}
}

func TestResetTokens(t *testing.T) {
	r, env := newTestRouter(t)
	if err := env.tokens.LoadPreset("competitive"); err != nil {
		t.Fatal(err)
	}

	rec := do(t, r, http.MethodPost, "/api/tokens/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.tokens.PresetID() != tokens.DefaultPresetID {
		t.Errorf("preset = %q", env.tokens.PresetID())
	}
}

func TestListPresets(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/tokens/presets", nil)
	list := decode[PresetListResponse](t, rec)
	if len(list.Presets) != 4 || list.Active != "balanced" {
		t.Errorf("presets = %d active = %q", len(list.Presets), list.Active)
	}
}

func TestCalculate(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{"phase1 fast", "/api/tokens/calculate/phase1", tokens.Phase1Result{Completed: true, TimeRemaining: 100, TotalTime: 180}, 25},
		{"phase1 medium", "/api/tokens/calculate/phase1", tokens.Phase1Result{Completed: true, TimeRemaining: 50, TotalTime: 180}, 20},
		{"phase1 slow", "/api/tokens/calculate/phase1", tokens.Phase1Result{Completed: true, TimeRemaining: 20, TotalTime: 180}, 15},
		{"phase2", "/api/tokens/calculate/phase2", tokens.Phase2Result{ChallengeSelected: true, StoryRead: true}, 25},
		{"phase4 wrong", "/api/tokens/calculate/answer/4", AnswerRequest{Correct: false}, 10},
		{"phase5 right", "/api/tokens/calculate/answer/5", AnswerRequest{Correct: true}, 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, tt.path, tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			if got := decode[TokensResponse](t, rec).Tokens; got != tt.want {
				t.Errorf("tokens = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateAnswerUnknownPhase(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, phase := range []string{"2", "six"} {
		rec := do(t, r, http.MethodPost, "/api/tokens/calculate/answer/"+phase, AnswerRequest{Correct: true})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("phase %s: status = %d, want 400", phase, rec.Code)
		}
	}
}

func TestTier(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/tokens/tier?tokens=120", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	tier := decode[TierResponse](t, rec)
	if tier.Tier.ID != "legend" || tier.Percent != 80 || tier.MaxPossibleTokens != 150 {
		t.Errorf("unexpected tier: %+v", tier)
	}

	rec = do(t, r, http.MethodGet, "/api/tokens/tier", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing tokens status = %d, want 400", rec.Code)
	}
}
