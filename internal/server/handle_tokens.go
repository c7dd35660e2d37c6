package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/alfred0/internal/tokens"
)

type TokenConfigResponse struct {
	PresetID          string         `json:"presetId"`
	Custom            bool           `json:"custom"`
	Rules             tokens.RuleSet `json:"rules"`
	MaxPossibleTokens int            `json:"maxPossibleTokens"`
}

type PresetListResponse struct {
	Active  string          `json:"active"`
	Presets []tokens.Preset `json:"presets"`
}

type AnswerRequest struct {
	Correct bool `json:"correct"`
}

type TokensResponse struct {
	Tokens int `json:"tokens"`
}

type TierResponse struct {
	Tokens            int         `json:"tokens"`
	MaxPossibleTokens int         `json:"maxPossibleTokens"`
	Percent           int         `json:"percent"`
	Tier              tokens.Tier `json:"tier"`
}

func tokenConfig(calc *tokens.Calculator) TokenConfigResponse {
	rules := calc.Rules()
	id := calc.PresetID()
	return TokenConfigResponse{
		PresetID:          id,
		Custom:            id == "",
		Rules:             rules,
		MaxPossibleTokens: rules.MaxPossible(),
	}
}

func handleGetTokenConfig(calc *tokens.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, tokenConfig(calc))
	}
}

func handleUpdateTokenConfig(calc *tokens.Calculator, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokens.RuleSet
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := ch.apply(r.Context(), AreaTokens, func() error {
			return calc.UpdateConfig(req)
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tokenConfig(calc))
	}
}

func handleListPresets(calc *tokens.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, PresetListResponse{
			Active:  calc.PresetID(),
			Presets: tokens.Presets(),
		})
	}
}

func handleLoadPreset(calc *tokens.Calculator, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := ch.apply(r.Context(), AreaTokens, func() error {
			return calc.LoadPreset(chi.URLParam(r, "id"))
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tokenConfig(calc))
	}
}

func handleResetTokens(calc *tokens.Calculator, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := ch.apply(r.Context(), AreaTokens, func() error {
			calc.ResetToDefault()
			return nil
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, tokenConfig(calc))
	}
}

func handleCalculatePhase1(calc *tokens.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokens.Phase1Result
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		writeJSON(w, http.StatusOK, TokensResponse{Tokens: calc.Phase1Tokens(req)})
	}
}

func handleCalculatePhase2(calc *tokens.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokens.Phase2Result
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		writeJSON(w, http.StatusOK, TokensResponse{Tokens: calc.Phase2Tokens(req)})
	}
}

func handleCalculateAnswer(calc *tokens.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phase, err := strconv.Atoi(chi.URLParam(r, "phase"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "phase must be a number")
			return
		}

		var req AnswerRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		n, err := calc.AnswerTokens(phase, req.Correct)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TokensResponse{Tokens: n})
	}
}

func handleTier(calc *tokens.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(r.URL.Query().Get("tokens"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "tokens query parameter must be a number")
			return
		}

		maxTokens := calc.MaxPossibleTokens()
		writeJSON(w, http.StatusOK, TierResponse{
			Tokens:            n,
			MaxPossibleTokens: maxTokens,
			Percent:           tokens.Percent(n, maxTokens),
			Tier:              tokens.TierFor(n, maxTokens),
		})
	}
}
