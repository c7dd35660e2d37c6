package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, opts Options) {
	broker := NewBroker()
	cat, calc := opts.Catalog, opts.Tokens
	ch := &committer{catalog: cat, tokens: calc, store: opts.Config, broker: broker, logger: logger}

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Alfred0 API", "/openapi.json", "/docs"))
	r.Get("/api/events", handleEvents(broker))

	r.Route("/api/phases", func(r chi.Router) {
		r.Get("/", handleListPhases(cat))
		r.Get("/active", handleListActivePhases(cat))
		r.Post("/", handleAddPhase(cat, ch))
		r.Get("/{id}", handleGetPhase(cat))
		r.Patch("/{id}", handleUpdatePhase(cat, ch))
		r.Delete("/{id}", handleDeletePhase(cat, ch))
		r.Post("/{id}/move", handleMovePhase(cat, ch))
		r.Post("/{id}/questions", handleAddQuestion(cat, ch))
		r.Patch("/{id}/questions/{questionID}", handleUpdateQuestion(cat, ch))
		r.Delete("/{id}/questions/{questionID}", handleDeleteQuestion(cat, ch))
	})

	r.Route("/api/settings", func(r chi.Router) {
		r.Get("/", handleGetSettings(cat))
		r.Patch("/", handleUpdateSettings(cat, ch))
		r.Post("/team-name", handleValidateTeamName(cat))
	})

	r.Route("/api/tokens", func(r chi.Router) {
		r.Get("/config", handleGetTokenConfig(calc))
		r.Put("/config", handleUpdateTokenConfig(calc, ch))
		r.Get("/presets", handleListPresets(calc))
		r.Post("/presets/{id}", handleLoadPreset(calc, ch))
		r.Post("/reset", handleResetTokens(calc, ch))
		r.Post("/calculate/phase1", handleCalculatePhase1(calc))
		r.Post("/calculate/phase2", handleCalculatePhase2(calc))
		r.Post("/calculate/answer/{phase}", handleCalculateAnswer(calc))
		r.Get("/tier", handleTier(calc))
	})

	r.Route("/api/config", func(r chi.Router) {
		r.Get("/export", handleExport(opts.Config))
		r.Post("/import", handleImport(opts.Config, ch))
		r.Post("/save", handleSave(ch))
		r.Post("/load", handleLoad(opts.Config, ch))
		r.Post("/reset", handleReset(opts.Config, ch))
	})

	if opts.SPADir != "" {
		if info, err := os.Stat(opts.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", opts.SPADir)
			r.NotFound(handleSPA(opts.SPADir))
		}
	}
}
