package server

import (
	"net/http"

	"github.com/playperu/alfred0/internal/catalog"
)

type TeamNameRequest struct {
	Name string `json:"name"`
}

type TeamNameResponse struct {
	Name string `json:"name"`
}

func handleGetSettings(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.Settings())
	}
}

func handleUpdateSettings(cat *catalog.Catalog, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req catalog.SettingsUpdate
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var settings catalog.Settings
		err := ch.apply(r.Context(), AreaSettings, func() (err error) {
			settings, err = cat.UpdateSettings(req)
			return err
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, settings)
	}
}

// handleValidateTeamName checks a team name against the current settings
// and returns it trimmed.
func handleValidateTeamName(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TeamNameRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		name, err := cat.ValidateTeamName(req.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TeamNameResponse{Name: name})
	}
}
