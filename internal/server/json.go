package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/playperu/alfred0/internal/catalog"
	"github.com/playperu/alfred0/internal/configstore"
	"github.com/playperu/alfred0/internal/tokens"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeDomainError maps the sentinel errors of the domain packages to HTTP
// statuses. Anything unrecognised is a 500 without details.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, tokens.ErrUnknownPreset):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrInvalidOperation):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrInvalid),
		errors.Is(err, configstore.ErrMalformedInput),
		errors.Is(err, tokens.ErrInvalidRules),
		errors.Is(err, tokens.ErrUnknownPhase):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
