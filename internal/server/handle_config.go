package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/playperu/alfred0/internal/configstore"
)

const exportFilename = "alfred0-config.json"

func handleExport(store *configstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := store.Export()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.URL.Query().Get("download") == "true" {
			w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func handleImport(store *configstore.Store, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "import file too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err = ch.exclusive(AreaConfig, func() error {
			return store.Import(r.Context(), data)
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleSave(ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ch.apply(r.Context(), AreaConfig, nil); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// handleLoad discards unsaved state and rereads the backend.
func handleLoad(store *configstore.Store, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := ch.exclusive(AreaConfig, func() error {
			return store.Load(r.Context())
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleReset(store *configstore.Store, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := ch.exclusive(AreaConfig, func() error {
			return store.Reset(r.Context())
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
