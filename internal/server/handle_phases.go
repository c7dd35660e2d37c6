package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/alfred0/internal/catalog"
)

type MovePhaseRequest struct {
	Direction catalog.Direction `json:"direction"`
}

func handleListPhases(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("active") == "true" {
			writeJSON(w, http.StatusOK, cat.ActivePhases())
			return
		}
		writeJSON(w, http.StatusOK, cat.Phases())
	}
}

func handleListActivePhases(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.ActivePhases())
	}
}

func handleGetPhase(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phase, err := cat.Phase(chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, phase)
	}
}

func handleAddPhase(cat *catalog.Catalog, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req catalog.NewPhase
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var phase catalog.Phase
		err := ch.apply(r.Context(), AreaPhases, func() (err error) {
			phase, err = cat.AddPhase(req)
			return err
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, phase)
	}
}

func handleUpdatePhase(cat *catalog.Catalog, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req catalog.PhaseUpdate
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var phase catalog.Phase
		err := ch.apply(r.Context(), AreaPhases, func() (err error) {
			phase, err = cat.UpdatePhase(chi.URLParam(r, "id"), req)
			return err
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, phase)
	}
}

func handleDeletePhase(cat *catalog.Catalog, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := ch.apply(r.Context(), AreaPhases, func() error {
			return cat.DeletePhase(chi.URLParam(r, "id"))
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// handleMovePhase answers with the reordered catalog.
func handleMovePhase(cat *catalog.Catalog, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MovePhaseRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := ch.apply(r.Context(), AreaPhases, func() error {
			return cat.MovePhase(chi.URLParam(r, "id"), req.Direction)
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, cat.Phases())
	}
}

func handleAddQuestion(cat *catalog.Catalog, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req catalog.NewQuestion
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var q catalog.Question
		err := ch.apply(r.Context(), AreaPhases, func() (err error) {
			q, err = cat.AddQuestion(chi.URLParam(r, "id"), req)
			return err
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, q)
	}
}

func handleUpdateQuestion(cat *catalog.Catalog, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req catalog.QuestionUpdate
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var q catalog.Question
		err := ch.apply(r.Context(), AreaPhases, func() (err error) {
			q, err = cat.UpdateQuestion(chi.URLParam(r, "id"), chi.URLParam(r, "questionID"), req)
			return err
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, q)
	}
}

func handleDeleteQuestion(cat *catalog.Catalog, ch *committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := ch.apply(r.Context(), AreaPhases, func() error {
			return cat.DeleteQuestion(chi.URLParam(r, "id"), chi.URLParam(r, "questionID"))
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
