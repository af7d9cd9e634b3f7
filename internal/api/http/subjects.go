package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
	"github.com/mind-engage/mindengage-papergen/internal/storage"
)

// GET /subjects
func ListSubjectsHandler(store storage.SubjectStore, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjects, err := store.ListSubjects(r.Context())
		if err != nil {
			respondErr(w, log, err)
			return
		}
		respondJSON(w, http.StatusOK, subjects)
	}
}

// PUT /subjects replaces the whole list.
func SaveSubjectsHandler(store storage.SubjectStore, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in []exam.Subject
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		out, err := store.SaveSubjects(r.Context(), in)
		if err != nil {
			respondErr(w, log, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// POST /subjects
func PutSubjectHandler(store storage.SubjectStore, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in exam.Subject
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		out, err := store.PutSubject(r.Context(), in)
		if err != nil {
			respondErr(w, log, err)
			return
		}
		respondJSON(w, http.StatusCreated, out)
	}
}

// DELETE /subjects/{id}
func DeleteSubjectHandler(store storage.SubjectStore, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteSubject(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondErr(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
