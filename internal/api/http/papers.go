package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
	"github.com/mind-engage/mindengage-papergen/internal/paper"
)

// POST /papers. Difficulty defaults to medium and pattern to the
// three-section layout.
func GeneratePaperHandler(svc *paper.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg exam.PaperConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if cfg.Subject == "" || cfg.Grade <= 0 {
			http.Error(w, "subject and grade required", http.StatusBadRequest)
			return
		}
		p, err := svc.Generate(r.Context(), cfg)
		if err != nil {
			respondErr(w, log, err)
			return
		}
		respondJSON(w, http.StatusCreated, p)
	}
}

// GET /papers
func ListPapersHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type item struct {
			ID         string          `json:"id"`
			Subject    string          `json:"subject"`
			Grade      int             `json:"grade"`
			Difficulty exam.Difficulty `json:"difficulty"`
			Questions  int             `json:"questions"`
			CreatedAt  string          `json:"created_at"`
		}
		out := []item{}
		for _, p := range svc.List() {
			out = append(out, item{
				ID:         p.ID,
				Subject:    p.Config.Subject,
				Grade:      p.Config.Grade,
				Difficulty: p.Config.Difficulty,
				Questions:  len(p.Questions),
				CreatedAt:  p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// GET /papers/{id}
func GetPaperHandler(svc *paper.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(chi.URLParam(r, "id"))
		if err != nil {
			respondErr(w, log, err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// DELETE /papers/{id}
func DeletePaperHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.Delete(chi.URLParam(r, "id")) {
			http.Error(w, paper.ErrPaperNotFound.Error(), http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /papers/{id}/ordered lists questions easiest first.
func OrderedQuestionsHandler(svc *paper.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := svc.Ordered(chi.URLParam(r, "id"))
		if err != nil {
			respondErr(w, log, err)
			return
		}
		respondJSON(w, http.StatusOK, qs)
	}
}

// GET /papers/{id}/search?topic=
func SearchQuestionsHandler(svc *paper.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := svc.Search(chi.URLParam(r, "id"), r.URL.Query().Get("topic"))
		if err != nil {
			respondErr(w, log, err)
			return
		}
		respondJSON(w, http.StatusOK, qs)
	}
}

// GET /papers/{id}/topics?prefix=
func RelatedTopicsHandler(svc *paper.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics, err := svc.Related(chi.URLParam(r, "id"), r.URL.Query().Get("prefix"))
		if err != nil {
			respondErr(w, log, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"topics": topics})
	}
}

// GET /papers/{id}/download returns the plain-text paper as an attachment.
func DownloadPaperHandler(svc *paper.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(chi.URLParam(r, "id"))
		if err != nil {
			respondErr(w, log, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", paper.FileName(p.Config)))
		_, _ = w.Write([]byte(paper.Render(p)))
	}
}

// POST /papers/{id}/export stores the rendered paper in the blob store.
func ExportPaperHandler(svc *paper.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := svc.Export(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondErr(w, log, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]string{"key": key})
	}
}
