package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	auth "github.com/mind-engage/mindengage-papergen/internal/auth/middleware"
	"github.com/mind-engage/mindengage-papergen/internal/paper"
	"github.com/mind-engage/mindengage-papergen/internal/rbac"
	"github.com/mind-engage/mindengage-papergen/internal/storage"
)

// Deps is everything the router needs. DB and Blobs may be nil; a nil
// Checker uses the default role permissions.
type Deps struct {
	Auth        *auth.AuthService
	Checker     *rbac.Checker
	Credentials auth.Credentials
	Subjects    storage.SubjectStore
	Papers      *paper.Service
	Blobs       storage.BlobStore
	DB          *sql.DB
	CORSOrigins []string
	Timeout     time.Duration
	Log         *zap.SugaredLogger
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	chk := d.Checker
	if chk == nil {
		chk = rbac.NewChecker(nil)
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(d.Auth, d.Credentials))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.DB.PingContext(ctx); err != nil {
				http.Error(w, "db unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		pr.With(chk.Require("subject:view")).
			Get("/subjects", ListSubjectsHandler(d.Subjects, log))
		pr.With(chk.Require("subject:write")).
			Put("/subjects", SaveSubjectsHandler(d.Subjects, log))
		pr.With(chk.Require("subject:write")).
			Post("/subjects", PutSubjectHandler(d.Subjects, log))
		pr.With(chk.Require("subject:write")).
			Delete("/subjects/{id}", DeleteSubjectHandler(d.Subjects, log))

		pr.With(chk.Require("paper:generate")).
			Post("/papers", GeneratePaperHandler(d.Papers, log))
		pr.With(chk.Require("paper:view")).
			Get("/papers", ListPapersHandler(d.Papers))
		pr.Route("/papers/{id}", func(p chi.Router) {
			p.With(chk.Require("paper:view")).Get("/", GetPaperHandler(d.Papers, log))
			p.With(chk.Require("paper:delete")).Delete("/", DeletePaperHandler(d.Papers))
			p.With(chk.Require("paper:view")).Get("/ordered", OrderedQuestionsHandler(d.Papers, log))
			p.With(chk.Require("paper:view")).Get("/search", SearchQuestionsHandler(d.Papers, log))
			p.With(chk.Require("paper:view")).Get("/topics", RelatedTopicsHandler(d.Papers, log))
			p.With(chk.RequireAny("paper:view", "paper:download")).
				Get("/download", DownloadPaperHandler(d.Papers, log))
			p.With(chk.RequireAll("paper:view", "paper:export")).Post("/export", ExportPaperHandler(d.Papers, log))
		})

		if d.Blobs != nil {
			pr.With(chk.Require("paper:view")).Route("/blobs", func(br chi.Router) {
				MountBlobs(br, d.Blobs, log)
			})
		}
	})

	return r
}
