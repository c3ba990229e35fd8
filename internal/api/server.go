package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dgallion1/stackadvisor/internal/advisor"
	"github.com/dgallion1/stackadvisor/internal/config"
	"github.com/dgallion1/stackadvisor/internal/flowtree"
	"github.com/dgallion1/stackadvisor/internal/store"
)

// Server is the HTTP API around the decision tree and the recommendation
// engine. The tree is immutable after startup, so handlers share it
// without locking.
type Server struct {
	router chi.Router
	tree   *flowtree.Tree
	engine *advisor.Engine
	stats  *advisor.EvalStats
	store  *store.Store
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(tree *flowtree.Tree, engine *advisor.Engine, st *store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		tree:   tree,
		engine: engine,
		stats:  advisor.NewEvalStats(cfg.StatsWindow),
		store:  st,
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	// Read-only questionnaire surface.
	r.Get("/health", s.handleHealth)
	r.Get("/tree", s.handleTree)
	r.Get("/phases", s.handlePhases)
	r.Get("/questions/{phase}", s.handleQuestions)
	r.Get("/api/stats/evaluations", s.handleEvalStats)

	// Mutating endpoints, optionally behind an API key.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/sessions", s.handleSaveSession)
		r.Get("/sessions/{sessionID}", s.handleGetSession)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
