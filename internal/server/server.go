// Package server exposes the portfolio store over a JSON REST API.
package server

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/aTrapDeer/portfolio/internal/store"
	"github.com/aTrapDeer/portfolio/internal/util"
)

const defaultMaxBodyBytes = 1 << 20

// Revalidator is told when portfolio content changes.
type Revalidator interface {
	Notify(reason string)
}

type noopRevalidator struct{}

func (noopRevalidator) Notify(string) {}

// Config wires required dependencies for the HTTP server.
type Config struct {
	Store       store.Store
	Revalidator Revalidator
	// AdminRoutes registers the update/delete and contact inbox routes.
	// They are unauthenticated, so keep them off on a public deployment.
	AdminRoutes    bool
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// Server exposes HTTP endpoints for the portfolio site.
type Server struct {
	store       store.Store
	revalidator Revalidator
	mux         *http.ServeMux
	cors        *cors.Cors
	maxBody     int64
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	rv := cfg.Revalidator
	if rv == nil {
		rv = noopRevalidator{}
	}
	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o != "" {
			origins = append(origins, o)
		}
	}
	s := &Server{
		store:       cfg.Store,
		revalidator: rv,
		mux:         http.NewServeMux(),
		maxBody:     maxBody,
		cors: cors.New(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{util.RequestIDHeader},
		}),
	}
	s.routes(cfg.AdminRoutes)
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog(util.WithRecover(writePanic, s.cors.Handler(s.mux))))
}

func (s *Server) routes(admin bool) {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("POST /api/contact", s.handleCreateContactMessage)

	s.mux.Handle("GET /api/skills", list(s, s.store.ListSkills))
	s.mux.Handle("GET /api/skills/{id}", getOne(s, kindSkill, s.store.GetSkill))
	s.mux.Handle("POST /api/skills", create(s, kindSkill, s.store.CreateSkill))

	s.mux.Handle("GET /api/projects", list(s, s.store.ListProjects))
	s.mux.HandleFunc("GET /api/projects/category/{category}", s.handleProjectsByCategory)
	s.mux.Handle("GET /api/projects/{id}", getOne(s, kindProject, s.store.GetProject))
	s.mux.Handle("POST /api/projects", create(s, kindProject, s.store.CreateProject))

	s.mux.Handle("GET /api/milestones", list(s, s.store.ListMilestones))
	s.mux.Handle("GET /api/milestones/{id}", getOne(s, kindMilestone, s.store.GetMilestone))
	s.mux.Handle("POST /api/milestones", create(s, kindMilestone, s.store.CreateMilestone))

	if !admin {
		return
	}
	s.mux.Handle("GET /api/contact", list(s, s.store.ListContactMessages))
	s.mux.Handle("GET /api/contact/{id}", getOne(s, kindContact, s.store.GetContactMessage))
	s.mux.HandleFunc("PATCH /api/contact/{id}/read", s.handleMarkContactMessageRead)

	s.mux.Handle("PATCH /api/skills/{id}", update(s, kindSkill, s.store.UpdateSkill))
	s.mux.Handle("DELETE /api/skills/{id}", remove(s, kindSkill, s.store.DeleteSkill))
	s.mux.Handle("PATCH /api/projects/{id}", update(s, kindProject, s.store.UpdateProject))
	s.mux.Handle("DELETE /api/projects/{id}", remove(s, kindProject, s.store.DeleteProject))
	s.mux.Handle("PATCH /api/milestones/{id}", update(s, kindMilestone, s.store.UpdateMilestone))
	s.mux.Handle("DELETE /api/milestones/{id}", remove(s, kindMilestone, s.store.DeleteMilestone))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProjectsByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	projects, err := s.store.ListProjectsByCategory(r.Context(), category)
	if err != nil {
		internalError(w, r, "list projects by category", err)
		return
	}
	writeData(w, http.StatusOK, projects)
}
