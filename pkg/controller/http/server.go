package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/usecase"
	"github.com/almalink/almalink/pkg/utils/errutil"
	"github.com/almalink/almalink/pkg/utils/logging"
	"github.com/almalink/almalink/pkg/utils/safe"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
)

type Server struct {
	router            *chi.Mux
	uc                *usecase.UseCases
	workspaceRegistry *model.WorkspaceRegistry
}

type Options func(*Server)

func WithWorkspaceRegistry(registry *model.WorkspaceRegistry) Options {
	return func(s *Server) {
		s.workspaceRegistry = registry
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	// Workspace list endpoint
	if s.workspaceRegistry != nil {
		r.Get("/api/workspaces", workspacesHandler(s.workspaceRegistry))
	}

	r.Route("/api/workspaces/{workspaceID}", func(r chi.Router) {
		r.Post("/matching", s.handleMatching)

		r.Route("/profiles", func(r chi.Router) {
			r.Put("/{userID}", s.handlePutProfile)
			r.Get("/{userID}", s.handleGetProfile)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// workspacesHandler returns a handler that serves the workspace list as JSON
func workspacesHandler(registry *model.WorkspaceRegistry) http.HandlerFunc {
	type workspaceResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	type response struct {
		Workspaces []workspaceResponse `json:"workspaces"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		workspaces := registry.Workspaces()
		resp := response{
			Workspaces: make([]workspaceResponse, len(workspaces)),
		}
		for i, ws := range workspaces {
			resp.Workspaces[i] = workspaceResponse{
				ID:   ws.ID,
				Name: ws.Name,
			}
		}

		data, err := json.Marshal(resp)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal workspaces response"), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		safe.Write(r.Context(), w, data)
	}
}
