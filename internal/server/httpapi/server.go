// Package httpapi exposes the public JSON API: user registration/login and
// owner-scoped layout CRUD. Protected routes run the authentication gate
// before body validation, so a request that is both unauthenticated and
// malformed reports the authentication failure.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/neverlost-dev/neverlost-api/internal/logging"
	"github.com/neverlost-dev/neverlost-api/internal/server/config"
	"github.com/neverlost-dev/neverlost-api/internal/server/services"
)

type Server struct {
	address        string
	logger         logging.Logger
	users          *services.UserService
	layouts        *services.LayoutService
	jwtSecret      []byte
	requestTimeout time.Duration
}

func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, ls *services.LayoutService) *Server {
	return &Server{
		address:        cfg.EndpointAddrHTTP,
		logger:         l.With("module", "http_server"),
		users:          us,
		layouts:        ls,
		jwtSecret:      []byte(cfg.SecretKey),
		requestTimeout: cfg.RequestTimeout,
	}
}

// Router builds the route table. Exposed separately from Run so tests can
// drive the full handler chain through httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.withRequestTimeout)

	r.Get("/ping", s.handlePing)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		r.Route("/layouts", func(r chi.Router) {
			r.Use(s.authenticate)
			r.Post("/", s.handleCreateLayout)
			r.Get("/", s.handleListLayouts)
			r.Get("/{layoutID}", s.handleGetLayout)
			r.Put("/{layoutID}", s.handleUpdateLayout)
			r.Delete("/{layoutID}", s.handleDeleteLayout)
		})
	})

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.requestTimeout,
		WriteTimeout:      s.requestTimeout,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
