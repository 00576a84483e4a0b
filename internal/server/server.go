package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	website "github.com/unobits/website"
	"github.com/unobits/website/internal/client"
	"github.com/unobits/website/internal/contact"
	"github.com/unobits/website/internal/logger"
	"github.com/unobits/website/internal/server/handlers"
	"github.com/unobits/website/internal/site"
	"github.com/unobits/website/web"
)

type Server struct {
	router      *chi.Mux
	config      *website.ServerEnvironment
	corsConfigs *website.CORSConfigs
	logger      *slog.Logger
	handlers    *handlers.HandlerService
}

// NewServer creates the website server.
// apiClient sends requests to the application backend, store receives the contact form submissions.
func NewServer(cfg *website.ServerEnvironment, corsConfigs *website.CORSConfigs, renderer *site.Renderer, apiClient *client.Client, validator *contact.Validator, store contact.Store, logger *slog.Logger) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		config:      cfg,
		corsConfigs: corsConfigs,
		logger:      logger,
		handlers: &handlers.HandlerService{
			Renderer:    renderer,
			ApiClient:   apiClient,
			Validator:   validator,
			Store:       store,
			Environment: cfg.Environment,
		},
	}

	s.setupMiddleware()
	s.registerRoutes()
	return s
}

// ServeHTTP makes the server usable as an http.Handler (e.g. in tests)
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware sets up the middleware that applies to all requests
// note that the request size limit and CORS are set on the routes that accept POST requests (see registerRoutes)
func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(SecurityHeaders(s.config.Environment))
	s.router.Use(chimiddleware.Timeout(60 * time.Second))
}

func (s *Server) registerRoutes() {
	h := s.handlers

	s.router.Get("/health/live", h.HandleLiveness)
	s.router.Get("/health/ready", h.HandleReadiness)

	// pages
	s.router.Group(func(r chi.Router) {
		r.Use(CORS(s.corsConfigs.Public))

		r.Handle("/static/*", staticHandler())

		r.Get("/", h.HandleHome)
		r.Get("/contact", h.HandleContact)
		r.Get("/help", h.HandleHelp)
		r.Get("/help/{slug}", h.HandleHelpArticle)

		// workspace links are handled by the application
		r.Get("/o/{org}", h.HandleAppRedirect)
		r.Get("/o/{org}/*", h.HandleAppRedirect)
	})

	// form posts and the endpoints used by browser code
	s.router.Group(func(r chi.Router) {
		r.Use(CORS(s.corsConfigs.Protected))
		r.Use(RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
		r.Use(RequestSizeLimit(s.config.MaxAPIRequestSize))

		r.Post("/contact", h.HandleContactPost)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.HandleLoginPost)
			r.Post("/signup", h.HandleSignupPost)
			r.Post("/logout", h.HandleLogoutPost)
			r.Get("/session", h.HandleSession)
		})
	})

	s.router.NotFound(h.HandleNotFound)
}

func staticHandler() http.Handler {
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		// the static directory is embedded at build time
		panic(fmt.Sprintf("static assets not embedded: %v", err))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(static)))
}

// Start runs the server until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("website listening", slog.String("address", addr), slog.String("environment", s.config.Environment))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down website server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), website.ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
