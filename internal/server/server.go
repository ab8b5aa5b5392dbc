package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/userdesk/apiserver/config"
	"github.com/userdesk/apiserver/internal/auth"
	"github.com/userdesk/apiserver/internal/db"
	"github.com/userdesk/apiserver/internal/handlers"
	"github.com/userdesk/apiserver/internal/services"
	"github.com/userdesk/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server: opens the database, provisions the initial
// admin if none exists, and mounts the route groups.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		_ = dbConn.Close()
		return nil, errors.New("JWT_SECRET is required")
	}

	userRepo := store.NewUserRepository(dbConn)
	userService := services.NewUserService(userRepo)
	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	if err := userService.EnsureAdmin(ctx, cfg.Auth); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("admin bootstrap failed: %w", err)
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, tokenService)
	})
	router.Route("/admin", func(r chi.Router) {
		handlers.AdminRouter(r, userService, tokenService)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
