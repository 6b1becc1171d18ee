// Package http implements the REST API for the Boostly credit ledger. The
// router is chi; handlers translate HTTP into application commands and
// queries, and domain errors back into status codes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/boostly/boostly-ledger/internal/application/command"
	"github.com/boostly/boostly-ledger/internal/application/query"
	"github.com/boostly/boostly-ledger/internal/domain/recognition"
	"github.com/boostly/boostly-ledger/internal/domain/redemption"
	"github.com/boostly/boostly-ledger/internal/domain/shared"
	"github.com/boostly/boostly-ledger/internal/domain/student"
	"github.com/boostly/boostly-ledger/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SERVER CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains HTTP server configuration.
type Config struct {
	// Host - address to bind (default: "0.0.0.0").
	Host string

	// Port - port to listen on (default: 8080).
	Port int

	// ReadTimeout - maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout - maximum duration for writing the response.
	WriteTimeout time.Duration

	// IdleTimeout - maximum duration for idle connections.
	IdleTimeout time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Address returns the server address string.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// HealthChecker reports readiness of a backing service.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Dependencies contains all handlers and services the HTTP layer needs.
type Dependencies struct {
	// Command handlers (CQRS write side)
	CreateStudent     *command.CreateStudentHandler
	CreateRecognition *command.CreateRecognitionHandler
	CreateEndorsement *command.CreateEndorsementHandler
	CreateRedemption  *command.CreateRedemptionHandler
	ResetCredits      *command.ResetCreditsHandler

	// Query handlers (CQRS read side)
	GetStudent             *query.GetStudentHandler
	ListStudents           *query.ListStudentsHandler
	GetRecognition         *query.GetRecognitionHandler
	ListRecognitions       *query.ListRecognitionsHandler
	GetEndorsement         *query.GetEndorsementHandler
	GetRedemption          *query.GetRedemptionHandler
	ListStudentRedemptions *query.ListStudentRedemptionsHandler
	GetLeaderboard         *query.GetLeaderboardHandler

	// Health check targets; nil entries are skipped.
	Postgres HealthChecker
	Redis    HealthChecker

	Logger *logger.Logger
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER
// ══════════════════════════════════════════════════════════════════════════════

// Server represents the HTTP server.
type Server struct {
	config     Config
	deps       Dependencies
	httpServer *http.Server
	logger     *logger.Logger

	mu        sync.RWMutex
	running   bool
	startedAt time.Time
}

// NewServer creates a new HTTP server with the given configuration and
// dependencies.
func NewServer(config Config, deps Dependencies) *Server {
	s := &Server{
		config: config,
		deps:   deps,
		logger: deps.Logger,
	}

	if s.logger == nil {
		s.logger = logger.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(s.loggingMiddleware)
	router.Use(s.recoveryMiddleware)

	s.setupRoutes(router)

	s.httpServer = &http.Server{
		Addr:         config.Address(),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(r chi.Router) {
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/students", func(r chi.Router) {
			r.Post("/", s.handleCreateStudent)
			r.Get("/", s.handleListStudents)
			r.Get("/{id}", s.handleGetStudent)
			r.Get("/{id}/redemptions", s.handleListStudentRedemptions)
		})

		r.Route("/recognitions", func(r chi.Router) {
			r.Post("/", s.handleCreateRecognition)
			r.Get("/", s.handleListRecognitions)
			r.Get("/{id}", s.handleGetRecognition)
			r.Post("/{id}/endorsements", s.handleCreateEndorsement)
		})

		r.Get("/endorsements/{id}", s.handleGetEndorsement)

		r.Route("/redemptions", func(r chi.Router) {
			r.Post("/", s.handleCreateRedemption)
			r.Get("/{id}", s.handleGetRedemption)
		})

		r.Get("/leaderboard", s.handleGetLeaderboard)
		r.Post("/credits/reset", s.handleResetCredits)
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// MIDDLEWARE
// ══════════════════════════════════════════════════════════════════════════════

// loggingMiddleware logs all HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

// recoveryMiddleware recovers from panics and returns 500.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Str("request_id", middleware.GetReqID(r.Context())).
					Msg("panic recovered")
				s.writeError(w, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER LIFECYCLE
// ══════════════════════════════════════════════════════════════════════════════

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.startedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info().Str("address", s.config.Address()).Msg("starting HTTP server")

	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info().Msg("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// ══════════════════════════════════════════════════════════════════════════════
// RESPONSE HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// apiError is the wire shape of a failed request.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Error: apiError{Code: code, Message: message}})
}

// writeDomainError maps a domain error onto an HTTP status and error code.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	status, code := mapDomainError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("unhandled error")
		s.writeError(w, status, code, "an unexpected error occurred")
		return
	}
	s.writeError(w, status, code, err.Error())
}

// mapDomainError classifies domain failures. Rule violations that depend on
// ledger state (balance, limit) are 422; malformed input is 400.
func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, student.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity, "insufficient_balance"
	case errors.Is(err, student.ErrSendingLimitExceeded):
		return http.StatusUnprocessableEntity, "sending_limit_exceeded"
	case errors.Is(err, student.ErrDuplicateEmail):
		return http.StatusConflict, "duplicate_email"
	case errors.Is(err, recognition.ErrDuplicateEndorsement):
		return http.StatusConflict, "duplicate_endorsement"
	case errors.Is(err, student.ErrStudentNotFound),
		errors.Is(err, recognition.ErrRecognitionNotFound),
		errors.Is(err, recognition.ErrEndorsementNotFound),
		errors.Is(err, redemption.ErrRedemptionNotFound),
		shared.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case shared.IsAlreadyExists(err):
		return http.StatusConflict, "already_exists"
	case shared.IsValidation(err):
		return http.StatusBadRequest, "validation_error"
	case shared.IsBusinessRule(err):
		return http.StatusUnprocessableEntity, "business_rule_violation"
	case shared.IsConflict(err):
		return http.StatusServiceUnavailable, "concurrent_conflict"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
