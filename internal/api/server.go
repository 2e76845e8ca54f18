package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babysteps/babysteps/internal/auth"
	"github.com/babysteps/babysteps/internal/knowledge"
	"github.com/babysteps/babysteps/internal/store"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:8080"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	// This prevents Slowloris attacks (CWE-400).
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout = 60 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Generator produces text for the LLM-backed endpoints.
// *assistant.Client implements it in production.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger      *slog.Logger
	Store       *store.Store       // Required
	Matcher     *knowledge.Matcher // Required
	Tokens      *auth.TokenIssuer  // Required
	Assistant   Generator          // Optional: nil makes LLM endpoints answer with conservative fallbacks
	Pool        *pgxpool.Pool      // Optional: nil disables DB ping in /ready
	CORSOrigins []string           // Allowed origins for CORS
	TrustProxy  bool               // Trust X-Real-IP/X-Forwarded-For headers
	RateBurst   int                // Rate limiter burst size per IP (0 = default 60)
	RatePerSec  float64            // Rate limiter refill rate per IP (0 = default 1/sec)
}

// Server is the JSON API HTTP server.
type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	store     *store.Store
	matcher   *knowledge.Matcher
	tokens    *auth.TokenIssuer
	assistant Generator
}

// NewServer creates a new API server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Matcher == nil {
		return nil, errors.New("knowledge matcher is required")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("token issuer is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		logger:    logger,
		store:     cfg.Store,
		matcher:   cfg.Matcher,
		tokens:    cfg.Tokens,
		assistant: cfg.Assistant,
	}

	mux := http.NewServeMux()

	// Auth (unauthenticated)
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("GET /api/auth/verify-email/{token}", s.verifyEmail)
	mux.HandleFunc("POST /api/auth/resend-verification", s.resendVerification)
	mux.HandleFunc("POST /api/auth/request-password-reset", s.requestPasswordReset)
	mux.HandleFunc("POST /api/auth/reset-password", s.resetPassword)

	// Babies
	mux.HandleFunc("POST /api/babies", s.authenticated(s.createBaby))
	mux.HandleFunc("GET /api/babies", s.authenticated(s.listBabies))
	mux.HandleFunc("PUT /api/babies/{id}", s.authenticated(s.updateBaby))
	mux.HandleFunc("DELETE /api/babies/{id}", s.authenticated(s.deleteBaby))

	// Activity tracking
	mux.HandleFunc("POST /api/feedings", s.authenticated(s.createFeeding))
	mux.HandleFunc("GET /api/feedings", s.authenticated(s.listFeedings))
	mux.HandleFunc("DELETE /api/feedings/{id}", s.authenticated(s.deleteFeeding))
	mux.HandleFunc("POST /api/diapers", s.authenticated(s.createDiaper))
	mux.HandleFunc("GET /api/diapers", s.authenticated(s.listDiapers))
	mux.HandleFunc("DELETE /api/diapers/{id}", s.authenticated(s.deleteDiaper))
	mux.HandleFunc("POST /api/sleep", s.authenticated(s.startSleep))
	mux.HandleFunc("GET /api/sleep", s.authenticated(s.listSleep))
	mux.HandleFunc("PATCH /api/sleep/{id}/end", s.authenticated(s.endSleep))
	mux.HandleFunc("DELETE /api/sleep/{id}", s.authenticated(s.deleteSleep))
	mux.HandleFunc("POST /api/pumping", s.authenticated(s.createPumping))
	mux.HandleFunc("GET /api/pumping", s.authenticated(s.listPumpings))
	mux.HandleFunc("DELETE /api/pumping/{id}", s.authenticated(s.deletePumping))
	mux.HandleFunc("POST /api/measurements", s.authenticated(s.createMeasurement))
	mux.HandleFunc("GET /api/measurements", s.authenticated(s.listMeasurements))
	mux.HandleFunc("DELETE /api/measurements/{id}", s.authenticated(s.deleteMeasurement))
	mux.HandleFunc("POST /api/milestones", s.authenticated(s.createMilestone))
	mux.HandleFunc("GET /api/milestones", s.authenticated(s.listMilestones))
	mux.HandleFunc("DELETE /api/milestones/{id}", s.authenticated(s.deleteMilestone))

	// Reminders
	mux.HandleFunc("POST /api/reminders", s.authenticated(s.createReminder))
	mux.HandleFunc("GET /api/reminders", s.authenticated(s.listReminders))
	mux.HandleFunc("PATCH /api/reminders/{id}", s.authenticated(s.updateReminder))
	mux.HandleFunc("PATCH /api/reminders/{id}/notified", s.authenticated(s.markReminderNotified))
	mux.HandleFunc("DELETE /api/reminders/{id}", s.authenticated(s.deleteReminder))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard/layout", s.authenticated(s.getDashboardLayout))
	mux.HandleFunc("PUT /api/dashboard/layout", s.authenticated(s.updateDashboardLayout))
	mux.HandleFunc("POST /api/dashboard/widgets", s.authenticated(s.addWidget))
	mux.HandleFunc("DELETE /api/dashboard/widgets/{id}", s.authenticated(s.removeWidget))
	mux.HandleFunc("GET /api/dashboard/available-widgets", s.authenticated(s.availableWidgets))
	mux.HandleFunc("GET /api/dashboard/{baby_id}", s.authenticated(s.dashboardSummary))

	// Knowledge-base matchers
	mux.HandleFunc("POST /api/food/research", s.authenticated(s.foodResearch))
	mux.HandleFunc("POST /api/research", s.authenticated(s.research))

	// LLM-backed
	mux.HandleFunc("POST /api/food/safety-check", s.authenticated(s.foodSafetyCheck))
	mux.HandleFunc("GET /api/food/safety-history", s.authenticated(s.foodSafetyHistory))
	mux.HandleFunc("POST /api/emergency/training", s.authenticated(s.emergencyTraining))
	mux.HandleFunc("POST /api/meals", s.authenticated(s.createMealPlan))
	mux.HandleFunc("GET /api/meals", s.authenticated(s.listMealPlans))
	mux.HandleFunc("POST /api/meals/search", s.authenticated(s.mealSearch))

	// Rate limiter: per-IP token bucket
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 1.0
	}
	rl := newIPLimiter(perSec, burst)

	// Build middleware stack (outermost first):
	//   Recovery → Logging → CORS → RateLimit → Routes
	// CORS must be before RateLimit so preflight OPTIONS gets proper CORS headers.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = recoveryMiddleware(logger)(handler)

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)
		handler.ServeHTTP(w, r)
	})

	// Top-level mux keeps health probes outside the middleware stack
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health)
	topMux.Handle("GET /ready", readiness(cfg.Pool))
	topMux.Handle("/", final)

	s.mux = topMux
	return s, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
