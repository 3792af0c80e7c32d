// Package api exposes the backtest engine, the strategy registry and the health probes
// over HTTP.
package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/parlay-engine/internal/backtest"
	"github.com/yourusername/parlay-engine/internal/metrics"
	"github.com/yourusername/parlay-engine/internal/repository"
	"github.com/yourusername/parlay-engine/internal/strategy"
)

// DatabasePinger defines the interface for checking database connectivity.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// Backtester runs backtest requests
type Backtester interface {
	Run(ctx context.Context, req backtest.Request) (*backtest.Report, error)
}

// Config holds the configuration for the API server.
type Config struct {
	ServiceName    string
	Version        string
	Port           int
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	MetricsPath    string
	Persist        bool
	Logger         *logrus.Logger
	DB             DatabasePinger
	Engine         Backtester
	Registry       *strategy.Registry
	Runs           repository.BacktestRunRepository
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	router chi.Router
	server *http.Server
	logger *logrus.Logger
	mu     sync.RWMutex
	ready  bool

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewServer creates a new API server with its routes mounted.
func NewServer(cfg Config) *Server {
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Registry == nil {
		cfg.Registry = strategy.NewRegistry()
	}

	s := &Server{cfg: cfg, logger: cfg.Logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.cfg.RequestTimeout))

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/live", s.handleLive)
	r.Get("/ready", s.handleReady)
	if s.cfg.MetricsPath != "" {
		r.Handle(s.cfg.MetricsPath, metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/strategies", s.handleListStrategies)
		r.Get("/shapes", s.handleListShapes)

		r.Post("/backtests", s.handleRunBacktest)
		r.Get("/backtests", s.handleLatestBacktests)
		r.Get("/backtests/{id}", s.handleGetBacktest)
	})

	return r
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start starts the server in the background and shuts it down when ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         ":" + strconv.Itoa(s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.WithFields(logrus.Fields{
			"port":    s.cfg.Port,
			"service": s.cfg.ServiceName,
		}).Info("API server starting")

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("API server error")
		}
	}()

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(); err != nil {
			s.logger.WithError(err).Warn("API server shutdown failed")
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the server. Only the first call has an effect.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	s.shutdownOnce.Do(func() {
		s.logger.Info("API server shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.shutdownErr = s.server.Shutdown(ctx)
	})
	return s.shutdownErr
}

// requestLogger logs every request and records it in the HTTP metrics under its route
// pattern.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)

		metrics.RecordHTTPRequest(route, r.Method, strconv.Itoa(status), elapsed.Seconds())
		s.logger.WithFields(logrus.Fields{
			"request_id": chimiddleware.GetReqID(r.Context()),
			"method":     r.Method,
			"route":      route,
			"status":     status,
			"duration":   elapsed.String(),
		}).Debug("Request served")
	})
}
