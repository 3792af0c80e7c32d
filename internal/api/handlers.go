package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/yourusername/parlay-engine/internal/backtest"
	"github.com/yourusername/parlay-engine/internal/models"
	"github.com/yourusername/parlay-engine/internal/strategy"
)

const (
	defaultLatestLimit = 10
	maxLatestLimit     = 100
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// BacktestRequest is the body of POST /api/v1/backtests. Dates are YYYY-MM-DD and,
// like the other fields, fall back to the configured defaults when empty.
type BacktestRequest struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Versions  []string `json:"versions"`
	Shape     string   `json:"shape"`
}

// StrategyResponse describes one registered strategy version
type StrategyResponse struct {
	Name        string                 `json:"name"`
	Version     string                 `json:"version"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// ShapeResponse describes one registered slot shape
type ShapeResponse struct {
	Name  string   `json:"name"`
	Slots []string `json:"slots"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.cfg.ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.cfg.Version,
	})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: s.cfg.ServiceName})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if !s.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = "ok"
	}

	if s.cfg.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := s.cfg.DB.Ping(ctx); err != nil {
			allHealthy = false
			checks["database"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["database"] = "ok"
		}
	}

	response := ReadyResponse{
		Status:   "ok",
		Service:  s.cfg.ServiceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}
	status := http.StatusOK
	if !allHealthy {
		response.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, response)
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	names := s.cfg.Registry.Names()
	out := make([]StrategyResponse, 0, len(names))
	for _, name := range names {
		cfg, err := s.cfg.Registry.Resolve(name)
		if err != nil {
			continue
		}
		out = append(out, StrategyResponse{
			Name:        cfg.Name(),
			Version:     cfg.Version(),
			Description: cfg.Description(),
			Parameters:  cfg.Parameters(),
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListShapes(w http.ResponseWriter, r *http.Request) {
	names := s.cfg.Registry.ShapeNames()
	out := make([]ShapeResponse, 0, len(names))
	for _, name := range names {
		slots, err := s.cfg.Registry.Shape(name)
		if err != nil {
			continue
		}
		labels := make([]string, len(slots))
		for i, slot := range slots {
			labels[i] = string(slot)
		}
		out = append(out, ShapeResponse{Name: name, Slots: labels})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRunBacktest(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Engine == nil {
		s.writeError(w, http.StatusServiceUnavailable, "backtest engine is not configured")
		return
	}

	var body BacktestRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	req, err := body.toRequest()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.cfg.Engine.Run(r.Context(), req)
	if err != nil {
		status := statusForRunError(err)
		s.logger.WithError(err).WithField("status", status).Warn("Backtest request failed")
		s.writeError(w, status, err.Error())
		return
	}

	if s.cfg.Persist && s.cfg.Runs != nil && len(report.Runs) > 0 {
		if err := backtest.ExportToDatabase(r.Context(), s.cfg.Runs, report); err != nil {
			s.logger.WithError(err).Error("Failed to persist backtest runs")
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleLatestBacktests(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Runs == nil {
		s.writeError(w, http.StatusServiceUnavailable, "backtest run storage is not configured")
		return
	}

	limit := defaultLatestLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLatestLimit)
	}

	runs, err := s.cfg.Runs.GetLatest(r.Context(), r.URL.Query().Get("version"), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []*models.BacktestRun{}
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetBacktest(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Runs == nil {
		s.writeError(w, http.StatusServiceUnavailable, "backtest run storage is not configured")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid backtest run id")
		return
	}

	run, err := s.cfg.Runs.GetByID(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "backtest run not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (b BacktestRequest) toRequest() (backtest.Request, error) {
	req := backtest.Request{Versions: b.Versions, Shape: b.Shape}
	var err error
	if b.StartDate != "" {
		if req.StartDate, err = time.Parse(models.DateLayout, b.StartDate); err != nil {
			return backtest.Request{}, fmt.Errorf("start_date must be YYYY-MM-DD")
		}
	}
	if b.EndDate != "" {
		if req.EndDate, err = time.Parse(models.DateLayout, b.EndDate); err != nil {
			return backtest.Request{}, fmt.Errorf("end_date must be YYYY-MM-DD")
		}
	}
	return req, nil
}

// statusForRunError maps configuration errors to 400 and store failures to 502
func statusForRunError(err error) int {
	switch {
	case errors.Is(err, strategy.ErrUnknownVersion),
		errors.Is(err, strategy.ErrUnknownShape),
		errors.Is(err, strategy.ErrEmptySlots),
		errors.Is(err, strategy.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// writeJSON buffers the encoded body; an encoding failure is logged and answered with a 500.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to encode response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.WithError(err).Debug("Failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}
