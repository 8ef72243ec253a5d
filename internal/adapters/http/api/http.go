// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/attendsync/internal/adapters/repository"
	service "github.com/okian/attendsync/internal/app"
	"github.com/okian/attendsync/internal/domain/attendance"
	"github.com/okian/attendsync/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	ReconcileDependencies
	RunsDependencies
}

// Run mirrors the read shape of a recorded reconciliation.
type Run = service.Run

// Server wires HTTP routes for the reconciliation API.
type Server struct {
	healthHandler    *HealthHandler
	reconcileHandler *ReconcileHandler
	runsHandler      *RunsHandler
	logger           logger.Logger
	maxBodyBytes     int64
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{logger: logger.Nop(), maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.reconcileHandler = NewReconcileHandler(deps, s.maxBodyBytes, s.logger)
	s.runsHandler = NewRunsHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", MetricsHandler())
	mux.HandleFunc("/reconcile", MetricsMiddleware(s.reconcileHandler.HandlePostReconcile, "reconcile"))
	mux.HandleFunc("/runs", MetricsMiddleware(s.runsHandler.HandleListRuns, "runs"))
	mux.HandleFunc("/runs/", MetricsMiddleware(s.runsHandler.HandleGetRun, "run"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// statusFor maps service errors onto HTTP status codes and error codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, attendance.ErrInvalidThreshold),
		errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrRunNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
