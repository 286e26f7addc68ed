// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/carta/internal/app"
	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Interpret(ctx context.Context, req service.Request) (types.Report, error)
	InterpretEvents(ctx context.Context, events []model.CalendarEvent, vars map[string]string) ([]types.CalendarResult, error)

	// KnowledgeSizes reports loaded entry and title counts.
	KnowledgeSizes() map[string]int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	metricsHandler   http.Handler
	statsHandler     *StatsHandler
	interpretHandler *InterpretHandler
	eventsHandler    *EventsHandler
	corsOrigins      []string
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(deps),
		metricsHandler:   NewMetricsHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		interpretHandler: NewInterpretHandler(deps),
		eventsHandler:    NewEventsHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.metricsHandler)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/interpretar", MetricsMiddleware(s.interpretHandler.HandleInterpret, "interpretar"))
	mux.HandleFunc("/interpretar-eventos", MetricsMiddleware(s.eventsHandler.HandleInterpretEvents, "interpretar_eventos"))
}

// Handler wraps next with request ids and the configured CORS policy.
func (s *Server) Handler(next http.Handler) http.Handler {
	return RequestIDMiddleware(CORSMiddleware(s.corsOrigins)(next))
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

// writeServiceError translates service failures into API error kinds.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotStarted):
		err = WrapKind(op, ErrNotReady, err)
	case errors.Is(err, service.ErrInvalidChart):
		err = WrapKind(op, ErrBadRequest, err)
	default:
		err = WrapKind(op, ErrInternal, err)
	}
	status, code := classify(err)
	writeError(w, status, code, err)
}
