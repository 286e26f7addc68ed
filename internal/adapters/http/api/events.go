package api

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/internal/domain/types"
)

// eventsRequest mirrors the OpenAPI schema for POST /interpretar-eventos.
// One request carries at most 500 events.
type eventsRequest struct {
	Events    []model.CalendarEvent `json:"eventos" validate:"required,max=500,dive"`
	Variables map[string]string     `json:"variables,omitempty"`
}

type eventsResponse struct {
	Results        []types.CalendarResult `json:"interpretaciones"`
	ElapsedSeconds float64                `json:"tiempo_generacion"`
}

// EventsHandler handles calendar event requests.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleInterpretEvents handles POST /interpretar-eventos requests.
func (h *EventsHandler) HandleInterpretEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.interpret_events"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req eventsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	start := time.Now()
	results, err := h.deps.InterpretEvents(r.Context(), req.Events, req.Variables)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, eventsResponse{
		Results:        results,
		ElapsedSeconds: math.Round(time.Since(start).Seconds()*100) / 100,
	})
}
