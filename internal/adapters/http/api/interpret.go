package api

import (
	"encoding/json"
	"net/http"

	service "github.com/okian/carta/internal/app"
	"github.com/okian/carta/internal/domain/model"
)

// maxBodyBytes bounds request bodies; charts are a few kilobytes.
const maxBodyBytes = 1 << 20

// interpretRequest mirrors the OpenAPI schema for POST /interpretar.
type interpretRequest struct {
	Chart     *model.Chart      `json:"carta_natal" validate:"required"`
	Gender    string            `json:"genero" validate:"omitempty,max=32"`
	Type      string            `json:"tipo" validate:"omitempty,oneof=tropical draco draconica"`
	Variables map[string]string `json:"variables,omitempty"`
}

// InterpretHandler handles chart interpretation requests.
type InterpretHandler struct {
	deps Dependencies
}

// NewInterpretHandler creates a new interpret handler.
func NewInterpretHandler(deps Dependencies) *InterpretHandler {
	return &InterpretHandler{deps: deps}
}

// HandleInterpret handles POST /interpretar requests.
func (h *InterpretHandler) HandleInterpret(w http.ResponseWriter, r *http.Request) {
	const op = "api.interpret"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req interpretRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	ct, _ := model.ParseChartType(req.Type)

	report, err := h.deps.Interpret(r.Context(), service.Request{
		Chart:     *req.Chart,
		ChartType: ct,
		Gender:    req.Gender,
		Variables: req.Variables,
	})
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
