package api

import (
	"net/http"

	"github.com/okian/carta/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is reported by /healthz. It is overridden at link time.
var Version = "dev"

// SizesProvider reports knowledge base entry and title counts.
type SizesProvider interface {
	KnowledgeSizes() map[string]int
}

type healthResponse struct {
	Status  string         `json:"status"`
	Service string         `json:"service"`
	Version string         `json:"version"`
	Sizes   map[string]int `json:"sizes"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	sizes SizesProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(sizes SizesProvider) *HealthHandler {
	return &HealthHandler{sizes: sizes}
}

// HandleHealth handles GET /healthz requests.
// The status is "degraded" while no knowledge base entries are loaded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sizes := h.sizes.KnowledgeSizes()
	status := "degraded"
	for _, n := range sizes {
		if n > 0 {
			status = "ok"
			break
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  status,
		Service: "carta",
		Version: Version,
		Sizes:   sizes,
	})
}

// NewMetricsHandler serves the custom Prometheus registry.
func NewMetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
