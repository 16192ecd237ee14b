package api

import (
	"context"
	"net/http"
	"time"

	"github.com/clinicdesk/clinic-scheduling/internal/storage"
)

// pinger is implemented by the store backends that can report reachability.
// The memory backend has nothing to probe and always reads ready.
type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store   storage.Store
	backend string
	env     string
	version string
}

func NewHealthHandler(store storage.Store, backend, env, version string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		backend: backend,
		env:     env,
		version: version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Env          string            `json:"env,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	resp := LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)
	status := "ok"

	if p, ok := h.store.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		err := p.Ping(ctx)
		cancel()
		if err != nil {
			deps[h.backend] = "down"
			status = "error"
		} else {
			deps[h.backend] = "ok"
		}
	} else {
		deps[h.backend] = "ok"
	}

	resp := ReadinessResponse{
		Status:       status,
		Version:      h.version,
		Env:          h.env,
		Dependencies: deps,
	}

	httpStatus := http.StatusOK
	if status == "error" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, resp)
}
