package handler

import "net/http"

const serviceName = "Skopeo API"

// isoMillis is ISO-8601 with millisecond precision, e.g. 2026-01-02T03:04:05.678Z.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type statusResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

// Health handles GET /api/health. It reports process liveness only.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Message: serviceName + " is running",
	})
}

// Ready handles GET /api/ready and checks that the store is reachable.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "unhealthy",
			Message: "storage unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "ready"})
}

// Status handles GET /api/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:      statusSuccess,
		Timestamp:   h.now().UTC().Format(isoMillis),
		Environment: h.environment,
	})
}
