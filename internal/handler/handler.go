package handler

import (
	"net/http"
	"time"

	"github.com/skopeo/backend/internal/repository"
)

// Handler serves the service-level endpoints and shared middleware.
type Handler struct {
	db          repository.DB
	frontendURL string
	environment string
	now         func() time.Time
}

func New(db repository.DB, frontendURL, environment string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL, environment: environment, now: time.Now}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
