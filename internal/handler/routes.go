package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// Routes wires every API endpoint and the middleware chain. limiter may be
// nil, in which case contact submissions are not rate limited.
func Routes(h *Handler, contacts *ContactHandler, limiter *RateLimiter, logger *slog.Logger) http.Handler {
	submit := http.Handler(http.HandlerFunc(contacts.Submit))
	if limiter != nil {
		submit = limiter.Middleware(submit)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/ready", h.Ready)
	mux.HandleFunc("GET /api/status", h.Status)

	mux.Handle("POST /api/contact", submit)
	mux.HandleFunc("GET /api/contact", contacts.List)
	mux.HandleFunc("GET /api/contact/{id}", contacts.Get)
	mux.HandleFunc("PATCH /api/contact/{id}/status", contacts.UpdateStatus)

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})

	var root http.Handler = mux
	root = h.CORS(root)
	root = SecurityHeaders(root)
	root = middleware.Recoverer(root)
	root = RequestLogger(logger)(root)
	root = middleware.RequestID(root)
	return root
}
