package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/skopeo/backend/internal/logging"
	"github.com/skopeo/backend/internal/model"
	"github.com/skopeo/backend/internal/repository"
	"github.com/skopeo/backend/internal/service"
)

const maxBodyBytes = 64 << 10

const (
	msgSubmitted     = "Contact message submitted successfully"
	msgInvalidInput  = "Invalid contact submission"
	msgInvalidStatus = "Invalid status. Must be one of: new, contacted, resolved"
	msgNotFound      = "Contact message not found"
	msgInternal      = "Internal server error"
)

// ContactHandler handles contact form submission and message management.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// createdContact is the data returned by POST /api/contact.
type createdContact struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Submit handles POST /api/contact. Every field is optional; the body must
// be a JSON object whose known fields are strings.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusBadRequest, envelope{
				Status:  statusError,
				Message: msgInvalidInput,
				Errors:  []model.FieldError{{Message: "request body too large"}},
			})
			return
		}
		h.internalError(w, r, "read contact body", err)
		return
	}

	in, err := model.DecodeContactInput(body)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, envelope{
				Status:  statusError,
				Message: msgInvalidInput,
				Errors:  verr.Errors,
			})
			return
		}
		h.internalError(w, r, "decode contact body", err)
		return
	}

	in.IPAddress = forwardedClientIP(r)
	in.UserAgent = r.UserAgent()

	msg, err := h.contactService.Submit(r.Context(), in)
	if err != nil {
		h.internalError(w, r, "create contact message", err)
		return
	}

	writeSuccess(w, http.StatusCreated, msgSubmitted, createdContact{ID: msg.ID, CreatedAt: msg.CreatedAt})
}

// List handles GET /api/contact. Messages are ordered oldest first.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.List(r.Context())
	if err != nil {
		h.internalError(w, r, "list contact messages", err)
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	writeSuccess(w, http.StatusOK, "", messages)
}

// Get handles GET /api/contact/{id}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	msg, err := h.contactService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.internalError(w, r, "get contact message", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", msg)
}

// UpdateStatus handles PATCH /api/contact/{id}/status.
// The status is checked for membership only, before the store is touched.
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidStatus)
		return
	}
	status, ok := model.ParseContactStatus(req.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidStatus)
		return
	}

	msg, err := h.contactService.UpdateStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.internalError(w, r, "update contact message status", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", msg)
}

// internalError logs err with detail and answers with a generic 500.
func (h *ContactHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logging.FromContext(r.Context()).Error(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, msgInternal)
}
