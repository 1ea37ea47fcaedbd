package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/skopeo/backend/internal/model"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// envelope is the uniform JSON body of every API response.
type envelope struct {
	Status  string             `json:"status"`
	Message string             `json:"message,omitempty"`
	Data    any                `json:"data,omitempty"`
	Errors  []model.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, envelope{Status: statusSuccess, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, envelope{Status: statusError, Message: message})
}
