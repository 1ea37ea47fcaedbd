package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ContactInput is a normalized contact form submission. Text fields default
// to "" when absent. IPAddress and UserAgent are filled in from the request
// by the handler and are never read from the body.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
	Role      string
	Message   string
	IPAddress string
	UserAgent string
}

// FieldError describes one rejected field of a payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a payload is structurally malformed.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Field == "" {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// DecodeContactInput validates a raw submission body and fills defaults.
// An empty body counts as {}. The input slice is not modified.
func DecodeContactInput(data []byte) (ContactInput, error) {
	var in ContactInput

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return in, nil
	}
	if trimmed[0] != '{' {
		return in, &ValidationError{Errors: []FieldError{{Message: "expected a JSON object"}}}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return in, &ValidationError{Errors: []FieldError{{Message: "malformed JSON"}}}
	}

	fields := []struct {
		name string
		dst  *string
	}{
		{"firstName", &in.FirstName},
		{"lastName", &in.LastName},
		{"email", &in.Email},
		{"company", &in.Company},
		{"role", &in.Role},
		{"message", &in.Message},
	}

	var errs []FieldError
	for _, f := range fields {
		v, ok := raw[f.name]
		if !ok {
			continue
		}
		if err := decodeString(v, f.dst); err != nil {
			errs = append(errs, FieldError{Field: f.name, Message: err.Error()})
		}
	}
	if len(errs) > 0 {
		return ContactInput{}, &ValidationError{Errors: errs}
	}
	return in, nil
}

func decodeString(v json.RawMessage, dst *string) error {
	if len(v) == 0 || v[0] != '"' {
		return fmt.Errorf("expected string, got %s", jsonKind(v))
	}
	return json.Unmarshal(v, dst)
}

func jsonKind(v json.RawMessage) string {
	if len(v) == 0 {
		return "nothing"
	}
	switch v[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
