package sandbox

import (
	"encoding/json"
	"net/http"
	"time"
)

// responseEnvelope matches the production backend's uniform wrapper.
type responseEnvelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Message   string      `json:"message"`
	Error     interface{} `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// fieldErrorPayload carries per-field messages in the envelope's error slot.
type fieldErrorPayload struct {
	Fields map[string]string `json:"fields"`
}

// writeData sends a success envelope.
func writeData(w http.ResponseWriter, status int, data interface{}, message string) {
	writeEnvelope(w, status, responseEnvelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// writeError sends a failure envelope with an optional field->message map.
func writeError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	env := responseEnvelope{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if len(fields) > 0 {
		env.Error = fieldErrorPayload{Fields: fields}
	}
	writeEnvelope(w, status, env)
}

func writeEnvelope(w http.ResponseWriter, status int, env responseEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
