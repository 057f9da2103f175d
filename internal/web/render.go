package web

import (
	"encoding/json"
	"net/http"

	"github.com/lexgate/lexgate/internal/errors"
)

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError maps an error to a JSON error response. Structured
// errors carry their own status and details; anything else is a 500
// with a generic message.
func renderError(w http.ResponseWriter, err error) {
	gErr, ok := err.(*errors.GateError)
	if !ok {
		gErr = errors.NewInternal(err)
	}

	body := map[string]any{
		"error": map[string]any{
			"code":    string(gErr.Code),
			"message": gErr.Message,
			"status":  gErr.Status,
		},
	}
	// Rejection details (verdict, override tip) ride along so API
	// clients can show the evidence.
	if gErr.Code == errors.ErrNotAContract {
		for k, v := range gErr.Details {
			body[k] = v
		}
	}
	renderJSON(w, gErr.Status, body)
}
