package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"netspeed-monitor/internal/logger"
)

type Response struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data *Response, log logger.Logger) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		log.Error("http: failed to write json response", "error", err)
	}
}
