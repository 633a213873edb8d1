package handlers

import (
	"encoding/json"
	"net/http"

	"media-studio/internal/enhance"
	"media-studio/internal/logging"
)

// Enhance handles POST /api/enhance: a pass-through to the external
// enhancement service. Without a configured service the endpoint answers
// 503 so clients can distinguish "not set up" from a provider failure.
func (h *Handlers) Enhance(w http.ResponseWriter, r *http.Request) {
	if h.enhancer == nil {
		writeJSONError(w, "enhancement service is not configured", http.StatusServiceUnavailable)
		return
	}

	var req enhance.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Tool == "" {
		writeJSONError(w, "tool is required", http.StatusBadRequest)
		return
	}

	result, err := h.enhancer.Run(r.Context(), req)
	if err != nil {
		logging.Error("Enhancement call failed: %v", err)
		writeJSONError(w, "enhancement service error: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}
