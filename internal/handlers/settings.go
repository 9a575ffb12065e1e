package handlers

import (
	"net/http"

	"github.com/abrezinsky/judgedesk/internal/services"
)

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.AllSettings(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondOK(w, settings)
}

func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	settings := services.Settings{
		APIURL:   req.APIURL,
		APIToken: req.APIToken,
		BaseURL:  req.BaseURL,
		JudgeID:  req.JudgeID,
	}
	if err := h.Settings.UpdateSettings(r.Context(), settings); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondSuccess(w, "Settings updated")
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.Health != nil {
		if err := h.Health.Ping(r.Context()); err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: err.Error()})
			return
		}
	}
	h.respondOK(w, HealthResponse{Status: "ok", Database: "ok"})
}
