package handlers

import "net/http"

func (h *Handlers) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Judging.Dashboard(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondOK(w, d)
}

func (h *Handlers) handleSelectProgram(w http.ResponseWriter, r *http.Request) {
	var req SelectProgramRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	d, err := h.Judging.SelectProgram(r.Context(), req.ProgramID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondOK(w, d)
}

func (h *Handlers) handleRefreshJudging(w http.ResponseWriter, r *http.Request) {
	d, err := h.Judging.Refresh(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondOK(w, d)
}

func (h *Handlers) handleGetJudgeLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.Judging.JudgeLink(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondOK(w, JudgeLinkResponse{URL: link})
}

func (h *Handlers) handleGetJudgeQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Judging.JudgeLinkQR(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}
