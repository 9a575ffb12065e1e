package handlers

import "net/http"

func (h *Handlers) handleGetRubric(w http.ResponseWriter, r *http.Request) {
	rb := h.Scoring.Rubric()
	h.respondOK(w, RubricResponse{Categories: rb.Categories, TotalPossible: rb.TotalPossible()})
}

func (h *Handlers) handleGetScoreSummary(w http.ResponseWriter, r *http.Request) {
	participantID, err := parseIntParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var judgeID *int
	if id, ok, err := parseIntQuery(r, "judge_id"); err != nil {
		h.respondError(w, err)
		return
	} else if ok {
		judgeID = &id
	}

	summary, err := h.Scoring.GetSummary(r.Context(), participantID, judgeID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondOK(w, summary)
}
