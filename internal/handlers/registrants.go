package handlers

import (
	"net/http"
	"strings"

	"github.com/abrezinsky/judgedesk/internal/models"
)

func (h *Handlers) handleListRegistrants(w http.ResponseWriter, r *http.Request) {
	program, _, err := parseIntQuery(r, "program")
	if err != nil {
		h.respondError(w, err)
		return
	}

	q := r.URL.Query()
	list, err := h.Registrants.List(r.Context(), models.ParticipantFilter{
		Program:       program,
		PaymentStatus: q.Get("payment_status"),
		Search:        q.Get("search"),
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondOK(w, list)
}

func (h *Handlers) handleApprovePayment(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req PaymentUpdateRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if status := strings.TrimSpace(req.PaymentStatus); status != "" && status != models.PaymentApproved {
		h.respondError(w, BadRequest("Invalid payment_status: only approved is supported"))
		return
	}

	p, err := h.Registrants.ApprovePayment(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondOK(w, p)
}

func (h *Handlers) handleListApprovals(w http.ResponseWriter, r *http.Request) {
	limit, _, err := parseIntQuery(r, "limit")
	if err != nil {
		h.respondError(w, err)
		return
	}

	approvals, err := h.Registrants.RecentApprovals(r.Context(), limit)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondOK(w, approvals)
}
