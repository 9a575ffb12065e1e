package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)

	// Long-lived and operational endpoints stay outside the request timeout
	if h.WS != nil {
		r.Get("/ws", h.WS.ServeHTTP)
	}
	if h.Metrics != nil {
		r.Get("/metrics", h.Metrics.ServeHTTP)
	}
	r.Get("/healthz", h.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Scoring
		r.Get("/api/rubric", h.handleGetRubric)
		r.Get("/api/participants/{id}/score-summary", h.handleGetScoreSummary)

		// Judging progress
		r.Get("/api/judging/dashboard", h.handleGetDashboard)
		r.Post("/api/judging/program", h.handleSelectProgram)
		r.Post("/api/judging/refresh", h.handleRefreshJudging)
		r.Get("/api/judging/link", h.handleGetJudgeLink)
		r.Get("/api/judging/qr", h.handleGetJudgeQR)

		// Registrants
		r.Get("/api/registrants", h.handleListRegistrants)
		r.Get("/api/registrants/approvals", h.handleListApprovals)
		r.Patch("/api/registrants/{id}/payment", h.handleApprovePayment)

		// Settings
		r.Get("/api/settings", h.handleGetSettings)
		r.Put("/api/settings", h.handleUpdateSettings)
	})

	return r
}
