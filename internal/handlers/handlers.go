package handlers

import (
	"context"
	"net/http"

	"github.com/abrezinsky/judgedesk/internal/services"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Scoring     services.ScoringServicer
	Judging     services.JudgingServicer
	Registrants services.RegistrantServicer
	Settings    services.SettingsServicer
	WS          http.Handler
	Metrics     http.Handler
	Health      Pinger
	Log         HTTPLogger
}

// HTTPLogger is the part of the logger handlers use: request logging
// control and error reporting
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
	Error(msg string, args ...any)
}

// Pinger reports whether local storage is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// New creates a new Handlers instance with all dependencies
func New(
	scoring services.ScoringServicer,
	judging services.JudgingServicer,
	registrants services.RegistrantServicer,
	settings services.SettingsServicer,
	ws http.Handler,
	metrics http.Handler,
	health Pinger,
	log HTTPLogger,
) *Handlers {
	return &Handlers{
		Scoring:     scoring,
		Judging:     judging,
		Registrants: registrants,
		Settings:    settings,
		WS:          ws,
		Metrics:     metrics,
		Health:      health,
		Log:         log,
	}
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

func (NoopHTTPLogger) Error(msg string, args ...any) {}
