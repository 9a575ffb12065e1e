package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/judgedesk/internal/handlers"
	"github.com/abrezinsky/judgedesk/internal/logger"
	"github.com/abrezinsky/judgedesk/internal/metrics"
	"github.com/abrezinsky/judgedesk/internal/repository"
	"github.com/abrezinsky/judgedesk/internal/rubric"
	"github.com/abrezinsky/judgedesk/internal/services"
	"github.com/abrezinsky/judgedesk/internal/websocket"
	"github.com/abrezinsky/judgedesk/pkg/eventapi"
)

// Config holds startup options. Non-empty API settings override stored ones.
type Config struct {
	DBPath          string
	APIURL          string
	APIToken        string
	JudgeID         int
	Rubric          rubric.Rubric
	RefreshInterval time.Duration
}

// App holds all application dependencies
type App struct {
	log        logger.Logger
	handlers   *handlers.Handlers
	repo       *repository.Repository
	settings   *services.SettingsService
	judging    *services.JudgingService
	hub        *websocket.Hub
	cancelJobs context.CancelFunc
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg Config, client eventapi.Client, m *metrics.Metrics) (*App, error) {
	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if len(cfg.Rubric.Categories) == 0 {
		cfg.Rubric = rubric.Default()
	}

	settingsService := services.NewSettingsService(log.With("service", "settings"), repo, client)
	if err := seedSettings(context.Background(), settingsService, cfg); err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to apply startup settings: %w", err)
	}

	scoringService := services.NewScoringService(log.With("service", "scoring"), client, settingsService, cfg.Rubric, m)
	judgingService := services.NewJudgingService(log.With("service", "judging"), client, settingsService, m)
	registrantService := services.NewRegistrantService(log.With("service", "registrants"), client, repo, m)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log.With("component", "websocket"), judgingService, registrantService, m)
	hub.Start()
	judgingService.SetBroadcaster(hub)
	registrantService.SetBroadcaster(hub)

	// Background jobs stop on Close
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := judgingService.Restore(ctx); err != nil {
			log.Warn("Failed to restore selected program", "error", err)
		}
	}()
	go hub.StartAutoRefresh(ctx, cfg.RefreshInterval)

	h := handlers.New(
		scoringService,
		judgingService,
		registrantService,
		settingsService,
		http.HandlerFunc(hub.ServeWs),
		m.Handler(),
		repo,
		log,
	)

	return &App{
		log:        log,
		handlers:   h,
		repo:       repo,
		settings:   settingsService,
		judging:    judgingService,
		hub:        hub,
		cancelJobs: cancel,
	}, nil
}

// seedSettings writes flag values over stored settings and configures the client
func seedSettings(ctx context.Context, s *services.SettingsService, cfg Config) error {
	update := services.Settings{APIURL: cfg.APIURL, APIToken: cfg.APIToken}
	if cfg.JudgeID > 0 {
		update.JudgeID = &cfg.JudgeID
	}
	return s.UpdateSettings(ctx, update)
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Refresh re-fetches the judging dashboard
func (a *App) Refresh(ctx context.Context) (*services.Dashboard, error) {
	return a.judging.Refresh(ctx)
}

// Close performs graceful shutdown of app resources
func (a *App) Close() {
	if a.cancelJobs != nil {
		a.cancelJobs()
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// server fails
func (a *App) Run(ctx context.Context, addr string) error {
	ip := getPreferredIP(realNetworkProvider{})
	baseURL := fmt.Sprintf("http://%s%s", ip, portSuffix(addr))
	a.setDefaultBaseURL(baseURL)

	srv := &http.Server{Addr: addr, Handler: a.Router()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	a.log.Info("Server starting", "url", baseURL)
	a.log.Info("Judging dashboard", "url", baseURL+"/api/judging/dashboard")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.log.Info("Server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// portSuffix returns ":port" from a listen address
func portSuffix(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		if _, err := strconv.Atoi(addr[i+1:]); err == nil {
			return addr[i:]
		}
	}
	return ""
}

// setDefaultBaseURL sets the base URL setting if not already configured
// or if current value uses localhost (which isn't useful for QR codes)
func (a *App) setDefaultBaseURL(baseURL string) {
	ctx := context.Background()
	existing, _ := a.settings.GetBaseURL(ctx)

	needsUpdate := existing == "" || strings.Contains(existing, "localhost")
	if needsUpdate {
		if err := a.settings.SetSetting(ctx, services.SettingBaseURL, baseURL); err != nil {
			a.log.Warn("Failed to set default base_url", "error", err)
		} else {
			a.log.Info("Default base URL set", "url", baseURL)
		}
	}
}
