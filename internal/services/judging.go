package services

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abrezinsky/judgedesk/internal/logger"
	"github.com/abrezinsky/judgedesk/internal/metrics"
	"github.com/abrezinsky/judgedesk/internal/models"
	"github.com/abrezinsky/judgedesk/internal/progress"
	"github.com/abrezinsky/judgedesk/internal/provider"
	"github.com/abrezinsky/judgedesk/pkg/eventapi"
)

// judgingData is what one program refresh fetches
type judgingData struct {
	Progress *models.Progress
	MyScores []models.JudgingScore
}

// Dashboard is the judging progress view for the selected program
type Dashboard struct {
	ProgramID   int                 `json:"program_id"`
	ProgramName string              `json:"program_name,omitempty"`
	Progress    progress.View       `json:"progress"`
	Assignments []models.Assignment `json:"assignments"`
	UpdatedAt   *time.Time          `json:"updated_at,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// JudgingService tracks the current judge's progress through one program
type JudgingService struct {
	log         logger.Logger
	client      eventapi.Client
	settings    SettingsServicer
	program     *provider.Provider[int, judgingData]
	assignments *provider.Provider[string, []models.Assignment]
	now         func() time.Time

	mu          sync.RWMutex
	broadcaster Broadcaster
}

// NewJudgingService creates a new JudgingService
func NewJudgingService(log logger.Logger, client eventapi.Client, settings SettingsServicer, m *metrics.Metrics) *JudgingService {
	s := &JudgingService{
		log:      log,
		client:   client,
		settings: settings,
		now:      time.Now,
	}
	s.program = provider.New("judging_progress", s.fetchProgram, m)
	s.assignments = provider.New("assignments", s.fetchAssignments, m)
	s.program.OnUpdate(func(snap provider.Snapshot[int, judgingData]) {
		s.broadcast(s.build(snap))
	})
	return s
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *JudgingService) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	s.broadcaster = b
	s.mu.Unlock()
}

func (s *JudgingService) broadcast(d *Dashboard) {
	s.mu.RLock()
	b := s.broadcaster
	s.mu.RUnlock()
	if b != nil {
		b.BroadcastProgress(d)
	}
}

// fetchProgram loads progress and the judge's own submissions concurrently
func (s *JudgingService) fetchProgram(ctx context.Context, programID int) (judgingData, error) {
	var data judgingData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.client.FetchJudgeProgress(gctx, programID)
		data.Progress = p
		return err
	})
	g.Go(func() error {
		scores, err := s.client.FetchMyScores(gctx, programID)
		data.MyScores = scores
		return err
	})
	if err := g.Wait(); err != nil {
		return judgingData{}, err
	}
	return data, nil
}

func (s *JudgingService) fetchAssignments(ctx context.Context, _ string) ([]models.Assignment, error) {
	return s.client.FetchAssignments(ctx)
}

// SelectedProgram returns the program the dashboard follows, 0 if none
func (s *JudgingService) SelectedProgram() int {
	return s.program.Snapshot().Deps
}

// SelectProgram switches the dashboard to programID and fetches its progress.
// The previous program's data is discarded immediately.
func (s *JudgingService) SelectProgram(ctx context.Context, programID int) (*Dashboard, error) {
	if programID <= 0 {
		return nil, ErrInvalidProgram
	}
	if err := s.settings.SetSelectedProgram(ctx, programID); err != nil {
		s.log.Warn("Failed to persist selected program", "program", programID, "error", err)
	}
	s.log.Info("Judging program selected", "program", programID)
	return s.refreshProgram(ctx, programID)
}

// Refresh re-fetches assignments and the selected program's progress
func (s *JudgingService) Refresh(ctx context.Context) (*Dashboard, error) {
	s.refreshAssignments(ctx)
	programID := s.SelectedProgram()
	if programID == 0 {
		return s.build(s.program.Snapshot()), nil
	}
	return s.refreshProgram(ctx, programID)
}

func (s *JudgingService) refreshProgram(ctx context.Context, programID int) (*Dashboard, error) {
	snap, err := s.program.Refresh(ctx, programID)
	switch {
	case stderrors.Is(err, provider.ErrSuperseded):
		s.log.Debug("Progress refresh superseded", "program", programID)
		return s.build(s.program.Snapshot()), nil
	case err != nil:
		s.log.Warn("Failed to fetch judging progress", "program", programID, "error", err)
	}
	return s.build(snap), nil
}

func (s *JudgingService) refreshAssignments(ctx context.Context) {
	if _, err := s.assignments.Refresh(ctx, s.client.BaseURL()); err != nil && !stderrors.Is(err, provider.ErrSuperseded) {
		s.log.Warn("Failed to fetch judge assignments", "error", err)
	}
}

// Dashboard returns the current view without refetching progress.
// Assignments are fetched on first use and whenever the API URL changes.
func (s *JudgingService) Dashboard(ctx context.Context) (*Dashboard, error) {
	a := s.assignments.Snapshot()
	if (!a.Loaded || a.Deps != s.client.BaseURL()) && !a.Loading {
		s.refreshAssignments(ctx)
	}
	return s.build(s.program.Snapshot()), nil
}

// Restore re-selects the program persisted by a previous run
func (s *JudgingService) Restore(ctx context.Context) error {
	programID, err := s.settings.GetSelectedProgram(ctx)
	if err != nil || programID == 0 {
		return err
	}
	_, err = s.SelectProgram(ctx, programID)
	return err
}

// build derives the dashboard from a program snapshot. A failed or missing
// fetch yields the zero no_data view.
func (s *JudgingService) build(snap provider.Snapshot[int, judgingData]) *Dashboard {
	in := progress.Input{
		Selected: snap.Deps != 0,
		Loading:  snap.Loading,
		Now:      s.now(),
	}
	if snap.Loaded {
		in.Progress = snap.Value.Progress
		in.MyScores = snap.Value.MyScores
	}

	d := &Dashboard{
		ProgramID:   snap.Deps,
		Progress:    progress.Derive(in),
		Assignments: []models.Assignment{},
	}
	if !snap.UpdatedAt.IsZero() {
		t := snap.UpdatedAt
		d.UpdatedAt = &t
	}
	if snap.Err != nil && !snap.Loading {
		d.Error = snap.Err.Error()
	}

	if a := s.assignments.Snapshot(); a.Loaded && a.Value != nil {
		d.Assignments = a.Value
		for _, asg := range a.Value {
			if asg.Program == snap.Deps {
				d.ProgramName = asg.ProgramName
				break
			}
		}
	}
	return d
}
