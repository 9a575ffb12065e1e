package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/abrezinsky/judgedesk/internal/errors"
	"github.com/abrezinsky/judgedesk/internal/logger"
	"github.com/abrezinsky/judgedesk/internal/models"
	"github.com/abrezinsky/judgedesk/internal/progress"
	"github.com/abrezinsky/judgedesk/internal/services"
	"github.com/abrezinsky/judgedesk/pkg/eventapi"
)

func newJudging(t *testing.T, opts ...eventapi.MockOption) (*services.JudgingService, *eventapi.MockClient, *services.SettingsService) {
	t.Helper()
	client := eventapi.NewMockClient(opts...)
	settings := newSettings(t, client)
	return services.NewJudgingService(logger.Nop(), client, settings, nil), client, settings
}

func TestJudgingService_NoProgram(t *testing.T) {
	svc, _, _ := newJudging(t)

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if d.Progress.State != progress.StateNoAssignment {
		t.Errorf("State = %q, want no_assignment", d.Progress.State)
	}
	if len(d.Assignments) != 2 {
		t.Errorf("expected default assignments, got %v", d.Assignments)
	}
}

func TestJudgingService_SelectProgram(t *testing.T) {
	today := time.Now().UTC().Format(time.RFC3339)
	svc, client, settings := newJudging(t,
		eventapi.WithProgress(models.Progress{
			Program: 1, ScoredCount: 5, TotalAssigned: 8, Remaining: 3, CompletionPercentage: 62.5,
		}),
		eventapi.WithMyScores(1, []models.JudgingScore{
			{ID: 1, Contestant: 11, Program: 1, SubmittedAt: today},
			{ID: 2, Contestant: 12, Program: 1, SubmittedAt: "2020-01-01T10:00:00Z"},
		}),
	)
	b := &recordingBroadcaster{}
	svc.SetBroadcaster(b)
	ctx := context.Background()

	svc.Dashboard(ctx)
	d, err := svc.SelectProgram(ctx, 1)
	if err != nil {
		t.Fatalf("SelectProgram failed: %v", err)
	}

	if d.Progress.State != progress.StateAlmostDone {
		t.Errorf("State = %q, want almost_done", d.Progress.State)
	}
	if d.Progress.ScoresToday != 1 {
		t.Errorf("ScoresToday = %d, want 1", d.Progress.ScoresToday)
	}
	if d.ProgramName != "Robotics Showcase" {
		t.Errorf("ProgramName = %q", d.ProgramName)
	}
	if client.Calls(eventapi.EndpointProgress) != 1 || client.Calls(eventapi.EndpointMyScores) != 1 {
		t.Error("expected one progress and one my-scores request")
	}
	if svc.SelectedProgram() != 1 {
		t.Errorf("SelectedProgram = %d", svc.SelectedProgram())
	}

	stored, _ := settings.GetSelectedProgram(ctx)
	if stored != 1 {
		t.Errorf("expected program persisted, got %d", stored)
	}

	last := b.lastProgress()
	if last == nil || last.Progress.State != progress.StateAlmostDone {
		t.Errorf("expected broadcast of the committed dashboard, got %+v", last)
	}
}

func TestJudgingService_SelectProgram_Invalid(t *testing.T) {
	svc, _, _ := newJudging(t)

	if _, err := svc.SelectProgram(context.Background(), 0); err != services.ErrInvalidProgram {
		t.Errorf("expected ErrInvalidProgram, got %v", err)
	}
}

func TestJudgingService_FetchFailureDegradesToNoData(t *testing.T) {
	svc, client, _ := newJudging(t,
		eventapi.WithProgress(models.Progress{Program: 2, ScoredCount: 4, TotalAssigned: 4, CompletionPercentage: 100}),
	)
	ctx := context.Background()

	d, _ := svc.SelectProgram(ctx, 2)
	if d.Progress.State != progress.StateComplete {
		t.Fatalf("State = %q, want complete", d.Progress.State)
	}

	client.SetError(eventapi.EndpointMyScores, errors.Unavailable("event API unreachable", nil))
	d, err := svc.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh should degrade rather than fail: %v", err)
	}
	if d.Progress.State != progress.StateNoData || d.Progress.HasData {
		t.Errorf("State = %q, HasData = %v; want no_data", d.Progress.State, d.Progress.HasData)
	}
	if d.Progress.Completion != 0 || d.Progress.Complete {
		t.Errorf("expected zeroed view, got %+v", d.Progress)
	}
	if d.Error == "" {
		t.Error("expected error message on the dashboard")
	}
}

func TestJudgingService_MissingProgress(t *testing.T) {
	svc, _, _ := newJudging(t)

	d, err := svc.SelectProgram(context.Background(), 2)
	if err != nil {
		t.Fatalf("SelectProgram failed: %v", err)
	}
	if d.Progress.State != progress.StateNoData {
		t.Errorf("State = %q, want no_data", d.Progress.State)
	}
}

func TestJudgingService_Restore(t *testing.T) {
	svc, client, settings := newJudging(t,
		eventapi.WithProgress(models.Progress{Program: 2, ScoredCount: 1, TotalAssigned: 10, Remaining: 9, CompletionPercentage: 10}),
	)
	ctx := context.Background()

	if err := svc.Restore(ctx); err != nil {
		t.Fatalf("Restore with nothing stored failed: %v", err)
	}
	if client.Calls(eventapi.EndpointProgress) != 0 {
		t.Error("expected no fetch without a stored program")
	}

	settings.SetSelectedProgram(ctx, 2)
	if err := svc.Restore(ctx); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	d, _ := svc.Dashboard(ctx)
	if d.ProgramID != 2 || d.Progress.State != progress.StateReady {
		t.Errorf("expected restored program 2 ready, got %d %q", d.ProgramID, d.Progress.State)
	}
}
