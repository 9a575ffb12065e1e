package services

import (
	"context"

	"github.com/abrezinsky/judgedesk/internal/models"
	"github.com/abrezinsky/judgedesk/internal/repository"
	"github.com/abrezinsky/judgedesk/internal/rubric"
)

// ScoringServicer defines the interface for score summary operations
type ScoringServicer interface {
	Rubric() rubric.Rubric
	GetSummary(ctx context.Context, participantID int, judgeID *int) (*ScoreSummary, error)
}

// JudgingServicer defines the interface for judging progress operations
type JudgingServicer interface {
	SelectProgram(ctx context.Context, programID int) (*Dashboard, error)
	Refresh(ctx context.Context) (*Dashboard, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
	SelectedProgram() int
	Restore(ctx context.Context) error
	JudgeLink(ctx context.Context) (string, error)
	JudgeLinkQR(ctx context.Context) ([]byte, error)
	SetBroadcaster(b Broadcaster)
}

// RegistrantServicer defines the interface for registrant operations
type RegistrantServicer interface {
	List(ctx context.Context, filter models.ParticipantFilter) (*RegistrantList, error)
	Current() *RegistrantList
	ApprovePayment(ctx context.Context, participantID int) (*models.Participant, error)
	RecentApprovals(ctx context.Context, limit int) ([]repository.Approval, error)
	SetBroadcaster(b Broadcaster)
}

// SettingsServicer defines the interface for settings operations
type SettingsServicer interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	GetAPIURL(ctx context.Context) (string, error)
	GetBaseURL(ctx context.Context) (string, error)
	GetJudgeID(ctx context.Context) (*int, error)
	GetSelectedProgram(ctx context.Context) (int, error)
	SetSelectedProgram(ctx context.Context, programID int) error
	AllSettings(ctx context.Context) (map[string]interface{}, error)
	UpdateSettings(ctx context.Context, settings Settings) error
	ApplyClientConfig(ctx context.Context) error
}

// Ensure concrete types implement interfaces
var (
	_ ScoringServicer    = (*ScoringService)(nil)
	_ JudgingServicer    = (*JudgingService)(nil)
	_ RegistrantServicer = (*RegistrantService)(nil)
	_ SettingsServicer   = (*SettingsService)(nil)
)
