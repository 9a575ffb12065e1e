package repository

import (
	"context"
	"time"
)

// Approval is a payment approval issued from this console
type Approval struct {
	ParticipantID int       `json:"participant_id"`
	Name          string    `json:"name"`
	ApprovedAt    time.Time `json:"approved_at"`
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	AllSettings(ctx context.Context) (map[string]string, error)
}

// ApprovalRepository records payment approvals made locally
type ApprovalRepository interface {
	RecordApproval(ctx context.Context, participantID int, name string) error
	ListApprovals(ctx context.Context, limit int) ([]Approval, error)
}

// FullRepository combines all repository interfaces
type FullRepository interface {
	SettingsRepository
	ApprovalRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
