package mock

import (
	"context"

	"github.com/abrezinsky/judgedesk/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.SetSettingError = errors.New("database error")
//	svc := services.NewSettingsService(log, mockRepo)
type Repository struct {
	repository.FullRepository

	GetSettingError     error
	SetSettingError     error
	AllSettingsError    error
	RecordApprovalError error
	ListApprovalsError  error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{FullRepository: real}
}

func (m *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	if m.GetSettingError != nil {
		return "", m.GetSettingError
	}
	return m.FullRepository.GetSetting(ctx, key)
}

func (m *Repository) SetSetting(ctx context.Context, key, value string) error {
	if m.SetSettingError != nil {
		return m.SetSettingError
	}
	return m.FullRepository.SetSetting(ctx, key, value)
}

func (m *Repository) AllSettings(ctx context.Context) (map[string]string, error) {
	if m.AllSettingsError != nil {
		return nil, m.AllSettingsError
	}
	return m.FullRepository.AllSettings(ctx)
}

func (m *Repository) RecordApproval(ctx context.Context, participantID int, name string) error {
	if m.RecordApprovalError != nil {
		return m.RecordApprovalError
	}
	return m.FullRepository.RecordApproval(ctx, participantID, name)
}

func (m *Repository) ListApprovals(ctx context.Context, limit int) ([]repository.Approval, error) {
	if m.ListApprovalsError != nil {
		return nil, m.ListApprovalsError
	}
	return m.FullRepository.ListApprovals(ctx, limit)
}
