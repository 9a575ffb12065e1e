package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abrezinsky/judgedesk/internal/logger"
	"github.com/abrezinsky/judgedesk/internal/repository"
	"github.com/abrezinsky/judgedesk/pkg/eventapi"
)

// Setting keys persisted in the settings table
const (
	SettingAPIURL          = "api_url"
	SettingAPIToken        = "api_token"
	SettingJudgeID         = "judge_id"
	SettingBaseURL         = "base_url"
	SettingSelectedProgram = "selected_program"
)

// Broadcaster defines the interface for broadcasting messages to clients
type Broadcaster interface {
	BroadcastProgress(d *Dashboard)
	BroadcastRegistrants(list *RegistrantList)
}

// SettingsService handles settings-related business logic
type SettingsService struct {
	log      logger.Logger
	repo     repository.SettingsRepository
	client   eventapi.Client
	validate *validator.Validate
}

// NewSettingsService creates a new SettingsService. Changes to the API URL
// and token are pushed to client when it is non-nil.
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository, client eventapi.Client) *SettingsService {
	return &SettingsService{log: log, repo: repo, client: client, validate: validator.New()}
}

// GetSetting retrieves an arbitrary setting
func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	return s.repo.GetSetting(ctx, key)
}

// SetSetting saves an arbitrary setting
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	return s.repo.SetSetting(ctx, key, value)
}

// optional returns "" for settings that have never been written
func (s *SettingsService) optional(ctx context.Context, key string) (string, error) {
	value, err := s.repo.GetSetting(ctx, key)
	if err != nil {
		if err == repository.ErrNotFound {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// GetAPIURL returns the event API base URL
func (s *SettingsService) GetAPIURL(ctx context.Context) (string, error) {
	return s.optional(ctx, SettingAPIURL)
}

// GetBaseURL returns the public URL judges use to reach the scoring app
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	return s.optional(ctx, SettingBaseURL)
}

// GetJudgeID returns the configured judge id, nil when unset or unparseable
func (s *SettingsService) GetJudgeID(ctx context.Context) (*int, error) {
	value, err := s.optional(ctx, SettingJudgeID)
	if err != nil || value == "" {
		return nil, err
	}
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		s.log.Warn("Ignoring invalid judge_id setting", "value", value)
		return nil, nil
	}
	return &id, nil
}

// GetSelectedProgram returns the last selected program, 0 if none
func (s *SettingsService) GetSelectedProgram(ctx context.Context) (int, error) {
	value, err := s.optional(ctx, SettingSelectedProgram)
	if err != nil || value == "" {
		return 0, err
	}
	id, err := strconv.Atoi(value)
	if err != nil || id < 0 {
		return 0, nil
	}
	return id, nil
}

// SetSelectedProgram persists the selected program
func (s *SettingsService) SetSelectedProgram(ctx context.Context, programID int) error {
	return s.repo.SetSetting(ctx, SettingSelectedProgram, strconv.Itoa(programID))
}

// AllSettings returns the settings shown in the admin UI. The token itself
// is never returned.
func (s *SettingsService) AllSettings(ctx context.Context) (map[string]interface{}, error) {
	settings := make(map[string]interface{})

	apiURL, err := s.GetAPIURL(ctx)
	if err != nil {
		return nil, err
	}
	settings[SettingAPIURL] = apiURL

	token, _ := s.optional(ctx, SettingAPIToken)
	settings["api_token_set"] = token != ""

	baseURL, _ := s.GetBaseURL(ctx)
	settings[SettingBaseURL] = baseURL

	judgeID, _ := s.GetJudgeID(ctx)
	settings[SettingJudgeID] = judgeID

	program, _ := s.GetSelectedProgram(ctx)
	settings[SettingSelectedProgram] = program

	return settings, nil
}

// Settings represents application settings for update operations.
// Empty fields are left unchanged.
type Settings struct {
	APIURL   string `validate:"omitempty,url"`
	APIToken string
	BaseURL  string `validate:"omitempty,url"`
	JudgeID  *int
}

// UpdateSettings validates and saves multiple settings at once, then applies
// the API configuration to the client
func (s *SettingsService) UpdateSettings(ctx context.Context, settings Settings) error {
	settings.APIURL = strings.TrimRight(strings.TrimSpace(settings.APIURL), "/")
	settings.BaseURL = strings.TrimRight(strings.TrimSpace(settings.BaseURL), "/")
	settings.APIToken = strings.TrimSpace(settings.APIToken)

	if err := s.validate.Struct(settings); err != nil {
		return settingError(err)
	}
	if settings.JudgeID != nil && *settings.JudgeID <= 0 {
		return &InvalidSettingError{Key: SettingJudgeID, Reason: "must be a positive integer"}
	}

	if settings.APIURL != "" {
		if err := s.SetSetting(ctx, SettingAPIURL, settings.APIURL); err != nil {
			return err
		}
	}
	if settings.APIToken != "" {
		if err := s.SetSetting(ctx, SettingAPIToken, settings.APIToken); err != nil {
			return err
		}
	}
	if settings.BaseURL != "" {
		if err := s.SetSetting(ctx, SettingBaseURL, settings.BaseURL); err != nil {
			return err
		}
	}
	if settings.JudgeID != nil {
		if err := s.SetSetting(ctx, SettingJudgeID, strconv.Itoa(*settings.JudgeID)); err != nil {
			return err
		}
	}
	return s.ApplyClientConfig(ctx)
}

// ApplyClientConfig pushes the stored API URL and token to the client
func (s *SettingsService) ApplyClientConfig(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	apiURL, err := s.GetAPIURL(ctx)
	if err != nil {
		return err
	}
	token, err := s.optional(ctx, SettingAPIToken)
	if err != nil {
		return err
	}
	if apiURL != "" {
		s.client.SetBaseURL(apiURL)
	}
	s.client.SetToken(token)
	s.log.Debug("Applied event API configuration", "api_url", s.client.BaseURL(), "token_set", token != "")
	return nil
}

// settingError converts the first validation failure to an InvalidSettingError
func settingError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	key := map[string]string{
		"APIURL":  SettingAPIURL,
		"BaseURL": SettingBaseURL,
	}[fe.Field()]
	if key == "" {
		key = fe.Field()
	}
	if fe.Tag() == "url" {
		return &InvalidSettingError{Key: key, Reason: "must be an absolute URL"}
	}
	return &InvalidSettingError{Key: key, Reason: fe.Tag()}
}
