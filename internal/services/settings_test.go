package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/abrezinsky/judgedesk/internal/logger"
	"github.com/abrezinsky/judgedesk/internal/repository/mock"
	"github.com/abrezinsky/judgedesk/internal/services"
	"github.com/abrezinsky/judgedesk/internal/testutil"
	"github.com/abrezinsky/judgedesk/pkg/eventapi"
)

func TestSettingsService_Defaults(t *testing.T) {
	svc := newSettings(t, nil)
	ctx := context.Background()

	apiURL, err := svc.GetAPIURL(ctx)
	if err != nil || apiURL != "" {
		t.Errorf("GetAPIURL = %q, %v; want empty", apiURL, err)
	}
	judge, err := svc.GetJudgeID(ctx)
	if err != nil || judge != nil {
		t.Errorf("GetJudgeID = %v, %v; want nil", judge, err)
	}
	program, err := svc.GetSelectedProgram(ctx)
	if err != nil || program != 0 {
		t.Errorf("GetSelectedProgram = %d, %v; want 0", program, err)
	}
}

func TestSettingsService_UpdateSettings(t *testing.T) {
	client := eventapi.NewMockClient()
	svc := newSettings(t, client)
	ctx := context.Background()

	err := svc.UpdateSettings(ctx, services.Settings{
		APIURL:   " http://events.example/ ",
		APIToken: "s3cret",
		BaseURL:  "http://judges.example",
		JudgeID:  testutil.IntPtr(4),
	})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	if got := client.BaseURL(); got != "http://events.example" {
		t.Errorf("client base URL = %q", got)
	}
	if got := client.Token(); got != "s3cret" {
		t.Errorf("client token = %q", got)
	}

	judge, _ := svc.GetJudgeID(ctx)
	if judge == nil || *judge != 4 {
		t.Errorf("GetJudgeID = %v, want 4", judge)
	}

	all, err := svc.AllSettings(ctx)
	if err != nil {
		t.Fatalf("AllSettings failed: %v", err)
	}
	if _, leaked := all[services.SettingAPIToken]; leaked {
		t.Error("AllSettings must not return the token")
	}
	if all["api_token_set"] != true {
		t.Errorf("expected api_token_set true, got %v", all["api_token_set"])
	}
	if all[services.SettingBaseURL] != "http://judges.example" {
		t.Errorf("unexpected base_url %v", all[services.SettingBaseURL])
	}
}

func TestSettingsService_UpdateSettings_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		settings services.Settings
		key      string
	}{
		{"relative api url", services.Settings{APIURL: "events.example"}, services.SettingAPIURL},
		{"bad base url", services.Settings{BaseURL: "::"}, services.SettingBaseURL},
		{"zero judge", services.Settings{JudgeID: testutil.IntPtr(0)}, services.SettingJudgeID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newSettings(t, nil)
			err := svc.UpdateSettings(context.Background(), tt.settings)

			var settingErr *services.InvalidSettingError
			if !errors.As(err, &settingErr) {
				t.Fatalf("expected InvalidSettingError, got %v", err)
			}
			if settingErr.Key != tt.key {
				t.Errorf("key = %q, want %q", settingErr.Key, tt.key)
			}
		})
	}
}

func TestSettingsService_InvalidStoredJudge(t *testing.T) {
	svc := newSettings(t, nil)
	ctx := context.Background()

	svc.SetSetting(ctx, services.SettingJudgeID, "abc")

	judge, err := svc.GetJudgeID(ctx)
	if err != nil || judge != nil {
		t.Errorf("expected unparseable judge to read as nil, got %v, %v", judge, err)
	}
}

func TestSettingsService_SelectedProgram(t *testing.T) {
	svc := newSettings(t, nil)
	ctx := context.Background()

	if err := svc.SetSelectedProgram(ctx, 7); err != nil {
		t.Fatalf("SetSelectedProgram failed: %v", err)
	}
	got, err := svc.GetSelectedProgram(ctx)
	if err != nil || got != 7 {
		t.Errorf("GetSelectedProgram = %d, %v", got, err)
	}
}

func TestSettingsService_RepositoryErrors(t *testing.T) {
	repo := mock.NewRepository(testutil.NewTestRepository(t))
	svc := services.NewSettingsService(logger.Nop(), repo, eventapi.NewMockClient())
	ctx := context.Background()

	repo.GetSettingError = errors.New("database error")
	if _, err := svc.GetAPIURL(ctx); err == nil {
		t.Error("expected GetAPIURL to propagate database error")
	}
	if _, err := svc.AllSettings(ctx); err == nil {
		t.Error("expected AllSettings to propagate database error")
	}
	if err := svc.ApplyClientConfig(ctx); err == nil {
		t.Error("expected ApplyClientConfig to propagate database error")
	}

	repo.GetSettingError = nil
	repo.SetSettingError = errors.New("database error")
	if err := svc.UpdateSettings(ctx, services.Settings{BaseURL: "http://judges.example"}); err == nil {
		t.Error("expected UpdateSettings to propagate database error")
	}
}
