package services_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/abrezinsky/judgedesk/internal/services"
)

func TestJudgingService_JudgeLink(t *testing.T) {
	svc, _, settings := newJudging(t)
	ctx := context.Background()

	if _, err := svc.JudgeLink(ctx); err != services.ErrNoProgramSelected {
		t.Errorf("expected ErrNoProgramSelected, got %v", err)
	}

	svc.SelectProgram(ctx, 2)
	if _, err := svc.JudgeLink(ctx); err != services.ErrBaseURLNotSet {
		t.Errorf("expected ErrBaseURLNotSet, got %v", err)
	}

	settings.SetSetting(ctx, services.SettingBaseURL, "http://judges.example/")
	link, err := svc.JudgeLink(ctx)
	if err != nil {
		t.Fatalf("JudgeLink failed: %v", err)
	}
	if link != "http://judges.example/judge?program=2" {
		t.Errorf("link = %q", link)
	}

	png, err := svc.JudgeLinkQR(ctx)
	if err != nil {
		t.Fatalf("JudgeLinkQR failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG output")
	}
}
