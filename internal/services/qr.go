package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// JudgeLink returns the URL judges open to score the selected program
func (s *JudgingService) JudgeLink(ctx context.Context) (string, error) {
	programID := s.SelectedProgram()
	if programID == 0 {
		return "", ErrNoProgramSelected
	}
	baseURL, err := s.settings.GetBaseURL(ctx)
	if err != nil {
		return "", fmt.Errorf("error checking settings: %w", err)
	}
	if baseURL == "" {
		return "", ErrBaseURLNotSet
	}
	return fmt.Sprintf("%s/judge?program=%d", strings.TrimSuffix(baseURL, "/"), programID), nil
}

// JudgeLinkQR renders JudgeLink as a 256px PNG QR code
func (s *JudgingService) JudgeLinkQR(ctx context.Context) ([]byte, error) {
	link, err := s.JudgeLink(ctx)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(link, qrcode.Medium, 256)
}
