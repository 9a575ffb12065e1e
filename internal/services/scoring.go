package services

import (
	"context"

	"github.com/abrezinsky/judgedesk/internal/logger"
	"github.com/abrezinsky/judgedesk/internal/metrics"
	"github.com/abrezinsky/judgedesk/internal/rubric"
	"github.com/abrezinsky/judgedesk/internal/scoring"
	"github.com/abrezinsky/judgedesk/pkg/eventapi"
)

// Sanitize reasons recorded in metrics
const (
	ReasonInvalidValue    = "invalid_value"
	ReasonUnknownCategory = "unknown_category"
)

// ScoringService aggregates a judge's scores for one participant
type ScoringService struct {
	log      logger.Logger
	client   eventapi.Client
	settings SettingsServicer
	rubric   rubric.Rubric
	metrics  *metrics.Metrics
}

// NewScoringService creates a new ScoringService
func NewScoringService(log logger.Logger, client eventapi.Client, settings SettingsServicer, r rubric.Rubric, m *metrics.Metrics) *ScoringService {
	return &ScoringService{log: log, client: client, settings: settings, rubric: r, metrics: m}
}

// ScoreSummary is the aggregated score card for a participant
type ScoreSummary struct {
	ParticipantID int  `json:"participant_id"`
	JudgeID       *int `json:"judge_id"`
	scoring.Result
}

// Rubric returns the rubric used for aggregation
func (s *ScoringService) Rubric() rubric.Rubric {
	return s.rubric
}

// GetSummary fetches all scores for participantID and aggregates those given
// by judgeID. A nil judgeID falls back to the configured judge; with no judge
// at all every category is zero and no request is made.
func (s *ScoringService) GetSummary(ctx context.Context, participantID int, judgeID *int) (*ScoreSummary, error) {
	if participantID <= 0 {
		return nil, ErrInvalidParticipant
	}
	if judgeID != nil && *judgeID <= 0 {
		return nil, ErrInvalidJudge
	}

	if judgeID == nil {
		configured, err := s.settings.GetJudgeID(ctx)
		if err != nil {
			return nil, err
		}
		judgeID = configured
	}

	summary := &ScoreSummary{ParticipantID: participantID, JudgeID: judgeID}
	if judgeID == nil {
		summary.Result = scoring.Calculate(nil, nil, s.rubric)
		return summary, nil
	}

	scores, err := s.client.FetchParticipantScores(ctx, participantID)
	if err != nil {
		s.log.Warn("Failed to fetch participant scores", "participant", participantID, "error", err)
		return nil, err
	}

	summary.Result = scoring.Calculate(scores, judgeID, s.rubric)

	if summary.Invalid > 0 {
		s.log.Warn("Treated malformed score values as zero",
			"participant", participantID, "judge", *judgeID, "count", summary.Invalid)
		s.metrics.RecordSanitized(ReasonInvalidValue, summary.Invalid)
	}
	if summary.Unmatched > 0 {
		s.log.Warn("Ignored scores outside the rubric",
			"participant", participantID, "judge", *judgeID, "count", summary.Unmatched,
			"categories", s.rubric.Names())
		s.metrics.RecordSanitized(ReasonUnknownCategory, summary.Unmatched)
	}
	return summary, nil
}
