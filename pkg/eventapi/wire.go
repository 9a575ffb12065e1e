package eventapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abrezinsky/judgedesk/internal/models"
)

// FlexString is a string that can be unmarshaled from either a string or a number.
// Score values arrive as "7.50" from some endpoints and 7.5 from others.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler for FlexString
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	return fmt.Errorf("FlexString: cannot unmarshal %s", string(data))
}

func (f FlexString) String() string {
	return string(f)
}

// FlexFloat is a number that may be sent as a numeric string
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler for FlexFloat
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = FlexFloat(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("FlexFloat: cannot unmarshal %s", string(data))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("FlexFloat: cannot parse %q", s)
	}
	// "NaN" and "Inf" parse but cannot be encoded again
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	*f = FlexFloat(v)
	return nil
}

type wireCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required"`
}

type wireCriteria struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Category *wireCategory `json:"category" validate:"required"`
}

type wireScore struct {
	ID         int           `json:"id"`
	Judge      int           `json:"judge" validate:"required"`
	Contestant int           `json:"contestant" validate:"required"`
	Criteria   *wireCriteria `json:"criteria" validate:"required"`
	Score      FlexString    `json:"score"`
}

func (w wireScore) model() models.Score {
	return models.Score{
		ID:         w.ID,
		Judge:      w.Judge,
		Contestant: w.Contestant,
		Criteria: models.Criteria{
			ID:   w.Criteria.ID,
			Name: w.Criteria.Name,
			Category: models.CategoryRef{
				ID:   w.Criteria.Category.ID,
				Name: w.Criteria.Category.Name,
			},
		},
		Value: w.Score.String(),
	}
}

// wireProgress leaves every field optional; absent counters read as 0
type wireProgress struct {
	Program              *int       `json:"program"`
	ScoredCount          *int       `json:"scored_count" validate:"omitempty,min=0"`
	TotalAssigned        *int       `json:"total_assigned" validate:"omitempty,min=0"`
	Remaining            *int       `json:"remaining" validate:"omitempty,min=0"`
	CompletionPercentage *FlexFloat `json:"completion_percentage"`
}

func (w wireProgress) model() *models.Progress {
	p := &models.Progress{}
	if w.Program != nil {
		p.Program = *w.Program
	}
	if w.ScoredCount != nil {
		p.ScoredCount = *w.ScoredCount
	}
	if w.TotalAssigned != nil {
		p.TotalAssigned = *w.TotalAssigned
	}
	if w.Remaining != nil {
		p.Remaining = *w.Remaining
	}
	if w.CompletionPercentage != nil {
		p.CompletionPercentage = float64(*w.CompletionPercentage)
	}
	return p
}

type wireJudgingScore struct {
	ID          int    `json:"id" validate:"required"`
	Contestant  int    `json:"contestant"`
	Program     int    `json:"program"`
	SubmittedAt string `json:"submitted_at" validate:"required"`
}

func (w wireJudgingScore) model() models.JudgingScore {
	return models.JudgingScore{ID: w.ID, Contestant: w.Contestant, Program: w.Program, SubmittedAt: w.SubmittedAt}
}

type wireAssignment struct {
	Program     int    `json:"program" validate:"required"`
	ProgramName string `json:"program_name"`
}

func (w wireAssignment) model() models.Assignment {
	return models.Assignment{Program: w.Program, ProgramName: w.ProgramName}
}

type wireParticipant struct {
	ID            int    `json:"id" validate:"required"`
	Name          string `json:"name"`
	Program       int    `json:"program"`
	Phone         string `json:"phone"`
	PaymentStatus string `json:"payment_status"`
}

func (w wireParticipant) model() models.Participant {
	status := w.PaymentStatus
	if status == "" {
		status = models.PaymentPending
	}
	return models.Participant{ID: w.ID, Name: w.Name, Program: w.Program, Phone: w.Phone, PaymentStatus: status}
}

// decodeList splits a bare JSON array or a paginated {"results": [...]}
// envelope into raw records. Records are decoded one by one by the caller.
func decodeList(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}

	var items []json.RawMessage
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var page struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
