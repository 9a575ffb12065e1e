// Package progress derives a judge's completion view for one program from the
// event API's progress snapshot and the judge's own submissions.
package progress

import (
	"math"
	"time"

	"github.com/abrezinsky/judgedesk/internal/models"
)

// State is a presentational label recomputed on every call
type State string

const (
	StateNoAssignment State = "no_assignment"
	StateLoading      State = "loading"
	StateNoData       State = "no_data"
	StateReady        State = "ready"
	StateAlmostDone   State = "almost_done"
	StateComplete     State = "complete"
)

// AlmostDoneThreshold is the largest remaining count shown as almost done
const AlmostDoneThreshold = 3

// Input is everything Derive reads
type Input struct {
	// Selected is false until the judge picks a program
	Selected bool
	Loading  bool
	// Progress is nil before the first successful fetch or after a failed one
	Progress *models.Progress
	MyScores []models.JudgingScore
	Now      time.Time
}

// View is the read-only completion state
type View struct {
	State       State   `json:"state"`
	Completion  float64 `json:"completion"`
	Scored      int     `json:"scored"`
	Total       int     `json:"total"`
	Remaining   int     `json:"remaining"`
	ScoresToday int     `json:"scores_today"`
	HasData     bool    `json:"has_data"`
	Complete    bool    `json:"complete"`
	AlmostDone  bool    `json:"almost_done"`
	// Consistent is false when completion disagrees with scored/total
	Consistent bool `json:"consistent"`
}

// Derive computes the view. It never fails; missing data yields zeros.
func Derive(in Input) View {
	v := View{Consistent: true}
	if p := in.Progress; p != nil {
		v.HasData = true
		v.Completion = p.CompletionPercentage
		if math.IsNaN(v.Completion) || math.IsInf(v.Completion, 0) {
			v.Completion = 0
		}
		v.Scored = p.ScoredCount
		v.Total = p.TotalAssigned
		v.Remaining = p.Remaining
		if v.Total > 0 {
			expected := float64(v.Scored) / float64(v.Total) * 100
			v.Consistent = math.Abs(expected-v.Completion) < 0.01
		}
	}
	v.ScoresToday = CountOnDay(in.MyScores, in.Now)
	v.Complete = v.Completion == 100
	v.AlmostDone = v.Remaining > 0 && v.Remaining <= AlmostDoneThreshold

	switch {
	case !in.Selected:
		v.State = StateNoAssignment
	case in.Loading:
		v.State = StateLoading
	case !v.HasData:
		v.State = StateNoData
	case v.Complete:
		v.State = StateComplete
	case v.AlmostDone:
		v.State = StateAlmostDone
	default:
		v.State = StateReady
	}
	return v
}

// CountOnDay counts submissions whose timestamp falls on now's calendar date
// in now's location. Time of day is ignored and unparsable timestamps are skipped.
func CountOnDay(scores []models.JudgingScore, now time.Time) int {
	if now.IsZero() {
		return 0
	}
	loc := now.Location()
	y, m, d := now.Date()

	n := 0
	for _, s := range scores {
		t, ok := ParseTimestamp(s.SubmittedAt, loc)
		if !ok {
			continue
		}
		sy, sm, sd := t.In(loc).Date()
		if sy == y && sm == m && sd == d {
			n++
		}
	}
	return n
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts ISO-8601 timestamps with or without a zone, and
// bare dates. Zoneless values are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
