// Package scoring turns one judge's raw per-criterion scores into rubric
// category totals and a grand total.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/abrezinsky/judgedesk/internal/models"
	"github.com/abrezinsky/judgedesk/internal/rubric"
)

// CategoryTotal is the derived score for one rubric category
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Score    float64 `json:"score"`
	Icon     string  `json:"icon"`
}

// Result is a judge's aggregated view of one participant
type Result struct {
	ScoresByCategory []CategoryTotal `json:"scores_by_category"`
	TotalScore       float64         `json:"total_score"`
	TotalPossible    float64         `json:"total_possible"`
	// Invalid counts the judge's scores whose value was not a finite decimal
	Invalid int `json:"invalid"`
	// Unmatched counts the judge's scores whose category is not in the rubric
	Unmatched int `json:"unmatched"`
}

// Calculate aggregates the scores given by judgeID. Other judges' scores never
// contribute. A nil judgeID aggregates nothing.
func Calculate(scores []models.Score, judgeID *int, r rubric.Rubric) Result {
	res := Result{
		ScoresByCategory: make([]CategoryTotal, len(r.Categories)),
		TotalPossible:    r.TotalPossible(),
	}
	for i, c := range r.Categories {
		res.ScoresByCategory[i] = CategoryTotal{Category: c.Name, Total: c.Max, Icon: c.Icon}
	}

	if judgeID != nil {
		for _, s := range scores {
			if s.Judge != *judgeID {
				continue
			}
			idx, ok := r.Lookup(s.Criteria.Category.Name)
			if !ok {
				res.Unmatched++
				continue
			}
			v, ok := ParseValue(s.Value)
			if !ok {
				res.Invalid++
				continue
			}
			res.ScoresByCategory[idx].Score += v
		}
	}

	for _, c := range res.ScoresByCategory {
		res.TotalScore += c.Score
	}
	return res
}

// ParseValue parses a decimal score string. NaN, infinities and anything
// ParseFloat rejects are reported as not ok.
func ParseValue(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
