package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abrezinsky/judgedesk/internal/models"
	"github.com/abrezinsky/judgedesk/internal/rubric"
)

func score(judge int, category, value string) models.Score {
	return models.Score{
		Judge:      judge,
		Contestant: 7,
		Criteria:   models.Criteria{Name: category + " criterion", Category: models.CategoryRef{Name: category}},
		Value:      value,
	}
}

func intPtr(i int) *int { return &i }

func categoryTotal(r Result, name string) (CategoryTotal, bool) {
	for _, c := range r.ScoresByCategory {
		if c.Category == name {
			return c, true
		}
	}
	return CategoryTotal{}, false
}

func TestCalculate_SumsMatchingCategory(t *testing.T) {
	scores := []models.Score{score(1, "Fun", "10"), score(1, "Fun", "5")}

	res := Calculate(scores, intPtr(1), rubric.Default())

	fun, ok := categoryTotal(res, "Fun")
	if !ok {
		t.Fatal("expected Fun category")
	}
	if fun.Score != 15 {
		t.Errorf("expected Fun score 15, got %v", fun.Score)
	}
	if fun.Total != 50 {
		t.Errorf("expected Fun total 50, got %v", fun.Total)
	}
	if res.TotalScore != 15 {
		t.Errorf("expected total 15, got %v", res.TotalScore)
	}
}

func TestCalculate_OtherJudgeNeverContributes(t *testing.T) {
	scores := []models.Score{score(1, "Fun", "10"), score(1, "Fun", "5")}

	res := Calculate(scores, intPtr(2), rubric.Default())

	for _, c := range res.ScoresByCategory {
		if c.Score != 0 {
			t.Errorf("category %s: expected 0, got %v", c.Category, c.Score)
		}
	}
	if res.TotalScore != 0 {
		t.Errorf("expected total 0, got %v", res.TotalScore)
	}
}

func TestCalculate_NilJudge(t *testing.T) {
	scores := []models.Score{score(1, "Fun", "10"), score(0, "Function", "3")}

	res := Calculate(scores, nil, rubric.Default())

	if res.TotalScore != 0 {
		t.Errorf("expected 0 for nil judge, got %v", res.TotalScore)
	}
	if res.TotalPossible != 180 {
		t.Errorf("expected 180, got %v", res.TotalPossible)
	}
	if len(res.ScoresByCategory) != 4 {
		t.Errorf("expected 4 categories, got %d", len(res.ScoresByCategory))
	}
}

func TestCalculate_TotalPossibleIsConstant(t *testing.T) {
	inputs := [][]models.Score{
		nil,
		{},
		{score(1, "Fun", "10")},
		{score(1, "Unknown", "9"), score(1, "Function", "abc")},
		{score(3, "Creativity & Innovation", "8.5")},
	}
	for i, in := range inputs {
		if got := Calculate(in, intPtr(1), rubric.Default()).TotalPossible; got != 180 {
			t.Errorf("input %d: expected 180, got %v", i, got)
		}
	}
}

func TestCalculate_UnknownCategoryDropped(t *testing.T) {
	scores := []models.Score{score(1, "Aesthetics", "9"), score(1, "fun", "4"), score(1, "Function", "2")}

	res := Calculate(scores, intPtr(1), rubric.Default())

	if res.TotalScore != 2 {
		t.Errorf("expected only Function to count, got total %v", res.TotalScore)
	}
	if res.Unmatched != 2 {
		t.Errorf("expected 2 unmatched, got %d", res.Unmatched)
	}
}

func TestCalculate_MalformedValuesCountAsZero(t *testing.T) {
	scores := []models.Score{
		score(1, "Fun", "abc"),
		score(1, "Fun", "NaN"),
		score(1, "Fun", "Inf"),
		score(1, "Fun", ""),
		score(1, "Fun", " 7.5 "),
		score(1, "Engineering and Crafting", "2.25"),
	}

	res := Calculate(scores, intPtr(1), rubric.Default())

	if res.Invalid != 4 {
		t.Errorf("expected 4 invalid, got %d", res.Invalid)
	}
	if res.TotalScore != 9.75 {
		t.Errorf("expected 9.75, got %v", res.TotalScore)
	}
}

func TestCalculate_FixedOrderAndIcons(t *testing.T) {
	res := Calculate(nil, intPtr(1), rubric.Default())

	want := []CategoryTotal{
		{Category: "Fun", Total: 50, Icon: "party-popper"},
		{Category: "Function", Total: 40, Icon: "cog"},
		{Category: "Engineering and Crafting", Total: 40, Icon: "wrench"},
		{Category: "Creativity & Innovation", Total: 50, Icon: "lightbulb"},
	}
	if diff := cmp.Diff(want, res.ScoresByCategory); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	scores := []models.Score{
		score(1, "Fun", "10"),
		score(2, "Fun", "3"),
		score(1, "Creativity & Innovation", "8"),
		score(1, "Function", "x"),
	}

	first := Calculate(scores, intPtr(1), rubric.Default())
	second := Calculate(scores, intPtr(1), rubric.Default())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated calls differ (-first +second):\n%s", diff)
	}
	if scores[0].Value != "10" {
		t.Error("input must not be modified")
	}
}

func TestCalculate_CustomRubric(t *testing.T) {
	r := rubric.Rubric{Categories: []rubric.Category{{Name: "Safety", Max: 25}}}
	scores := []models.Score{score(4, "Safety", "6"), score(4, "Fun", "10")}

	res := Calculate(scores, intPtr(4), r)

	if res.TotalPossible != 25 || res.TotalScore != 6 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10", 10, true},
		{"0", 0, true},
		{"7.25", 7.25, true},
		{"1e1", 10, true},
		{"", 0, false},
		{"ten", 0, false},
		{"NaN", 0, false},
		{"-Inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseValue(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseValue(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
