package handlers

import "github.com/abrezinsky/judgedesk/internal/rubric"

// RubricResponse is the response for the scoring rubric
type RubricResponse struct {
	Categories    []rubric.Category `json:"categories"`
	TotalPossible float64           `json:"total_possible"`
}

// JudgeLinkResponse is the response for the judge link
type JudgeLinkResponse struct {
	URL string `json:"url"`
}

// HealthResponse is the response for health checks
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
