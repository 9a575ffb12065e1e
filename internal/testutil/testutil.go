package testutil

import (
	"testing"

	"github.com/abrezinsky/judgedesk/internal/models"
	"github.com/abrezinsky/judgedesk/internal/repository"
)

// NewTestRepository creates a new in-memory repository for testing.
// Each call creates a fresh database with all migrations applied.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

// Score builds a score for one criterion in the named category
func Score(judge, contestant int, category, value string) models.Score {
	return models.Score{
		Judge:      judge,
		Contestant: contestant,
		Criteria: models.Criteria{
			Name:     category + " criterion",
			Category: models.CategoryRef{Name: category},
		},
		Value: value,
	}
}

// IntPtr returns a pointer to i
func IntPtr(i int) *int {
	return &i
}
