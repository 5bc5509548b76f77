package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"absence-tracker/internal/models"
	"absence-tracker/internal/repository"
)

func TestSummarize(t *testing.T) {
	summary := Summarize([]repository.StatusCount{
		{Status: models.StatusPresent, Count: 3},
		{Status: models.StatusAbsent, Count: 1},
	})

	assert.Equal(t, int64(4), summary.TotalReports)
	assert.Equal(t, []repository.StatusCount{
		{Status: models.StatusPresent, Count: 3},
		{Status: models.StatusAbsent, Count: 1},
	}, summary.StatusBreakdown)

	// No synthetic zero entries for unused statuses.
	for _, c := range summary.StatusBreakdown {
		assert.NotZero(t, c.Count)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	assert.Zero(t, summary.TotalReports)
	assert.NotNil(t, summary.StatusBreakdown)
	assert.Empty(t, summary.StatusBreakdown)
}
