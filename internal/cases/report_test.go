// internal/cases/report_test.go
package cases

import (
	"testing"
	"time"

	"legal-marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport_FreshCase(t *testing.T) {
	now := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	c := &models.Case{
		ID:        "case-1",
		Title:     "Deposit recovery",
		Status:    models.CaseCreated,
		CaseType:  "property",
		Priority:  "medium",
		Insights:  models.CaseInsights{SuccessProbability: 0.7},
		CreatedAt: now.Add(-36 * time.Hour),
	}

	r := BuildReport(c, now)
	assert.Equal(t, 10, r.Progress)
	assert.Equal(t, 2, r.Summary.DaysActive)
	assert.NotNil(t, r.Timeline)

	require.Len(t, r.NextActions, 1)
	assert.Equal(t, "Upload Case Documents", r.NextActions[0].Title)
	require.Len(t, r.RiskFactors, 1)
	assert.Equal(t, "communication", r.RiskFactors[0].Type)
	assert.Empty(t, r.Recommendations)
}

func TestBuildReport_StaleOverdueCriminal(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c := &models.Case{
		ID:       "case-2",
		Status:   models.CaseCreated,
		CaseType: "criminal",
		Priority: "high",
		Insights: models.CaseInsights{SuccessProbability: 0.4},
		Deadlines: []models.Deadline{
			{Title: "Bail hearing", DueDate: now.Add(-48 * time.Hour), Status: models.DeadlineActive},
			{Title: "Charge sheet", DueDate: now.Add(-24 * time.Hour), Status: models.DeadlineActive},
			{Title: "Done", DueDate: now.Add(-24 * time.Hour), Status: models.DeadlineCompleted},
			{Title: "Trial", DueDate: now.Add(240 * time.Hour), Status: models.DeadlineActive},
		},
		CreatedAt: now.AddDate(0, 0, -45),
	}

	r := BuildReport(c, now)
	assert.Equal(t, 3, r.Summary.ActiveDeadlines)
	assert.Equal(t, 45, r.Summary.DaysActive)

	require.Len(t, r.NextActions, 2)
	assert.Equal(t, "Address Overdue Deadlines", r.NextActions[0].Title)
	assert.Equal(t, "2 deadline(s) are overdue", r.NextActions[0].Description)
	assert.Equal(t, "high", r.NextActions[0].Priority)

	require.Len(t, r.RiskFactors, 2)
	assert.Equal(t, "delay", r.RiskFactors[0].Type)

	require.Len(t, r.Recommendations, 2)
	assert.Equal(t, "Expedite Evidence Collection", r.Recommendations[0].Title)
	assert.Equal(t, "Consider Settlement", r.Recommendations[1].Title)
}

func TestBuildReport_StaleButProgressedIsNotDelayed(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c := &models.Case{
		Status:         models.CaseInProgress,
		Insights:       models.CaseInsights{SuccessProbability: 0.7},
		Communications: []models.Communication{{Type: "call"}},
		Documents:      []models.CaseDocument{{Name: "a"}},
		CreatedAt:      now.AddDate(0, -3, 0),
	}

	r := BuildReport(c, now)
	assert.Equal(t, 40, r.Progress)
	assert.Empty(t, r.NextActions)
	assert.Empty(t, r.RiskFactors)
}

func TestProgressFor(t *testing.T) {
	assert.Equal(t, 20, ProgressFor(models.CaseAssigned))
	assert.Equal(t, 80, ProgressFor(models.CaseAwaitingClient))
	assert.Equal(t, 100, ProgressFor(models.CaseCompleted))
	assert.Equal(t, 0, ProgressFor("unknown"))
}
