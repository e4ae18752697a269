// internal/cases/report.go
package cases

import (
	"context"
	"fmt"
	"math"
	"time"

	"legal-marketplace/internal/matching"
	"legal-marketplace/internal/models"
)

const (
	staleCaseDays            = 30
	settlementProbabilityCut = 0.5
)

type Report struct {
	CaseID          string                 `json:"caseId"`
	Title           string                 `json:"title"`
	Status          models.CaseStatus      `json:"status"`
	Progress        int                    `json:"progress"`
	Summary         ReportSummary          `json:"summary"`
	Timeline        []models.TimelineEvent `json:"timeline"`
	Insights        models.CaseInsights    `json:"aiInsights"`
	NextActions     []NextAction           `json:"nextActions"`
	RiskFactors     []RiskFactor           `json:"riskFactors"`
	Recommendations []Recommendation       `json:"recommendations"`
}

type ReportSummary struct {
	TotalDocuments      int `json:"totalDocuments"`
	TotalCommunications int `json:"totalCommunications"`
	ActiveDeadlines     int `json:"activeDeadlines"`
	DaysActive          int `json:"daysActive"`
}

type NextAction struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type RiskFactor struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

type Recommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (m *Manager) GenerateReport(ctx context.Context, id string) (*Report, error) {
	c, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildReport(c, m.now()), nil
}

// BuildReport summarizes a case as of now.
func BuildReport(c *models.Case, now time.Time) *Report {
	active := 0
	for _, d := range c.Deadlines {
		if d.Status == models.DeadlineActive {
			active++
		}
	}

	days := daysActive(c.CreatedAt, now)
	timeline := c.Timeline
	if timeline == nil {
		timeline = []models.TimelineEvent{}
	}

	return &Report{
		CaseID:   c.ID,
		Title:    c.Title,
		Status:   c.Status,
		Progress: ProgressFor(c.Status),
		Summary: ReportSummary{
			TotalDocuments:      len(c.Documents),
			TotalCommunications: len(c.Communications),
			ActiveDeadlines:     active,
			DaysActive:          days,
		},
		Timeline:        timeline,
		Insights:        c.Insights,
		NextActions:     nextActions(c, now),
		RiskFactors:     riskFactors(c, days),
		Recommendations: recommendations(c),
	}
}

func daysActive(created, now time.Time) int {
	if created.IsZero() || !now.After(created) {
		return 0
	}
	return int(math.Ceil(now.Sub(created).Hours() / 24))
}

func nextActions(c *models.Case, now time.Time) []NextAction {
	actions := []NextAction{}

	overdue := 0
	for _, d := range c.Deadlines {
		if d.Status == models.DeadlineActive && d.DueDate.Before(now) {
			overdue++
		}
	}
	if overdue > 0 {
		actions = append(actions, NextAction{
			Type:        "urgent",
			Title:       "Address Overdue Deadlines",
			Description: fmt.Sprintf("%d deadline(s) are overdue", overdue),
			Priority:    "high",
		})
	}

	if len(c.Documents) == 0 {
		actions = append(actions, NextAction{
			Type:        "documentation",
			Title:       "Upload Case Documents",
			Description: "No documents have been uploaded for this case",
			Priority:    "medium",
		})
	}
	return actions
}

func riskFactors(c *models.Case, days int) []RiskFactor {
	risks := []RiskFactor{}
	if days > staleCaseDays && c.Status == models.CaseCreated {
		risks = append(risks, RiskFactor{
			Type:        "delay",
			Severity:    "high",
			Description: "Case has been inactive for over 30 days",
		})
	}
	if len(c.Communications) == 0 {
		risks = append(risks, RiskFactor{
			Type:        "communication",
			Severity:    "medium",
			Description: "No communication recorded between client and lawyer",
		})
	}
	return risks
}

func recommendations(c *models.Case) []Recommendation {
	recs := []Recommendation{}
	if c.CaseType == string(matching.CategoryCriminal) && c.Priority == "high" {
		recs = append(recs, Recommendation{
			Type:        "strategy",
			Title:       "Expedite Evidence Collection",
			Description: "Given the high priority criminal case, focus on gathering evidence quickly",
		})
	}
	if c.Insights.SuccessProbability < settlementProbabilityCut {
		recs = append(recs, Recommendation{
			Type:        "strategy",
			Title:       "Consider Settlement",
			Description: "Low success probability suggests exploring settlement options",
		})
	}
	return recs
}
