// internal/matching/complexity.go
package matching

import (
	"context"
	"fmt"
	"math"
	"strings"
)

type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "low"
	ComplexityMedium ComplexityLevel = "medium"
	ComplexityHigh   ComplexityLevel = "high"
)

type CaseComplexity struct {
	Level      ComplexityLevel `json:"complexity"`
	Indicators []string        `json:"indicators"`
}

type complexityTier struct {
	level      ComplexityLevel
	indicators []string
}

var complexityTiers = []complexityTier{
	{ComplexityHigh, []string{"supreme court", "high court", "multiple parties", "criminal charges", "property dispute over", "corporate fraud"}},
	{ComplexityMedium, []string{"district court", "family court", "employment termination", "consumer complaint"}},
	{ComplexityLow, []string{"simple contract", "rent agreement", "traffic violation", "documentation"}},
}

var costMultipliers = map[ComplexityLevel]float64{
	ComplexityHigh:   1.5,
	ComplexityMedium: 1.2,
	ComplexityLow:    1.0,
}

const (
	defaultBaseFee = 2000
	billingType    = "Per consultation + case fees"
)

var commonNextSteps = []string{
	"Book initial consultation",
	"Prepare case documents",
	"Discuss legal strategy",
}

var tierNextSteps = map[ComplexityLevel][]string{
	ComplexityHigh:   {"Consider retainer agreement", "Plan for multiple court hearings"},
	ComplexityMedium: {"Explore settlement options"},
	ComplexityLow:    {"Quick resolution possible"},
}

// AnalyzeComplexity returns the first tier, from high down, with an indicator
// phrase in the description. No hit at all is medium.
func AnalyzeComplexity(description string) CaseComplexity {
	d := strings.ToLower(description)
	for _, tier := range complexityTiers {
		var hits []string
		for _, phrase := range tier.indicators {
			if strings.Contains(d, phrase) {
				hits = append(hits, phrase)
			}
		}
		if len(hits) > 0 {
			return CaseComplexity{Level: tier.level, Indicators: hits}
		}
	}
	return CaseComplexity{Level: ComplexityMedium, Indicators: []string{}}
}

type CostEstimate struct {
	Consultation  string `json:"consultation"`
	EstimatedCase string `json:"estimated_case"`
	BillingType   string `json:"billing_type"`
}

type Recommendation struct {
	Text          string       `json:"recommendation"`
	EstimatedCost CostEstimate `json:"estimatedCost"`
	NextSteps     []string     `json:"nextSteps"`
}

// Recommend builds the tier-specific text, cost estimate and next steps for a lawyer.
func Recommend(l Lawyer, c CaseComplexity) Recommendation {
	level := c.Level
	if _, ok := costMultipliers[level]; !ok {
		level = ComplexityMedium
	}
	return Recommendation{
		Text:          recommendationText(l, level),
		EstimatedCost: estimateCost(l.Fee, level),
		NextSteps:     nextSteps(level),
	}
}

func recommendationText(l Lawyer, level ComplexityLevel) string {
	switch level {
	case ComplexityHigh:
		return fmt.Sprintf("%s is highly recommended for complex cases requiring %s of expertise in %s.", l.Name, l.Experience, l.Specialization)
	case ComplexityLow:
		return fmt.Sprintf("%s can efficiently handle your matter with their practical approach to %s.", l.Name, l.Specialization)
	default:
		return fmt.Sprintf("%s has solid experience handling cases like yours with a strong track record in %s.", l.Name, l.Specialization)
	}
}

func estimateCost(fee int, level ComplexityLevel) CostEstimate {
	base := fee
	if base == 0 {
		base = defaultBaseFee
	}
	estimated := float64(base) * costMultipliers[level]
	return CostEstimate{
		Consultation:  fmt.Sprintf("₹%d", base),
		EstimatedCase: fmt.Sprintf("₹%d - ₹%d", int64(math.Round(estimated*3)), int64(math.Round(estimated*8))),
		BillingType:   billingType,
	}
}

func nextSteps(level ComplexityLevel) []string {
	steps := make([]string, 0, len(commonNextSteps)+2)
	steps = append(steps, commonNextSteps...)
	return append(steps, tierNextSteps[level]...)
}

// RecommendedMatch is a ranked lawyer enriched for a described case.
type RecommendedMatch struct {
	MatchResult
	Recommendation
}

type RecommendationResponse struct {
	Matches        []RecommendedMatch `json:"matches"`
	TotalLawyers   int                `json:"totalLawyers"`
	SearchCriteria SearchCriteria     `json:"searchCriteria"`
	Complexity     CaseComplexity     `json:"caseAnalysis"`
}

// RecommendForCase ranks lawyers using the case description as the query and
// enriches every match with the complexity-driven recommendation.
func (e *Engine) RecommendForCase(ctx context.Context, description, location, caseType, budget string, directory ProfileSource) (*RecommendationResponse, error) {
	if location == "" {
		location = "Delhi"
	}
	if caseType == "" {
		caseType = string(CategoryGeneral)
	}

	complexity := AnalyzeComplexity(description)

	resp, err := e.RankLawyers(ctx, description, location, caseType, budget, directory)
	if err != nil {
		return nil, err
	}

	matches := make([]RecommendedMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, RecommendedMatch{
			MatchResult:    m,
			Recommendation: Recommend(FromProfile(m.Lawyer), complexity),
		})
	}

	return &RecommendationResponse{
		Matches:        matches,
		TotalLawyers:   resp.TotalLawyers,
		SearchCriteria: resp.SearchCriteria,
		Complexity:     complexity,
	}, nil
}
