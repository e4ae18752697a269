// internal/matching/engine.go
package matching

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/models"
)

// DefaultTopK is the number of matches returned per call.
const DefaultTopK = 5

var (
	ErrNilCriteria  = errors.NewContractViolationError(nil, "match criteria must not be nil")
	ErrNilDirectory = errors.NewContractViolationError(nil, "lawyer directory must not be nil")
)

// ProfileSource is the read side of the lawyer directory the engine consumes.
type ProfileSource interface {
	GetAllProfiles(ctx context.Context) ([]models.LawyerProfile, error)
}

// MatchCriteria is the input of one ranking call. An empty Budget means none.
type MatchCriteria struct {
	Query        string `json:"query"`
	UserLocation string `json:"userLocation"`
	CaseType     string `json:"caseType"`
	Budget       string `json:"budget,omitempty"`
}

// ScoreBreakdown holds the factor scores, the final total and the reasons in
// the order they were triggered.
type ScoreBreakdown struct {
	Factors    map[string]float64 `json:"factors"`
	TotalScore float64            `json:"totalScore"`
	Reasons    []string           `json:"reasons"`
}

type MatchResult struct {
	Lawyer models.LawyerProfile `json:"lawyer"`
	Score  ScoreBreakdown       `json:"score"`
}

type SearchCriteria struct {
	UserQuery    string   `json:"userQuery"`
	UserLocation string   `json:"userLocation"`
	CaseType     Category `json:"caseType"`
	Budget       string   `json:"budget,omitempty"`
}

type MatchResponse struct {
	Matches        []MatchResult  `json:"matches"`
	TotalLawyers   int            `json:"totalLawyers"`
	SearchCriteria SearchCriteria `json:"searchCriteria"`
}

type Options struct {
	TopK    int
	Weights *Weights
	// Availability overrides the hash-based availability signal.
	Availability func(lawyerID string) float64
}

// Engine ranks lawyers for a query. It holds no mutable state.
type Engine struct {
	topK         int
	weights      Weights
	availability func(string) float64
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		topK:         opts.TopK,
		weights:      DefaultWeights,
		availability: opts.Availability,
	}
	if e.topK <= 0 {
		e.topK = DefaultTopK
	}
	if opts.Weights != nil {
		e.weights = *opts.Weights
	}
	if e.availability == nil {
		e.availability = AvailabilityScore
	}
	return e
}

// EffectiveCategory resolves the category used for scoring. An empty or
// general case type defers to the classifier.
func EffectiveCategory(criteria *MatchCriteria) Category {
	category, _ := ParseCategory(criteria.CaseType)
	if category == CategoryGeneral {
		return Classify(criteria.Query)
	}
	return category
}

// Score computes one lawyer's breakdown against already resolved criteria.
func (e *Engine) Score(l Lawyer, criteria *MatchCriteria, category Category) ScoreBreakdown {
	spec := SpecializationScore(l, category, criteria.Query)
	loc := LocationScore(l.Location, criteria.UserLocation)
	exp := ExperienceScore(l.ExperienceYears, category)
	rating := RatingScore(l.Rating)
	avail := e.availability(l.ID)

	factors := map[string]float64{
		FactorSpecialization: spec,
		FactorLocation:       loc,
		FactorExperience:     exp,
		FactorRating:         rating,
		FactorAvailability:   avail,
	}

	total := spec*e.weights.Specialization +
		loc*e.weights.Location +
		exp*e.weights.Experience +
		rating*e.weights.Rating +
		avail*e.weights.Availability
	total = min(total, 1.0)

	reasons := make([]string, 0, 5)
	if spec > 0.8 {
		reasons = append(reasons, fmt.Sprintf("Expert in %s", l.Specialization))
	}
	if loc == locationExact {
		reasons = append(reasons, fmt.Sprintf("Available in %s", criteria.UserLocation))
	}
	if exp > 0.8 {
		reasons = append(reasons, fmt.Sprintf("%s of experience", l.Experience))
	}
	if l.Rating >= 4.5 {
		reasons = append(reasons, "Highly rated ("+strconv.FormatFloat(l.Rating, 'f', -1, 64)+"/5.0)")
	}

	if criteria.Budget != "" {
		fit := BudgetFit(l.Fee, ParseAmount(criteria.Budget))
		factors[FactorBudget] = fit
		var reason string
		total, reason = applyBudget(total, fit)
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	return ScoreBreakdown{
		Factors:    factors,
		TotalScore: total,
		Reasons:    reasons,
	}
}

// Rank scores the pool, sorts it by total score keeping pool order on ties and
// returns at most TopK results. A nil or empty pool yields an empty list.
func (e *Engine) Rank(criteria *MatchCriteria, pool []Lawyer) ([]MatchResult, error) {
	if criteria == nil {
		return nil, ErrNilCriteria
	}
	return e.rank(criteria, EffectiveCategory(criteria), pool), nil
}

func (e *Engine) rank(criteria *MatchCriteria, category Category, pool []Lawyer) []MatchResult {
	results := make([]MatchResult, 0, len(pool))
	for _, l := range pool {
		results = append(results, MatchResult{
			Lawyer: l.LawyerProfile,
			Score:  e.Score(l, criteria, category),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score.TotalScore > results[j].Score.TotalScore
	})

	if len(results) > e.topK {
		results = results[:e.topK]
	}
	return results
}

// RankLawyers fetches a directory snapshot and ranks it.
func (e *Engine) RankLawyers(ctx context.Context, query, userLocation, caseType, budget string, directory ProfileSource) (*MatchResponse, error) {
	if directory == nil {
		return nil, ErrNilDirectory
	}

	profiles, err := directory.GetAllProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load lawyer profiles: %w", err)
	}

	criteria := &MatchCriteria{
		Query:        query,
		UserLocation: userLocation,
		CaseType:     caseType,
		Budget:       budget,
	}
	category := EffectiveCategory(criteria)

	return &MatchResponse{
		Matches:      e.rank(criteria, category, FromProfiles(profiles)),
		TotalLawyers: len(profiles),
		SearchCriteria: SearchCriteria{
			UserQuery:    query,
			UserLocation: userLocation,
			CaseType:     category,
			Budget:       budget,
		},
	}, nil
}
