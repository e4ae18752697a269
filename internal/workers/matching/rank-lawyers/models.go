// internal/workers/matching/rank-lawyers/models.go
package ranklawyers

import "legal-marketplace/internal/matching"

type Input struct {
	Query        string `json:"query"`
	UserLocation string `json:"userLocation"`
	CaseType     string `json:"caseType,omitempty"`
	Budget       string `json:"budget,omitempty"`
}

type Output struct {
	Matches        []matching.MatchResult  `json:"matches"`
	TotalLawyers   int                     `json:"totalLawyers"`
	SearchCriteria matching.SearchCriteria `json:"searchCriteria"`
	TopLawyerID    string                  `json:"topLawyerId,omitempty"`
}
