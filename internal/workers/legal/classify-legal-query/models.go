// internal/workers/legal/classify-legal-query/models.go
package classifylegalquery

import "legal-marketplace/internal/matching"

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	CaseType       matching.Category `json:"caseType"`
	Specialization string            `json:"specialization,omitempty"`
}
