// internal/workers/legal/analyze-case-complexity/models.go
package analyzecasecomplexity

import "legal-marketplace/internal/matching"

type Input struct {
	CaseDescription string `json:"caseDescription"`
	LawyerID        string `json:"lawyerId,omitempty"`
}

// Output carries a recommendation only when a lawyer was named in the input.
type Output struct {
	Complexity     matching.ComplexityLevel `json:"complexity"`
	Indicators     []string                 `json:"indicators"`
	Recommendation *matching.Recommendation `json:"recommendation,omitempty"`
}
