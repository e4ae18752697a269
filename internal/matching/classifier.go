// internal/matching/classifier.go
package matching

import "strings"

// Classify assigns a query to the first category whose keyword list has a
// substring hit, or general when none does. It is a keyword filter, not NLU:
// "firm" matches "fir" and that is accepted.
func Classify(query string) Category {
	q := strings.ToLower(query)
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}
