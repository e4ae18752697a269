// internal/matching/budget.go
package matching

const (
	budgetPenalty      = 0.7
	budgetPenaltyBelow = 0.5
	budgetReasonAbove  = 0.8
	reasonMayExceed    = "May exceed budget"
	reasonWithinBudget = "Within budget"
)

// BudgetFit grades a fee against a budget, both in whole currency units.
func BudgetFit(fee, budget int) float64 {
	f, b := float64(fee), float64(budget)
	switch {
	case f <= 0.8*b:
		return 1.0
	case f <= b:
		return 0.8
	case f <= 1.2*b:
		return 0.6
	case f <= 1.5*b:
		return 0.4
	default:
		return 0.2
	}
}

// applyBudget returns the adjusted total and the reason to append, if any.
func applyBudget(total, fit float64) (float64, string) {
	switch {
	case fit < budgetPenaltyBelow:
		return total * budgetPenalty, reasonMayExceed
	case fit > budgetReasonAbove:
		return total, reasonWithinBudget
	default:
		return total, ""
	}
}
