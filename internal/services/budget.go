package services

// BudgetReport compares a route's planned workload to a daily time budget.
type BudgetReport struct {
	TotalMinutes   int
	OverBudget     bool
	OverageMinutes int
}

// EvaluateBudget sums visit and travel minutes and compares the total against
// the daily budget. Pure arithmetic; exceeding the budget is a finding, not
// an error.
func EvaluateBudget(visitMinutes, travelMinutes, maxDailyMinutes int) BudgetReport {
	total := visitMinutes + travelMinutes

	overage := total - maxDailyMinutes
	if overage < 0 {
		overage = 0
	}

	return BudgetReport{
		TotalMinutes:   total,
		OverBudget:     total > maxDailyMinutes,
		OverageMinutes: overage,
	}
}
