// Package aggregate folds normalized attendance records into per-agent
// summaries and partitions multi-agent record sets into ordered groups.
package aggregate

import (
	"math"

	"github.com/dispatchly/agentreport/internal/types"
)

// Aggregate reduces a set of normalized records to one AgentSummary.
// The fold is associative and commutative: input order never changes the
// result. An empty input yields a zero-valued summary, which is how
// "no records in range" is represented (a valid result, not an error).
func Aggregate(records []types.NormalizedRecord) types.AgentSummary {
	var summary types.AgentSummary
	days := make(map[string]struct{})

	for _, r := range records {
		if summary.AgentID == "" {
			summary.AgentID = r.AgentID
		}
		days[r.Date] = struct{}{}

		summary.TotalWorkingSeconds += r.WorkingSeconds
		summary.TotalCallSeconds += r.CallSeconds
		summary.TotalBreakSeconds += r.BreakSeconds
		summary.TotalOrders += r.NormalOrders + r.ScheduledOrders + r.AssignedOrders
		summary.TotalCancellations += r.EmployeeCancellations + r.CustomerCancellations
		summary.TotalAppIntents += r.AppIntents
	}

	summary.ActiveDayCount = len(days)
	summary.EfficiencyScore = EfficiencyScore(summary.TotalOrders, summary.TotalCancellations)
	return summary
}

// EfficiencyScore is the integer percentage of completed orders over
// orders plus cancellations. A zero denominator scores 0, never NaN.
// Both terms are non-negative, so the result is in [0,100] by construction.
func EfficiencyScore(orders, cancellations int) int {
	if orders+cancellations == 0 {
		return 0
	}
	return int(math.Round(100 * float64(orders) / float64(orders+cancellations)))
}
