// Package report assembles aggregated results into serialization-ready
// documents and drives the fetch-normalize-aggregate pipeline behind them.
package report

import (
	"time"

	"github.com/dispatchly/agentreport/internal/types"
)

// BuildSingleAgentReport assembles one agent's summary, optional detail rows
// and collected warnings into a ReportDocument. Pure assembly, no I/O; the
// generation timestamp is an argument so tests can pin it.
func BuildSingleAgentReport(tenantID, agentID, dateFrom, dateTo string, generatedAt time.Time,
	summary types.AgentSummary, rows []types.RawRecord, warnings []types.DataQualityWarning) types.ReportDocument {

	return types.ReportDocument{
		GeneratedAt: generatedAt,
		TenantID:    tenantID,
		Filters: types.ReportFilters{
			AgentID:  agentID,
			DateFrom: dateFrom,
			DateTo:   dateTo,
		},
		Groups:   []types.AgentSummary{summary},
		Rows:     rows,
		Warnings: warnings,
	}
}

// BuildMultiAgentReport assembles one row per agent. Group order follows the
// grouper's agent-encounter order; with a date-descending store query that
// reads as most recently active agent first, and it is deliberately not
// re-sorted so exports with identical filters stay diffable.
func BuildMultiAgentReport(tenantID, dateFrom, dateTo string, generatedAt time.Time,
	groups []types.AgentSummary, rows []types.RawRecord, warnings []types.DataQualityWarning) types.ReportDocument {

	return types.ReportDocument{
		GeneratedAt: generatedAt,
		TenantID:    tenantID,
		Filters: types.ReportFilters{
			DateFrom: dateFrom,
			DateTo:   dateTo,
		},
		Groups:   groups,
		Rows:     rows,
		Warnings: warnings,
	}
}
