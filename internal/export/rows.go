// Package export flattens report documents into the tabular and label/value
// shapes the exporter collaborators consume. Column names and order are
// stable across calls with identical filters, so exported artifacts diff
// cleanly.
package export

import (
	"strconv"

	"github.com/dispatchly/agentreport/internal/timecodec"
	"github.com/dispatchly/agentreport/internal/types"
)

// SummaryHeader is the column set for one-row-per-agent exports
var SummaryHeader = []string{
	"Agent ID", "Active Days", "Working Time", "Call Time", "Break Time",
	"Orders", "Cancellations", "App Intents", "Efficiency %",
}

// DetailHeader is the column set for one-row-per-record exports
var DetailHeader = []string{
	"Agent ID", "Date", "Login", "Logout", "Call (min)", "Break (min)",
	"Normal", "Scheduled", "Assigned", "App Intent", "Emp Cancel", "Cust Cancel",
}

// SummaryRows renders one row per agent group
func SummaryRows(doc types.ReportDocument) [][]string {
	rows := make([][]string, 0, len(doc.Groups))
	for _, g := range doc.Groups {
		rows = append(rows, []string{
			g.AgentID,
			strconv.Itoa(g.ActiveDayCount),
			timecodec.FormatDuration(g.TotalWorkingSeconds),
			timecodec.FormatDuration(g.TotalCallSeconds),
			timecodec.FormatDuration(g.TotalBreakSeconds),
			strconv.Itoa(g.TotalOrders),
			strconv.Itoa(g.TotalCancellations),
			strconv.Itoa(g.TotalAppIntents),
			strconv.Itoa(g.EfficiencyScore),
		})
	}
	return rows
}

// DetailRows renders one row per underlying raw record, keeping the
// document's row order. Absent time fields export as "-" so gaps stay
// visible in the file.
func DetailRows(doc types.ReportDocument) [][]string {
	rows := make([][]string, 0, len(doc.Rows))
	for _, r := range doc.Rows {
		rows = append(rows, []string{
			r.AgentID,
			r.Date,
			orDash(r.LoginTime),
			orDash(r.LogoutTime),
			orDash(r.CallTime),
			orDash(r.BreakTime),
			counter(r.NormalOrders),
			counter(r.ScheduledOrders),
			counter(r.AssignedOrders),
			counter(r.AppIntents),
			counter(r.EmployeeCancellations),
			counter(r.CustomerCancellations),
		})
	}
	return rows
}

// Pair is one labeled metric for PDF-style single-agent documents
type Pair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// MetricPairs renders a single-agent document as an ordered label/value list
func MetricPairs(doc types.ReportDocument) []Pair {
	if len(doc.Groups) == 0 {
		return nil
	}
	g := doc.Groups[0]

	return []Pair{
		{Label: "Agent", Value: g.AgentID},
		{Label: "Period", Value: doc.Filters.DateFrom + " to " + doc.Filters.DateTo},
		{Label: "Active Days", Value: strconv.Itoa(g.ActiveDayCount)},
		{Label: "Working Time", Value: timecodec.FormatDuration(g.TotalWorkingSeconds)},
		{Label: "Call Time", Value: timecodec.FormatDuration(g.TotalCallSeconds)},
		{Label: "Break Time", Value: timecodec.FormatDuration(g.TotalBreakSeconds)},
		{Label: "Orders", Value: strconv.Itoa(g.TotalOrders)},
		{Label: "Cancellations", Value: strconv.Itoa(g.TotalCancellations)},
		{Label: "App Intents", Value: strconv.Itoa(g.TotalAppIntents)},
		{Label: "Efficiency", Value: strconv.Itoa(g.EfficiencyScore) + "%"},
	}
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func counter(p *int) string {
	if p == nil {
		return "0"
	}
	return strconv.Itoa(*p)
}
