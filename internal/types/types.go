package types

import "time"

// DateLayout is the calendar-date format used for record keys and filters
const DateLayout = "2006-01-02"

// AgentIDAll selects every agent of a tenant in a fetch
const AgentIDAll = "ALL"

// RawRecord is one attendance/activity row for one agent on one date,
// exactly as stored. Time-of-day and minutes fields are kept as text because
// the upstream attendance system writes them inconsistently (empty, missing,
// or free-form); counters are pointers so absent and zero stay distinct.
type RawRecord struct {
	TenantID string `json:"tenantId" dynamodbav:"TenantID"` // partition key
	SortKey  string `json:"-" dynamodbav:"SortKey"`         // date#agentId#recordId
	RecordID string `json:"recordId" dynamodbav:"RecordID"`
	AgentID  string `json:"agentId" dynamodbav:"AgentID"`
	Date     string `json:"date" dynamodbav:"Date"` // YYYY-MM-DD

	LoginTime  string `json:"loginTime,omitempty" dynamodbav:"LoginTime"`   // HH:MM:SS, empty for open session
	LogoutTime string `json:"logoutTime,omitempty" dynamodbav:"LogoutTime"` // HH:MM:SS
	CallTime   string `json:"callTime,omitempty" dynamodbav:"CallTime"`     // whole minutes as text
	BreakTime  string `json:"breakTime,omitempty" dynamodbav:"BreakTime"`   // whole minutes as text

	NormalOrders          *int `json:"normalOrders,omitempty" dynamodbav:"NormalOrders"`
	ScheduledOrders       *int `json:"scheduledOrders,omitempty" dynamodbav:"ScheduledOrders"`
	AssignedOrders        *int `json:"assignedOrders,omitempty" dynamodbav:"AssignedOrders"`
	AppIntents            *int `json:"appIntents,omitempty" dynamodbav:"AppIntents"`
	EmployeeCancellations *int `json:"employeeCancellations,omitempty" dynamodbav:"EmployeeCancellations"`
	CustomerCancellations *int `json:"customerCancellations,omitempty" dynamodbav:"CustomerCancellations"`
}

// NormalizedRecord is a RawRecord with every optional field canonicalized:
// counters defaulted to zero, minutes fields converted to seconds, and the
// session duration derived. WorkingSeconds may be negative for an inverted
// session (logout before login); that is preserved, not clamped, so data
// defects stay visible downstream.
type NormalizedRecord struct {
	AgentID string `json:"agentId"`
	Date    string `json:"date"`

	WorkingSeconds int `json:"workingSeconds"`
	CallSeconds    int `json:"callSeconds"`
	BreakSeconds   int `json:"breakSeconds"`

	NormalOrders          int `json:"normalOrders"`
	ScheduledOrders       int `json:"scheduledOrders"`
	AssignedOrders        int `json:"assignedOrders"`
	AppIntents            int `json:"appIntents"`
	EmployeeCancellations int `json:"employeeCancellations"`
	CustomerCancellations int `json:"customerCancellations"`
}

// AgentSummary is one aggregate per agent over a requested date range.
// Constructed fresh per report request and never persisted; the record
// store stays the single source of truth.
type AgentSummary struct {
	AgentID             string `json:"agentId"`
	ActiveDayCount      int    `json:"activeDayCount"`
	TotalWorkingSeconds int    `json:"totalWorkingSeconds"`
	TotalCallSeconds    int    `json:"totalCallSeconds"`
	TotalBreakSeconds   int    `json:"totalBreakSeconds"`
	TotalOrders         int    `json:"totalOrders"`        // normal + scheduled + assigned
	TotalCancellations  int    `json:"totalCancellations"` // employee + customer
	TotalAppIntents     int    `json:"totalAppIntents"`    // informational, not part of the score
	EfficiencyScore     int    `json:"efficiencyScore"`    // 0-100
}

// WarningReason classifies a per-record data-quality finding
type WarningReason string

const (
	WarnInvertedSession WarningReason = "inverted_session"
	WarnBadClockValue   WarningReason = "bad_clock_value"
	WarnBadMinutesValue WarningReason = "bad_minutes_value"
)

// DataQualityWarning flags a field that could not be parsed as expected.
// Warnings ride alongside the degraded result; they never abort a report.
type DataQualityWarning struct {
	AgentID string        `json:"agentId"`
	Date    string        `json:"date"`
	Field   string        `json:"field"`
	Reason  WarningReason `json:"reason"`
}

// ReportFilters echoes the request parameters a report was built from
type ReportFilters struct {
	AgentID  string `json:"agentId,omitempty"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

// ReportDocument is the engine's final, serialization-ready output. It is
// consumed by export adapters and the on-screen preview and never re-ingested.
type ReportDocument struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	TenantID    string               `json:"tenantId"`
	Filters     ReportFilters        `json:"filters"`
	Groups      []AgentSummary       `json:"groups"`
	Rows        []RawRecord          `json:"rows,omitempty"` // detail rows for per-session views
	Warnings    []DataQualityWarning `json:"warnings,omitempty"`
}

// AgentEntry is one roster row: an agent registered under a tenant
type AgentEntry struct {
	TenantID string `json:"tenantId" dynamodbav:"TenantID"` // partition key
	AgentID  string `json:"agentId" dynamodbav:"AgentID"`   // sort key
	Status   string `json:"status" dynamodbav:"Status"`
}
