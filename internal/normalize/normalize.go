// Package normalize canonicalizes raw attendance rows before aggregation:
// every optional field gets an explicit default and the per-record working
// duration is derived. All consumers downstream read already-canonicalized
// values instead of re-implementing their own fallbacks.
package normalize

import (
	"github.com/dispatchly/agentreport/internal/timecodec"
	"github.com/dispatchly/agentreport/internal/types"
)

// Normalize fills every optional field of a raw record with its default and
// derives WorkingSeconds from the login/logout pair. Unparseable fields
// degrade to 0 and are reported as warnings; attendance data is frequently
// incomplete, so a bad field never fails the record.
func Normalize(raw types.RawRecord) (types.NormalizedRecord, []types.DataQualityWarning) {
	var warnings []types.DataQualityWarning
	warn := func(field string, reason types.WarningReason) {
		warnings = append(warnings, types.DataQualityWarning{
			AgentID: raw.AgentID,
			Date:    raw.Date,
			Field:   field,
			Reason:  reason,
		})
	}

	if raw.LoginTime != "" {
		if _, err := timecodec.ClockSeconds(raw.LoginTime); err != nil {
			warn("loginTime", types.WarnBadClockValue)
		}
	}
	if raw.LogoutTime != "" {
		if _, err := timecodec.ClockSeconds(raw.LogoutTime); err != nil {
			warn("logoutTime", types.WarnBadClockValue)
		}
	}

	working := timecodec.ParseClockDuration(raw.LoginTime, raw.LogoutTime)
	if working < 0 {
		// Inverted session: kept negative so operators see the upstream
		// attendance defect instead of a silently shortened total.
		warn("logoutTime", types.WarnInvertedSession)
	}

	callSeconds, ok := timecodec.MinutesField(raw.CallTime)
	if !ok {
		warn("callTime", types.WarnBadMinutesValue)
	}
	breakSeconds, ok := timecodec.MinutesField(raw.BreakTime)
	if !ok {
		warn("breakTime", types.WarnBadMinutesValue)
	}

	return types.NormalizedRecord{
		AgentID:               raw.AgentID,
		Date:                  raw.Date,
		WorkingSeconds:        working,
		CallSeconds:           callSeconds,
		BreakSeconds:          breakSeconds,
		NormalOrders:          orZero(raw.NormalOrders),
		ScheduledOrders:       orZero(raw.ScheduledOrders),
		AssignedOrders:        orZero(raw.AssignedOrders),
		AppIntents:            orZero(raw.AppIntents),
		EmployeeCancellations: orZero(raw.EmployeeCancellations),
		CustomerCancellations: orZero(raw.CustomerCancellations),
	}, warnings
}

// All normalizes a slice of raw records and collects every warning
func All(raws []types.RawRecord) ([]types.NormalizedRecord, []types.DataQualityWarning) {
	records := make([]types.NormalizedRecord, 0, len(raws))
	var warnings []types.DataQualityWarning

	for _, raw := range raws {
		record, w := Normalize(raw)
		records = append(records, record)
		warnings = append(warnings, w...)
	}
	return records, warnings
}

func orZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
