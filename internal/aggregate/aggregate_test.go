package aggregate

import (
	"reflect"
	"testing"

	"github.com/dispatchly/agentreport/internal/normalize"
	"github.com/dispatchly/agentreport/internal/types"
)

func intPtr(n int) *int { return &n }

func TestAggregateEmptyInput(t *testing.T) {
	summary := Aggregate(nil)

	if summary.ActiveDayCount != 0 {
		t.Errorf("expected 0 active days, got %d", summary.ActiveDayCount)
	}
	if summary.TotalWorkingSeconds != 0 || summary.TotalOrders != 0 {
		t.Error("expected all totals zero")
	}
	if summary.EfficiencyScore != 0 {
		t.Errorf("empty input must score 0, got %d", summary.EfficiencyScore)
	}
}

func TestAggregateDistinctDayCounting(t *testing.T) {
	// Two sessions on the same date count one active day, durations sum
	summary := Aggregate([]types.NormalizedRecord{
		{AgentID: "A", Date: "2024-01-01", WorkingSeconds: 14400},
		{AgentID: "A", Date: "2024-01-01", WorkingSeconds: 7200},
	})

	if summary.ActiveDayCount != 1 {
		t.Errorf("expected 1 active day, got %d", summary.ActiveDayCount)
	}
	if summary.TotalWorkingSeconds != 21600 {
		t.Errorf("expected 21600 working seconds, got %d", summary.TotalWorkingSeconds)
	}
}

func TestAggregateOrderIndependence(t *testing.T) {
	records := []types.NormalizedRecord{
		{AgentID: "A", Date: "2024-01-01", WorkingSeconds: 100, NormalOrders: 1},
		{AgentID: "A", Date: "2024-01-02", WorkingSeconds: 200, CustomerCancellations: 1},
		{AgentID: "A", Date: "2024-01-03", WorkingSeconds: 300, ScheduledOrders: 2},
	}
	reversed := []types.NormalizedRecord{records[2], records[1], records[0]}

	a, b := Aggregate(records), Aggregate(reversed)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("aggregation depends on input order:\n%+v\n%+v", a, b)
	}
}

func TestAggregateScenario(t *testing.T) {
	// Agent X: a 4h session with 30 call minutes, then a 9h session with
	// 2 orders and 1 customer cancel the next day.
	raws := []types.RawRecord{
		{AgentID: "X", Date: "2024-01-01", LoginTime: "09:00:00", LogoutTime: "13:00:00", CallTime: "30"},
		{AgentID: "X", Date: "2024-01-02", LoginTime: "09:00:00", LogoutTime: "18:00:00",
			NormalOrders: intPtr(2), CustomerCancellations: intPtr(1)},
	}
	records, warnings := normalize.All(raws)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	summary := Aggregate(records)

	if summary.ActiveDayCount != 2 {
		t.Errorf("expected 2 active days, got %d", summary.ActiveDayCount)
	}
	if summary.TotalWorkingSeconds != 36000 {
		t.Errorf("expected 36000 working seconds, got %d", summary.TotalWorkingSeconds)
	}
	if summary.TotalCallSeconds != 1800 {
		t.Errorf("expected 1800 call seconds, got %d", summary.TotalCallSeconds)
	}
	if summary.TotalOrders != 2 {
		t.Errorf("expected 2 orders, got %d", summary.TotalOrders)
	}
	if summary.TotalCancellations != 1 {
		t.Errorf("expected 1 cancellation, got %d", summary.TotalCancellations)
	}
	if summary.EfficiencyScore != 67 {
		t.Errorf("expected score 67, got %d", summary.EfficiencyScore)
	}
}

func TestAggregateSumsAllOrderKinds(t *testing.T) {
	summary := Aggregate([]types.NormalizedRecord{
		{AgentID: "A", Date: "2024-01-01", NormalOrders: 1, ScheduledOrders: 2, AssignedOrders: 3,
			EmployeeCancellations: 1, CustomerCancellations: 2, AppIntents: 5},
	})

	if summary.TotalOrders != 6 {
		t.Errorf("expected 6 orders, got %d", summary.TotalOrders)
	}
	if summary.TotalCancellations != 3 {
		t.Errorf("expected 3 cancellations, got %d", summary.TotalCancellations)
	}
	if summary.TotalAppIntents != 5 {
		t.Errorf("expected 5 app intents, got %d", summary.TotalAppIntents)
	}
}

func TestEfficiencyScore(t *testing.T) {
	tests := []struct {
		orders  int
		cancels int
		want    int
	}{
		{0, 0, 0},
		{9, 1, 90},
		{2, 1, 67},
		{10, 0, 100},
		{0, 5, 0},
		{1, 2, 33},
	}

	for _, tt := range tests {
		if got := EfficiencyScore(tt.orders, tt.cancels); got != tt.want {
			t.Errorf("EfficiencyScore(%d, %d): expected %d, got %d", tt.orders, tt.cancels, tt.want, got)
		}
	}
}

func TestGroupByAgentFirstSeenOrder(t *testing.T) {
	records := []types.RawRecord{
		{AgentID: "A", Date: "2024-01-01"},
		{AgentID: "B", Date: "2024-01-01"},
		{AgentID: "A", Date: "2024-01-02"},
	}

	groups := GroupByAgent(records)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].AgentID != "A" || groups[1].AgentID != "B" {
		t.Errorf("expected first-seen order [A B], got [%s %s]", groups[0].AgentID, groups[1].AgentID)
	}
	if len(groups[0].Records) != 2 {
		t.Errorf("expected 2 records for A, got %d", len(groups[0].Records))
	}
}

func TestGroupByAgentNoSharedState(t *testing.T) {
	records := []types.RawRecord{
		{AgentID: "A", Date: "2024-01-01", NormalOrders: intPtr(3)},
		{AgentID: "B", Date: "2024-01-01", CustomerCancellations: intPtr(2)},
	}

	for _, g := range GroupByAgent(records) {
		normalized, _ := normalize.All(g.Records)
		summary := Aggregate(normalized)
		switch g.AgentID {
		case "A":
			if summary.TotalOrders != 3 || summary.TotalCancellations != 0 {
				t.Errorf("A leaked totals: %+v", summary)
			}
		case "B":
			if summary.TotalOrders != 0 || summary.TotalCancellations != 2 {
				t.Errorf("B leaked totals: %+v", summary)
			}
		}
	}
}

func TestGroupByAgentAndDate(t *testing.T) {
	records := []types.RawRecord{
		{AgentID: "A", Date: "2024-01-02", LoginTime: "14:00:00"},
		{AgentID: "A", Date: "2024-01-02", LoginTime: "09:00:00"},
		{AgentID: "A", Date: "2024-01-01", LoginTime: "09:00:00"},
		{AgentID: "B", Date: "2024-01-02", LoginTime: "10:00:00"},
	}

	groups := GroupByAgentAndDate(records)

	if len(groups) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(groups))
	}
	// Store order kept verbatim inside the bucket
	first := groups[0]
	if first.AgentID != "A" || first.Date != "2024-01-02" {
		t.Errorf("unexpected first bucket: %s %s", first.AgentID, first.Date)
	}
	if len(first.Records) != 2 || first.Records[0].LoginTime != "14:00:00" {
		t.Error("bucket must keep store-provided record order")
	}
}
