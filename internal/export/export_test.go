package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dispatchly/agentreport/internal/types"
)

func intPtr(n int) *int { return &n }

func sampleDoc() types.ReportDocument {
	return types.ReportDocument{
		GeneratedAt: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		TenantID:    "t1",
		Filters:     types.ReportFilters{AgentID: "X", DateFrom: "2024-01-01", DateTo: "2024-01-31"},
		Groups: []types.AgentSummary{
			{
				AgentID:             "X",
				ActiveDayCount:      2,
				TotalWorkingSeconds: 36000,
				TotalCallSeconds:    1800,
				TotalOrders:         2,
				TotalCancellations:  1,
				EfficiencyScore:     67,
			},
		},
		Rows: []types.RawRecord{
			{AgentID: "X", Date: "2024-01-01", LoginTime: "09:00:00", LogoutTime: "13:00:00",
				CallTime: "30", NormalOrders: intPtr(2)},
			{AgentID: "X", Date: "2024-01-02"},
		},
	}
}

func TestSummaryRows(t *testing.T) {
	rows := SummaryRows(sampleDoc())

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if len(row) != len(SummaryHeader) {
		t.Fatalf("row width %d does not match header width %d", len(row), len(SummaryHeader))
	}
	if row[0] != "X" || row[1] != "2" || row[2] != "10h 0m" || row[8] != "67" {
		t.Errorf("unexpected summary row: %v", row)
	}
}

func TestDetailRows(t *testing.T) {
	rows := DetailRows(sampleDoc())

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][2] != "09:00:00" || rows[0][6] != "2" {
		t.Errorf("unexpected first detail row: %v", rows[0])
	}
	// Absent fields render as "-" for times and "0" for counters
	if rows[1][2] != "-" || rows[1][6] != "0" {
		t.Errorf("unexpected defaults in detail row: %v", rows[1])
	}
	if len(rows[0]) != len(DetailHeader) {
		t.Errorf("row width %d does not match header width %d", len(rows[0]), len(DetailHeader))
	}
}

func TestMetricPairs(t *testing.T) {
	pairs := MetricPairs(sampleDoc())

	if len(pairs) != 10 {
		t.Fatalf("expected 10 pairs, got %d", len(pairs))
	}
	if pairs[0].Label != "Agent" || pairs[0].Value != "X" {
		t.Errorf("unexpected first pair: %+v", pairs[0])
	}
	if pairs[9].Label != "Efficiency" || pairs[9].Value != "67%" {
		t.Errorf("unexpected efficiency pair: %+v", pairs[9])
	}
}

func TestMetricPairsStableOrder(t *testing.T) {
	a, b := MetricPairs(sampleDoc()), MetricPairs(sampleDoc())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pair order not stable at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestMetricPairsEmptyDocument(t *testing.T) {
	if pairs := MetricPairs(types.ReportDocument{}); pairs != nil {
		t.Errorf("expected nil for empty document, got %v", pairs)
	}
}

func TestCSVSummaryExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (CSVSummaryExporter{}).Export(&buf, sampleDoc()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Agent ID,") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "X,2,10h 0m") {
		t.Errorf("unexpected row: %s", lines[1])
	}
}

func TestCSVDetailExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (CSVDetailExporter{}).Export(&buf, sampleDoc()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
}

func TestCSVExportDiffable(t *testing.T) {
	// Identical documents must serialize byte-identically
	var a, b bytes.Buffer
	doc := sampleDoc()
	if err := (CSVSummaryExporter{}).Export(&a, doc); err != nil {
		t.Fatal(err)
	}
	if err := (CSVSummaryExporter{}).Export(&b, doc); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("exports of the same document differ")
	}
}
