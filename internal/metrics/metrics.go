package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Metrics holds all application metrics
type Metrics struct {
	mu sync.RWMutex

	// Report metrics
	ReportsGeneratedTotal int64
	RecordsProcessedTotal int64
	QualityWarningsTotal  int64
	reportsByKind         map[string]int64
	lastReportDuration    time.Duration

	// Store metrics
	FetchErrorsTotal int64

	// Export metrics
	ExportsGeneratedTotal int64
	ExportBytesTotal      int64

	// HTTP metrics
	httpRequestsTotal    map[string]map[int]int64 // endpoint -> status -> count
	httpRequestDurations map[string][]float64     // endpoint -> durations

	// Timing
	startTime time.Time
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			reportsByKind:        make(map[string]int64),
			httpRequestsTotal:    make(map[string]map[int]int64),
			httpRequestDurations: make(map[string][]float64),
			startTime:            time.Now(),
		}
	})
	return instance
}

// RecordReport records one generated report and the records it consumed
func (m *Metrics) RecordReport(kind string, duration time.Duration, recordCount int) {
	m.mu.Lock()
	m.ReportsGeneratedTotal++
	m.RecordsProcessedTotal += int64(recordCount)
	m.reportsByKind[kind]++
	m.lastReportDuration = duration
	m.mu.Unlock()
}

// RecordQualityWarnings adds to the data-quality warning counter
func (m *Metrics) RecordQualityWarnings(n int) {
	if n == 0 {
		return
	}
	m.mu.Lock()
	m.QualityWarningsTotal += int64(n)
	m.mu.Unlock()
}

// RecordFetchError increments the record-store failure counter
func (m *Metrics) RecordFetchError() {
	m.mu.Lock()
	m.FetchErrorsTotal++
	m.mu.Unlock()
}

// RecordExport records one export download and its size
func (m *Metrics) RecordExport(bytes int) {
	m.mu.Lock()
	m.ExportsGeneratedTotal++
	m.ExportBytesTotal += int64(bytes)
	m.mu.Unlock()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(endpoint string, statusCode int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.httpRequestsTotal[endpoint] == nil {
		m.httpRequestsTotal[endpoint] = make(map[int]int64)
	}
	m.httpRequestsTotal[endpoint][statusCode]++

	// Keep last 100 durations for percentile calculation
	if len(m.httpRequestDurations[endpoint]) >= 100 {
		m.httpRequestDurations[endpoint] = m.httpRequestDurations[endpoint][1:]
	}
	m.httpRequestDurations[endpoint] = append(m.httpRequestDurations[endpoint], duration.Seconds())
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		// Helper to write metric
		write := func(name string, value interface{}, labels ...string) {
			labelStr := ""
			if len(labels) > 0 {
				labelStr = "{"
				for i := 0; i < len(labels); i += 2 {
					if i > 0 {
						labelStr += ","
					}
					labelStr += labels[i] + "=\"" + labels[i+1] + "\""
				}
				labelStr += "}"
			}

			switch v := value.(type) {
			case int:
				w.Write([]byte(name + labelStr + " " + strconv.Itoa(v) + "\n"))
			case int64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatInt(v, 10) + "\n"))
			case float64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatFloat(v, 'f', 6, 64) + "\n"))
			}
		}

		// System metrics
		write("agentreport_uptime_seconds", time.Since(m.startTime).Seconds())

		// Report metrics
		write("agentreport_reports_generated_total", m.ReportsGeneratedTotal)
		write("agentreport_records_processed_total", m.RecordsProcessedTotal)
		write("agentreport_quality_warnings_total", m.QualityWarningsTotal)
		write("agentreport_report_duration_seconds", m.lastReportDuration.Seconds())

		for kind, count := range m.reportsByKind {
			write("agentreport_reports_by_kind", count, "kind", kind)
		}

		// Store metrics
		write("agentreport_fetch_errors_total", m.FetchErrorsTotal)

		// Export metrics
		write("agentreport_exports_generated_total", m.ExportsGeneratedTotal)
		write("agentreport_export_bytes_total", m.ExportBytesTotal)

		// HTTP metrics
		for endpoint, statusCodes := range m.httpRequestsTotal {
			for status, count := range statusCodes {
				write("agentreport_http_requests_total", count, "endpoint", endpoint, "status", strconv.Itoa(status))
			}
		}
	}
}
