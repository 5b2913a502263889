package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dispatchly/agentreport/internal/types"
)

// Exporter serializes a report document to one output format. Binary
// formats (XLSX, PDF) are collaborator implementations plugged in at this
// boundary; the engine itself only owns the row and pair shapes.
type Exporter interface {
	ContentType() string
	FileExtension() string
	Export(w io.Writer, doc types.ReportDocument) error
}

// WriteCSV serializes a header plus rows as CSV
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVSummaryExporter exports one row per agent
type CSVSummaryExporter struct{}

func (CSVSummaryExporter) ContentType() string   { return "text/csv" }
func (CSVSummaryExporter) FileExtension() string { return "csv" }

func (CSVSummaryExporter) Export(w io.Writer, doc types.ReportDocument) error {
	return WriteCSV(w, SummaryHeader, SummaryRows(doc))
}

// CSVDetailExporter exports one row per underlying raw record
type CSVDetailExporter struct{}

func (CSVDetailExporter) ContentType() string   { return "text/csv" }
func (CSVDetailExporter) FileExtension() string { return "csv" }

func (CSVDetailExporter) Export(w io.Writer, doc types.ReportDocument) error {
	return WriteCSV(w, DetailHeader, DetailRows(doc))
}
