package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/dispatchly/agentreport/internal/export"
	"github.com/dispatchly/agentreport/internal/metrics"
	"github.com/dispatchly/agentreport/internal/report"
	"github.com/dispatchly/agentreport/internal/types"
	"github.com/rs/zerolog"
)

// ExportHandler serves report downloads through the export boundary
type ExportHandler struct {
	engine *report.Engine
	logger zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(engine *report.Engine, logger zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		engine: engine,
		logger: logger.With().Str("component", "export_handler").Logger(),
	}
}

// SummaryCSV downloads one row per agent
// GET /api/exports/summary.csv?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ExportHandler) SummaryCSV(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenant(w, r)
	if !ok {
		return
	}

	doc, err := h.engine.MultiAgentReport(r.Context(), report.Params{
		TenantID: tenantID,
		DateFrom: r.URL.Query().Get("from"),
		DateTo:   r.URL.Query().Get("to"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.serve(w, export.CSVSummaryExporter{}, doc, "agent-summary")
}

// DetailCSV downloads one row per raw record, optionally for a single agent
// GET /api/exports/detail.csv?from=YYYY-MM-DD&to=YYYY-MM-DD[&agentId=X]
func (h *ExportHandler) DetailCSV(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenant(w, r)
	if !ok {
		return
	}

	params := report.Params{
		TenantID: tenantID,
		AgentID:  r.URL.Query().Get("agentId"),
		DateFrom: r.URL.Query().Get("from"),
		DateTo:   r.URL.Query().Get("to"),
	}

	var doc types.ReportDocument
	var err error
	if params.AgentID == "" || params.AgentID == types.AgentIDAll {
		doc, err = h.engine.MultiAgentReport(r.Context(), params)
	} else {
		doc, err = h.engine.SingleAgentReport(r.Context(), params)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.serve(w, export.CSVDetailExporter{}, doc, "agent-detail")
}

// serve renders the document through an exporter and streams it as a
// download. The document is rendered to a buffer first so an export failure
// still produces a clean error response instead of a truncated file.
func (h *ExportHandler) serve(w http.ResponseWriter, exporter export.Exporter, doc types.ReportDocument, name string) {
	var buf bytes.Buffer
	if err := exporter.Export(&buf, doc); err != nil {
		h.logger.Error().Err(err).Str("export", name).Msg("export failed")
		writeJSONError(w, http.StatusInternalServerError, "export failed")
		return
	}

	filename := fmt.Sprintf("%s_%s_%s.%s", name, doc.Filters.DateFrom, doc.Filters.DateTo, exporter.FileExtension())
	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(buf.Bytes())

	metrics.Get().RecordExport(buf.Len())
}

func (h *ExportHandler) writeError(w http.ResponseWriter, err error) {
	var inputErr *types.InputError
	if errors.As(err, &inputErr) {
		writeJSONError(w, http.StatusBadRequest, inputErr.Error())
		return
	}

	var fetchErr *types.DataFetchError
	if errors.As(err, &fetchErr) {
		h.logger.Error().Err(err).Msg("record store unavailable")
		writeJSONError(w, http.StatusBadGateway, "record store unavailable")
		return
	}

	h.logger.Error().Err(err).Msg("export generation failed")
	writeJSONError(w, http.StatusInternalServerError, "internal error")
}
