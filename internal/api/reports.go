package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dispatchly/agentreport/internal/auth"
	"github.com/dispatchly/agentreport/internal/report"
	"github.com/dispatchly/agentreport/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ReportHandler provides REST endpoints over the report engine
type ReportHandler struct {
	engine *report.Engine
	logger zerolog.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(engine *report.Engine, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		engine: engine,
		logger: logger.With().Str("component", "report_handler").Logger(),
	}
}

// GetMultiAgentReport returns one summary row per agent for the date range
// GET /api/reports/agents?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) GetMultiAgentReport(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, doc)
}

// GetSingleAgentReport returns one agent's summary for the date range
// GET /api/reports/agents/{agentId}?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) GetSingleAgentReport(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenant(w, r)
	if !ok {
		return
	}

	doc, err := h.engine.SingleAgentReport(r.Context(), report.Params{
		TenantID: tenantID,
		AgentID:  chi.URLParam(r, "agentId"),
		DateFrom: r.URL.Query().Get("from"),
		DateTo:   r.URL.Query().Get("to"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, doc)
}

// GetSessions returns one agent's session rows for a single date
// GET /api/reports/agents/{agentId}/sessions?date=YYYY-MM-DD
func (h *ReportHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenant(w, r)
	if !ok {
		return
	}

	doc, err := h.engine.SessionDetail(r.Context(), tenantID, chi.URLParam(r, "agentId"), r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, doc)
}

// writeError maps the engine's typed failures: fix-your-filters gets 400,
// backend-is-unavailable gets 502.
func (h *ReportHandler) writeError(w http.ResponseWriter, err error) {
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

	h.logger.Error().Err(err).Msg("report generation failed")
	writeJSONError(w, http.StatusInternalServerError, "internal error")
}

// requestTenant resolves the tenant from the verified request identity
func requestTenant(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := auth.GetUserFromContext(r.Context())
	if !ok || claims.TenantID == "" {
		writeJSONError(w, http.StatusUnauthorized, "no tenant identity")
		return "", false
	}
	return claims.TenantID, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
