package report

import (
	"context"
	"time"

	"github.com/dispatchly/agentreport/internal/aggregate"
	"github.com/dispatchly/agentreport/internal/metrics"
	"github.com/dispatchly/agentreport/internal/normalize"
	"github.com/dispatchly/agentreport/internal/storage"
	"github.com/dispatchly/agentreport/internal/types"
	"github.com/rs/zerolog"
)

// Params are the caller-supplied report filters. TenantID comes from the
// verified request identity, never from user input.
type Params struct {
	TenantID string
	AgentID  string
	DateFrom string
	DateTo   string
}

// Engine runs the report pipeline: validate, fetch, normalize, aggregate,
// assemble. It holds no mutable state of its own, so concurrent report
// requests are fully independent.
type Engine struct {
	store  storage.Store
	logger zerolog.Logger
	now    func() time.Time
}

// NewEngine creates a report engine over the given record store
func NewEngine(store storage.Store, logger zerolog.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger.With().Str("component", "report_engine").Logger(),
		now:    time.Now,
	}
}

// SingleAgentReport computes one agent's summary over an inclusive date
// range, with the underlying detail rows attached.
func (e *Engine) SingleAgentReport(ctx context.Context, p Params) (types.ReportDocument, error) {
	if err := validateParams(p, true); err != nil {
		return types.ReportDocument{}, err
	}

	start := time.Now()
	raws, err := e.fetch(ctx, p.TenantID, p.AgentID, p.DateFrom, p.DateTo)
	if err != nil {
		return types.ReportDocument{}, err
	}

	records, warnings := normalize.All(raws)
	summary := aggregate.Aggregate(records)
	if summary.AgentID == "" {
		summary.AgentID = p.AgentID // zero reachable days is a valid result
	}

	doc := BuildSingleAgentReport(p.TenantID, p.AgentID, p.DateFrom, p.DateTo, e.now(), summary, raws, warnings)
	e.finish("single_agent", start, len(raws), warnings)
	return doc, nil
}

// MultiAgentReport computes one summary row per agent, in the order agents
// first appear in the store's natural ordering.
func (e *Engine) MultiAgentReport(ctx context.Context, p Params) (types.ReportDocument, error) {
	if err := validateParams(p, false); err != nil {
		return types.ReportDocument{}, err
	}

	start := time.Now()
	raws, err := e.fetch(ctx, p.TenantID, types.AgentIDAll, p.DateFrom, p.DateTo)
	if err != nil {
		return types.ReportDocument{}, err
	}

	groups := aggregate.GroupByAgent(raws)
	summaries := make([]types.AgentSummary, 0, len(groups))
	var warnings []types.DataQualityWarning

	for _, g := range groups {
		records, w := normalize.All(g.Records)
		warnings = append(warnings, w...)
		summaries = append(summaries, aggregate.Aggregate(records))
	}

	doc := BuildMultiAgentReport(p.TenantID, p.DateFrom, p.DateTo, e.now(), summaries, raws, warnings)
	e.finish("multi_agent", start, len(raws), warnings)
	return doc, nil
}

// SessionDetail returns one agent's session rows for a single date, in the
// store's reverse-chronological order, with that day's summary attached.
func (e *Engine) SessionDetail(ctx context.Context, tenantID, agentID, date string) (types.ReportDocument, error) {
	p := Params{TenantID: tenantID, AgentID: agentID, DateFrom: date, DateTo: date}
	if err := validateParams(p, true); err != nil {
		return types.ReportDocument{}, err
	}

	start := time.Now()
	raws, err := e.store.FetchSessions(ctx, tenantID, agentID, date)
	if err != nil {
		metrics.Get().RecordFetchError()
		return types.ReportDocument{}, &types.DataFetchError{Err: err}
	}

	records, warnings := normalize.All(raws)
	summary := aggregate.Aggregate(records)
	if summary.AgentID == "" {
		summary.AgentID = agentID
	}

	doc := BuildSingleAgentReport(tenantID, agentID, date, date, e.now(), summary, raws, warnings)
	e.finish("session_detail", start, len(raws), warnings)
	return doc, nil
}

func (e *Engine) fetch(ctx context.Context, tenantID, agentID, dateFrom, dateTo string) ([]types.RawRecord, error) {
	raws, err := e.store.FetchRecords(ctx, tenantID, agentID, dateFrom, dateTo)
	if err != nil {
		metrics.Get().RecordFetchError()
		e.logger.Error().Err(err).
			Str("tenant_id", tenantID).
			Str("agent_id", agentID).
			Msg("record fetch failed")
		return nil, &types.DataFetchError{Err: err}
	}
	return raws, nil
}

func (e *Engine) finish(kind string, start time.Time, recordCount int, warnings []types.DataQualityWarning) {
	m := metrics.Get()
	m.RecordReport(kind, time.Since(start), recordCount)
	m.RecordQualityWarnings(len(warnings))

	e.logger.Debug().
		Str("kind", kind).
		Int("records", recordCount).
		Int("warnings", len(warnings)).
		Dur("duration", time.Since(start)).
		Msg("report generated")
}

// validateParams checks the caller's filters before any fetch happens.
// dateFrom > dateTo is a caller input error, not a pipeline error.
func validateParams(p Params, agentRequired bool) error {
	if p.TenantID == "" {
		return types.NewInputError("tenantId", "required")
	}
	if agentRequired && (p.AgentID == "" || p.AgentID == types.AgentIDAll) {
		return types.NewInputError("agentId", "required for single-agent reports")
	}

	from, err := time.Parse(types.DateLayout, p.DateFrom)
	if err != nil {
		return types.NewInputError("dateFrom", "must be YYYY-MM-DD")
	}
	to, err := time.Parse(types.DateLayout, p.DateTo)
	if err != nil {
		return types.NewInputError("dateTo", "must be YYYY-MM-DD")
	}
	if from.After(to) {
		return types.NewInputError("dateFrom", "must not be after dateTo")
	}
	return nil
}
