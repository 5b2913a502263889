package api

import (
	"encoding/json"
	"net/http"

	"github.com/dispatchly/agentreport/internal/storage"
	"github.com/dispatchly/agentreport/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RecordsHandler ingests attendance rows into the record store. This is the
// writer side the dashboard's upstream attendance system uses; in local
// mode it doubles as the seeding endpoint.
type RecordsHandler struct {
	store    storage.Store
	maxBatch int
	logger   zerolog.Logger
}

// NewRecordsHandler creates a new RecordsHandler
func NewRecordsHandler(store storage.Store, maxBatch int, logger zerolog.Logger) *RecordsHandler {
	return &RecordsHandler{
		store:    store,
		maxBatch: maxBatch,
		logger:   logger.With().Str("component", "records_handler").Logger(),
	}
}

// PutRecords handles POST /internal/records with an array of raw rows.
// Records without an id get one assigned; rows missing identity fields are
// rejected individually, not as a batch.
func (h *RecordsHandler) PutRecords(w http.ResponseWriter, r *http.Request) {
	var records []types.RawRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(records) > h.maxBatch {
		writeJSONError(w, http.StatusBadRequest, "batch too large")
		return
	}

	saved := 0
	rejected := 0
	for _, record := range records {
		if record.RecordID == "" {
			record.RecordID = uuid.NewString()
		}
		if err := h.store.PutRecord(r.Context(), record); err != nil {
			h.logger.Warn().Err(err).
				Str("agent_id", record.AgentID).
				Str("date", record.Date).
				Msg("record rejected")
			rejected++
			continue
		}
		saved++
	}

	h.logger.Info().Int("saved", saved).Int("rejected", rejected).Msg("records ingested")

	writeJSON(w, map[string]int{"saved": saved, "rejected": rejected})
}

// PutAgents handles POST /internal/agents with an array of roster entries
func (h *RecordsHandler) PutAgents(w http.ResponseWriter, r *http.Request) {
	var agents []types.AgentEntry
	if err := json.NewDecoder(r.Body).Decode(&agents); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	saved := 0
	for _, agent := range agents {
		if err := h.store.PutAgent(r.Context(), agent); err != nil {
			h.logger.Warn().Err(err).Str("agent_id", agent.AgentID).Msg("agent rejected")
			continue
		}
		saved++
	}

	h.logger.Info().Int("saved", saved).Msg("roster updated")

	writeJSON(w, map[string]int{"saved": saved})
}
