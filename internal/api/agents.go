package api

import (
	"net/http"

	"github.com/dispatchly/agentreport/internal/storage"
	"github.com/dispatchly/agentreport/internal/types"
	"github.com/rs/zerolog"
)

// AgentsHandler serves the tenant's agent roster
type AgentsHandler struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewAgentsHandler creates a new AgentsHandler
func NewAgentsHandler(store storage.Store, logger zerolog.Logger) *AgentsHandler {
	return &AgentsHandler{
		store:  store,
		logger: logger.With().Str("component", "agents_handler").Logger(),
	}
}

// List returns every agent registered under the tenant
// GET /api/agents
func (h *AgentsHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenant(w, r)
	if !ok {
		return
	}

	agents, err := h.store.ListAgents(r.Context(), tenantID)
	if err != nil {
		h.logger.Error().Err(err).Str("tenant_id", tenantID).Msg("failed to list agents")
		writeJSONError(w, http.StatusBadGateway, "record store unavailable")
		return
	}

	if agents == nil {
		agents = []types.AgentEntry{}
	}

	writeJSON(w, agents)
}
