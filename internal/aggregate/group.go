package aggregate

import "github.com/dispatchly/agentreport/internal/types"

// AgentGroup is one agent's records, in the order the store returned them
type AgentGroup struct {
	AgentID string
	Records []types.RawRecord
}

// SessionGroup is one agent's records for a single date. Records keep the
// store-provided order verbatim (typically reverse-chronological by login
// time); display relies on it and the grouper never re-sorts.
type SessionGroup struct {
	AgentID string
	Date    string
	Records []types.RawRecord
}

// GroupByAgent partitions records by agent identifier, preserving first-seen
// agent order from the input. With a date-descending store query that reads
// as "most recently active agent first". Groups share no state, so each can
// be aggregated independently.
func GroupByAgent(records []types.RawRecord) []AgentGroup {
	index := make(map[string]int)
	var groups []AgentGroup

	for _, r := range records {
		i, seen := index[r.AgentID]
		if !seen {
			i = len(groups)
			index[r.AgentID] = i
			groups = append(groups, AgentGroup{AgentID: r.AgentID})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// GroupByAgentAndDate partitions records into per-agent-per-date buckets for
// session drill-down views, first-seen order on both levels.
func GroupByAgentAndDate(records []types.RawRecord) []SessionGroup {
	type key struct{ agent, date string }
	index := make(map[key]int)
	var groups []SessionGroup

	for _, r := range records {
		k := key{r.AgentID, r.Date}
		i, seen := index[k]
		if !seen {
			i = len(groups)
			index[k] = i
			groups = append(groups, SessionGroup{AgentID: r.AgentID, Date: r.Date})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}
