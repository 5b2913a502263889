package storage

import (
	"context"

	"github.com/dispatchly/agentreport/internal/types"
)

// Store is the record-store boundary the report engine reads from.
// FetchRecords uses inclusive date bounds; agentID may be a concrete agent
// or types.AgentIDAll for every agent of the tenant. Ordering is no stronger
// than the store's natural order, which display treats as significant but
// the aggregation does not.
type Store interface {
	FetchRecords(ctx context.Context, tenantID, agentID, dateFrom, dateTo string) ([]types.RawRecord, error)
	FetchSessions(ctx context.Context, tenantID, agentID, date string) ([]types.RawRecord, error)
	ListAgents(ctx context.Context, tenantID string) ([]types.AgentEntry, error)
	PutRecord(ctx context.Context, record types.RawRecord) error
	PutAgent(ctx context.Context, agent types.AgentEntry) error
}

// NoopStore is a no-op implementation used when DynamoDB is disabled
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (s *NoopStore) FetchRecords(_ context.Context, _, _, _, _ string) ([]types.RawRecord, error) {
	return nil, nil
}
func (s *NoopStore) FetchSessions(_ context.Context, _, _, _ string) ([]types.RawRecord, error) {
	return nil, nil
}
func (s *NoopStore) ListAgents(_ context.Context, _ string) ([]types.AgentEntry, error) {
	return nil, nil
}
func (s *NoopStore) PutRecord(_ context.Context, _ types.RawRecord) error { return nil }
func (s *NoopStore) PutAgent(_ context.Context, _ types.AgentEntry) error { return nil }
