package storage

import (
	"os"
	"testing"
)

func TestLoadDynamoConfigDefaults(t *testing.T) {
	os.Clearenv()

	cfg := LoadDynamoConfig()

	if cfg.Mode != DynamoModeNone {
		t.Errorf("expected mode none, got %s", cfg.Mode)
	}
	if cfg.RecordsTable != "agentreport-agent-details" {
		t.Errorf("unexpected records table: %s", cfg.RecordsTable)
	}
	if cfg.AgentsTable != "agentreport-agents" {
		t.Errorf("unexpected agents table: %s", cfg.AgentsTable)
	}
}

func TestLoadDynamoConfigInvalidMode(t *testing.T) {
	os.Clearenv()
	os.Setenv("DYNAMO_MODE", "bogus")

	if cfg := LoadDynamoConfig(); cfg.Mode != DynamoModeNone {
		t.Errorf("invalid mode should fall back to none, got %s", cfg.Mode)
	}
}

func TestSortKeyRangeBounds(t *testing.T) {
	// Every key for a date inside the range must sort between the bounds
	key := sortKey("2024-01-15", "agent-7", "b2c9")
	low, high := "2024-01-01#", "2024-01-31$"

	if !(key > low && key < high) {
		t.Errorf("key %q outside range [%q, %q]", key, low, high)
	}

	// A key on the upper boundary date is still inside: "#" sorts before "$"
	edge := sortKey("2024-01-31", "zzz", "zzz")
	if !(edge < high) {
		t.Errorf("boundary-date key %q must sort below %q", edge, high)
	}

	// The day after the range is outside
	after := sortKey("2024-02-01", "a", "a")
	if !(after > high) {
		t.Errorf("key %q after the range must sort above %q", after, high)
	}
}
