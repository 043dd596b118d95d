package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTransactionsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_transactions.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS transactions",
		"FOREIGN KEY (station_id) REFERENCES stations(id)",
		"FOREIGN KEY (tank_id) REFERENCES tanks(id)",
		"CHECK (quantity_liters > 0)",
		"ux_transactions_receipt_number",
		"DROP TABLE IF EXISTS transactions",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestTanksMigrationContainsLevelChecks(t *testing.T) {
	content := readMigration(t, "*_create_tanks.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS tanks",
		"CHECK (current_level >= 0)",
		"CHECK (reserved_volume >= 0)",
		"CHECK (current_level <= capacity)",
		"DROP TABLE IF EXISTS tanks",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOutboxMigrationScopesUniqueIndexToLowAlerts(t *testing.T) {
	content := readMigration(t, "*_create_outbox_events.sql")

	checks := []string{
		"ux_outbox_events_event_aggregate",
		"WHERE event_type = 'inventory.low' AND published_at IS NULL",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %s", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
