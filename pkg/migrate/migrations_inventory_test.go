package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_inventory_items.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventory_items",
		"UNIQUE (tenant_id, division, product_name, specification)",
		"FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE",
		"CHECK (quantity >= 0)",
		"DROP TABLE IF EXISTS inventory_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCableMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_cable_drums.sql")

	checks := []string{
		"CREATE TYPE cable_status AS ENUM ('in_stock', 'assigned', 'waste', 'used_up')",
		"CREATE TYPE cable_log_type AS ENUM ('receive', 'assign', 'usage', 'return', 'waste')",
		"CHECK (total_length > 0)",
		"FOREIGN KEY (cable_id) REFERENCES cable_drums(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS cable_logs",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
