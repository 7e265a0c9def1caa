package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AYOGRAM01/Jollyshop/pkg/migrate"
)

func TestMigrationsValidate(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migration validation failed: %v", err)
	}
}

func TestInitialSchemaContainsArchiveTables(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_initial_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no initial schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE rejected_orders",
		"CREATE TABLE rejected_order_items",
		"CREATE TABLE completed_orders",
		"CREATE TABLE completed_order_items",
		"ux_rejected_orders_original_order_id",
		"ux_completed_orders_original_order_id",
		"ON DELETE CASCADE",
		"DROP TABLE IF EXISTS outbox_events",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSeedMigrationCoversFixedCategories(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_seed_categories.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no category seed migration found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	for _, name := range []string{"'Luxury'", "'Affordable'"} {
		if !strings.Contains(content, name) {
			t.Errorf("seed migration missing category %s", name)
		}
	}
}
