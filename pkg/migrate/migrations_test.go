package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raisul516/ironi-backend/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migration validation failed: %v", err)
	}
}

func TestCoreTablesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_core_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no core tables migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE users",
		"CREATE UNIQUE INDEX idx_users_email ON users (email)",
		"CREATE TABLE orders",
		"REFERENCES orders (id) ON DELETE CASCADE",
		"CREATE UNIQUE INDEX idx_ratings_user_order ON ratings (user_id, order_id)",
		"CREATE TABLE notifications",
		"DROP TABLE users",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
