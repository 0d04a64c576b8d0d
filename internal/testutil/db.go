package testutil

import (
	"database/sql"
	"os"
	"strconv"
	"testing"

	"github.com/contentsuite/brandsuite/internal/config"
	"github.com/contentsuite/brandsuite/internal/db"
)

// OpenTestDB connects to the postgres named by TEST_DB_HOST and applies migrations. The test
// is skipped when the variable is unset.
func OpenTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	port := 5432
	if v, err := strconv.Atoi(os.Getenv("TEST_DB_PORT")); err == nil && v > 0 {
		port = v
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     port,
		User:     "brandsuite",
		Password: "brandsuite_pass",
		DBName:   "brandsuite_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}
