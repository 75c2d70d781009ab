package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/privnurse/privnurse/internal/config"
	"github.com/privnurse/privnurse/internal/repo"
)

func OpenTestDB(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	db, err := repo.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "privnurse",
		Password: "privnurse_pass",
		DBName:   "privnurse_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repo.ApplyMigrations(db); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return db, func() {
		_ = db.Close()
	}
}

// NewTestID returns a random hex string for unique usernames and record
// numbers, so repeated runs against the same database do not collide.
func NewTestID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
