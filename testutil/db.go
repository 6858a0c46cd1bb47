// Package testutil provides shared helpers for tests that need a real
// database. The store is embedded SQLite, so every test gets a private
// in-memory database with the full schema applied — no external server,
// no cleanup SQL, no environment gating.
package testutil

import (
	"testing"

	"github.com/jsteiner/chargelog/internal/store"
)

// NewDB opens a fresh in-memory SQLite database with all migrations applied.
// The database is closed automatically when the test (and all its subtests)
// finish. Each call returns a fully isolated store.
func NewDB(t *testing.T) *store.DB {
	t.Helper()

	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("testutil.NewDB: open: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
