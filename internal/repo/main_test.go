package repo_test

import (
	"testing"

	"github.com/jsteiner/chargelog/internal/repo"
	"github.com/jsteiner/chargelog/testutil"
)

// newTestRepos returns both repos backed by the same fresh in-memory store,
// so foreign-key links between events and sessions work across them.
// The store is discarded when the test finishes — no cleanup SQL needed.
func newTestRepos(t *testing.T) (repo.TravelEventRepo, repo.ChargingSessionRepo) {
	t.Helper()
	db := testutil.NewDB(t)
	return repo.NewTravelEventRepo(db), repo.NewChargingSessionRepo(db)
}
