package tournamentintegrationtests

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	tournamentservice "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/application"
	"github.com/Black-And-White-Club/winter-olympics/app/observability"
	"github.com/Black-And-White-Club/winter-olympics/integration_tests/testutils"
)

// cleanStore empties the snapshot table before a test.
func cleanStore(t *testing.T) {
	t.Helper()
	require.NoError(t, testutils.CleanTournamentTables(testEnv.Ctx, testEnv.Store.DB))
}

// newService builds a service on the shared Postgres store.
func newService(t *testing.T, key string) *tournamentservice.TournamentService {
	t.Helper()
	return tournamentservice.NewTournamentService(
		testEnv.Store.Repo,
		key,
		testEnv.Logger,
		observability.NoOpMetrics{},
		observability.NoopTracer(),
		tournamentservice.WithRand(rand.New(rand.NewPCG(7, 7))),
	)
}
