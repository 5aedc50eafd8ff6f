package tournamentintegrationtests

import (
	"log"
	"os"
	"testing"

	"github.com/Black-And-White-Club/winter-olympics/integration_tests/testutils"
)

var testEnv *testutils.TestEnvironment

// TestMain initializes and cleans up the global test environment.
func TestMain(m *testing.M) {
	log.Println("TestMain started in package tournamentintegrationtests")

	oldAppEnv := os.Getenv("APP_ENV")
	os.Setenv("APP_ENV", "test")

	env, err := testutils.NewTestEnvironment()
	if err != nil {
		log.Printf("TestMain: failed to set up environment: %v", err)
		os.Setenv("APP_ENV", oldAppEnv)
		os.Exit(1)
	}
	testEnv = env

	exitCode := m.Run()

	testEnv.Cleanup()
	os.Setenv("APP_ENV", oldAppEnv)
	log.Printf("TestMain: finished with exit code: %d", exitCode)
	os.Exit(exitCode)
}
