package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "sqlite")
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.ExitErrHandler = func(*cli.Context, error) {}

	dsn := "file:" + filepath.Join(t.TempDir(), "olympics.db")
	t.Setenv("STORAGE_DSN", dsn)
	argv := append([]string{"olympics", "--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...)
	err := app.RunContext(context.Background(), argv)
	return out.String(), err
}

func TestParseSlot(t *testing.T) {
	for _, raw := range []string{"1", "4", "5"} {
		_, err := parseSlot(raw)
		assert.NoError(t, err, raw)
	}
	for _, raw := range []string{"0", "6", "x", ""} {
		_, err := parseSlot(raw)
		assert.Error(t, err, raw)
	}
}

func TestTeamAdd(t *testing.T) {
	out, err := runApp(t, "team", "add", "Owls", "Ann", "Bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Owls")
}

func TestStandingsEmpty(t *testing.T) {
	out, err := runApp(t, "standings")
	require.NoError(t, err)
	assert.Contains(t, out, "Total")
}

func TestResetNeedsConfirmation(t *testing.T) {
	_, err := runApp(t, "reset")
	assert.Error(t, err)
}
