package observability

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", Operation("AddTeam"))
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"operation":"AddTeam"`)

	_, err = NewLogger(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = NewLogger(&buf, "info", "xml")
	assert.Error(t, err)
}

func TestPrometheusMetrics(t *testing.T) {
	ctx := context.Background()
	m := NewPrometheusMetrics()

	m.RecordOperationAttempt(ctx, "AddTeam", "TournamentService")
	m.RecordOperationAttempt(ctx, "AddTeam", "TournamentService")
	m.RecordOperationFailure(ctx, "AddTeam", "TournamentService")
	m.RecordOperationDuration(ctx, "AddTeam", "TournamentService", 3*time.Millisecond)
	m.RecordImport(ctx, "roster", "csv", 6)
	m.RecordPersistFailure(ctx)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.attempts.WithLabelValues("AddTeam", "TournamentService")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("AddTeam", "TournamentService")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.importTeams.WithLabelValues("roster")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistFail))

	path := filepath.Join(t.TempDir(), "olympics.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "olympics_imports_total"))
}

func TestNoopTracer(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "op")
	defer span.End()
	assert.False(t, span.SpanContext().IsValid())
}
