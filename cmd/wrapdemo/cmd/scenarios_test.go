package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wrappers "github.com/jdziat/simple-invocation-wrappers"
	"github.com/jdziat/simple-invocation-wrappers/pkg/metrics"
	"github.com/jdziat/simple-invocation-wrappers/pkg/storage"
)

func newTestEnv(t *testing.T, out io.Writer) *scenarioEnv {
	t.Helper()
	return &scenarioEnv{
		out:    out,
		clock:  wrappers.SystemClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func runOne(t *testing.T, name string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, runScenarios(context.Background(), newTestEnv(t, &buf), []string{name}))
	return buf.String()
}

// ----- Individual scenarios -----

func TestScenario_Hello(t *testing.T) {
	out := runOne(t, "hello")
	assert.Equal(t, "== hello\nThis happened before!\nThis happened!\nThis happens after\nThis happened at the end!\n", out)
}

func TestScenario_Greet(t *testing.T) {
	assert.Contains(t, runOne(t, "greet"), "hello, jainendra kumar\n")
}

func TestGreet_DefaultMessage(t *testing.T) {
	assert.Equal(t, "Hello, Sam", greet("Sam", nil))
}

func TestScenario_Square(t *testing.T) {
	out := runOne(t, "square")
	assert.Equal(t, "== square\ngiven number is: 195\n38025\nSquare of number is: 38025\n", out)
}

func TestScenario_Sum(t *testing.T) {
	assert.Contains(t, runOne(t, "sum"), "sum(1, 2, 3) = 6\n")
}

func TestScenario_SumInvalid(t *testing.T) {
	out := runOne(t, "sum-invalid")
	assert.Contains(t, out, `sum(1, "2", 3) rejected:`)
	assert.Contains(t, out, "parameter 1 cannot be a string")
}

func TestScenario_TimedWithFixedClock(t *testing.T) {
	var buf bytes.Buffer
	env := newTestEnv(t, &buf)
	env.clock = wrappers.SecondsClock(0, 3)

	require.NoError(t, runScenarios(context.Background(), env, []string{"timed"}))
	assert.Equal(t, "== timed\nExecution took 3 seconds\n", buf.String())
}

func TestScenario_TimedRecordedWithFixedClock(t *testing.T) {
	ctx := context.Background()
	store, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))

	var buf bytes.Buffer
	env := newTestEnv(t, &buf)
	env.clock = wrappers.SecondsClock(0, 3)
	env.store = store

	require.NoError(t, runScenarios(ctx, env, []string{"timed"}))
	assert.Equal(t, "== timed\nExecution took 3 seconds\n", buf.String())

	records, err := store.ListRecords(ctx, "timed", 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(3e9), records[0].ElapsedNanos)
}

func TestScenario_Stamped(t *testing.T) {
	var buf bytes.Buffer
	env := newTestEnv(t, &buf)
	env.clock = wrappers.SecondsClock(0)

	require.NoError(t, runScenarios(context.Background(), env, []string{"stamped"}))
	assert.Equal(t, "== stamped\n1970-01-01T00:00:00Z\nThis happened : 6\n1970-01-01T00:00:00Z\n", buf.String())
}

func TestScenario_Callable(t *testing.T) {
	out := runOne(t, "callable")

	assert.Contains(t, out, "person is callable = false\n")
	assert.Contains(t, out, "employee is callable = true\n")
	assert.Contains(t, out, "printing args\n10 20\nprinting kwargs\n")
	assert.Contains(t, out, "printing args\n10 A\nprinting kwargs\nid == 20\nname == Pankaj\n")
}

// ----- Runner -----

func TestRunScenarios_UnknownName(t *testing.T) {
	err := runScenarios(context.Background(), newTestEnv(t, io.Discard), []string{"nope"})
	assert.Error(t, err)
	assert.Error(t, checkScenarios([]string{"hello", "nope"}))
	assert.NoError(t, checkScenarios(scenarioNames))
}

func TestScenarioNames_MatchRegistry(t *testing.T) {
	assert.Len(t, scenarioNames, len(scenarios))
	for _, name := range scenarioNames {
		assert.Contains(t, scenarios, name)
	}
}

func TestRunScenarios_AllRecorded(t *testing.T) {
	ctx := context.Background()
	store, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	var buf bytes.Buffer
	env := newTestEnv(t, &buf)
	env.store = store
	env.metrics = collector

	require.NoError(t, runScenarios(ctx, env, scenarioNames))
	for _, name := range scenarioNames {
		assert.Contains(t, buf.String(), "== "+name+"\n")
	}

	counts, err := store.CountByStatus(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[wrappers.RecordRejected])
	assert.Zero(t, counts[wrappers.RecordFailed])
	// callable invokes its wrapper three times.
	assert.Equal(t, int64(len(scenarioNames)-1+2), counts[wrappers.RecordCompleted])

	sums, err := store.ListRecords(ctx, "sum", 10)
	require.NoError(t, err)
	assert.Len(t, sums, 2)
	assert.True(t, strings.Contains(sums[0].Error, "string") || strings.Contains(sums[1].Error, "string"))
}
