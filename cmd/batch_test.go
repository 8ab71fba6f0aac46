package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leak-calc/internal/assumptions"
	"github.com/sells-group/leak-calc/internal/leak"
	"github.com/sells-group/leak-calc/internal/monitoring"
	"github.com/sells-group/leak-calc/internal/report"
)

func TestListInputs(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "b.yaml", referenceYAML)
	writeInput(t, dir, "a.json", referenceJSON)
	writeInput(t, dir, "c.yml", referenceYAML)
	writeInput(t, dir, "notes.txt", "ignore me")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	files, err := listInputs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "c.yml"),
	}, files)
}

func TestListInputs_MissingDir(t *testing.T) {
	_, err := listInputs(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch: read dir")
}

func TestResultName(t *testing.T) {
	assert.Equal(t, "acme_yaml.result.json", resultName("/in/acme.yaml"))
	assert.Equal(t, "acme_json.result.json", resultName("acme.json"))
	assert.Equal(t, "acme_co_yml.result.json", resultName("in/acme.co.yml"))
}

func TestProcessBatch_MixedResults(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "results")

	good1 := writeInput(t, in, "acme.json", referenceJSON)
	good2 := writeInput(t, in, "acme.yaml", referenceYAML)
	bad := writeInput(t, in, "broken.json", `{"monthly_inquiries":"lots"}`)

	metrics := monitoring.NewCollector()
	engine := leak.NewEngine(assumptions.Default())

	summary, err := processBatch(context.Background(), []string{good1, good2, bad}, out, 2, engine, metrics)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Succeeded)
	assert.Equal(t, int64(1), summary.Failed)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.BatchFiles.WithLabelValues(monitoring.OutcomeSucceeded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BatchFiles.WithLabelValues(monitoring.OutcomeFailed)))

	data, err := os.ReadFile(filepath.Join(out, "acme_json.result.json"))
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.NotEmpty(t, rep.EvaluationID)
	assert.Equal(t, "Acme HVAC", rep.Business)
	require.NotNil(t, rep.Result)
	assert.InDelta(t, 71508, rep.Result.TotalMonthlyLoss, 1e-6)

	assert.FileExists(t, filepath.Join(out, "acme_yaml.result.json"))
	assert.NoFileExists(t, filepath.Join(out, "broken_json.result.json"))
}

func TestProcessBatch_WithoutMetrics(t *testing.T) {
	in := t.TempDir()
	good := writeInput(t, in, "acme.yaml", referenceYAML)
	bad := writeInput(t, in, "broken.json", `{"monthly_inquiries":"lots"}`)

	summary, err := processBatch(context.Background(), []string{good, bad}, t.TempDir(), 2, leak.NewEngine(assumptions.Default()), nil)
	require.NoError(t, err)
	assert.Equal(t, batchSummary{Succeeded: 1, Failed: 1}, summary)
}

func TestProcessBatch_NoFiles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "results")

	summary, err := processBatch(context.Background(), nil, out, 4, leak.NewEngine(assumptions.Default()), monitoring.NewCollector())
	require.NoError(t, err)
	assert.Equal(t, batchSummary{}, summary)
	assert.NoDirExists(t, out)
}

func TestProcessBatch_ClampsConcurrency(t *testing.T) {
	in := t.TempDir()
	path := writeInput(t, in, "acme.yaml", referenceYAML)

	summary, err := processBatch(context.Background(), []string{path}, t.TempDir(), 0, leak.NewEngine(assumptions.Default()), monitoring.NewCollector())
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Succeeded)
}

func TestProcessBatch_CancelledContext(t *testing.T) {
	in := t.TempDir()
	path := writeInput(t, in, "acme.yaml", referenceYAML)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := processBatch(ctx, []string{path}, t.TempDir(), 1, leak.NewEngine(assumptions.Default()), monitoring.NewCollector())
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.Succeeded)
	assert.Equal(t, int64(1), summary.Failed)
}
