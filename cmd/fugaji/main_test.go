package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/common"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

// setupCLI isolates a test from the user's config and history database.
func setupCLI(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	dbPath := filepath.Join(home, "history.db")
	t.Setenv("HOME", home)
	t.Setenv("FUGAJI_DATABASE_PATH", dbPath)
	return dbPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func listHistory(t *testing.T) []model.Prediction {
	t.Helper()
	out, err := runCLI(t, "history", "list", "-o", "json")
	require.NoError(t, err)

	var predictions []model.Prediction
	require.NoError(t, json.Unmarshal([]byte(out), &predictions))
	return predictions
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"interpret", "batch", "history", "diseases", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "log-level", "log-format", "output", "db"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %s", flag)
	}
}

func TestVersionCmd(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fugaji dev\n", out)
}

func TestInterpretCmd_JSONAndHistory(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "interpret", "Newcastle", "Disease", "--confidence", "0.4", "-o", "json")
	require.NoError(t, err)

	var result interpretResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Newcastle Disease", result.Signal.Label)
	assert.Equal(t, model.StatusCritical, result.Interpretation.Status)
	assert.Equal(t, model.SeverityHigh, result.Interpretation.Severity)
	assert.NotEmpty(t, result.ID)
	assert.Nil(t, result.Explanation)

	history := listHistory(t)
	require.Len(t, history, 1)
	assert.Equal(t, result.ID, history[0].ID)
	assert.Equal(t, model.SourceInteractive, history[0].Source)
	assert.Equal(t, result.Interpretation, history[0].Interpretation)
}

func TestInterpretCmd_NoSave(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "interpret", "healthy", "-c", "0.96", "--no-save", "-o", "json")
	require.NoError(t, err)

	var result interpretResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Empty(t, result.ID)
	assert.Equal(t, model.StatusHealthy, result.Interpretation.Status)

	assert.Empty(t, listHistory(t))
}

func TestInterpretCmd_HistoryDisabledByEnv(t *testing.T) {
	setupCLI(t)
	t.Setenv("FUGAJI_HISTORY_ENABLED", "false")

	_, err := runCLI(t, "interpret", "coccidiosis", "-c", "0.84", "-o", "json")
	require.NoError(t, err)

	t.Setenv("FUGAJI_HISTORY_ENABLED", "true")
	assert.Empty(t, listHistory(t))
}

func TestInterpretCmd_Explain(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "interpret", "gumboro", "-c", "0.91", "--explain", "--no-save", "-o", "json")
	require.NoError(t, err)

	var result interpretResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotNil(t, result.Explanation)
	assert.Equal(t, "disease", result.Explanation.Outcome)
	assert.Equal(t, "moderate-class", result.Explanation.Rule)
	require.NotNil(t, result.Explanation.Disease)
	assert.Equal(t, "Infectious Bursal Disease", result.Explanation.Disease.CanonicalName)
	assert.Equal(t, model.SeverityHigh, result.Interpretation.Severity)
}

func TestInterpretCmd_TextOutput(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "interpret", "xyzzy", "-c", "0.5", "--no-save", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "UNKNOWN")
	assert.Contains(t, out, "outcome=indeterminate")
}

func TestInterpretCmd_OutOfRangeConfidencePassesThrough(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "interpret", "infection", "-c", "1.5", "-o", "json")
	require.NoError(t, err)

	var result interpretResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, model.BandVeryHigh, result.Interpretation.ConfidenceBand)
	assert.InDelta(t, 1.5, result.Signal.Confidence, 1e-9)
}

func TestInterpretCmd_Errors(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "interpret", "healthy")
	assert.Error(t, err, "confidence is required")

	_, err = runCLI(t, "interpret", "  ", "-c", "0.5")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = runCLI(t, "interpret", "healthy", "-c", "0.5", "-o", "xml")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestBatchCmd(t *testing.T) {
	setupCLI(t)

	file := filepath.Join(t.TempDir(), "signals.csv")
	content := "label,confidence\nhealthy,0.96\nNewcastle Disease,0.4\ncoccidiosis,0.84\nxyzzy,0.5\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	out, err := runCLI(t, "batch", file, "-w", "2", "-o", "json")
	require.NoError(t, err)

	var report batchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 4)
	assert.Equal(t, 4, report.Saved)
	assert.Equal(t, "healthy", report.Results[0].Signal.Label)
	assert.Equal(t, model.StatusCritical, report.Results[1].Interpretation.Status)
	assert.Equal(t, map[model.Status]int{
		model.StatusHealthy:  1,
		model.StatusCritical: 1,
		model.StatusWarning:  1,
		model.StatusUnknown:  1,
	}, report.Counts)

	history := listHistory(t)
	require.Len(t, history, 4)
	for _, p := range history {
		assert.Equal(t, model.SourceBatch, p.Source)
	}
}

func TestBatchCmd_TextSummary(t *testing.T) {
	setupCLI(t)

	file := filepath.Join(t.TempDir(), "signals.jsonl")
	content := `{"label": "bird flu", "confidence": 0.3}` + "\n" + `{"label": "healthy", "confidence": 0.9}` + "\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	out, err := runCLI(t, "batch", file, "--quiet", "--no-save")
	require.NoError(t, err)
	assert.Contains(t, out, "bird flu")
	assert.Contains(t, out, "Batch summary")
	assert.NotContains(t, out, "Recorded")

	assert.Empty(t, listHistory(t))
}

func TestBatchCmd_Errors(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "batch", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	unsupported := filepath.Join(t.TempDir(), "signals.txt")
	require.NoError(t, os.WriteFile(unsupported, []byte("healthy,0.9\n"), 0o600))
	_, err = runCLI(t, "batch", unsupported)
	assert.ErrorIs(t, err, common.ErrUnsupportedIO)

	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("label,confidence\n"), 0o600))
	_, err = runCLI(t, "batch", empty)
	assert.ErrorIs(t, err, common.ErrNoSignals)
}

func TestHistoryCmds(t *testing.T) {
	setupCLI(t)

	for _, args := range [][]string{
		{"interpret", "healthy", "-c", "0.96", "-o", "json"},
		{"interpret", "newcastle", "-c", "0.4", "-o", "json"},
		{"interpret", "healthy", "-c", "0.8", "-o", "json"},
	} {
		_, err := runCLI(t, args...)
		require.NoError(t, err)
	}

	out, err := runCLI(t, "history", "list", "--status", "healthy", "-o", "json")
	require.NoError(t, err)
	var healthy []model.Prediction
	require.NoError(t, json.Unmarshal([]byte(out), &healthy))
	assert.Len(t, healthy, 2)

	_, err = runCLI(t, "history", "list", "--status", "sickly")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	out, err = runCLI(t, "history", "show", healthy[0].ID, "-o", "json")
	require.NoError(t, err)
	var shown model.Prediction
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, healthy[0].ID, shown.ID)

	_, err = runCLI(t, "history", "show", "missing-id")
	assert.ErrorIs(t, err, common.ErrNotFound)

	out, err = runCLI(t, "history", "stats", "-o", "json")
	require.NoError(t, err)
	var counts map[model.Status]int
	require.NoError(t, json.Unmarshal([]byte(out), &counts))
	assert.Equal(t, 2, counts[model.StatusHealthy])
	assert.Equal(t, 1, counts[model.StatusCritical])

	out, err = runCLI(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "newcastle")
}

func TestHistoryClearCmd(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "interpret", "healthy", "-c", "0.96", "-o", "json")
	require.NoError(t, err)

	_, err = runCLI(t, "history", "clear")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = runCLI(t, "history", "clear", "--before", "yesterday", "--yes")
	assert.Error(t, err)

	out, err := runCLI(t, "history", "clear", "--before", "2000-01-01", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 0 predictions")
	assert.Len(t, listHistory(t), 1)

	out, err = runCLI(t, "history", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 predictions")
	assert.Empty(t, listHistory(t))
}

func TestDiseasesCmd(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "diseases", "-o", "json")
	require.NoError(t, err)

	var refs []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &refs))
	require.NotEmpty(t, refs)
	assert.Equal(t, "newcastle", refs[0]["keyword"])
	assert.Equal(t, "Newcastle Disease", refs[0]["canonicalName"])
	assert.Equal(t, "critical", refs[0]["urgency"])

	out, err = runCLI(t, "diseases")
	require.NoError(t, err)
	assert.Contains(t, out, "Coccidiosis")
}

func TestConfigFile(t *testing.T) {
	dbPath := setupCLI(t)
	t.Setenv("FUGAJI_DATABASE_PATH", "")

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	content := "database:\n  path: " + dbPath + "\noutput:\n  format: json\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o600))

	out, err := runCLI(t, "--config", cfg, "interpret", "healthy", "-c", "0.9")
	require.NoError(t, err)

	var result interpretResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.NotEmpty(t, result.ID)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}
