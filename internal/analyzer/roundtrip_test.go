package analyzer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseforge/caseforge/internal/generator"
	"github.com/caseforge/caseforge/internal/logging"
	"github.com/caseforge/caseforge/internal/sink"
)

// Generate a log with injected anomalies and read it back: every detector's
// count must respect the corresponding quota, and totals must match.
func TestRoundTrip_QuotasBoundDetections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	cfg := generator.Config{
		Output:    path,
		Format:    generator.FormatCSV,
		Instances: 10,
		MaxEvents: 10,
		SelfLoops: 2,
		PingPongs: 2,
		Gaps:      2,
		Errors:    2,
		Seed:      1234,
	}

	s, err := sink.Open(path, cfg.Format, false)
	require.NoError(t, err)

	runner := generator.NewRunner(cfg, logging.Default())
	runner.StartTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	summary, err := runner.Run(s)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	cases, err := ReadLog(path)
	require.NoError(t, err)
	require.Len(t, cases, cfg.Instances)

	a := &Analyzer{}
	report := a.Analyze(cases)

	assert.Equal(t, summary.Events, report.TotalEvents)
	assert.Equal(t, cfg.Instances, report.TotalCases)

	counts := make(map[string]int)
	for _, d := range report.Detections {
		counts[d.Name] = d.Count
	}

	// Each error injection flips exactly one event in one case.
	assert.Equal(t, summary.Injected.Errors, counts[DetectError])

	// Only a gap inflated mid-sequence leaves a backward step.
	assert.LessOrEqual(t, counts[DetectBackwardStep], summary.Injected.Gaps)

	// An injected duplicate either stays adjacent or, if a ping-pong swap
	// wedged another event between the pair, shows up as a return instead.
	assert.GreaterOrEqual(t, counts[DetectSelfLoop]+counts[DetectReturn],
		summary.Injected.SelfLoops)
}

// A run with all quotas at zero and no truncation yields a log the analyzer
// considers entirely clean of errors and incomplete cases.
func TestRoundTrip_QuietRunIsClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.csv")
	cfg := generator.Config{
		Output:    path,
		Format:    generator.FormatCSV,
		Instances: 5,
		MaxEvents: 8,
		Seed:      7,
	}

	s, err := sink.Open(path, cfg.Format, false)
	require.NoError(t, err)
	runner := generator.NewRunner(cfg, logging.Default())
	runner.StartTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err = runner.Run(s)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	cases, err := ReadLog(path)
	require.NoError(t, err)

	report := (&Analyzer{}).Analyze(cases)
	for _, d := range report.Detections {
		switch d.Name {
		case DetectError, DetectIncomplete, DetectBackwardStep:
			assert.Zerof(t, d.Count, "detector %q on a quiet run", d.Name)
		}
	}
}
