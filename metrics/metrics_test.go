package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/recordlint/validation"
)

func TestRecorder_WriteTextfile(t *testing.T) {
	r := New()
	r.Observe(
		validation.Stats{Documents: 3, Evaluated: 100, Skipped: 20},
		[]validation.Finding{
			{Severity: validation.SeverityError},
			{Severity: validation.SeverityError},
			{Severity: validation.SeverityInfo},
		},
		1500*time.Millisecond,
		time.Unix(1700000000, 0),
	)
	r.Observe(validation.Stats{Documents: 3}, nil, time.Second, time.Unix(1700000060, 0))

	path := filepath.Join(t.TempDir(), "metrics", "recordlint.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "recordlint_runs_total 2\n")
	assert.Contains(t, out, "recordlint_documents_total 6\n")
	assert.Contains(t, out, "recordlint_rules_evaluated_total 100\n")
	assert.Contains(t, out, "recordlint_rules_skipped_total 20\n")
	assert.Contains(t, out, `recordlint_findings_total{severity="error"} 2`)
	assert.Contains(t, out, `recordlint_findings_total{severity="warning"} 0`)
	assert.Contains(t, out, `recordlint_findings_total{severity="info"} 1`)
	assert.Contains(t, out, "recordlint_run_duration_seconds 1\n")
	assert.Contains(t, out, "recordlint_last_run_timestamp_seconds 1.70000006e+09\n")
}

func TestRecorder_Gather(t *testing.T) {
	families, err := New().Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "recordlint_findings_total")
	assert.Contains(t, names, "recordlint_run_duration_seconds")
}
