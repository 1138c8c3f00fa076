package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/recordlint/export"
	"github.com/c360studio/recordlint/validation"
)

func report(findings ...validation.Finding) *export.Report {
	return export.NewReport(NewRunID(), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), validation.Stats{Documents: 1}, findings)
}

func TestRunStore_AppendAndLast(t *testing.T) {
	store := NewRunStore(filepath.Join(t.TempDir(), ".recordlint", "runs.jsonl"), nil)

	_, err := store.Last()
	assert.True(t, errors.Is(err, ErrNoRuns))

	first := report(validation.Finding{Severity: validation.SeverityError, Code: validation.MetaRequired, Path: "a.md", Message: "missing"})
	second := report()
	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	runs, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first.RunID, runs[0].ID)
	assert.False(t, runs[0].Clean())

	last, err := store.Last()
	require.NoError(t, err)
	assert.Equal(t, second.RunID, last.ID)
	assert.True(t, last.Clean())
	require.Len(t, last.Records, 1)
	assert.Equal(t, second.RunID, last.Records[0].Run)
}

func TestRunStore_Get(t *testing.T) {
	store := NewRunStore(filepath.Join(t.TempDir(), "runs.jsonl"), nil)
	r := report()
	require.NoError(t, store.Append(r))

	got, err := store.Get(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, r.RunID, got.ID)

	_, err = store.Get(NewRunID())
	assert.True(t, errors.Is(err, ErrRunNotFound))

	_, err = store.Get("not-a-uuid")
	assert.Error(t, err)
}

func TestRunStore_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store := NewRunStore(path, nil)
	require.NoError(t, store.Append(report()))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	runs, err := store.Runs()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunStore_RequiresRunID(t *testing.T) {
	store := NewRunStore(filepath.Join(t.TempDir(), "runs.jsonl"), nil)
	r := report()
	r.RunID = ""
	assert.Error(t, store.Append(r))
}

func TestParseRunID(t *testing.T) {
	id := NewRunID()
	got, err := ParseRunID(id)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseRunID("")
	assert.Error(t, err)
}
