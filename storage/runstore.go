// Package storage keeps the append-only log of lint runs.
package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/c360studio/recordlint/export"
)

// DefaultPath is the run log location relative to the lint root.
const DefaultPath = ".recordlint/runs.jsonl"

// maxRecordBytes bounds one JSONL line when reading the log back.
const maxRecordBytes = 1 << 20

// Run is the set of records written by one lint run.
type Run struct {
	ID      string
	Time    time.Time
	Records []export.Record
}

// Clean reports whether the run recorded no findings.
func (r Run) Clean() bool {
	return len(r.Records) == 1 && r.Records[0].Code == export.CleanCode
}

// RunStore appends run records to a JSONL file and reads them back.
type RunStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewRunStore creates a store writing to path.
func NewRunStore(path string, logger *slog.Logger) *RunStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunStore{path: path, logger: logger}
}

// Path returns the run log path.
func (s *RunStore) Path() string {
	return s.path
}

// Append writes every record of r to the log, tagged with the report run id.
func (s *RunStore) Append(r *export.Report) error {
	if r.RunID == "" {
		return errors.New("report has no run id")
	}

	records := export.Records(r)
	for i := range records {
		records[i].Run = r.RunID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	if err := export.EncodeRecords(f, records); err != nil {
		return fmt.Errorf("append run %s: %w", r.RunID, err)
	}

	s.logger.Debug("Run recorded", "run", r.RunID, "records", len(records), "path", s.path)
	return nil
}

// Runs returns every run in the log, oldest first.
func (s *RunStore) Runs() ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	var (
		runs  []Run
		index = make(map[string]int)
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxRecordBytes)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec export.Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil || rec.Run == "" {
			s.logger.Warn("Skipping malformed run log line", "path", s.path, "line", line)
			continue
		}
		i, ok := index[rec.Run]
		if !ok {
			i = len(runs)
			index[rec.Run] = i
			runs = append(runs, Run{ID: rec.Run, Time: rec.Time})
		}
		runs[i].Records = append(runs[i].Records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read run log: %w", err)
	}
	return runs, nil
}

// Last returns the most recent run.
func (s *RunStore) Last() (Run, error) {
	runs, err := s.Runs()
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, ErrNoRuns
	}
	return runs[len(runs)-1], nil
}

// Get returns the run with id.
func (s *RunStore) Get(id string) (Run, error) {
	id, err := ParseRunID(id)
	if err != nil {
		return Run{}, err
	}
	runs, err := s.Runs()
	if err != nil {
		return Run{}, err
	}
	for _, r := range runs {
		if r.ID == id {
			return r, nil
		}
	}
	return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
}
