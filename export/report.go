package export

import (
	"fmt"
	"io"
	"time"

	"github.com/c360studio/recordlint/validation"
)

// CleanCode is the code of the single record written for a run without
// findings.
const CleanCode = "CLEAN"

// cleanMessage is printed for a run without findings.
const cleanMessage = "clean run: no findings"

// Report is the outcome of one lint run.
type Report struct {
	RunID    string
	Time     time.Time
	Duration time.Duration
	Stats    validation.Stats
	Findings []validation.Finding
}

// NewReport creates a report holding a sorted copy of findings.
func NewReport(runID string, at time.Time, stats validation.Stats, findings []validation.Finding) *Report {
	sorted := append([]validation.Finding(nil), findings...)
	validation.Sort(sorted)
	return &Report{
		RunID:    runID,
		Time:     at.UTC(),
		Stats:    stats,
		Findings: sorted,
	}
}

// Summary counts the report findings per severity.
func (r *Report) Summary() validation.Summary {
	return validation.Summarize(r.Stats.Documents, r.Findings)
}

// Files returns the paths with findings, in report order.
func (r *Report) Files() []string {
	var files []string
	for i, f := range r.Findings {
		if i == 0 || f.Path != r.Findings[i-1].Path {
			files = append(files, f.Path)
		}
	}
	return files
}

// Clean reports whether the run produced no findings.
func (r *Report) Clean() bool {
	return len(r.Findings) == 0
}

// Write renders r to w in format.
func Write(w io.Writer, format Format, r *Report) error {
	switch format {
	case FormatText, "":
		return WriteText(w, r)
	case FormatMarkdown:
		return WriteMarkdown(w, r)
	case FormatJSONL:
		return WriteJSONL(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
