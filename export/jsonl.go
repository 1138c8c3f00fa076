package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/c360studio/recordlint/validation"
)

// Record is one JSONL line.
type Record struct {
	Run      string    `json:"run,omitempty"`
	Time     time.Time `json:"time"`
	Severity string    `json:"severity"`
	Code     string    `json:"code"`
	Location string    `json:"location"`
	Message  string    `json:"message"`
}

// Records converts a report into JSONL records. A run without findings
// yields one CLEAN record so that a clean run is distinguishable from one
// that never happened.
func Records(r *Report) []Record {
	if r.Clean() {
		return []Record{{
			Time:     r.Time,
			Severity: validation.SeverityInfo.String(),
			Code:     CleanCode,
			Location: "",
			Message:  "clean run",
		}}
	}
	out := make([]Record, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, Record{
			Time:     r.Time,
			Severity: f.Severity.String(),
			Code:     string(f.Code),
			Location: f.Location(),
			Message:  f.Message,
		})
	}
	return out
}

// WriteJSONL writes one JSON object per line.
func WriteJSONL(w io.Writer, r *Report) error {
	return EncodeRecords(w, Records(r))
}

// EncodeRecords writes records as JSON lines.
func EncodeRecords(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	return nil
}

// jsonReport is the FormatJSON document.
type jsonReport struct {
	RunID    string               `json:"run_id"`
	Time     time.Time            `json:"time"`
	Summary  validation.Summary   `json:"summary"`
	Findings []validation.Finding `json:"findings"`
}

// WriteJSON writes the whole report as one indented JSON document.
func WriteJSON(w io.Writer, r *Report) error {
	findings := r.Findings
	if findings == nil {
		findings = []validation.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonReport{
		RunID:    r.RunID,
		Time:     r.Time,
		Summary:  r.Summary(),
		Findings: findings,
	}); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
