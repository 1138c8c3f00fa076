package validation

import (
	"sort"
	"strconv"
)

// Finding is one reported defect in one document.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	Path     string   `json:"path"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
}

// Location returns "path" or "path:line" when the line is known.
func (f Finding) Location() string {
	if f.Line <= 0 {
		return f.Path
	}
	return f.Path + ":" + strconv.Itoa(f.Line)
}

// Sort orders findings by path, severity (most severe first), code, line
// and message.
func Sort(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Message < b.Message
	})
}

// MaxSeverity returns the most severe finding severity. ok is false when
// there are no findings.
func MaxSeverity(findings []Finding) (highest Severity, ok bool) {
	for i, f := range findings {
		if i == 0 || f.Severity > highest {
			highest = f.Severity
		}
	}
	return highest, len(findings) > 0
}

// Summary counts findings per severity.
type Summary struct {
	Documents int `json:"documents"`
	Errors    int `json:"errors"`
	Warnings  int `json:"warnings"`
	Infos     int `json:"infos"`
}

// Total returns the number of findings counted.
func (s Summary) Total() int {
	return s.Errors + s.Warnings + s.Infos
}

// Summarize counts findings per severity.
func Summarize(documents int, findings []Finding) Summary {
	s := Summary{Documents: documents}
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		default:
			s.Infos++
		}
	}
	return s
}
