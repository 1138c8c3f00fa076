package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSeverity is returned when a severity name cannot be parsed.
var ErrInvalidSeverity = errors.New("invalid severity")

// Severity ranks a finding. Higher values are more severe.
type Severity int

const (
	// SeverityInfo is advisory.
	SeverityInfo Severity = iota
	// SeverityWarning should be fixed but does not fail a run by default.
	SeverityWarning
	// SeverityError is a defect.
	SeverityError
)

var severityNames = map[Severity]string{
	SeverityInfo:    "info",
	SeverityWarning: "warning",
	SeverityError:   "error",
}

// String returns the lower-case severity name.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// AtLeast reports whether s is as severe as floor or more.
func (s Severity) AtLeast(floor Severity) bool {
	return s >= floor
}

// ParseSeverity parses a severity name. "warn" is accepted for warning.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
