package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"error", SeverityError},
		{"Warning", SeverityWarning},
		{"warn", SeverityWarning},
		{" info ", SeverityInfo},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseSeverity("fatal")
	assert.True(t, errors.Is(err, ErrInvalidSeverity))
}

func TestSeverity_AtLeast(t *testing.T) {
	assert.True(t, SeverityError.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityInfo.AtLeast(SeverityWarning))
}

func TestSeverity_Text(t *testing.T) {
	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("warning")))
	assert.Equal(t, SeverityWarning, s)
	assert.Error(t, s.UnmarshalText([]byte("loud")))
	assert.Equal(t, "severity(9)", Severity(9).String())
}
