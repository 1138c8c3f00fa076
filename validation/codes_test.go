package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodes_WellFormed(t *testing.T) {
	for _, d := range Codes() {
		assert.Regexp(t, codePattern, string(d.Code))
		assert.NotEmpty(t, d.Title, d.Code)
	}
}

func TestCodes_ReturnsCopy(t *testing.T) {
	table := Codes()
	table[0].Severity = SeverityInfo
	table[0].Title = "changed"

	d, err := Lookup(table[0].Code)
	require.NoError(t, err)
	assert.Equal(t, SeverityError, d.Severity)
	assert.Equal(t, SeverityError, Codes()[0].Severity)
	assert.NotEqual(t, "changed", Codes()[0].Title)
}

func TestLookup(t *testing.T) {
	d, err := Lookup(GraphCycle)
	require.NoError(t, err)
	assert.Equal(t, SeverityError, d.Severity)
	assert.Equal(t, "supersedes cycle detected", d.Title)

	_, err = Lookup("REC-NOPE-001")
	assert.True(t, errors.Is(err, ErrUndeclaredCode))
}

func TestCode_Band(t *testing.T) {
	assert.Equal(t, "META", MetaRequired.Band())
	assert.Equal(t, "ADR", ADROutcome.Band())
	assert.Equal(t, "", Code("bogus").Band())
}

func TestBuildCodeTable_PanicsOnDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		buildCodeTable([]Descriptor{
			{MetaRequired, SeverityError, "a"},
			{MetaRequired, SeverityError, "b"},
		})
	})
	assert.Panics(t, func() {
		buildCodeTable([]Descriptor{{"meta-1", SeverityError, "a"}})
	})
}
