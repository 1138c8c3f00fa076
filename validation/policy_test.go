package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

func TestApplies(t *testing.T) {
	tests := []struct {
		name  string
		class vocab.ClassType
		code  Code
		want  bool
	}{
		{"default applies", vocab.ClassPolicy, StructTitle, true},
		{"adr band for decisions", vocab.ClassDecision, ADROutcome, true},
		{"adr band not for specs", vocab.ClassSpec, ADRDeciders, false},
		{"normative only for specs", vocab.ClassSpec, ContentNormative, true},
		{"normative not for runbooks", vocab.ClassRunbook, ContentNormative, false},
		{"guide exempt from tail", vocab.ClassGuide, StructTailMissing, false},
		{"guide exempt from length", vocab.ClassGuide, ContentShort, false},
		{"guide exempt from successor", vocab.ClassGuide, LinkNoSuccessor, false},
		{"runbook keeps successor", vocab.ClassRunbook, LinkNoSuccessor, true},
		{"missing class", "", StructTitle, false},
		{"unknown class", "banana", MetaRequired, false},
		{"code outside table", vocab.ClassGuide, "REC-X-001", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Applies(tt.class, tt.code))
		})
	}
}

// setApplicability replaces one table entry for the duration of the test.
func setApplicability(t *testing.T, code Code, set *classSet) {
	t.Helper()
	old, had := applicability[code]
	applicability[code] = set
	t.Cleanup(func() {
		if had {
			applicability[code] = old
		} else {
			delete(applicability, code)
		}
	})
}

func TestApplies_FailsOpen(t *testing.T) {
	// A nil entry panics on lookup; the rule must still run.
	setApplicability(t, ADROutcome, nil)
	assert.True(t, Applies(vocab.ClassSpec, ADROutcome))
	assert.False(t, Applies("", ADROutcome))
}

func TestIsBootstrap(t *testing.T) {
	for _, code := range []Code{MetaRequired, MetaClass, MetaIDFormat, MetaStatus} {
		assert.True(t, IsBootstrap(code), code)
	}
	assert.False(t, IsBootstrap(MetaDateFormat))
	assert.False(t, IsBootstrap(GraphCycle))
}

func TestApplicableClasses(t *testing.T) {
	assert.Equal(t, []vocab.ClassType{vocab.ClassDecision}, ApplicableClasses(ADRTradeoffs))
	assert.Equal(t, vocab.Classes, ApplicableClasses(MetaRequired))
	assert.NotContains(t, ApplicableClasses(ContentShort), vocab.ClassGuide)
}
