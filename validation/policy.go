package validation

import (
	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

// bootstrap codes run regardless of class. They check the metadata that
// class-based applicability itself depends on.
var bootstrap = map[Code]bool{
	MetaRequired: true,
	MetaClass:    true,
	MetaIDFormat: true,
	MetaStatus:   true,
}

// classSet is the set of classes a code applies to.
type classSet struct {
	classes map[vocab.ClassType]bool
}

func newClassSet(classes ...vocab.ClassType) *classSet {
	s := &classSet{classes: make(map[vocab.ClassType]bool, len(classes))}
	for _, c := range classes {
		s.classes[c] = true
	}
	return s
}

func (s *classSet) has(c vocab.ClassType) bool {
	return s.classes[c]
}

// applicability maps each code to the classes it applies to.
var applicability = buildApplicability()

func buildApplicability() map[Code]*classSet {
	table := make(map[Code]*classSet, len(codes))
	for _, d := range codes {
		table[d.Code] = newClassSet(vocab.Classes...)
	}

	only := func(code Code, classes ...vocab.ClassType) {
		table[code] = newClassSet(classes...)
	}
	exempt := func(code Code, c vocab.ClassType) {
		delete(table[code].classes, c)
	}

	for _, d := range codes {
		if d.Code.Band() == "ADR" {
			only(d.Code, vocab.ClassDecision)
		}
	}
	only(ContentNormative, vocab.ClassSpec)
	exempt(StructTailMissing, vocab.ClassGuide)
	exempt(ContentShort, vocab.ClassGuide)
	exempt(LinkNoSuccessor, vocab.ClassGuide)

	return table
}

// IsBootstrap reports whether code bypasses Applies.
func IsBootstrap(code Code) bool {
	return bootstrap[code]
}

// Applies reports whether the rule identified by code should run against a
// document of class. A missing or unknown class gets no gated rules. A code
// absent from the table, or a failure while deciding, counts as applicable.
func Applies(class vocab.ClassType, code Code) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = true
		}
	}()

	if !class.IsValid() {
		return false
	}
	classes, known := applicability[code]
	if !known {
		return true
	}
	return classes.has(class)
}

// ApplicableClasses returns the classes code applies to, in vocab.Classes
// order. Bootstrap codes apply to every document, classed or not.
func ApplicableClasses(code Code) []vocab.ClassType {
	var out []vocab.ClassType
	for _, c := range vocab.Classes {
		if IsBootstrap(code) || Applies(c, code) {
			out = append(out, c)
		}
	}
	return out
}
