package validation

import (
	"regexp"

	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

var (
	outcomePattern  = regexp.MustCompile(`(?i)\b(we will|we decided|we have decided|we chose|we choose|we adopt|we are going to|we use|we reject|decided to|is accepted|is rejected)\b`)
	tradeoffPattern = regexp.MustCompile(`(?i)\b(trade-?offs?|positive|negative|drawbacks?|downsides?|risks?|costs?|benefits?|cons|pros)\b`)
)

var decisionRules = []Rule{
	{ADROutcome, checkDecisionOutcome},
	{ADRDeciders, checkDeciders},
	{ADRTradeoffs, checkTradeoffs},
}

func checkDecisionOutcome(c *Context, r *Reporter) error {
	s := c.Structure()
	content, ok := s.Sections[vocab.MarkerDecision]
	if !ok || outcomePattern.MatchString(content) {
		return nil
	}
	m, _ := s.FirstMarker(vocab.MarkerDecision)
	return r.Report(ADROutcome, c.Line(m.Line),
		`decision section does not state an outcome (e.g. "We will ...")`)
}

func checkDeciders(c *Context, r *Reporter) error {
	if c.Doc.Status() != vocab.StatusAccepted || len(c.Doc.StringList(vocab.FieldDeciders)) > 0 {
		return nil
	}
	return r.Report(ADRDeciders, c.FieldLine(vocab.FieldStatus), "accepted decision has no deciders")
}

func checkTradeoffs(c *Context, r *Reporter) error {
	s := c.Structure()
	content, ok := s.Sections[vocab.MarkerConsequences]
	if !ok || tradeoffPattern.MatchString(content) {
		return nil
	}
	m, _ := s.FirstMarker(vocab.MarkerConsequences)
	return r.Report(ADRTradeoffs, c.Line(m.Line),
		"consequences section names no trade-offs, risks or costs")
}
