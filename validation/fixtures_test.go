package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/recordlint/source"
)

const fence = "```"

// cleanDecision is a decision record that produces no findings.
const cleanDecision = `---
id: ADR-001
title: Use records for decisions
class: decision
status: accepted
created: 2024-01-05
updated: 2024-02-01
deciders: [alice, bob]
tags: [process]
---
# Use records for decisions

## Summary
<!-- key: summary -->
Architecture decisions are captured as versioned records in the repository.

## Context
<!-- key: context -->
Decisions were scattered across chat threads and meeting notes, and nobody could find them later.

## Decision
<!-- key: decision -->
We will write one record per decision and review it like code.

## Consequences
<!-- key: consequences -->
Trade-off: authors spend a little more time up front, in exchange for a searchable history.

<!-- record:begin -->
` + fence + `json
{"id": "ADR-001", "class": "decision", "status": "accepted"}
` + fence + `
<!-- record:end -->
`

// decision returns cleanDecision rewritten for id, with extra front-matter
// lines appended after tags.
func decision(id, extra string) source.Input {
	text := strings.ReplaceAll(cleanDecision, "ADR-001", id)
	text = strings.Replace(text, "tags: [process]\n", "tags: [process]\n"+extra, 1)
	return source.Input{Path: "records/" + strings.ToLower(id) + "-record.md", Text: text}
}

func lint(t *testing.T, inputs ...source.Input) []Finding {
	t.Helper()
	findings, _, err := Lint(inputs, nil)
	require.NoError(t, err)
	return findings
}

func codesOf(findings []Finding) []Code {
	out := make([]Code, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Code)
	}
	return out
}

func withCode(findings []Finding, code Code) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Code == code {
			out = append(out, f)
		}
	}
	return out
}
