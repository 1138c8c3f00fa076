// Package record provides the closed vocabulary for linted records.
//
// A record is a markdown document with YAML front matter. Its front matter
// declares an id, a title, a class and a status, and optionally the records it
// supersedes, the record it extends and a change history.
//
// # Document Classes
//
// Records are classified by class:
//   - decision: architecture decision record
//   - spec: technical specification
//   - policy: organisational or engineering policy
//   - runbook: operational procedure
//   - guide: explanatory guide
//
// The class gates which structural and relationship rules apply.
//
// # Section Markers
//
// Named sections start with an inline sentinel comment:
//
//	<!-- key: summary -->
//
// The set of required markers depends on the class. See RequiredMarkers.
package record
