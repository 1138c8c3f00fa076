package record

// ClassType represents record classification classes.
type ClassType string

const (
	// ClassDecision is an architecture decision record.
	ClassDecision ClassType = "decision"

	// ClassSpec is a technical specification.
	// Specs carry normative requirements.
	ClassSpec ClassType = "spec"

	// ClassPolicy is an organisational or engineering policy.
	ClassPolicy ClassType = "policy"

	// ClassRunbook is an operational procedure.
	// Runbooks must document how to roll back.
	ClassRunbook ClassType = "runbook"

	// ClassGuide is explanatory material with the loosest rules.
	ClassGuide ClassType = "guide"
)

// Classes lists every known class in declaration order.
var Classes = []ClassType{ClassDecision, ClassSpec, ClassPolicy, ClassRunbook, ClassGuide}

// IsValid reports whether c is a known class.
func (c ClassType) IsValid() bool {
	for _, known := range Classes {
		if c == known {
			return true
		}
	}
	return false
}

// StatusType represents the lifecycle status of a record.
type StatusType string

const (
	StatusDraft      StatusType = "draft"
	StatusProposed   StatusType = "proposed"
	StatusAccepted   StatusType = "accepted"
	StatusDeprecated StatusType = "deprecated"
	StatusSuperseded StatusType = "superseded"
)

// Statuses lists every known status.
var Statuses = []StatusType{StatusDraft, StatusProposed, StatusAccepted, StatusDeprecated, StatusSuperseded}

// IsValid reports whether s is a known status.
func (s StatusType) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Front-matter field names.
const (
	FieldID            = "id"
	FieldTitle         = "title"
	FieldClass         = "class"
	FieldStatus        = "status"
	FieldCreated       = "created"
	FieldUpdated       = "updated"
	FieldTags          = "tags"
	FieldSupersedes    = "supersedes"
	FieldSupersededBy  = "superseded_by"
	FieldExtends       = "extends"
	FieldChangeHistory = "change_history"
	FieldDeciders      = "deciders"

	// Change-history entry fields.
	HistoryDate = "date"
	HistoryNote = "note"
)

// RequiredFields are the front-matter fields every record must carry.
var RequiredFields = []string{FieldID, FieldTitle, FieldClass, FieldStatus}

// Section marker keys.
const (
	MarkerSummary      = "summary"
	MarkerContext      = "context"
	MarkerDecision     = "decision"
	MarkerConsequences = "consequences"
	MarkerAlternatives = "alternatives"
	MarkerScope        = "scope"
	MarkerPolicy       = "policy"
	MarkerRequirements = "requirements"
	MarkerProcedure    = "procedure"
	MarkerRollback     = "rollback"
	MarkerReferences   = "references"
	MarkerNotes        = "notes"
)

// CanonicalMarkers lists every known marker in canonical document order.
var CanonicalMarkers = []string{
	MarkerSummary,
	MarkerContext,
	MarkerScope,
	MarkerDecision,
	MarkerPolicy,
	MarkerRequirements,
	MarkerProcedure,
	MarkerRollback,
	MarkerConsequences,
	MarkerAlternatives,
	MarkerReferences,
	MarkerNotes,
}

// RequiredMarkers maps each class to the markers it must contain.
// Every class requires MarkerSummary.
var RequiredMarkers = map[ClassType][]string{
	ClassDecision: {MarkerSummary, MarkerContext, MarkerDecision, MarkerConsequences},
	ClassSpec:     {MarkerSummary, MarkerRequirements},
	ClassPolicy:   {MarkerSummary, MarkerScope, MarkerPolicy},
	ClassRunbook:  {MarkerSummary, MarkerProcedure, MarkerRollback},
	ClassGuide:    {MarkerSummary},
}

// MarkerRank returns the position of key in CanonicalMarkers, or -1.
func MarkerRank(key string) int {
	for i, m := range CanonicalMarkers {
		if m == key {
			return i
		}
	}
	return -1
}

// ForkKeywords are the change-history words that justify a fork.
var ForkKeywords = []string{"fork", "branch", "split", "diverge", "merge", "consolidate"}
