package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUndeclaredCode is returned when a rule reports a code missing from the
// code table. It is fatal to a run.
var ErrUndeclaredCode = errors.New("undeclared rule code")

var codePattern = regexp.MustCompile(`^[A-Z]+-[A-Z]+-\d{3}$`)

// Code identifies a rule, formatted PREFIX-BAND-NNN.
type Code string

// Band returns the middle segment of the code, e.g. "META".
func (c Code) Band() string {
	parts := strings.SplitN(string(c), "-", 3)
	if len(parts) != 3 {
		return ""
	}
	return parts[1]
}

// Descriptor is the static definition of a rule code.
type Descriptor struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
}

// Rule codes.
const (
	MetaRequired       Code = "REC-META-001"
	MetaClass          Code = "REC-META-002"
	MetaIDFormat       Code = "REC-META-003"
	MetaStatus         Code = "REC-META-004"
	MetaDateFormat     Code = "REC-META-005"
	MetaDateOrder      Code = "REC-META-006"
	MetaTags           Code = "REC-META-007"
	MetaHistory        Code = "REC-META-008"
	MetaFileName       Code = "REC-META-009"
	MetaDuplicateID    Code = "REC-META-010"
	StructRequired     Code = "REC-STRUCT-001"
	StructDuplicate    Code = "REC-STRUCT-002"
	StructUnknown      Code = "REC-STRUCT-003"
	StructOrder        Code = "REC-STRUCT-004"
	StructEmpty        Code = "REC-STRUCT-005"
	StructTitle        Code = "REC-STRUCT-006"
	StructHeadingSkip  Code = "REC-STRUCT-007"
	StructTailMissing  Code = "REC-STRUCT-008"
	StructTailInvalid  Code = "REC-STRUCT-009"
	StructTailMismatch Code = "REC-STRUCT-010"
	StructFence        Code = "REC-STRUCT-011"
	StructBlockDropped Code = "REC-STRUCT-012"
	LinkSupersedes     Code = "REC-LINK-001"
	LinkSupersedesBack Code = "REC-LINK-002"
	LinkSupersededBy   Code = "REC-LINK-003"
	LinkSupersededBack Code = "REC-LINK-004"
	LinkSelf           Code = "REC-LINK-005"
	LinkExtends        Code = "REC-LINK-006"
	LinkExtendsClass   Code = "REC-LINK-007"
	LinkNoSuccessor    Code = "REC-LINK-008"
	ContentPlaceholder Code = "REC-CONTENT-001"
	ContentNormative   Code = "REC-CONTENT-002"
	ContentShort       Code = "REC-CONTENT-003"
	ContentBareURL     Code = "REC-CONTENT-004"
	ContentCredential  Code = "REC-CONTENT-005"
	ADROutcome         Code = "REC-ADR-001"
	ADRDeciders        Code = "REC-ADR-002"
	ADRTradeoffs       Code = "REC-ADR-003"
	GraphFanOut        Code = "REC-GRAPH-001"
	GraphCycle         Code = "REC-GRAPH-002"
	GraphFork          Code = "REC-GRAPH-003"
)

// codes is the code table in declaration order.
var codes = []Descriptor{
	{MetaRequired, SeverityError, "required metadata field missing"},
	{MetaClass, SeverityError, "invalid document class"},
	{MetaIDFormat, SeverityError, "invalid record id format"},
	{MetaStatus, SeverityError, "invalid status"},
	{MetaDateFormat, SeverityWarning, "date field not ISO-8601"},
	{MetaDateOrder, SeverityWarning, "updated date precedes created date"},
	{MetaTags, SeverityWarning, "tags must be a list of strings"},
	{MetaHistory, SeverityError, "change_history malformed"},
	{MetaFileName, SeverityInfo, "id does not match file name"},
	{MetaDuplicateID, SeverityError, "duplicate record id across files"},

	{StructRequired, SeverityError, "required section marker missing"},
	{StructDuplicate, SeverityError, "duplicate section marker"},
	{StructUnknown, SeverityWarning, "unknown section marker"},
	{StructOrder, SeverityWarning, "section markers out of canonical order"},
	{StructEmpty, SeverityWarning, "empty section"},
	{StructTitle, SeverityError, "document must have exactly one level-1 heading"},
	{StructHeadingSkip, SeverityWarning, "heading level skipped"},
	{StructTailMissing, SeverityWarning, "tail block missing"},
	{StructTailInvalid, SeverityError, "tail block malformed"},
	{StructTailMismatch, SeverityError, "tail block disagrees with front matter"},
	{StructFence, SeverityWarning, "unbalanced code fence"},
	{StructBlockDropped, SeverityWarning, "embedded structured block dropped"},

	{LinkSupersedes, SeverityError, "supersedes target unknown"},
	{LinkSupersedesBack, SeverityError, "supersedes link not reciprocated by superseded_by"},
	{LinkSupersededBy, SeverityError, "superseded_by target unknown"},
	{LinkSupersededBack, SeverityWarning, "superseded_by not reciprocated by supersedes"},
	{LinkSelf, SeverityError, "record references itself"},
	{LinkExtends, SeverityError, "extends target unknown"},
	{LinkExtendsClass, SeverityWarning, "extends target has a different class"},
	{LinkNoSuccessor, SeverityWarning, "superseded record names no successor"},

	{ContentPlaceholder, SeverityWarning, "placeholder text outside code and quotes"},
	{ContentNormative, SeverityWarning, "lower-case normative keyword in requirements"},
	{ContentShort, SeverityWarning, "document body too short"},
	{ContentBareURL, SeverityInfo, "bare URL, use a markdown link"},
	{ContentCredential, SeverityError, "credential-like literal in example block"},

	{ADROutcome, SeverityWarning, "decision section states no outcome"},
	{ADRDeciders, SeverityWarning, "accepted decision lists no deciders"},
	{ADRTradeoffs, SeverityInfo, "consequences section lists no trade-offs"},

	{GraphFanOut, SeverityInfo, "record superseded by multiple records"},
	{GraphCycle, SeverityError, "supersedes cycle detected"},
	{GraphFork, SeverityWarning, "fork without rationale in change history"},
}

var codeTable = buildCodeTable(codes)

// Codes returns a copy of the code table in declaration order.
func Codes() []Descriptor {
	return append([]Descriptor(nil), codes...)
}

func buildCodeTable(descs []Descriptor) map[Code]Descriptor {
	table := make(map[Code]Descriptor, len(descs))
	for _, d := range descs {
		if !codePattern.MatchString(string(d.Code)) {
			panic(fmt.Sprintf("validation: malformed rule code %q", d.Code))
		}
		if _, dup := table[d.Code]; dup {
			panic(fmt.Sprintf("validation: rule code %q declared twice", d.Code))
		}
		table[d.Code] = d
	}
	return table
}

// Lookup returns the descriptor for code.
func Lookup(code Code) (Descriptor, error) {
	d, ok := codeTable[code]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUndeclaredCode, code)
	}
	return d, nil
}
