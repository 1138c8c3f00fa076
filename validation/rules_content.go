package validation

import (
	"regexp"
	"strings"

	"github.com/c360studio/recordlint/source"
	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

// minBodyBytes is the shortest body, after trimming, that is not reported.
const minBodyBytes = 200

var (
	placeholderPattern = regexp.MustCompile(`\b(TODO|TBD|FIXME|XXX)\b|(?i:lorem ipsum)`)
	normativePattern   = regexp.MustCompile(`\b(must|shall|should)( not)?\b`)
	urlPattern         = regexp.MustCompile("https?://[^\\s<>()\\[\\]\"'`]+")
	inlineCodeSpan     = regexp.MustCompile("`[^`\n]+`")
	htmlComment        = regexp.MustCompile(`(?s)<!--.*?-->`)
	linkDefinition     = regexp.MustCompile(`^\s*\[[^\]]+\]:\s*$`)

	credentialPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:password|passwd|secret|api[_-]?key|access[_-]?key|auth[_-]?token|token)\b["']?\s*[:=]\s*["']?([A-Za-z0-9/+_.\-]{8,})`),
		regexp.MustCompile(`\b(AKIA[0-9A-Z]{16})\b`),
		regexp.MustCompile(`(-----BEGIN [A-Z ]*PRIVATE KEY-----)`),
		regexp.MustCompile(`\b(gh[pousr]_[A-Za-z0-9]{36})\b`),
	}

	// dummyValues mark obviously fake secrets in examples.
	dummyValues = []string{"example", "placeholder", "changeme", "dummy", "redacted", "xxxx", "your"}
)

var contentRules = []Rule{
	{ContentPlaceholder, checkPlaceholders},
	{ContentNormative, checkNormativeKeywords},
	{ContentShort, checkBodyLength},
	{ContentBareURL, checkBareURLs},
	{ContentCredential, checkCredentials},
}

func checkPlaceholders(c *Context, r *Reporter) error {
	s := c.Structure()
	body := c.Doc.Body
	lines := make(map[int]bool)
	for _, loc := range placeholderPattern.FindAllStringIndex(body, -1) {
		if s.Excluded(loc[0]) {
			continue
		}
		line := lineOf(body, loc[0])
		if lines[line] {
			continue
		}
		lines[line] = true
		if err := r.Reportf(ContentPlaceholder, c.Line(line),
			"placeholder text %q", body[loc[0]:loc[1]]); err != nil {
			return err
		}
	}
	return nil
}

func checkNormativeKeywords(c *Context, r *Reporter) error {
	s := c.Structure()
	start, content, ok := sectionSpan(c.Doc.Body, s, vocab.MarkerRequirements)
	if !ok {
		return nil
	}
	lines := make(map[int]bool)
	for _, loc := range normativePattern.FindAllStringIndex(content, -1) {
		offset := start + loc[0]
		if s.Excluded(offset) {
			continue
		}
		line := lineOf(c.Doc.Body, offset)
		if lines[line] {
			continue
		}
		lines[line] = true
		word := content[loc[0]:loc[1]]
		if err := r.Reportf(ContentNormative, c.Line(line),
			"normative keyword %q should be written %q", word, strings.ToUpper(word)); err != nil {
			return err
		}
	}
	return nil
}

func checkBodyLength(c *Context, r *Reporter) error {
	n := len(strings.TrimSpace(c.Doc.Body))
	if n >= minBodyBytes {
		return nil
	}
	return r.Reportf(ContentShort, 0, "document body is %d bytes; expected at least %d", n, minBodyBytes)
}

func checkBareURLs(c *Context, r *Reporter) error {
	s := c.Structure()
	body := c.Doc.Body
	skip := append(inlineCodeSpan.FindAllStringIndex(body, -1), htmlComment.FindAllStringIndex(body, -1)...)

	for _, loc := range urlPattern.FindAllStringIndex(body, -1) {
		start := loc[0]
		if s.InFence(start) || s.Quoted(start) || inIndexSpans(skip, start) || isLinked(body, start) {
			continue
		}
		if err := r.Reportf(ContentBareURL, c.Line(lineOf(body, start)),
			"bare URL %s; use a markdown link", body[start:loc[1]]); err != nil {
			return err
		}
	}
	return nil
}

// isLinked reports whether the URL starting at offset is already the target
// of a link, an autolink or a link reference definition.
func isLinked(body string, offset int) bool {
	if offset > 0 {
		switch body[offset-1] {
		case '(', '<', '"', '\'':
			return true
		}
	}
	lineStart := strings.LastIndexByte(body[:offset], '\n') + 1
	return linkDefinition.MatchString(body[lineStart:offset])
}

// checkCredentials scans only the inside of fenced code blocks, where example
// configuration and commands live.
func checkCredentials(c *Context, r *Reporter) error {
	body := c.Doc.Body
	lines := make(map[int]bool)
	for _, span := range c.Structure().Fences.Spans {
		block := body[span.Start:span.End]
		for _, re := range credentialPatterns {
			for _, m := range re.FindAllStringSubmatchIndex(block, -1) {
				value := block[m[2]:m[3]]
				if isDummyValue(value) {
					continue
				}
				line := lineOf(body, span.Start+m[0])
				if lines[line] {
					continue
				}
				lines[line] = true
				if err := r.Report(ContentCredential, c.Line(line),
					"example block contains what looks like a real credential; replace it with a placeholder"); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func isDummyValue(value string) bool {
	lower := strings.ToLower(value)
	for _, d := range dummyValues {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

// sectionSpan returns the body offset and text of the section for key.
func sectionSpan(body string, s *source.Structure, key string) (int, string, bool) {
	content, ok := s.Sections[key]
	if !ok {
		return 0, "", false
	}
	var last source.KeyMarker
	for _, m := range s.Markers {
		if m.Key == key {
			last = m
		}
	}
	i := strings.Index(body[last.Offset:], content)
	if i < 0 {
		return 0, "", false
	}
	return last.Offset + i, content, true
}

func lineOf(body string, offset int) int {
	return strings.Count(body[:offset], "\n") + 1
}

func inIndexSpans(spans [][]int, offset int) bool {
	for _, sp := range spans {
		if offset >= sp[0] && offset < sp[1] {
			return true
		}
	}
	return false
}
