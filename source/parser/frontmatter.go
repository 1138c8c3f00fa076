package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	frontmatterFence = "---"
	byteOrderMark    = "\uFEFF"
)

// ExtractFrontmatter splits raw document text into its front-matter mapping
// and the byte offset at which the body starts.
//
// The text must open with a "---" line, followed by at least one payload line
// and a closing "---" line (end of file may stand in for the newline after
// the closing fence). A leading byte-order mark is skipped. When no such block
// exists the result is an empty mapping and offset 0.
//
// Lines may end in CRLF or LF. The offset always indexes into text as given,
// so text[offset:] is the body regardless of line-ending style.
func ExtractFrontmatter(text string) (map[string]any, int) {
	start := 0
	if strings.HasPrefix(text, byteOrderMark) {
		start = len(byteOrderMark)
	}

	first, next, ok := nextLine(text, start)
	if !ok || !isFenceLine(first) {
		return map[string]any{}, 0
	}

	payloadStart := next
	for pos := next; pos < len(text); {
		line, after, _ := nextLine(text, pos)
		if isFenceLine(line) {
			if pos == payloadStart {
				// "---" immediately followed by "---" carries no payload.
				return map[string]any{}, 0
			}
			return parsePayload(text[payloadStart:pos]), after
		}
		pos = after
	}

	return map[string]any{}, 0
}

// nextLine returns the line starting at pos without its terminator, the
// offset of the following line, and whether the line ended in a newline.
func nextLine(text string, pos int) (string, int, bool) {
	if pos >= len(text) {
		return "", len(text), false
	}
	idx := strings.IndexByte(text[pos:], '\n')
	if idx == -1 {
		return text[pos:], len(text), false
	}
	return text[pos : pos+idx], pos + idx + 1, true
}

func isFenceLine(line string) bool {
	return strings.TrimRight(line, " \t\r") == frontmatterFence
}

// parsePayload decodes the front-matter payload as YAML. When the payload is
// not a YAML mapping it falls back to a permissive key: value scan.
func parsePayload(payload string) map[string]any {
	normalized := strings.ReplaceAll(payload, "\r\n", "\n")

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(normalized), &meta); err == nil {
		if meta == nil {
			meta = map[string]any{}
		}
		return meta
	}

	return scanKeyValues(normalized)
}

// scanKeyValues reads "key: value" lines, ignoring blank lines, comment lines
// and lines without a separator. It never fails.
func scanKeyValues(payload string) map[string]any {
	meta := map[string]any{}
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}
		meta[key] = unquote(strings.TrimSpace(line[idx+1:]))
	}
	return meta
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
