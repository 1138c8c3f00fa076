package validation

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/c360studio/recordlint/source"
	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

var idPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*-\d{3,}$`)

var metaRules = []Rule{
	{MetaRequired, checkRequiredFields},
	{MetaClass, checkClass},
	{MetaIDFormat, checkIDFormat},
	{MetaStatus, checkStatus},
	{MetaDateFormat, checkDateFormat},
	{MetaDateOrder, checkDateOrder},
	{MetaTags, checkTags},
	{MetaHistory, checkHistory},
	{MetaFileName, checkFileName},
	{MetaDuplicateID, checkDuplicateID},
}

func checkRequiredFields(c *Context, r *Reporter) error {
	for _, field := range vocab.RequiredFields {
		if c.Doc.String(field) != "" {
			continue
		}
		if err := r.Reportf(MetaRequired, c.FieldLine(field), "missing required field %q", field); err != nil {
			return err
		}
	}
	return nil
}

func checkClass(c *Context, r *Reporter) error {
	raw := c.Doc.String(vocab.FieldClass)
	if raw == "" || c.Doc.Class().IsValid() {
		return nil
	}
	return r.Reportf(MetaClass, c.FieldLine(vocab.FieldClass),
		"invalid class %q (expected one of %s)", raw, joinClasses(vocab.Classes))
}

func checkIDFormat(c *Context, r *Reporter) error {
	if c.Doc.ID == "" || idPattern.MatchString(c.Doc.ID) {
		return nil
	}
	return r.Reportf(MetaIDFormat, c.FieldLine(vocab.FieldID),
		"record id %q does not match PREFIX-NNN (e.g. ADR-001)", c.Doc.ID)
}

func checkStatus(c *Context, r *Reporter) error {
	raw := c.Doc.String(vocab.FieldStatus)
	if raw == "" || c.Doc.Status().IsValid() {
		return nil
	}
	names := make([]string, len(vocab.Statuses))
	for i, s := range vocab.Statuses {
		names[i] = string(s)
	}
	return r.Reportf(MetaStatus, c.FieldLine(vocab.FieldStatus),
		"invalid status %q (expected one of %s)", raw, strings.Join(names, ", "))
}

func checkDateFormat(c *Context, r *Reporter) error {
	for _, field := range []string{vocab.FieldCreated, vocab.FieldUpdated} {
		v := c.Doc.String(field)
		if v == "" || isISODate(v) {
			continue
		}
		if err := r.Reportf(MetaDateFormat, c.FieldLine(field),
			"%s date %q is not YYYY-MM-DD", field, v); err != nil {
			return err
		}
	}
	for i, entry := range c.Doc.History() {
		if entry.Date == "" || isISODate(entry.Date) {
			continue
		}
		if err := r.Reportf(MetaDateFormat, c.FieldLine(vocab.FieldChangeHistory),
			"change_history entry %d date %q is not YYYY-MM-DD", i+1, entry.Date); err != nil {
			return err
		}
	}
	return nil
}

func checkDateOrder(c *Context, r *Reporter) error {
	created, err := time.Parse(time.DateOnly, c.Doc.String(vocab.FieldCreated))
	if err != nil {
		return nil
	}
	updated, err := time.Parse(time.DateOnly, c.Doc.String(vocab.FieldUpdated))
	if err != nil {
		return nil
	}
	if !updated.Before(created) {
		return nil
	}
	return r.Reportf(MetaDateOrder, c.FieldLine(vocab.FieldUpdated),
		"updated %s is before created %s", updated.Format(time.DateOnly), created.Format(time.DateOnly))
}

func checkTags(c *Context, r *Reporter) error {
	v, ok := c.Metadata()[vocab.FieldTags]
	if !ok || v == nil {
		return nil
	}
	items, isList := v.([]any)
	if isList {
		for _, item := range items {
			if _, isString := item.(string); !isString {
				isList = false
				break
			}
		}
	}
	if isList {
		return nil
	}
	return r.Report(MetaTags, c.FieldLine(vocab.FieldTags), "tags must be a list of strings")
}

func checkHistory(c *Context, r *Reporter) error {
	v, ok := c.Metadata()[vocab.FieldChangeHistory]
	if !ok || v == nil {
		return nil
	}
	line := c.FieldLine(vocab.FieldChangeHistory)
	items, isList := v.([]any)
	if !isList {
		return r.Report(MetaHistory, line, "change_history must be a list of entries with date and note")
	}
	for i, item := range items {
		m, isMap := item.(map[string]any)
		switch {
		case !isMap:
			if err := r.Reportf(MetaHistory, line, "change_history entry %d is not a mapping", i+1); err != nil {
				return err
			}
		case source.Scalar(m[vocab.HistoryDate]) == "":
			if err := r.Reportf(MetaHistory, line, "change_history entry %d has no date", i+1); err != nil {
				return err
			}
		case source.Scalar(m[vocab.HistoryNote]) == "":
			if err := r.Reportf(MetaHistory, line, "change_history entry %d has no note", i+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkFileName(c *Context, r *Reporter) error {
	if c.Doc.ID == "" {
		return nil
	}
	base := filepath.Base(c.Doc.Path)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	if strings.Contains(stem, strings.ToLower(c.Doc.ID)) {
		return nil
	}
	return r.Reportf(MetaFileName, c.FieldLine(vocab.FieldID),
		"file name %q does not contain record id %q", base, c.Doc.ID)
}

func checkDuplicateID(c *Context, r *Reporter) error {
	for _, dup := range c.Index.Duplicates() {
		if dup.Path != c.Doc.Path || dup.ID != c.Doc.ID {
			continue
		}
		if err := r.Reportf(MetaDuplicateID, c.FieldLine(vocab.FieldID),
			"record id %q is also declared by %s, which takes precedence", dup.ID, dup.ReplacedBy); err != nil {
			return err
		}
	}
	return nil
}

func isISODate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func joinClasses(classes []vocab.ClassType) string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
