package validation

import (
	"slices"

	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

var linkRules = []Rule{
	{LinkSupersedes, checkSupersedesTargets},
	{LinkSupersedesBack, checkSupersedesReciprocal},
	{LinkSupersededBy, checkSupersededByTargets},
	{LinkSupersededBack, checkSupersededByReciprocal},
	{LinkSelf, checkSelfReference},
	{LinkExtends, checkExtendsTarget},
	{LinkExtendsClass, checkExtendsClass},
	{LinkNoSuccessor, checkSuccessor},
}

// foreignTargets returns the ids listed under field other than the document's own.
func foreignTargets(c *Context, field string) []string {
	var out []string
	for _, id := range c.Doc.StringList(field) {
		if id != c.Doc.ID {
			out = append(out, id)
		}
	}
	return out
}

func checkUnknownTargets(c *Context, r *Reporter, code Code, field string) error {
	for _, id := range foreignTargets(c, field) {
		if _, ok := c.Index.Get(id); ok {
			continue
		}
		if err := r.Reportf(code, c.FieldLine(field), "%s references unknown record %q", field, id); err != nil {
			return err
		}
	}
	return nil
}

func checkSupersedesTargets(c *Context, r *Reporter) error {
	return checkUnknownTargets(c, r, LinkSupersedes, vocab.FieldSupersedes)
}

func checkSupersededByTargets(c *Context, r *Reporter) error {
	return checkUnknownTargets(c, r, LinkSupersededBy, vocab.FieldSupersededBy)
}

// checkReciprocal requires every known target listed under field to list the
// document back under inverse.
func checkReciprocal(c *Context, r *Reporter, code Code, field, inverse string) error {
	if c.Doc.ID == "" {
		return nil
	}
	for _, id := range foreignTargets(c, field) {
		target, ok := c.Index.Get(id)
		if !ok || slices.Contains(target.StringList(inverse), c.Doc.ID) {
			continue
		}
		if err := r.Reportf(code, c.FieldLine(field),
			"%s lists %s in %s, but %s does not list %s in %s",
			c.Doc.ID, id, field, id, c.Doc.ID, inverse); err != nil {
			return err
		}
	}
	return nil
}

func checkSupersedesReciprocal(c *Context, r *Reporter) error {
	return checkReciprocal(c, r, LinkSupersedesBack, vocab.FieldSupersedes, vocab.FieldSupersededBy)
}

func checkSupersededByReciprocal(c *Context, r *Reporter) error {
	return checkReciprocal(c, r, LinkSupersededBack, vocab.FieldSupersededBy, vocab.FieldSupersedes)
}

func checkSelfReference(c *Context, r *Reporter) error {
	if c.Doc.ID == "" {
		return nil
	}
	for _, field := range []string{vocab.FieldSupersedes, vocab.FieldSupersededBy, vocab.FieldExtends} {
		if !slices.Contains(c.Doc.StringList(field), c.Doc.ID) {
			continue
		}
		if err := r.Reportf(LinkSelf, c.FieldLine(field), "%s lists itself in %s", c.Doc.ID, field); err != nil {
			return err
		}
	}
	return nil
}

func checkExtendsTarget(c *Context, r *Reporter) error {
	return checkUnknownTargets(c, r, LinkExtends, vocab.FieldExtends)
}

func checkExtendsClass(c *Context, r *Reporter) error {
	class := c.Doc.Class()
	for _, id := range foreignTargets(c, vocab.FieldExtends) {
		target, ok := c.Index.Get(id)
		if !ok || target.Class() == class {
			continue
		}
		if err := r.Reportf(LinkExtendsClass, c.FieldLine(vocab.FieldExtends),
			"extends %s of class %q, but this record is class %q", id, target.Class(), class); err != nil {
			return err
		}
	}
	return nil
}

func checkSuccessor(c *Context, r *Reporter) error {
	if c.Doc.Status() != vocab.StatusSuperseded || len(c.Doc.StringList(vocab.FieldSupersededBy)) > 0 {
		return nil
	}
	return r.Report(LinkNoSuccessor, c.FieldLine(vocab.FieldStatus),
		"status is superseded but superseded_by names no successor")
}
