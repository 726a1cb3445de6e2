package tools

import "strings"

// Describe renders a capability schema for inclusion in the system prompt:
//
//	<name>: Parameters: p1 (string), p2 (string, default 'STK'). <doc>
//
// Capabilities without parameters render "No parameters" in place of the
// list. Doc text is whitespace-normalized so multi-line documentation fits
// on one prompt line. Deterministic: same capability, same string.
func Describe(c *Capability) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString(": Parameters: ")

	if len(c.Params) == 0 {
		b.WriteString("No parameters")
	} else {
		for i, p := range c.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
			b.WriteString(" (")
			b.WriteString(p.Type)
			if p.Default != nil {
				b.WriteString(", default '")
				b.WriteString(*p.Default)
				b.WriteString("'")
			}
			b.WriteString(")")
		}
	}

	b.WriteString(". ")
	doc := c.Doc
	if doc == "" {
		doc = "No description available."
	}
	b.WriteString(strings.Join(strings.Fields(doc), " "))
	return b.String()
}
