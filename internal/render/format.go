package render

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Escape backslash-escapes s for use inside a double-quoted literal.
// Backslash goes first so the escapes added afterwards are left alone.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}

// Quote wraps the escaped form of s in double quotes.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}

// NormalizeName converts an attribute name to snake case: every rune that
// changes under lower-casing is emitted as '_' plus its lower-case form.
// The first rune is lower-cased up front and so never gains an underscore.
func NormalizeName(raw string) string {
	lower := cases.Lower(language.Und)

	var b strings.Builder
	b.Grow(len(raw) + 4)
	first := true
	for _, r := range raw {
		s := string(r)
		if first {
			s = lower.String(s)
			first = false
		}
		if l := lower.String(s); l != s {
			b.WriteByte('_')
			b.WriteString(l)
		} else {
			b.WriteString(s)
		}
	}
	return b.String()
}

// attrValue renders an attribute value: solo attributes become the bare
// literal true, everything else is quoted.
func attrValue(val string, hasVal bool) string {
	if !hasVal {
		return "true"
	}
	return Quote(val)
}

// stripComment removes a single layer of comment delimiters.
func stripComment(raw string) string {
	raw = strings.TrimPrefix(raw, "<!-- ")
	return strings.TrimSuffix(raw, " -->")
}
