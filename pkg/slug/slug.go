// Package slug derives URL-safe identifiers from display names.
//
// The rules match the catalog's persisted data exactly: lowercase, strip
// everything outside [a-z0-9 -], collapse whitespace runs into one hyphen,
// collapse hyphen runs, trim leading/trailing hyphens. Derivation is
// deterministic and collision handling is deliberately absent — a duplicate
// name in the same scope is rejected by the store, never auto-suffixed.
package slug

import "strings"

// Make returns the slug for name. Calling Make on its own output returns the
// same value, so re-deriving after a no-op rename never changes stored slugs.
func Make(name string) string {
	lowered := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r == '-':
			b.WriteByte('-')
		}
		// every other rune is dropped
	}

	out := b.String()
	out = strings.Join(strings.Fields(out), "-")
	out = collapseHyphens(out)
	return strings.Trim(out, "-")
}

func collapseHyphens(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}
