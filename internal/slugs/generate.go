package slugs

import "strings"

// Generate converts a display name into a URL-safe slug: lowercase letters,
// digits and single hyphens only, no leading or trailing hyphen.
//
// Non-ASCII letters are dropped rather than transliterated, so a name made up
// entirely of them yields the empty string. Callers must treat an empty slug
// as invalid input instead of retrying.
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '_', r == '-':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
