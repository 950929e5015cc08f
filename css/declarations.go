package css

import (
	"strings"
)

// StripComments removes complete /* ... */ spans from s. An unterminated
// comment is left in place.
func StripComments(s string) string {
	if !strings.Contains(s, commentOpen) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.Index(s, commentOpen)
		if i < 0 {
			break
		}
		j := strings.Index(s[i+len(commentOpen):], commentClose)
		if j < 0 {
			break
		}
		b.WriteString(s[:i])
		s = s[i+len(commentOpen)+j+len(commentClose):]
	}
	b.WriteString(s)
	return b.String()
}

// ParseDeclarations splits a rule body into declarations in source order.
// Segments without ':' are not declarations and are skipped.
func ParseDeclarations(body string) []Declaration {
	var decls []Declaration
	for part := range strings.SplitSeq(StripComments(body), ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		prop, val, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		decls = append(decls, Declaration{
			Property: strings.TrimSpace(prop),
			Value:    strings.TrimSpace(val),
		})
	}
	return decls
}
