package css

import (
	"io"
	"strings"
)

// Rewrite writes the stylesheet to w with duplicate rules merged. Comments,
// @-rules and trailing text are written as they were captured. Every rule is
// written once, at the place of its last occurrence, using the merged
// declarations from selectors. Pieces are separated by a single newline.
func (s *Stylesheet) Rewrite(w io.Writer, selectors Selectors) (int64, error) {
	var (
		total   int64
		written int
		emitted = make(map[string]bool)
	)

	for idx, t := range s.Tokens {
		var piece string

		switch {
		case t.Comment != nil:
			piece = t.Comment.Text
		case t.Other != nil:
			piece = *t.Other
		case t.AtRule != nil:
			piece = "@" + t.AtRule.Header + "{" + t.AtRule.Body + "}"
		case t.Rule != nil:
			key := NormalizeSelector(t.Rule.Selector)
			info, ok := selectors[key]
			if !ok {
				// not aggregated, keep as is
				piece = t.Rule.Selector + "{" + t.Rule.Body + "}"
				break
			}
			if idx != info.LastIndex || emitted[key] {
				continue
			}
			emitted[key] = true
			piece = formatRule(info)
		default:
			continue
		}

		if written > 0 {
			piece = "\n" + piece
		}
		n, err := io.WriteString(w, piece)
		total += int64(n)
		if err != nil {
			return total, err
		}
		written++
	}
	return total, nil
}

// Deduplicated returns the merged CSS text of the stylesheet.
func (s *Stylesheet) Deduplicated() string {
	var sb strings.Builder
	s.Rewrite(&sb, s.Aggregate()) //nolint:errcheck
	return sb.String()
}

// formatRule renders merged rule as "selector{\n  prop: value;\n}".
func formatRule(info *SelectorInfo) string {
	var sb strings.Builder
	sb.WriteString(info.Selector)
	sb.WriteString("{")
	for _, d := range info.Declarations() {
		sb.WriteString("\n  ")
		sb.WriteString(d.Property)
		sb.WriteString(": ")
		sb.WriteString(d.Value)
		sb.WriteString(";")
	}
	sb.WriteString("\n}")
	return sb.String()
}
