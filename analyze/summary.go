// Package analyze reports duplicated selectors of a stylesheet.
package analyze

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"cssdedup/css"
)

// DefaultTop is the number of duplicates listed when not configured.
const DefaultTop = 20

// Duplicate is a selector found more than once.
type Duplicate struct {
	Selector string // normalized selector
	Count    int
}

// Summary holds selector statistics of a stylesheet.
type Summary struct {
	Source     string      // path as given by the user
	Rules      int         // top-level rules
	Unique     int         // distinct normalized selectors
	Removable  int         // rules which would go away after merging
	Duplicates []Duplicate // most frequent first, limited to requested top
}

// Summarize counts top-level rules per normalized selector. Duplicates are
// ordered by count descending, ties broken by selector text ascending, and
// only top of them are kept (all when top is not positive).
func Summarize(sheet *css.Stylesheet, top int) *Summary {
	counts := make(map[string]int)
	s := &Summary{}
	for _, t := range sheet.Tokens {
		if t.Rule == nil {
			continue
		}
		counts[css.NormalizeSelector(t.Rule.Selector)]++
		s.Rules++
	}
	s.Unique = len(counts)

	for sel, n := range counts {
		if n > 1 {
			s.Removable += n - 1
			s.Duplicates = append(s.Duplicates, Duplicate{Selector: sel, Count: n})
		}
	}
	slices.SortFunc(s.Duplicates, func(a, b Duplicate) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Selector, b.Selector)
	})
	if top > 0 && len(s.Duplicates) > top {
		s.Duplicates = s.Duplicates[:top]
	}
	return s
}

// WriteTo writes human readable report to w, implementing io.WriterTo.
func (s *Summary) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "File: %s\n", s.Source)
	fmt.Fprintf(&sb, "Total top-level rules: %d\n", s.Rules)
	fmt.Fprintf(&sb, "Unique selectors: %d\n", s.Unique)
	fmt.Fprintf(&sb, "Duplicate instances removed if deduped (sum over counts-1): %d\n", s.Removable)
	sb.WriteString("Top duplicates:\n")
	for _, d := range s.Duplicates {
		fmt.Fprintf(&sb, "  %dx  %s\n", d.Count, d.Selector)
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}
