package analyze

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cssdedup/css"
)

func scan(input string) *css.Stylesheet {
	return css.NewScanner(zap.NewNop()).Scan([]byte(input))
}

func TestSummarize_Ranking(t *testing.T) {
	sheet := scan(`.z{} .y{} .x{} .z{} .y{} .x{} .y{} .x{} .w{}`)

	s := Summarize(sheet, DefaultTop)

	assert.Equal(t, 9, s.Rules)
	assert.Equal(t, 4, s.Unique)
	assert.Equal(t, 5, s.Removable)
	assert.Equal(t, []Duplicate{{".x", 3}, {".y", 3}, {".z", 2}}, s.Duplicates)
}

func TestSummarize_NormalizedKeys(t *testing.T) {
	sheet := scan("div  p { a: 1 }\ndiv\n\tp { b: 2 }\n@media print { div p { c: 3 } }")

	s := Summarize(sheet, DefaultTop)

	assert.Equal(t, 2, s.Rules, "rules nested in @-rules are not top-level")
	assert.Equal(t, 1, s.Unique)
	assert.Equal(t, []Duplicate{{"div p", 2}}, s.Duplicates)
}

func TestSummarize_Empty(t *testing.T) {
	for _, input := range []string{"", "  \n\t", "/* only */ /* comments */", "@import 'a.css';"} {
		s := Summarize(scan(input), DefaultTop)
		assert.Zero(t, s.Rules, "input %q", input)
		assert.Zero(t, s.Unique, "input %q", input)
		assert.Zero(t, s.Removable, "input %q", input)
		assert.Empty(t, s.Duplicates, "input %q", input)
	}
}

func TestSummarize_Top(t *testing.T) {
	var sb strings.Builder
	for i := range 30 {
		fmt.Fprintf(&sb, ".s%02d{} .s%02d{}\n", i, i)
	}
	sheet := scan(sb.String())

	s := Summarize(sheet, DefaultTop)
	require.Len(t, s.Duplicates, 20)
	assert.Equal(t, ".s00", s.Duplicates[0].Selector)
	assert.Equal(t, ".s19", s.Duplicates[19].Selector)
	assert.Equal(t, 30, s.Removable, "removable counts all duplicates, not only listed ones")

	assert.Len(t, Summarize(sheet, 3).Duplicates, 3)
	assert.Len(t, Summarize(sheet, 0).Duplicates, 30)
}

func TestSummary_WriteTo(t *testing.T) {
	s := Summarize(scan(".a{color:red}.a{color:blue}"), DefaultTop)
	s.Source = "styles/site.css"

	var sb strings.Builder
	n, err := s.WriteTo(&sb)
	require.NoError(t, err)

	want := "File: styles/site.css\n" +
		"Total top-level rules: 2\n" +
		"Unique selectors: 1\n" +
		"Duplicate instances removed if deduped (sum over counts-1): 1\n" +
		"Top duplicates:\n" +
		"  2x  .a\n"
	assert.Equal(t, want, sb.String())
	assert.Equal(t, int64(len(want)), n)
}
