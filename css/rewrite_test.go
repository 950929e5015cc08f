package css_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cssdedup/css"
)

func TestAggregate(t *testing.T) {
	sheet := scan(`/* head */
.a { color: red; }
.b { top: 0 }
.a  { color: blue; margin: 0; }
@media print { .a { color: black } }
.a{ padding: 1px; color: green }`)

	sel := sheet.Aggregate()
	if len(sel) != 2 {
		t.Fatalf("expected 2 selectors, got %d", len(sel))
	}

	a := sel[".a"]
	if a == nil {
		t.Fatal("expected .a to be aggregated")
	}
	if a.FirstIndex != 1 || a.LastIndex != 5 {
		t.Errorf(".a indexes = %d..%d, want 1..5", a.FirstIndex, a.LastIndex)
	}
	if a.Count != 3 {
		t.Errorf(".a count = %d, want 3", a.Count)
	}
	if a.Selector != ".a" {
		t.Errorf(".a selector text = %q", a.Selector)
	}
	want := []css.Declaration{{"color", "green"}, {"margin", "0"}, {"padding", "1px"}}
	if diff := cmp.Diff(want, a.Declarations()); diff != "" {
		t.Errorf(".a declarations mismatch (-want +got):\n%s", diff)
	}

	b := sel[".b"]
	if b == nil || b.FirstIndex != 2 || b.LastIndex != 2 || b.Count != 1 {
		t.Errorf("unexpected .b info: %+v", b)
	}
}

func TestAggregate_LastSelectorTextWins(t *testing.T) {
	sheet := scan("div   p { a: 1 }\ndiv\np { b: 2 }")
	info := sheet.Aggregate()["div p"]
	if info == nil {
		t.Fatal("expected normalized selector 'div p'")
	}
	if info.Selector != "div\np" {
		t.Errorf("selector text = %q, want last literal occurrence", info.Selector)
	}
}

func TestDeduplicated(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "end to end",
			input: ".a{color:red}.a{color:blue}",
			want:  ".a{\n  color: blue;\n}",
		},
		{
			name:  "last value wins first order kept",
			input: ".a { color: red; }\n.b { x: y }\n.a { color: blue; margin: 0; }",
			want:  ".b{\n  x: y;\n}\n.a{\n  color: blue;\n  margin: 0;\n}",
		},
		{
			name:  "comments and at-rules verbatim",
			input: "/* top */\n@media print {\n  .a { x: 1 }\n}\n.a { y: 2 }",
			want:  "/* top */\n@media print{\n  .a { x: 1 }\n}\n.a{\n  y: 2;\n}",
		},
		{
			name:  "bodyless at-rule excluded",
			input: "@import \"x.css\";\n.a { x: 1 }",
			want:  ".a{\n  x: 1;\n}",
		},
		{
			name:  "comment with brace",
			input: "/* { */ .sel { color: red; }",
			want:  "/* { */\n.sel{\n  color: red;\n}",
		},
		{
			name:  "rule comments dropped",
			input: ".a { /* note */ color: red; /* gone: 1; */ }",
			want:  ".a{\n  color: red;\n}",
		},
		{
			name:  "empty rule",
			input: ".a {}",
			want:  ".a{\n}",
		},
		{
			name:  "only comments",
			input: "  /* one */\n\n/* two */  \n",
			want:  "/* one */\n/* two */",
		},
		{
			name:  "whitespace only",
			input: " \n\t ",
			want:  "",
		},
		{
			name:  "trailing text kept",
			input: ".a{x:1}\nstray",
			want:  ".a{\n  x: 1;\n}\nstray",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scan(tt.input).Deduplicated()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Deduplicated() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeduplicated_Idempotent(t *testing.T) {
	inputs := []string{
		".a{color:red}.a{color:blue}",
		"/* c { */\n@font-face { font-family: x }\n.a { x: 1 }\n.b{y:2}\n.a { z: 3; x: 4 }\ntail",
		"h1,  h2 { margin: 0 }\n@import 'a.css';\nh1, h2 { padding: 0 }\n/* open",
	}

	for _, in := range inputs {
		first := scan(in).Deduplicated()
		second := scan(first).Deduplicated()
		if first != second {
			t.Errorf("second pass changed output for %q:\nfirst:  %q\nsecond: %q", in, first, second)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestRewrite_WriterError(t *testing.T) {
	sheet := scan(".a { x: 1 }")
	n, err := sheet.Rewrite(failingWriter{}, sheet.Aggregate())
	if err == nil {
		t.Fatal("expected writer error to be returned")
	}
	if n != 0 {
		t.Errorf("expected 0 bytes written, got %d", n)
	}
}

func TestRewrite_ByteCount(t *testing.T) {
	sheet := scan(".é { content: \"ü\" }")
	var sb strings.Builder
	n, err := sheet.Rewrite(&sb, sheet.Aggregate())
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if int(n) != len(sb.String()) {
		t.Errorf("Rewrite() reported %d bytes, wrote %d", n, len(sb.String()))
	}
}
