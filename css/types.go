package css

import (
	"strings"
)

// TokenKind identifies which variant a Token holds.
type TokenKind int

const (
	KindComment TokenKind = iota // /* ... */
	KindAtRule                   // @header { body }
	KindRule                     // selector { body }
	KindOther                    // unparsable tail of the input
)

// String returns a short name of the kind, used in logs.
func (k TokenKind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindAtRule:
		return "at-rule"
	case KindRule:
		return "rule"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Comment is a comment found at the top level, opener and closer included.
type Comment struct {
	Text string
}

// AtRule is an @-rule with a block. Header is the text between '@' and the
// block opener (trimmed), Body is the balanced interior without braces.
type AtRule struct {
	Header string
	Body   string
}

// Rule is a plain rule. Body is kept raw, comments included.
type Rule struct {
	Selector string // trimmed literal selector text
	Body     string
}

// Token is a single top-level item of a stylesheet.
// Exactly one of Comment, AtRule, Rule or Other is non-nil.
type Token struct {
	Comment *Comment
	AtRule  *AtRule
	Rule    *Rule
	Other   *string // trailing text which does not form a rule

	Offset int // byte offset of the token in the source
}

// Kind reports which variant the token holds.
func (t Token) Kind() TokenKind {
	switch {
	case t.Comment != nil:
		return KindComment
	case t.AtRule != nil:
		return KindAtRule
	case t.Rule != nil:
		return KindRule
	default:
		return KindOther
	}
}

// Declaration is a single property: value pair from a rule body.
type Declaration struct {
	Property string
	Value    string
}

// Stylesheet is the ordered sequence of top-level tokens of one source.
type Stylesheet struct {
	Tokens   []Token  // All top-level tokens in source order
	Warnings []string // Recoveries from malformed input, "line:col: message"
}

// Rules returns all rule tokens in source order.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, t := range s.Tokens {
		if t.Rule != nil {
			rules = append(rules, *t.Rule)
		}
	}
	return rules
}

// RulesBySelector returns all rules whose normalized selector matches the
// normalized form of selector.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	key := NormalizeSelector(selector)
	var matches []Rule
	for _, t := range s.Tokens {
		if t.Rule != nil && NormalizeSelector(t.Rule.Selector) == key {
			matches = append(matches, *t.Rule)
		}
	}
	return matches
}

// NormalizeSelector collapses whitespace runs into a single space and trims
// the result. Two rules with equal normalized selectors are the same rule.
func NormalizeSelector(selector string) string {
	return strings.Join(strings.Fields(selector), " ")
}
