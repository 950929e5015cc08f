package css

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	parse "github.com/tdewolff/parse/v2"
	"go.uber.org/zap"
)

const (
	commentOpen  = "/*"
	commentClose = "*/"
)

// Scanner splits stylesheet text into top-level tokens.
type Scanner struct {
	log *zap.Logger
}

// NewScanner creates a new stylesheet scanner.
func NewScanner(log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{log: log.Named("css-scanner")}
}

// Scan walks data once and returns its top-level tokens. Malformed input is
// never rejected: unterminated comments and blocks consume the rest of the
// input, @-rules without a block are dropped and text without a block opener
// becomes an Other token.
// The optional source parameter identifies what's being scanned (for debug logging).
func (s *Scanner) Scan(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Tokens:   make([]Token, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		s.log.Debug("Scanning CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	st := &scanState{src: string(data), sheet: sheet, log: s.log}
	st.run()

	s.log.Debug("Scanned CSS", zap.Int("tokens", len(sheet.Tokens)), zap.Int("warnings", len(sheet.Warnings)))
	return sheet
}

// scanState is the cursor of a single Scan call.
type scanState struct {
	src   string
	pos   int
	sheet *Stylesheet
	log   *zap.Logger
}

func (st *scanState) run() {
	for st.pos < len(st.src) {
		r, size := utf8.DecodeRuneInString(st.src[st.pos:])
		if unicode.IsSpace(r) {
			st.pos += size
			continue
		}

		switch {
		case strings.HasPrefix(st.src[st.pos:], commentOpen):
			st.comment()
		case r == '@':
			st.atRule()
		default:
			if !st.rule() {
				return
			}
		}
	}
}

// comment emits a comment token starting at the cursor.
func (st *scanState) comment() {
	start := st.pos
	end, closed := st.skipComment(start)
	if !closed {
		st.warn(start, "unterminated comment")
	}
	text := st.src[start:end]
	st.sheet.Tokens = append(st.sheet.Tokens, Token{Comment: &Comment{Text: text}, Offset: start})
	st.pos = end
}

// atRule handles an @-rule at the cursor. Only @-rules with a block produce a
// token.
func (st *scanState) atRule() {
	start := st.pos
	open, stop := st.findOpener(start, true)
	if open < 0 {
		// no block: consume through the terminator, or to the end
		if stop < 0 {
			st.pos = len(st.src)
		} else {
			st.pos = stop + 1
		}
		st.log.Debug("Dropping @-rule without block", zap.String("rule", strings.TrimSpace(st.src[start:st.pos])))
		return
	}

	header := strings.TrimSpace(st.src[start+1 : open])
	body, next := st.block(open)
	st.sheet.Tokens = append(st.sheet.Tokens, Token{AtRule: &AtRule{Header: header, Body: body}, Offset: start})
	st.pos = next
}

// rule handles a plain rule at the cursor. It returns false when no block
// opener remains and the rest of the input was emitted as an Other token.
func (st *scanState) rule() bool {
	start := st.pos
	open, _ := st.findOpener(start, false)
	if open < 0 {
		rest := st.src[start:]
		st.warn(start, "text without block")
		st.sheet.Tokens = append(st.sheet.Tokens, Token{Other: &rest, Offset: start})
		st.pos = len(st.src)
		return false
	}

	selector := strings.TrimSpace(st.src[start:open])
	body, next := st.block(open)
	st.sheet.Tokens = append(st.sheet.Tokens, Token{Rule: &Rule{Selector: selector, Body: body}, Offset: start})
	st.pos = next
	return true
}

// findOpener looks for the next '{' outside comments starting at pos. When
// terminates is set a ';' seen first ends the search; its position is
// returned as stop with open set to -1. Both are -1 if neither is found.
func (st *scanState) findOpener(pos int, terminates bool) (open, stop int) {
	for k := pos; k < len(st.src); {
		if strings.HasPrefix(st.src[k:], commentOpen) {
			k, _ = st.skipComment(k)
			continue
		}
		switch st.src[k] {
		case '{':
			return k, -1
		case ';':
			if terminates {
				return -1, k
			}
		}
		k++
	}
	return -1, -1
}

// block scans a balanced region starting at the opener. It returns the
// interior text and the position right after the matching closer. An
// unbalanced block takes everything up to the end of input.
func (st *scanState) block(open int) (body string, next int) {
	depth := 0
	for k := open; k < len(st.src); {
		if strings.HasPrefix(st.src[k:], commentOpen) {
			k, _ = st.skipComment(k)
			continue
		}
		switch st.src[k] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return st.src[open+1 : k], k + 1
			}
		}
		k++
	}
	st.warn(open, "unbalanced block")
	return st.src[open+1:], len(st.src)
}

// skipComment returns the position right after the comment starting at pos
// and whether the comment was closed.
func (st *scanState) skipComment(pos int) (int, bool) {
	j := strings.Index(st.src[pos+len(commentOpen):], commentClose)
	if j < 0 {
		return len(st.src), false
	}
	return pos + len(commentOpen) + j + len(commentClose), true
}

// warn records a recovery from malformed input at the given byte offset.
func (st *scanState) warn(offset int, msg string) {
	line, col, _ := parse.Position(strings.NewReader(st.src), offset)
	st.sheet.Warnings = append(st.sheet.Warnings, fmt.Sprintf("%d:%d: %s", line, col, msg))
	st.log.Debug("Recovering from malformed CSS", zap.String("problem", msg), zap.Int("line", line), zap.Int("col", col))
}
