package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/arnavsurve/transpile/internal/compiler/token"
)

// Error is returned when a word is neither a number, a keyword, an operator
// nor a valid identifier. Lexing stops at the first one.
type Error struct {
	Word   string
	Reason string
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: Lexical Error: %s %q", e.Line, e.Column, e.Reason, e.Word)
}

type Lexer struct {
	input   string
	tokens  []token.Token
	indents []int // stack of open indentation depths, bottom is always 0
	line    int   // current line number (1-indexed)
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize is a shorthand for NewLexer(src).Tokenize().
func Tokenize(src string) ([]token.Token, error) {
	return NewLexer(src).Tokenize()
}

// Tokenize converts the whole input into a flat token sequence terminated by
// EOF. Every non-blank line ends with EOL; INDENT and DEDENT are synthesized
// from leading whitespace and are always balanced.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	l.tokens = nil
	l.indents = []int{0}
	l.line = 0

	first := true
	for _, raw := range strings.Split(l.input, "\n") {
		l.line++
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		stripped := strings.TrimLeftFunc(raw, unicode.IsSpace)
		depth := len([]rune(raw)) - len([]rune(stripped))
		if first {
			// Leading whitespace of the whole source is ignored.
			depth = 0
			first = false
		}
		l.trackIndent(depth)

		if err := l.lexLine(stripped, depth); err != nil {
			return nil, err
		}
		l.emit(token.Token{Type: token.TokenEOL, Line: l.line, Column: depth + len([]rune(stripped)) + 1})
	}

	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(token.Token{Type: token.TokenDedent, Line: l.line})
	}
	l.emit(token.Token{Type: token.TokenEOF, Line: l.line})

	return l.tokens, nil
}

// trackIndent pushes at most one level and pops as many as needed. A dedent
// that lands between two recorded depths pops past it without complaint.
func (l *Lexer) trackIndent(depth int) {
	if depth > l.indents[len(l.indents)-1] {
		l.indents = append(l.indents, depth)
		l.emit(token.Token{Type: token.TokenIndent, Line: l.line, Column: 1})
	}
	for depth < l.indents[len(l.indents)-1] {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(token.Token{Type: token.TokenDedent, Line: l.line, Column: 1})
	}
}

func (l *Lexer) lexLine(text string, depth int) error {
	for _, w := range splitWords(text) {
		tok, err := classify(w.text)
		if err != nil {
			err.Line = l.line
			err.Column = depth + w.col
			return err
		}
		tok.Line = l.line
		tok.Column = depth + w.col
		l.emit(tok)
	}
	return nil
}

func (l *Lexer) emit(tok token.Token) {
	l.tokens = append(l.tokens, tok)
}

type word struct {
	text string
	col  int // 1-indexed rune column within the stripped line
}

// splitWords splits on whitespace and always isolates operator characters,
// so "x+1" yields "x", "+", "1".
func splitWords(text string) []word {
	var (
		words []word
		cur   strings.Builder
		start int
	)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, word{text: cur.String(), col: start})
			cur.Reset()
		}
	}

	col := 0
	for _, r := range text {
		col++
		switch {
		case unicode.IsSpace(r):
			flush()
		case r < unicode.MaxASCII && token.IsOperatorByte(byte(r)):
			flush()
			words = append(words, word{text: string(r), col: col})
		default:
			if cur.Len() == 0 {
				start = col
			}
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

// classify applies the fixed priority: number, keyword, operator, identifier.
func classify(w string) (token.Token, *Error) {
	if isNumber(w) {
		n, err := strconv.ParseInt(w, 10, 64)
		if err != nil {
			return token.Token{}, &Error{Word: w, Reason: "number out of range"}
		}
		return token.Token{Type: token.TokenNumber, Literal: w, Value: n}, nil
	}
	if kw, ok := token.LookupKeyword(w); ok {
		return token.Token{Type: kw, Literal: w}, nil
	}
	if op, ok := token.LookupOperator(w); ok {
		return token.Token{Type: op, Literal: w}, nil
	}
	if isIdentifier(w) {
		return token.Token{Type: token.TokenIdent, Literal: w}, nil
	}
	return token.Token{}, &Error{Word: w, Reason: "unknown token"}
}

func isNumber(w string) bool {
	if w == "" {
		return false
	}
	for i := 0; i < len(w); i++ {
		if !isDigit(w[i]) {
			return false
		}
	}
	return true
}

func isIdentifier(w string) bool {
	for i, r := range w {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return w != ""
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
