package token

import "fmt"

type TokenType string

const (
	// Literals & Identifiers
	TokenNumber TokenType = "NUMBER" // 42
	TokenIdent  TokenType = "IDENTIFIER"

	// Keywords
	TokenLet   TokenType = "LET"   // let
	TokenPrint TokenType = "PRINT" // print
	TokenIf    TokenType = "IF"    // if
	TokenElse  TokenType = "ELSE"  // else
	TokenWhile TokenType = "WHILE" // while
	TokenFor   TokenType = "FOR"   // for
	TokenTo    TokenType = "TO"    // to

	// Single character operators
	TokenAssign   TokenType = "="
	TokenPlus     TokenType = "+"
	TokenMinus    TokenType = "-"
	TokenAsterisk TokenType = "*"
	TokenSlash    TokenType = "/"
	TokenPercent  TokenType = "%"
	TokenGT       TokenType = ">"
	TokenLT       TokenType = "<"

	// Structure (synthesized by the lexer, no literal)
	TokenIndent TokenType = "INDENT"
	TokenDedent TokenType = "DEDENT"
	TokenEOL    TokenType = "EOL"
	TokenEOF    TokenType = "EOF"
)

type Token struct {
	Type    TokenType
	Literal string
	Value   int64 // set for TokenNumber only
	Line    int
	Column  int
}

func (t Token) String() string {
	switch t.Type {
	case TokenNumber:
		return fmt.Sprintf("%s(%d)", t.Type, t.Value)
	case TokenIdent:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	}
	return string(t.Type)
}

// Operators lists the single character operators in the order the lexer pads them.
var Operators = []TokenType{
	TokenAssign, TokenPlus, TokenMinus, TokenAsterisk,
	TokenSlash, TokenPercent, TokenGT, TokenLT,
}

// keywords maps reserved words to their token types.
var keywords = map[string]TokenType{
	"let":   TokenLet,
	"print": TokenPrint,
	"if":    TokenIf,
	"else":  TokenElse,
	"while": TokenWhile,
	"for":   TokenFor,
	"to":    TokenTo,
}

// LookupKeyword reports whether word is reserved, case-sensitively.
func LookupKeyword(word string) (TokenType, bool) {
	t, ok := keywords[word]
	return t, ok
}

// LookupOperator returns the operator token type for a one-byte word.
func LookupOperator(word string) (TokenType, bool) {
	for _, op := range Operators {
		if string(op) == word {
			return op, true
		}
	}
	return "", false
}

// IsOperatorByte reports whether ch is one of the single character operators.
func IsOperatorByte(ch byte) bool {
	switch ch {
	case '=', '+', '-', '*', '/', '%', '>', '<':
		return true
	}
	return false
}
