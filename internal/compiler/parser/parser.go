package parser

import (
	"fmt"

	"github.com/arnavsurve/transpile/internal/compiler/ast"
	"github.com/arnavsurve/transpile/internal/compiler/token"
)

// Error is a syntax error. Parsing stops at the first one.
type Error struct {
	Expected string // what the grammar required, empty for a bare message
	Found    string // what was there instead
	Line     int
	Column   int
}

func (e *Error) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("%d:%d: Syntax Error: %s", e.Line, e.Column, e.Found)
	}
	return fmt.Sprintf("%d:%d: Syntax Error: expected %s, found %s", e.Line, e.Column, e.Expected, e.Found)
}

// Precedence tiers, loosest to tightest.
var (
	comparisonOps     = []token.TokenType{token.TokenGT, token.TokenLT}
	additiveOps       = []token.TokenType{token.TokenPlus, token.TokenMinus}
	multiplicativeOps = []token.TokenType{token.TokenAsterisk, token.TokenSlash, token.TokenPercent}
)

type Parser struct {
	tokens  []token.Token
	pos     int // index of curTok
	curTok  token.Token
	peekTok token.Token
	last    token.Token // last real token, for positioning end-of-input errors
}

func NewParser(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens, pos: -1}
	p.nextToken()
	return p
}

// Parse is a shorthand for NewParser(tokens).ParseProgram().
func Parse(tokens []token.Token) (*ast.Program, error) {
	return NewParser(tokens).ParseProgram()
}

// --- Token Handling ---
func (p *Parser) nextToken() {
	if p.pos >= 0 && p.pos < len(p.tokens) {
		p.last = p.tokens[p.pos]
	}
	p.pos++
	p.curTok = p.at(p.pos)
	p.peekTok = p.at(p.pos + 1)
}

// at returns the zero Token (empty Type) past the end of the slice.
func (p *Parser) at(i int) token.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return token.Token{}
}

func (p *Parser) exhausted() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return !p.exhausted() && p.curTok.Type == t
}

func (p *Parser) skipEOL() {
	for p.curTokenIs(token.TokenEOL) {
		p.nextToken()
	}
}

// --- Error Handling ---
func (p *Parser) errorf(expected string) *Error {
	if p.exhausted() {
		return &Error{Found: "unexpected end of input", Line: p.last.Line, Column: p.last.Column}
	}
	return &Error{Expected: expected, Found: p.curTok.String(), Line: p.curTok.Line, Column: p.curTok.Column}
}

// expect consumes the current token if it has type t.
func (p *Parser) expect(t token.TokenType) (token.Token, error) {
	if !p.curTokenIs(t) {
		return token.Token{}, p.errorf(string(t))
	}
	tok := p.curTok
	p.nextToken()
	return tok, nil
}

// --- Program Parsing ---

func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{Statements: ast.Block{}}

	for {
		p.skipEOL()
		if p.exhausted() {
			return nil, p.errorf(string(token.TokenEOF))
		}
		if p.curTok.Type == token.TokenEOF {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}

	return program, nil
}

// parseBlock parses INDENT statements... DEDENT.
func (p *Parser) parseBlock() (ast.Block, error) {
	if _, err := p.expect(token.TokenIndent); err != nil {
		return nil, err
	}

	block := ast.Block{}
	for {
		p.skipEOL()
		if p.curTokenIs(token.TokenDedent) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block = append(block, stmt)
	}
	p.nextToken() // consume DEDENT

	return block, nil
}

// --- Statements ---

func (p *Parser) parseStatement() (ast.Statement, error) {
	if p.exhausted() {
		return nil, p.errorf("statement")
	}

	switch p.curTok.Type {
	case token.TokenLet:
		return p.parseLetStatement()
	case token.TokenIdent:
		if p.peekTok.Type == token.TokenAssign {
			return p.parseAssignment(p.curTok)
		}
	case token.TokenPrint:
		return p.parsePrintStatement()
	case token.TokenIf:
		return p.parseIfStatement()
	case token.TokenWhile:
		return p.parseWhileStatement()
	case token.TokenFor:
		return p.parseForStatement()
	}
	return nil, p.errorf("statement")
}

func (p *Parser) parseLetStatement() (ast.Statement, error) {
	letTok := p.curTok
	p.nextToken() // consume 'let'
	return p.parseAssignment(letTok)
}

// parseAssignment parses IDENT '=' expression EOL; stmtTok is either 'let'
// or the identifier itself.
func (p *Parser) parseAssignment(stmtTok token.Token) (ast.Statement, error) {
	name, err := p.expect(token.TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenEOL); err != nil {
		return nil, err
	}
	return &ast.AssignStatement{Token: stmtTok, Name: name.Literal, Value: value}, nil
}

func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	stmt := &ast.PrintStatement{Token: p.curTok}
	p.nextToken() // consume 'print'

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenEOL); err != nil {
		return nil, err
	}
	stmt.Value = value
	return stmt, nil
}

// parseHeader parses "expression EOL block", shared by if and while.
func (p *Parser) parseHeader() (ast.Expression, ast.Block, error) {
	cond, err := p.parseExpression()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(token.TokenEOL); err != nil {
		return nil, nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	stmt := &ast.IfStatement{Token: p.curTok, Else: ast.Block{}}
	p.nextToken() // consume 'if'

	cond, then, err := p.parseHeader()
	if err != nil {
		return nil, err
	}
	stmt.Condition, stmt.Then = cond, then

	if p.curTokenIs(token.TokenElse) {
		p.nextToken() // consume 'else'
		if _, err := p.expect(token.TokenEOL); err != nil {
			return nil, err
		}
		if stmt.Else, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	stmt := &ast.WhileStatement{Token: p.curTok}
	p.nextToken() // consume 'while'

	cond, body, err := p.parseHeader()
	if err != nil {
		return nil, err
	}
	stmt.Condition, stmt.Body = cond, body
	return stmt, nil
}

func (p *Parser) parseForStatement() (ast.Statement, error) {
	stmt := &ast.ForStatement{Token: p.curTok}
	p.nextToken() // consume 'for'

	name, err := p.expect(token.TokenIdent)
	if err != nil {
		return nil, err
	}
	stmt.Var = name.Literal
	if _, err := p.expect(token.TokenAssign); err != nil {
		return nil, err
	}
	if stmt.Start, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenTo); err != nil {
		return nil, err
	}
	if stmt.End, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenEOL); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// --- Expressions ---

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseBinary(comparisonOps, func() (ast.Expression, error) {
		return p.parseBinary(additiveOps, func() (ast.Expression, error) {
			return p.parseBinary(multiplicativeOps, p.parsePrimary)
		})
	})
}

// parseBinary parses a left-associative chain of ops over operands produced by next.
func (p *Parser) parseBinary(ops []token.TokenType, next func() (ast.Expression, error)) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.curTokenIn(ops) {
		opTok := p.curTok
		p.nextToken()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: opTok, Operator: opTok.Type, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) curTokenIn(types []token.TokenType) bool {
	for _, t := range types {
		if p.curTokenIs(t) {
			return true
		}
	}
	return false
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch {
	case p.curTokenIs(token.TokenNumber):
		lit := &ast.NumberLiteral{Token: p.curTok, Value: p.curTok.Value}
		p.nextToken()
		return lit, nil
	case p.curTokenIs(token.TokenIdent):
		ident := &ast.Identifier{Token: p.curTok, Name: p.curTok.Literal}
		p.nextToken()
		return ident, nil
	}
	return nil, p.errorf("number or identifier")
}
