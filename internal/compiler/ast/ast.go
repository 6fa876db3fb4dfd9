package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arnavsurve/transpile/internal/compiler/token"
)

// --- Interfaces ---
type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Block is an ordered list of statements nested under a control construct.
type Block []Statement

// --- Program ---
type Program struct {
	Statements Block
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	writeBlock(&out, p.Statements, 0)
	return out.String()
}

// writeBlock renders statements back into source form, four spaces per level.
func writeBlock(out *bytes.Buffer, stmts Block, depth int) {
	pad := strings.Repeat("    ", depth)
	for _, s := range stmts {
		out.WriteString(pad)
		switch s := s.(type) {
		case *IfStatement:
			out.WriteString("if " + s.Condition.String() + "\n")
			writeBlock(out, s.Then, depth+1)
			if len(s.Else) > 0 {
				out.WriteString(pad + "else\n")
				writeBlock(out, s.Else, depth+1)
			}
		case *WhileStatement:
			out.WriteString("while " + s.Condition.String() + "\n")
			writeBlock(out, s.Body, depth+1)
		case *ForStatement:
			fmt.Fprintf(out, "for %s = %s to %s\n", s.Var, s.Start, s.End)
			writeBlock(out, s.Body, depth+1)
		default:
			out.WriteString(s.String() + "\n")
		}
	}
}

// --- Statements ---

// AssignStatement -> let x = 1 or x = x + 1
type AssignStatement struct {
	Token token.Token // let, or the identifier for a bare re-assignment
	Name  string
	Value Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) String() string {
	if as.Token.Type == token.TokenLet {
		return fmt.Sprintf("let %s = %s", as.Name, as.Value)
	}
	return fmt.Sprintf("%s = %s", as.Name, as.Value)
}

// PrintStatement -> print x
type PrintStatement struct {
	Token token.Token // print
	Value Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PrintStatement) String() string       { return "print " + ps.Value.String() }

// IfStatement -> if cond / then-block [else / else-block]. Else is empty when absent.
type IfStatement struct {
	Token     token.Token // if
	Condition Expression
	Then      Block
	Else      Block
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	writeBlock(&out, Block{is}, 0)
	return strings.TrimSuffix(out.String(), "\n")
}

// WhileStatement -> while cond / body
type WhileStatement struct {
	Token     token.Token // while
	Condition Expression
	Body      Block
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	var out bytes.Buffer
	writeBlock(&out, Block{ws}, 0)
	return strings.TrimSuffix(out.String(), "\n")
}

// ForStatement -> for i = start to end / body
type ForStatement struct {
	Token token.Token // for
	Var   string
	Start Expression
	End   Expression
	Body  Block
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) String() string {
	var out bytes.Buffer
	writeBlock(&out, Block{fs}, 0)
	return strings.TrimSuffix(out.String(), "\n")
}

// --- Expressions ---

// NumberLiteral -> 42
type NumberLiteral struct {
	Token token.Token
	Value int64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string       { return fmt.Sprintf("%d", nl.Value) }

// Identifier -> x
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Name }

// BinaryExpression -> left op right
type BinaryExpression struct {
	Token    token.Token // the operator token
	Operator token.TokenType
	Left     Expression
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }

// String renders the operation without parentheses. Trees built by the parser
// are left-deep within each precedence tier, so the text parses back to the
// same tree.
func (be *BinaryExpression) String() string {
	return fmt.Sprintf("%s %s %s", be.Left, be.Operator, be.Right)
}
