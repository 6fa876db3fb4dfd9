package interp

import (
	"fmt"

	"github.com/arnavsurve/transpile/internal/compiler/ast"
	"github.com/arnavsurve/transpile/internal/compiler/scope"
	"github.com/arnavsurve/transpile/internal/compiler/token"
	"github.com/arnavsurve/transpile/internal/compiler/value"
)

// NameError is returned when an expression reads a variable that was never assigned.
type NameError struct {
	Name   string
	Line   int
	Column int
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%d:%d: Name Error: undefined variable '%s'", e.Line, e.Column, e.Name)
}

// LimitError is returned when a run exceeds the step limit set with WithStepLimit.
type LimitError struct {
	Limit int
	Line  int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%d: Limit Error: step limit of %d exceeded", e.Line, e.Limit)
}

type Option func(*Interpreter)

// WithStepLimit aborts execution after n statements. Zero means no limit.
func WithStepLimit(n int) Option {
	return func(in *Interpreter) {
		in.maxSteps = n
	}
}

// Interpreter walks the AST directly. Each instance owns one environment, so
// independent instances can run concurrently.
type Interpreter struct {
	env      *scope.Scope
	out      Sink
	maxSteps int
	steps    int
}

func New(out Sink, opts ...Option) *Interpreter {
	in := &Interpreter{
		env: scope.NewScope("global"),
		out: out,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run executes program with a fresh interpreter.
func Run(program *ast.Program, out Sink, opts ...Option) error {
	return New(out, opts...).Execute(program)
}

// Env exposes the variable mapping, mainly for tests and tooling.
func (in *Interpreter) Env() *scope.Scope {
	return in.env
}

// Execute runs every top-level statement in order and stops at the first error.
func (in *Interpreter) Execute(program *ast.Program) error {
	return in.execBlock(program.Statements)
}

func (in *Interpreter) execBlock(block ast.Block) error {
	for _, stmt := range block {
		if err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(stmt ast.Statement) error {
	in.steps++
	if in.maxSteps > 0 && in.steps > in.maxSteps {
		return &LimitError{Limit: in.maxSteps, Line: lineOf(stmt)}
	}

	switch s := stmt.(type) {
	case *ast.AssignStatement:
		v, err := in.eval(s.Value)
		if err != nil {
			return err
		}
		in.env.Define(s.Name, v)

	case *ast.PrintStatement:
		v, err := in.eval(s.Value)
		if err != nil {
			return err
		}
		in.out.Print(v)

	case *ast.IfStatement:
		cond, err := in.eval(s.Condition)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return in.execBlock(s.Then)
		}
		return in.execBlock(s.Else)

	case *ast.WhileStatement:
		for {
			cond, err := in.eval(s.Condition)
			if err != nil {
				return err
			}
			if !cond.Truthy() {
				return nil
			}
			if err := in.execBlock(s.Body); err != nil {
				return err
			}
		}

	case *ast.ForStatement:
		return in.execFor(s)

	default:
		return fmt.Errorf("interpreter: unknown statement type %T", stmt)
	}
	return nil
}

// execFor iterates start through end inclusive. Bounds are evaluated once and
// the loop variable keeps its last value afterwards.
func (in *Interpreter) execFor(s *ast.ForStatement) error {
	start, err := in.eval(s.Start)
	if err != nil {
		return err
	}
	end, err := in.eval(s.End)
	if err != nil {
		return err
	}

	for i := start.Int(); i <= end.Int(); i++ {
		in.env.Define(s.Var, value.Int(i))
		if err := in.execBlock(s.Body); err != nil {
			return err
		}
		if i == end.Int() {
			break
		}
	}
	return nil
}

func (in *Interpreter) eval(expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return value.Int(e.Value), nil

	case *ast.Identifier:
		v, ok := in.env.Lookup(e.Name)
		if !ok {
			return value.Value{}, &NameError{Name: e.Name, Line: e.Token.Line, Column: e.Token.Column}
		}
		return v, nil

	case *ast.BinaryExpression:
		left, err := in.eval(e.Left)
		if err != nil {
			return value.Value{}, err
		}
		right, err := in.eval(e.Right)
		if err != nil {
			return value.Value{}, err
		}
		return apply(e.Operator, left.Int(), right.Int())
	}
	return value.Value{}, fmt.Errorf("interpreter: unknown expression type %T", expr)
}

// apply evaluates one binary operator. Division and modulo by zero yield 0.
func apply(op token.TokenType, l, r int64) (value.Value, error) {
	switch op {
	case token.TokenPlus:
		return value.Int(l + r), nil
	case token.TokenMinus:
		return value.Int(l - r), nil
	case token.TokenAsterisk:
		return value.Int(l * r), nil
	case token.TokenSlash:
		return value.Int(value.FloorDiv(l, r)), nil
	case token.TokenPercent:
		return value.Int(value.FloorMod(l, r)), nil
	case token.TokenGT:
		return value.Bool(l > r), nil
	case token.TokenLT:
		return value.Bool(l < r), nil
	}
	return value.Value{}, fmt.Errorf("interpreter: unknown operator %q", op)
}

func lineOf(stmt ast.Statement) int {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		return s.Token.Line
	case *ast.PrintStatement:
		return s.Token.Line
	case *ast.IfStatement:
		return s.Token.Line
	case *ast.WhileStatement:
		return s.Token.Line
	case *ast.ForStatement:
		return s.Token.Line
	}
	return 0
}
