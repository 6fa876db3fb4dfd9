// Package pycheck parses Python produced by the python target with gpython
// and evaluates the integer subset that target can produce. It is the
// reference side of the interpreter/transpiler round trip.
package pycheck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"

	"github.com/arnavsurve/transpile/internal/compiler/interp"
	"github.com/arnavsurve/transpile/internal/compiler/value"
)

// ErrUnsupported is wrapped by every error about a construct outside the subset.
var ErrUnsupported = errors.New("unsupported construct")

// ErrStepLimit is returned when a run exceeds Runner.MaxSteps.
var ErrStepLimit = errors.New("step limit exceeded")

// Parse parses src as a Python module.
func Parse(src string) (*ast.Module, error) {
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	mod, err := parser.Parse(strings.NewReader(src), "<generated>", py.ExecMode)
	if err != nil {
		return nil, fmt.Errorf("python parse error: %w", err)
	}
	module, ok := mod.(*ast.Module)
	if !ok {
		return nil, fmt.Errorf("expected *ast.Module, got %T", mod)
	}
	return module, nil
}

// Validate reports whether src is syntactically valid Python.
func Validate(src string) error {
	_, err := Parse(src)
	return err
}

// Run parses and executes src with a fresh Runner.
func Run(src string, out interp.Sink, maxSteps int) error {
	r := &Runner{Out: out, MaxSteps: maxSteps}
	return r.Run(src)
}

type Runner struct {
	Out      interp.Sink
	MaxSteps int // zero means no limit

	env   map[string]value.Value
	steps int
}

func (r *Runner) Run(src string) error {
	module, err := Parse(src)
	if err != nil {
		return err
	}
	r.env = make(map[string]value.Value)
	r.steps = 0
	return r.execBody(module.Body)
}

func (r *Runner) execBody(body []ast.Stmt) error {
	for _, stmt := range body {
		if err := r.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) exec(stmt ast.Stmt) error {
	r.steps++
	if r.MaxSteps > 0 && r.steps > r.MaxSteps {
		return ErrStepLimit
	}

	switch s := stmt.(type) {
	case *ast.Assign:
		if len(s.Targets) != 1 {
			return fmt.Errorf("%w: multiple assignment targets", ErrUnsupported)
		}
		target, ok := s.Targets[0].(*ast.Name)
		if !ok {
			return fmt.Errorf("%w: assignment to %T", ErrUnsupported, s.Targets[0])
		}
		v, err := r.eval(s.Value)
		if err != nil {
			return err
		}
		r.env[string(target.Id)] = v

	case *ast.ExprStmt:
		return r.execPrint(s.Value)

	case *ast.If:
		cond, err := r.eval(s.Test)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return r.execBody(s.Body)
		}
		return r.execBody(s.Orelse)

	case *ast.While:
		if len(s.Orelse) > 0 {
			return fmt.Errorf("%w: while/else", ErrUnsupported)
		}
		for {
			cond, err := r.eval(s.Test)
			if err != nil {
				return err
			}
			if !cond.Truthy() {
				return nil
			}
			if err := r.execBody(s.Body); err != nil {
				return err
			}
		}

	case *ast.For:
		return r.execFor(s)

	default:
		return fmt.Errorf("%w: statement %T", ErrUnsupported, stmt)
	}
	return nil
}

func (r *Runner) execPrint(expr ast.Expr) error {
	call, ok := expr.(*ast.Call)
	if !ok {
		return fmt.Errorf("%w: expression statement %T", ErrUnsupported, expr)
	}
	fn, ok := call.Func.(*ast.Name)
	if !ok || string(fn.Id) != "print" || len(call.Args) != 1 {
		return fmt.Errorf("%w: only print(x) calls are allowed", ErrUnsupported)
	}
	v, err := r.eval(call.Args[0])
	if err != nil {
		return err
	}
	r.Out.Print(v)
	return nil
}

// execFor handles "for NAME in range(stop)" and "for NAME in range(start, stop)".
func (r *Runner) execFor(s *ast.For) error {
	if len(s.Orelse) > 0 {
		return fmt.Errorf("%w: for/else", ErrUnsupported)
	}
	target, ok := s.Target.(*ast.Name)
	if !ok {
		return fmt.Errorf("%w: loop target %T", ErrUnsupported, s.Target)
	}
	call, ok := s.Iter.(*ast.Call)
	if !ok {
		return fmt.Errorf("%w: loop over %T", ErrUnsupported, s.Iter)
	}
	if fn, ok := call.Func.(*ast.Name); !ok || string(fn.Id) != "range" || len(call.Args) < 1 || len(call.Args) > 2 {
		return fmt.Errorf("%w: only range(stop) and range(start, stop) loops are allowed", ErrUnsupported)
	}

	bounds := make([]int64, len(call.Args))
	for i, arg := range call.Args {
		v, err := r.eval(arg)
		if err != nil {
			return err
		}
		bounds[i] = v.Int()
	}
	start, stop := int64(0), bounds[0]
	if len(bounds) == 2 {
		start, stop = bounds[0], bounds[1]
	}

	for i := start; i < stop; i++ {
		r.env[string(target.Id)] = value.Int(i)
		if err := r.execBody(s.Body); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) eval(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Num:
		return numberValue(e.N)

	case *ast.Name:
		v, ok := r.env[string(e.Id)]
		if !ok {
			return value.Value{}, fmt.Errorf("NameError: name '%s' is not defined", e.Id)
		}
		return v, nil

	case *ast.BinOp:
		left, err := r.eval(e.Left)
		if err != nil {
			return value.Value{}, err
		}
		right, err := r.eval(e.Right)
		if err != nil {
			return value.Value{}, err
		}
		return binOp(e, left.Int(), right.Int())

	case *ast.Compare:
		return r.compare(e)
	}
	return value.Value{}, fmt.Errorf("%w: expression %T", ErrUnsupported, expr)
}

// compare follows Python chaining: a < b < c means a < b and b < c.
func (r *Runner) compare(e *ast.Compare) (value.Value, error) {
	left, err := r.eval(e.Left)
	if err != nil {
		return value.Value{}, err
	}
	for i, op := range e.Ops {
		right, err := r.eval(e.Comparators[i])
		if err != nil {
			return value.Value{}, err
		}
		var ok bool
		switch op {
		case ast.Gt:
			ok = left.Int() > right.Int()
		case ast.Lt:
			ok = left.Int() < right.Int()
		default:
			return value.Value{}, fmt.Errorf("%w: comparison operator %v", ErrUnsupported, op)
		}
		if !ok {
			return value.Bool(false), nil
		}
		left = right
	}
	return value.Bool(true), nil
}

func binOp(e *ast.BinOp, l, r int64) (value.Value, error) {
	switch e.Op {
	case ast.Add:
		return value.Int(l + r), nil
	case ast.Sub:
		return value.Int(l - r), nil
	case ast.Mult:
		return value.Int(l * r), nil
	case ast.FloorDiv:
		if r == 0 {
			return value.Value{}, errors.New("ZeroDivisionError: integer division or modulo by zero")
		}
		return value.Int(value.FloorDiv(l, r)), nil
	case ast.Modulo:
		if r == 0 {
			return value.Value{}, errors.New("ZeroDivisionError: integer division or modulo by zero")
		}
		return value.Int(value.FloorMod(l, r)), nil
	case ast.Div:
		return value.Value{}, fmt.Errorf("%w: true division yields a float", ErrUnsupported)
	}
	return value.Value{}, fmt.Errorf("%w: operator %v", ErrUnsupported, e.Op)
}

func numberValue(n py.Object) (value.Value, error) {
	s := fmt.Sprintf("%v", n)
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return value.Value{}, fmt.Errorf("%w: number literal %s", ErrUnsupported, s)
	}
	return value.Int(i), nil
}
