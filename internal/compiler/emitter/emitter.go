package emitter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/arnavsurve/transpile/internal/compiler/lib"
)

// NOTES:
// Generation works on source lines, not on the AST. Expressions are copied
// through verbatim unless the target rewrites them, and block structure comes
// from indentation alone.

type blockKind string

const (
	blockIf    blockKind = "if"
	blockElse  blockKind = "else"
	blockWhile blockKind = "while"
	blockFor   blockKind = "for"
)

type openBlock struct {
	kind   blockKind
	depth  int  // source indentation level of the block body
	filled bool // at least one real statement was emitted in the body
}

type Emitter struct {
	target   *Target
	lines    []string
	warnings []string
	stack    []openBlock
	level    int
	lineNo   int

	opened, closed, maxDepth int
}

func NewEmitter(t *Target) *Emitter {
	return &Emitter{target: t}
}

// Generate is a shorthand for NewEmitter(t).Emit(source).
func Generate(source string, t *Target) string {
	return NewEmitter(t).Emit(source)
}

// Warnings lists the source lines that were emitted as unsupported comments.
func (e *Emitter) Warnings() []string {
	return e.warnings
}

// Stats reports how many blocks the last Emit opened and closed, and the
// deepest nesting reached relative to the target's base level.
func (e *Emitter) Stats() (opened, closed, maxDepth int) {
	return e.opened, e.closed, e.maxDepth
}

func (e *Emitter) addWarning(format string, args ...any) {
	e.warnings = append(e.warnings, fmt.Sprintf("%d: %s", e.lineNo, fmt.Sprintf(format, args...)))
}

// Emit translates source in a single forward pass. It never fails: lines it
// does not recognize become comments.
func (e *Emitter) Emit(source string) string {
	e.lines = append([]string(nil), e.target.Preamble...)
	e.warnings = nil
	e.stack = e.stack[:0]
	e.level = e.target.BaseLevel
	e.opened, e.closed, e.maxDepth = 0, 0, 0
	e.lineNo = 0

	for _, raw := range strings.Split(strings.Trim(source, "\n"), "\n") {
		e.lineNo++
		raw = strings.TrimRight(raw, "\r")
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		depth := lib.IndentLevel(raw)

		if line == "else" {
			e.emitElse(depth)
			continue
		}
		e.closeBlocks(depth)
		e.emitStatement(line, depth)
	}

	e.closeBlocks(-1)
	e.lines = append(e.lines, e.target.Epilogue...)
	return strings.Join(e.lines, "\n")
}

// --- Emit Helpers ---

func (e *Emitter) emit(line string) {
	e.lines = append(e.lines, lib.Indent(e.level)+line)
}

// statement emits a translated line and marks the enclosing block as non-empty.
func (e *Emitter) statement(line string) {
	if n := len(e.stack); n > 0 {
		e.stack[n-1].filled = true
	}
	e.emit(line)
}

// fillEmpty gives the innermost block a placeholder body when the target needs one.
func (e *Emitter) fillEmpty() {
	n := len(e.stack)
	if n > 0 && !e.stack[n-1].filled && e.target.Empty != "" {
		e.emit(e.target.Empty)
	}
}

func (e *Emitter) expr(s string) string {
	s = strings.TrimSpace(s)
	if e.target.Expr != nil {
		return e.target.Expr(s)
	}
	return s
}

func (e *Emitter) open(kind blockKind, line string, depth int) {
	e.statement(line)
	e.stack = append(e.stack, openBlock{kind: kind, depth: depth + 1})
	e.level++
	e.opened++
	e.maxDepth = max(e.maxDepth, len(e.stack))
}

// closeBlocks closes every open block whose body is deeper than depth.
func (e *Emitter) closeBlocks(depth int) {
	for len(e.stack) > 0 && depth < e.stack[len(e.stack)-1].depth {
		e.fillEmpty()
		e.stack = e.stack[:len(e.stack)-1]
		e.level--
		e.closed++
		if e.target.Close != "" {
			e.emit(e.target.Close)
		}
	}
}

// emitElse turns the if-block whose body sits one level below depth into an
// else-block, closing anything nested deeper first.
func (e *Emitter) emitElse(depth int) {
	e.closeBlocks(depth + 1)
	n := len(e.stack)
	if n == 0 || e.stack[n-1].kind != blockIf || e.stack[n-1].depth != depth+1 {
		e.closeBlocks(depth)
		e.unsupported("else")
		return
	}
	e.fillEmpty()
	e.level--
	e.emit(e.target.Else)
	e.level++
	e.stack[n-1].kind = blockElse
	e.stack[n-1].filled = false
}

func (e *Emitter) unsupported(line string) {
	e.emit(e.target.Comment + " Unsupported: " + line)
	e.addWarning("unsupported line %q", line)
}

// --- Emit Statements ---

func (e *Emitter) emitStatement(line string, depth int) {
	t := e.target
	switch {
	case strings.HasPrefix(line, "let "):
		name, expr, ok := splitAssignment(line[len("let "):])
		if !ok {
			e.unsupported(line)
			return
		}
		e.statement(fmt.Sprintf(t.Declare, name, e.expr(expr)))

	case strings.HasPrefix(line, "print "):
		e.statement(fmt.Sprintf(t.Print, e.expr(line[len("print "):])))

	case strings.HasPrefix(line, "if "):
		e.open(blockIf, fmt.Sprintf(t.If, e.expr(line[len("if "):])), depth)

	case strings.HasPrefix(strings.ToLower(line), "for "):
		v, start, end, ok := splitFor(line[len("for "):])
		if !ok {
			e.unsupported(line)
			return
		}
		e.open(blockFor, fmt.Sprintf(t.For, v, e.expr(start), e.expr(end)), depth)

	case strings.HasPrefix(line, "while "):
		e.open(blockWhile, fmt.Sprintf(t.While, e.expr(line[len("while "):])), depth)

	default:
		if name, expr, ok := splitAssignment(line); ok {
			e.statement(fmt.Sprintf(t.Assign, name, e.expr(expr)))
			return
		}
		e.unsupported(line)
	}
}

// splitAssignment splits "NAME = EXPR" around the first '='.
func splitAssignment(s string) (name, expr string, ok bool) {
	name, expr, ok = strings.Cut(s, "=")
	name, expr = strings.TrimSpace(name), strings.TrimSpace(expr)
	if !ok || !isIdentifier(name) || expr == "" {
		return "", "", false
	}
	return name, expr, true
}

// splitFor splits "VAR = START to END".
func splitFor(s string) (v, start, end string, ok bool) {
	v, bounds, ok := strings.Cut(s, "=")
	v = strings.TrimSpace(v)
	if !ok || !isIdentifier(v) {
		return "", "", "", false
	}
	fields := strings.Fields(bounds)
	for i, f := range fields {
		if f == "to" && i > 0 && i < len(fields)-1 {
			return v, strings.Join(fields[:i], " "), strings.Join(fields[i+1:], " "), true
		}
	}
	return "", "", "", false
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return s != ""
}
