package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavsurve/transpile/internal/compiler/ast"
	"github.com/arnavsurve/transpile/internal/compiler/emitter"
	"github.com/arnavsurve/transpile/internal/compiler/interp"
	"github.com/arnavsurve/transpile/internal/compiler/lexer"
	"github.com/arnavsurve/transpile/internal/compiler/parser"
	"github.com/arnavsurve/transpile/internal/compiler/pycheck"
	"github.com/arnavsurve/transpile/internal/compiler/token"
)

// SourceExt is the extension every source file must carry.
const SourceExt = ".tp"

// Output describes one generated file.
type Output struct {
	Target   *emitter.Target
	Path     string
	Warnings []string
}

// CompileAndWrite generates one file per target under outDir.
func CompileAndWrite(srcPath, outDir string, targets []*emitter.Target) ([]Output, error) {
	content, err := LoadSource(srcPath)
	if err != nil {
		return nil, err
	}

	base := baseName(srcPath)
	outputs := make([]Output, 0, len(targets))
	for _, t := range targets {
		code, warnings := Transpile(content, t)
		outFile, err := writeOutput(code, filepath.Join(outDir, t.FileName(base)))
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, Output{Target: t, Path: outFile, Warnings: warnings})
	}
	return outputs, nil
}

// Transpile generates code for a single target and returns the lines that
// could not be translated.
func Transpile(src string, t *emitter.Target) (string, []string) {
	em := emitter.NewEmitter(t)
	code := em.Emit(src)
	return code, em.Warnings()
}

// LoadSource validates the extension and reads the file.
func LoadSource(path string) (string, error) {
	if err := validateExtension(path); err != nil {
		return "", err
	}
	return readSource(path)
}

func validateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return fmt.Errorf("source must have %s extension", SourceExt)
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

// Tokenize runs the lexer over src.
func Tokenize(src string) ([]token.Token, error) {
	return lexer.Tokenize(src)
}

// ParseProgram tokenizes and parses src.
func ParseProgram(src string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return parser.Parse(tokens)
}

// Run parses and interprets src, sending printed values to out.
func Run(src string, out interp.Sink, opts ...interp.Option) error {
	prog, err := ParseProgram(src)
	if err != nil {
		return err
	}
	return interp.Run(prog, out, opts...)
}

// Report compares what the interpreter prints with what the generated
// Python prints.
type Report struct {
	Python      string
	Interpreted []string
	Generated   []string
}

func (r *Report) Match() bool {
	if len(r.Interpreted) != len(r.Generated) {
		return false
	}
	for i := range r.Interpreted {
		if r.Interpreted[i] != r.Generated[i] {
			return false
		}
	}
	return true
}

// FirstDifference returns the index of the first differing line, or -1.
func (r *Report) FirstDifference() int {
	n := min(len(r.Interpreted), len(r.Generated))
	for i := 0; i < n; i++ {
		if r.Interpreted[i] != r.Generated[i] {
			return i
		}
	}
	if len(r.Interpreted) != len(r.Generated) {
		return n
	}
	return -1
}

// Verify interprets src and runs its Python translation. maxSteps bounds
// both runs; zero means no limit.
func Verify(src string, maxSteps int) (*Report, error) {
	var direct interp.Collector
	if err := Run(src, &direct, interp.WithStepLimit(maxSteps)); err != nil {
		return nil, err
	}

	py, _ := Transpile(src, emitter.Python)
	var generated interp.Collector
	if err := pycheck.Run(py, &generated, maxSteps); err != nil {
		return nil, fmt.Errorf("generated python: %w", err)
	}

	return &Report{
		Python:      py,
		Interpreted: direct.Lines(),
		Generated:   generated.Lines(),
	}, nil
}

func baseName(srcPath string) string {
	return strings.TrimSuffix(filepath.Base(srcPath), SourceExt)
}

func writeOutput(code, outFile string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		return "", err
	}
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	return outFile, os.WriteFile(outFile, []byte(code), 0o644)
}
