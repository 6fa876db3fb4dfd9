package pycheck

import (
	"errors"
	"strings"
	"testing"

	"github.com/arnavsurve/transpile/internal/compiler/emitter"
	"github.com/arnavsurve/transpile/internal/compiler/interp"
	"github.com/arnavsurve/transpile/internal/compiler/lexer"
	"github.com/arnavsurve/transpile/internal/compiler/parser"
)

func runLines(t *testing.T, src string) []string {
	t.Helper()
	var out interp.Collector
	if err := Run(src, &out, 0); err != nil {
		t.Fatalf("Run(%q) failed: %v", src, err)
	}
	return out.Lines()
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"Print", "print(1 + 2)", []string{"3"}},
		{"Assign", "x = 4\ny = x * 3 - 1\nprint(y)", []string{"11"}},
		{"Floor", "x = 0 - 7\nprint(x // 2)\nprint(x % 2)", []string{"-4", "1"}},
		{"Comparison", "print(2 > 1)\nprint(2 < 1)", []string{"True", "False"}},
		{"Chained", "print(1 < 2 < 3)\nprint(3 > 2 > 2)", []string{"True", "False"}},
		{"IfElse", "x = 3\nif x > 5:\n    print(1)\nelse:\n    print(0)", []string{"0"}},
		{"While", "i = 0\nwhile i < 3:\n    print(i)\n    i = i + 1", []string{"0", "1", "2"}},
		{"RangeStop", "for i in range(3):\n    print(i)", []string{"0", "1", "2"}},
		{"RangeStartStop", "for i in range(2, 4):\n    print(i)", []string{"2", "3"}},
		{"EmptyRange", "for i in range(4, 2):\n    print(i)", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runLines(t, tt.src)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Run(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		unsupported bool
		contains    string
	}{
		{"TrueDivision", "print(1 / 2)", true, "true division"},
		{"FunctionDef", "def f():\n    pass", true, "statement"},
		{"OtherCall", "len(3)", true, "print(x)"},
		{"StringLiteral", "print('a')", true, "expression"},
		{"UndefinedName", "print(y)", false, "NameError: name 'y' is not defined"},
		{"FloorDivByZero", "print(1 // 0)", false, "ZeroDivisionError"},
		{"ModByZero", "print(1 % 0)", false, "ZeroDivisionError"},
		{"SyntaxError", "if x\n    print(x)", false, "python parse error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(tt.src, &interp.Collector{}, 0)
			if err == nil {
				t.Fatalf("Run(%q) succeeded, want error", tt.src)
			}
			if errors.Is(err, ErrUnsupported) != tt.unsupported {
				t.Errorf("errors.Is(err, ErrUnsupported) = %v, want %v (err: %v)", !tt.unsupported, tt.unsupported, err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err, tt.contains)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("x = 1\nprint(x)"); err != nil {
		t.Errorf("Validate() on valid source: %v", err)
	}
	if err := Validate("print(x"); err == nil {
		t.Errorf("Validate() accepted unbalanced parentheses")
	}
}

func TestStepLimit(t *testing.T) {
	err := Run("x = 0\nwhile x < 1:\n    x = 0", &interp.Collector{}, 100)
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("expected ErrStepLimit, got %v", err)
	}
}

// Programs without for loops print the same lines whether interpreted
// directly or run as generated Python.
func TestRoundTrip(t *testing.T) {
	sources := []string{
		"let x = 10\nprint x",
		"let a = 2 + 3 * 4\nlet b = a / 3\nprint a\nprint b\nprint a % 5",
		"let x = 0 - 7\nprint x / 2\nprint x % 2",
		"let x = 7 / 2\nprint x",
		"let x = 100\nwhile x / 10 > 0\n    print x\n    x = x / 3",
		"let x = 9\nif x / 4 > 1\n    print x / 4 * 4\nelse\n    print 0",
		"let x = 10\nif x > 5\n    print x\nelse\n    print 0",
		"let i = 0\nwhile i < 4\n    print i * i\n    i = i + 1",
		"let n = 3\nwhile n > 0\n    if n % 2\n        print n\n    else\n        print 0\n    n = n - 1",
		"print 3 > 2",
	}

	for _, src := range sources {
		tokens, err := lexer.Tokenize(src)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", src, err)
		}
		program, err := parser.Parse(tokens)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		var direct interp.Collector
		if err := interp.Run(program, &direct); err != nil {
			t.Fatalf("interp.Run(%q): %v", src, err)
		}

		generated := emitter.Generate(src, emitter.Python)
		viaPython := runLines(t, generated)

		if strings.Join(direct.Lines(), "\n") != strings.Join(viaPython, "\n") {
			t.Errorf("outputs differ for\n%s\ninterpreter=%v\npython=%v\ngenerated=\n%s",
				src, direct.Lines(), viaPython, generated)
		}
	}
}

func TestGeneratedPythonWithEmptyBlocksParses(t *testing.T) {
	sources := []string{
		"if x\n    ???\nelse\n    print 1",
		"while y\n    if z\n        oops\nif w",
		"for i = 1 to 3",
	}
	for _, src := range sources {
		generated := emitter.Generate(src, emitter.Python)
		if err := Validate(generated); err != nil {
			t.Errorf("generated python for %q does not parse: %v\n%s", src, err, generated)
		}
	}
}

func TestForBoundsDiffer(t *testing.T) {
	src := "for i = 1 to 3\n    print i"

	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	var direct interp.Collector
	if err := interp.Run(program, &direct); err != nil {
		t.Fatal(err)
	}

	viaPython := runLines(t, emitter.Generate(src, emitter.Python))

	if got := strings.Join(direct.Lines(), ","); got != "1,2,3" {
		t.Errorf("interpreter printed %s, want 1,2,3", got)
	}
	if got := strings.Join(viaPython, ","); got != "1,2" {
		t.Errorf("generated python printed %s, want 1,2", got)
	}
}
