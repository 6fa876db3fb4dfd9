package interp

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/arnavsurve/transpile/internal/compiler/ast"
	"github.com/arnavsurve/transpile/internal/compiler/lexer"
	"github.com/arnavsurve/transpile/internal/compiler/parser"
	"github.com/arnavsurve/transpile/internal/compiler/value"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	program, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return program
}

func runSource(t *testing.T, src string, opts ...Option) ([]string, error) {
	t.Helper()
	out := &Collector{}
	err := Run(parseSource(t, src), out, opts...)
	return out.Lines(), err
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "For Is Inclusive",
			src:  "for i = 1 to 3\n    print i",
			want: []string{"1", "2", "3"},
		},
		{
			name: "For Empty Range",
			src:  "for i = 3 to 1\n    print i\nprint 0",
			want: []string{"0"},
		},
		{
			name: "Division By Zero Yields Zero",
			src:  "print 10 / 0\nprint 10 % 0",
			want: []string{"0", "0"},
		},
		{
			name: "Floor Semantics",
			src:  "let a = 0 - 7\nprint a / 2\nprint a % 2",
			want: []string{"-4", "1"},
		},
		{
			name: "Precedence",
			src:  "print 2 + 3 * 4\nprint 20 - 6 / 2 % 2",
			want: []string{"14", "19"},
		},
		{
			name: "Comparisons Print As Bool",
			src:  "print 3 > 2\nprint 3 < 2\nlet t = 1 < 2\nprint t + 1",
			want: []string{"True", "False", "2"},
		},
		{
			name: "If Else",
			src:  "let x = 5\nif x > 3\n    print 1\nelse\n    print 0\nif x - 5\n    print 2\nelse\n    print 3",
			want: []string{"1", "3"},
		},
		{
			name: "While Factorial",
			src:  "let n = 5\nlet res = 1\nwhile n > 0\n    res = res * n\n    n = n - 1\nprint res",
			want: []string{"120"},
		},
		{
			name: "Block Assignments Stay Visible",
			src:  "if 1\n    let inner = 7\nprint inner",
			want: []string{"7"},
		},
		{
			name: "Nested Loops",
			src:  "for i = 1 to 2\n    for j = 1 to 2\n        print i * 10 + j",
			want: []string{"11", "12", "21", "22"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runSource(t, tt.src)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("expected output %v, got %v", tt.want, got)
			}
		})
	}
}

func TestForLeavesLoopVariable(t *testing.T) {
	program := parseSource(t, "for i = 1 to 4\n    let last = i\n    i = 100")
	in := New(&Collector{})
	if err := in.Execute(program); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	i, ok := in.Env().Lookup("i")
	if !ok {
		t.Fatalf("loop variable missing after loop")
	}
	// The body reassigns i, but iteration follows the precomputed range.
	if last, _ := in.Env().Lookup("last"); last.Int() != 4 {
		t.Errorf("expected last = 4, got %s", last)
	}
	if i.Int() != 100 {
		t.Errorf("expected i = 100 after final body, got %s", i)
	}
}

func TestNameError(t *testing.T) {
	_, err := runSource(t, "let x = 1\nprint x + y")
	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected *NameError, got %v", err)
	}
	if nameErr.Name != "y" || nameErr.Line != 2 || nameErr.Column != 11 {
		t.Errorf("unexpected error details: %+v", nameErr)
	}
}

func TestNameErrorStopsOutput(t *testing.T) {
	got, err := runSource(t, "print 1\nprint missing\nprint 2")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(got) != 1 || got[0] != "1" {
		t.Errorf("expected only the first print before the failure, got %v", got)
	}
}

func TestStepLimit(t *testing.T) {
	_, err := runSource(t, "let x = 1\nwhile x\n    x = 1", WithStepLimit(50))
	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected *LimitError, got %v", err)
	}
	if limitErr.Limit != 50 {
		t.Errorf("expected limit 50, got %d", limitErr.Limit)
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	if err := Run(parseSource(t, "print 1\nprint 2 > 1"), sink); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if sink.Err != nil {
		t.Fatalf("sink error: %v", sink.Err)
	}
	if buf.String() != "1\nTrue\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestIndependentRuns(t *testing.T) {
	program := parseSource(t, "let s = 0\nfor i = 1 to 100\n    s = s + i\nprint s")

	var wg sync.WaitGroup
	results := make([][]value.Value, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out := &Collector{}
			if err := Run(program, out); err != nil {
				t.Errorf("Run() error: %v", err)
				return
			}
			results[i] = out.Values
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if len(r) != 1 || r[0].Int() != 5050 {
			t.Errorf("run %d: expected [5050], got %v", i, r)
		}
	}
}
