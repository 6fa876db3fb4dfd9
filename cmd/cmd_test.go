package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnavsurve/transpile/internal/compiler/interp"
)

const countdown = `let x = 3
while x > 0
    print x
    x = x - 1
`

// execute runs the root command with fresh flag values.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	outDir, verbose, targetName, gas, printSource = "out", false, "all", 0, false

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestBuild(t *testing.T) {
	src := writeSource(t, "countdown.tp", countdown)
	dir := t.TempDir()

	stdout, stderr, err := execute(t, "build", src, "-o", dir)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if stderr != "" {
		t.Errorf("unexpected stderr: %q", stderr)
	}

	for _, rel := range []string{"countdown.py", "countdown/Main.java", "countdown.c", "countdown.cpp"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("expected %s to be written: %v", rel, err)
		}
	}
	if n := strings.Count(stdout, "✔︎ wrote"); n != 4 {
		t.Errorf("expected 4 wrote lines, got %d:\n%s", n, stdout)
	}
}

func TestBuildSingleTarget(t *testing.T) {
	src := writeSource(t, "countdown.tp", countdown)
	dir := t.TempDir()

	if _, _, err := execute(t, "build", src, "-o", dir, "--target", "C"); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "countdown.c")); err != nil {
		t.Errorf("expected countdown.c: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "countdown.py")); !os.IsNotExist(err) {
		t.Errorf("countdown.py should not exist, stat error: %v", err)
	}
}

func TestBuildUnknownTarget(t *testing.T) {
	src := writeSource(t, "countdown.tp", countdown)
	_, _, err := execute(t, "build", src, "-o", t.TempDir(), "-t", "cobol")
	if err == nil || !strings.Contains(err.Error(), "unknown target") {
		t.Fatalf("expected unknown target error, got %v", err)
	}
}

func TestBuildWarnings(t *testing.T) {
	src := writeSource(t, "odd.tp", "let x = 1\ngoto x\n")
	_, stderr, err := execute(t, "build", src, "-o", t.TempDir(), "-t", "python")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !strings.Contains(stderr, "python: warning: 2: unsupported line") {
		t.Errorf("expected a warning for line 2, got %q", stderr)
	}
}

func TestBuildVerbose(t *testing.T) {
	src := writeSource(t, "countdown.tp", countdown)
	stdout, _, err := execute(t, "-v", "build", src, "-o", t.TempDir())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !strings.Contains(stdout, "↪ building") {
		t.Errorf("expected progress output, got %q", stdout)
	}
}

func TestRun(t *testing.T) {
	src := writeSource(t, "countdown.tp", countdown)
	stdout, _, err := execute(t, "run", src)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout != "3\n2\n1\n" {
		t.Errorf("run printed %q, want %q", stdout, "3\n2\n1\n")
	}
}

func TestRunGas(t *testing.T) {
	src := writeSource(t, "forever.tp", "let x = 1\nwhile x > 0\n    x = 1\n")
	_, _, err := execute(t, "run", src, "--gas", "20")
	var limitErr *interp.LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected *interp.LimitError, got %v", err)
	}
}

func TestRunRejectsExtension(t *testing.T) {
	src := writeSource(t, "countdown.py", countdown)
	if _, _, err := execute(t, "run", src); err == nil {
		t.Fatalf("expected an extension error")
	}
}

func TestTokens(t *testing.T) {
	src := writeSource(t, "one.tp", "let x = 1\n")
	stdout, _, err := execute(t, "tokens", src)
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if lines[0] != "1:1\tLET\tlet" {
		t.Errorf("first token line = %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "EOF") {
		t.Errorf("last token line = %q, want EOF", lines[len(lines)-1])
	}
}

func TestAST(t *testing.T) {
	src := writeSource(t, "countdown.tp", countdown)

	stdout, _, err := execute(t, "ast", src)
	if err != nil {
		t.Fatalf("ast failed: %v", err)
	}
	if !strings.Contains(stdout, "ast.Program") || !strings.Contains(stdout, "WhileStatement") {
		t.Errorf("unexpected ast dump:\n%s", stdout)
	}

	stdout, _, err = execute(t, "ast", "--source", src)
	if err != nil {
		t.Fatalf("ast --source failed: %v", err)
	}
	if stdout != countdown {
		t.Errorf("unexpected source rendering:\n%s", stdout)
	}
}

func TestVerify(t *testing.T) {
	src := writeSource(t, "countdown.tp", countdown)
	stdout, _, err := execute(t, "verify", src)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !strings.Contains(stdout, "3 matching lines") {
		t.Errorf("unexpected verify output %q", stdout)
	}
}

func TestVerifyMismatch(t *testing.T) {
	src := writeSource(t, "loop.tp", "for i = 1 to 2\n    print i\n")
	_, _, err := execute(t, "verify", src)
	if err == nil || !strings.Contains(err.Error(), "outputs differ at line 2") {
		t.Fatalf("expected mismatch at line 2, got %v", err)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello")

	stdout, _, err := execute(t, "init", path)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(stdout, "hello.tp") {
		t.Errorf("unexpected init output %q", stdout)
	}

	stdout, _, err = execute(t, "run", path+".tp")
	if err != nil {
		t.Fatalf("running scaffolded program: %v", err)
	}
	if stdout != "15\n" {
		t.Errorf("scaffolded program printed %q, want %q", stdout, "15\n")
	}

	if _, _, err := execute(t, "init", path); err == nil {
		t.Errorf("init should refuse to overwrite an existing file")
	}
}
