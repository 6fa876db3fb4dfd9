package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	transpileCmd = "go run ./cmd/transpile"
	buildTimeout = 30 * time.Second // go run compiles the CLI on first use
	runTimeout   = 30 * time.Second
)

// Every good program is generated for these outputs and compared byte for byte.
var expectedOutputs = []string{"%s.py", "%s/Main.java", "%s.c", "%s.cpp"}

type testResult struct {
	fileName string
	passed   bool
	output   string // failure details
	isGood   bool
}

func main() {
	fmt.Println("🧹 Cleaning output directory...")
	_ = os.RemoveAll("out")
	_ = os.Mkdir("out", 0o755)

	fmt.Println("\n🔍 Running good tests:")
	goodFiles, _ := filepath.Glob(filepath.Join("tests/good", "*.tp"))
	fmt.Printf("Found %d good test files...\n", len(goodFiles))

	goodPassed, goodFailed := 0, 0
	badPassed, badFailed := 0, 0
	failedTests := []testResult{}

	for _, file := range goodFiles {
		fmt.Printf("→ Running good test: %s\n", filepath.Base(file))
		res := runGoodTest(file)
		if res.passed {
			fmt.Printf("  ✅ %s\n", res.fileName)
			goodPassed++
		} else {
			fmt.Printf("  ❌ %s\n", res.fileName)
			goodFailed++
			failedTests = append(failedTests, res)
		}
	}

	fmt.Println("\n💥 Running bad tests:")
	badFiles, _ := filepath.Glob(filepath.Join("tests/bad", "*.tp"))
	fmt.Printf("Found %d bad test files...\n", len(badFiles))

	for _, file := range badFiles {
		fmt.Printf("→ Running bad test: %s\n", filepath.Base(file))
		res := runBadTest(file)
		if res.passed {
			fmt.Printf("  ✅ %s (Failed as expected)\n", res.fileName)
			badPassed++
		} else {
			fmt.Printf("  ❌ %s (Unexpected Result)\n", res.fileName)
			badFailed++
			failedTests = append(failedTests, res)
		}
	}

	if len(failedTests) > 0 {
		fmt.Println("\n--- Detailed Failures ---")
		for _, failure := range failedTests {
			fmt.Printf("\n❌ Test: %s (%s)\n", failure.fileName, map[bool]string{true: "Good Test", false: "Bad Test"}[failure.isGood])
			fmt.Println("Reason:")
			fmt.Println(failure.output)
			fmt.Println("---")
		}
	}

	fmt.Println("\n--------------------")
	fmt.Printf("Good Tests Summary: ✅ Passed: %d | ❌ Failed: %d\n", goodPassed, goodFailed)
	fmt.Printf("Bad Tests Summary:  ✅ Passed: %d | ❌ Failed: %d\n", badPassed, badFailed)
	fmt.Println("--------------------")

	if goodFailed > 0 || badFailed > 0 {
		fmt.Println("\n🚨 Some tests failed!")
		os.Exit(1)
	}
	fmt.Println("\n🎉 All tests passed!")
}

// runGoodTest builds every target, compares each output with its expected
// file, then checks the program against its generated Python.
func runGoodTest(file string) testResult {
	fileName := filepath.Base(file)
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	res := testResult{fileName: fileName, isGood: true}

	// --- 1. Build all targets ---
	buildOutput, err := runTranspile(buildTimeout, "build", "-o", "out", file)
	if err != nil {
		res.output = fmt.Sprintf("Build failed: %v\nOutput:\n%s", err, buildOutput)
		return res
	}
	if strings.Contains(buildOutput, "warning:") {
		res.output = fmt.Sprintf("Build produced unexpected warnings:\n%s", buildOutput)
		return res
	}

	// --- 2. Compare with expected ---
	for _, pattern := range expectedOutputs {
		rel := fmt.Sprintf(pattern, name)
		expectedPath := filepath.Join("tests/good/expected", rel)
		expected, err := os.ReadFile(expectedPath)
		if err != nil {
			res.output = fmt.Sprintf("Missing expected output: %s", expectedPath)
			return res
		}
		actualPath := filepath.Join("out", rel)
		actual, err := os.ReadFile(actualPath)
		if err != nil {
			res.output = fmt.Sprintf("Missing generated output: %s\nBuild Output:\n%s", actualPath, buildOutput)
			return res
		}

		expected = bytes.ReplaceAll(expected, []byte("\r\n"), []byte("\n"))
		actual = bytes.ReplaceAll(actual, []byte("\r\n"), []byte("\n"))
		if !bytes.Equal(expected, actual) {
			res.output = fmt.Sprintf("Mismatch\nExpected (%s):\n%s\nActual (%s):\n%s", expectedPath, expected, actualPath, actual)
			return res
		}
	}

	// --- 3. Interpreter vs generated Python ---
	verifyOutput, err := runTranspile(runTimeout, "verify", "--gas", "100000", file)
	if err != nil {
		res.output = fmt.Sprintf("Verify failed: %v\nOutput:\n%s", err, verifyOutput)
		return res
	}

	res.passed = true
	return res
}

// runBadTest expects the interpreter to reject the program with a diagnostic.
func runBadTest(file string) testResult {
	fileName := filepath.Base(file)
	res := testResult{fileName: fileName, isGood: false}

	output, err := runTranspile(runTimeout, "run", "--gas", "100000", file)

	expectedErrorPatterns := []string{"Lexical Error:", "Syntax Error:", "Name Error:", "Limit Error:"}
	hasExpectedErrorMsg := false
	for _, pattern := range expectedErrorPatterns {
		if strings.Contains(output, pattern) {
			hasExpectedErrorMsg = true
			break
		}
	}

	switch {
	case err != nil && hasExpectedErrorMsg:
		res.passed = true
	case err != nil:
		res.output = fmt.Sprintf("Failed, but no expected error message pattern detected.\nExit Err: %v\nOutput:\n%s", err, output)
	default:
		res.output = fmt.Sprintf("Expected failure but got success.\nOutput:\n%s", output)
	}
	return res
}

func runTranspile(timeout time.Duration, args ...string) (string, error) {
	cmd := exec.Command("sh", "-c", transpileCmd+" "+strings.Join(args, " "))
	out, err := runCommandWithTimeout(cmd, timeout)
	return string(out), err
}

func runCommandWithTimeout(cmd *exec.Cmd, timeout time.Duration) ([]byte, error) {
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Start(); err != nil {
		return out.Bytes(), fmt.Errorf("failed to start command '%s': %w", cmd.String(), err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-time.After(timeout):
		if killErr := cmd.Process.Kill(); killErr != nil {
			return out.Bytes(), fmt.Errorf("command '%s' timed out after %v and failed to kill: %w", cmd.String(), timeout, killErr)
		}
		return out.Bytes(), fmt.Errorf("command '%s' timed out after %v", cmd.String(), timeout)
	case err := <-done:
		return out.Bytes(), err
	}
}
