package emitter

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Target describes the surface syntax of one output language. Statement
// templates are fmt formats; For receives var, start and end as %[1]s..%[3]s.
type Target struct {
	Name      string
	Extension string

	Preamble  []string // fixed lines before the program body
	BaseLevel int      // nesting level of top-level statements
	Epilogue  []string // fixed lines after all blocks are closed

	Comment string // line comment prefix
	Declare string // let NAME = EXPR
	Assign  string // NAME = EXPR
	Print   string
	If      string
	Else    string // replaces the closing line of an if-block
	While   string
	For     string // exclusive of END
	Close   string // empty when blocks end by dedent alone
	Empty   string // placeholder body for a block with no statements, if required

	// Expr rewrites expression text before it is placed in a template.
	// Nil copies the text through unchanged.
	Expr func(expr string) string
}

// FileName returns the output file name for a source file base name.
func (t *Target) FileName(base string) string {
	if t.Name == "java" {
		// A public class Main must live in Main.java.
		return filepath.Join(base, "Main"+t.Extension)
	}
	return base + t.Extension
}

var Python = &Target{
	Name:      "python",
	Extension: ".py",
	Comment:   "#",
	Declare:   "%[1]s = %[2]s",
	Assign:    "%[1]s = %[2]s",
	Print:     "print(%s)",
	If:        "if %s:",
	Else:      "else:",
	While:     "while %s:",
	For:       "for %[1]s in range(%[2]s, %[3]s):",
	Empty:     "pass",
	Expr:      floorDivision,
}

// floorDivision maps integer division onto Python's floor division operator.
func floorDivision(expr string) string {
	return strings.ReplaceAll(expr, "/", "//")
}

var Java = &Target{
	Name:      "java",
	Extension: ".java",
	Preamble: []string{
		"public class Main {",
		"    public static void main(String[] args) {",
	},
	BaseLevel: 2,
	Epilogue:  []string{"    }", "}"},
	Comment:   "//",
	Declare:   "int %[1]s = %[2]s;",
	Assign:    "%[1]s = %[2]s;",
	Print:     "System.out.println(%s);",
	If:        "if (%s) {",
	Else:      "} else {",
	While:     "while (%s) {",
	For:       "for (int %[1]s = %[2]s; %[1]s < %[3]s; %[1]s++) {",
	Close:     "}",
}

var C = &Target{
	Name:      "c",
	Extension: ".c",
	Preamble:  []string{"#include <stdio.h>", "", "int main() {"},
	BaseLevel: 1,
	Epilogue:  []string{"    return 0;", "}"},
	Comment:   "//",
	Declare:   "int %[1]s = %[2]s;",
	Assign:    "%[1]s = %[2]s;",
	Print:     `printf("%%d\n", %s);`,
	If:        "if (%s) {",
	Else:      "} else {",
	While:     "while (%s) {",
	For:       "for (int %[1]s = %[2]s; %[1]s < %[3]s; %[1]s++) {",
	Close:     "}",
}

var Cpp = &Target{
	Name:      "cpp",
	Extension: ".cpp",
	Preamble:  []string{"#include <iostream>", "using namespace std;", "int main() {"},
	BaseLevel: 1,
	Epilogue:  []string{"    return 0;", "}"},
	Comment:   "//",
	Declare:   "int %[1]s = %[2]s;",
	Assign:    "%[1]s = %[2]s;",
	Print:     "cout << %s << endl;",
	If:        "if (%s) {",
	Else:      "} else {",
	While:     "while (%s) {",
	For:       "for (int %[1]s = %[2]s; %[1]s < %[3]s; %[1]s++) {",
	Close:     "}",
}

// Targets returns every supported target in a stable order.
func Targets() []*Target {
	return []*Target{Python, Java, C, Cpp}
}

var aliases = map[string]*Target{
	"python": Python,
	"py":     Python,
	"java":   Java,
	"c":      C,
	"cpp":    Cpp,
	"c++":    Cpp,
}

// Lookup resolves a target by name, case-insensitively.
func Lookup(name string) (*Target, error) {
	if t, ok := aliases[strings.ToLower(name)]; ok {
		return t, nil
	}
	names := make([]string, 0, len(Targets()))
	for _, t := range Targets() {
		names = append(names, t.Name)
	}
	return nil, fmt.Errorf("unknown target %q (want one of %s)", name, strings.Join(names, ", "))
}
