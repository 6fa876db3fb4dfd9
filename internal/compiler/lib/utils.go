package lib

import "strings"

// IndentWidth is the number of spaces per nesting level in generated code and
// in the source lines the generators read.
const IndentWidth = 4

// Indent returns the padding for the given nesting level.
func Indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(" ", IndentWidth*level)
}

// IndentLevel counts leading spaces and converts them to whole levels.
func IndentLevel(line string) int {
	n := len(line) - len(strings.TrimLeft(line, " "))
	return n / IndentWidth
}
