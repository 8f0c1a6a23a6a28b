package hashclass

import (
	"fmt"
	"strconv"
	"strings"
)

func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := strings.TrimRight(lines[pos.Line-1], "\r")
	width := len([]rune(lineText))

	column := min(max(pos.Column, 1), width+1)

	label := strconv.Itoa(pos.Line)
	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line, column,
		label, lineText,
		strings.Repeat(" ", len(label)), strings.Repeat(" ", column-1),
	)
}
