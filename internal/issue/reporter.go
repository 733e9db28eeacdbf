package issue

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter formats issues against the original source text with line
// context and caret markers, one block per issue.
type Reporter struct {
	filename string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatIssue renders one issue with Rust-like styling:
//
//	warning[Unread variables]: variable 'x' is set but its value is never used
//	    --> student.py:3:1
func (r *Reporter) FormatIssue(k Kind, d Data) string {
	var result strings.Builder

	levelColor := r.levelColor(k)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	level := "warning"
	if IsError(k) {
		level = "error"
	}
	result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(level), k, Message(k, d)))

	lineNumberWidth := r.lineNumberWidth(d.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	if d.Position.Line > 0 {
		result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
			indent, dim("-->"), r.filename, d.Position.Line, d.Position.Column))
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

		if d.Position.Line <= len(r.lines) {
			lineContent := r.lines[d.Position.Line-1]
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				bold(fmt.Sprintf("%*d", lineNumberWidth, d.Position.Line)),
				dim("│"),
				lineContent))

			marker := r.createMarker(d.Position.Column, markerLength(d), k)
			result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
		}
	}

	if help := Description(k); help != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), helpColor("help:"), help))
	}

	result.WriteString("\n")
	return result.String()
}

func (r *Reporter) levelColor(k Kind) func(...interface{}) string {
	if IsError(k) {
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
	return color.New(color.FgYellow, color.Bold).SprintFunc()
}

func (r *Reporter) createMarker(column, length int, k Kind) string {
	if length <= 0 {
		length = 1
	}
	if column < 1 {
		column = 1
	}

	spaces := strings.Repeat(" ", column-1)
	marker := strings.Repeat("^", length)
	return spaces + r.levelColor(k)(marker)
}

func (r *Reporter) lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}

// markerLength underlines the named variable when the issue has one
func markerLength(d Data) int {
	if d.Name != "" {
		return len(d.Name)
	}
	return 1
}
