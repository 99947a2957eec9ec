package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/mote/internal/frontend"
)

// Location is a 1-based line and column in a source text
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Column)
}

// Locate converts a byte offset into a line and column. Offsets past the
// end of the source point just after the last character.
func Locate(source string, offset int) Location {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}

	line := 1 + strings.Count(source[:offset], "\n")
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	return Location{Line: line, Column: offset - start + 1}
}

// Diagnostic renders an error with the offending source line and a caret
// under the reported offset. Errors without an offset render as one line.
func Diagnostic(name, source string, info *frontend.ErrorInfo) string {
	if info == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(ErrorLabelStyle.Render("error[" + info.Code + "]"))
	sb.WriteString(": ")
	sb.WriteString(info.Message)

	if info.Offset < 0 {
		return sb.String()
	}

	loc := Locate(source, info.Offset)
	lines := strings.Split(source, "\n")
	text := ""
	if loc.Line-1 < len(lines) {
		text = strings.TrimRight(lines[loc.Line-1], "\r")
	}

	number := strconv.Itoa(loc.Line)
	pad := strings.Repeat(" ", len(number))
	gutter := GutterStyle.Render(pad + " |")

	fmt.Fprintf(&sb, "\n%s %s %s:%s\n", pad, GutterStyle.Render("-->"), name, loc)
	sb.WriteString(gutter + "\n")
	sb.WriteString(GutterStyle.Render(number+" |") + " " + expandTabs(text) + "\n")
	sb.WriteString(gutter + " " + strings.Repeat(" ", caretColumn(text, loc.Column)) + CaretStyle.Render("^"))
	return sb.String()
}

// caretColumn accounts for tabs expanded before the caret
func caretColumn(line string, column int) int {
	n := 0
	for i := 0; i < column-1 && i < len(line); i++ {
		if line[i] == '\t' {
			n += 4
		} else {
			n++
		}
	}
	if column-1 > len(line) {
		n += column - 1 - len(line)
	}
	return n
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
