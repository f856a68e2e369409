// Package errors implements spec.md §4.K's two-layer error taxonomy
// (RuntimeError/StructuralError, in evalerr.go) plus the diagnostic
// presentation the CLI uses to print them: a file:line:column header,
// the offending source line, and a caret pointing at the failing
// column.
package errors

import (
	"fmt"
	"strings"

	"github.com/evil-lang/evil/internal/token"
)

// Diagnostic is satisfied by *RuntimeError and *StructuralError: any
// failure from either layer of the taxonomy that carries a source
// position and can be rendered against the program text that produced
// it. Format/FormatWithContext/FormatAll work against this interface
// rather than a separate generic error wrapper, so a parse-time
// StructuralError and an evaluator RuntimeError print identically.
type Diagnostic interface {
	error
	Position() token.Position
}

// Position implements Diagnostic for RuntimeError.
func (e *RuntimeError) Position() token.Position { return e.Pos }

// Position implements Diagnostic for StructuralError.
func (e *StructuralError) Position() token.Position { return e.Pos }

// Format renders d with a file:line:column header, the source line it
// occurred on, and a caret under the failing column. If color is true,
// ANSI codes highlight the caret and message for terminal output.
func Format(d Diagnostic, source, file string, color bool) string {
	var sb strings.Builder
	pos := d.Position()

	if file != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", file, pos.Line, pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", pos.Line, pos.Column))
	}

	if line := sourceLine(source, pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Error())
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// FormatWithContext is Format plus contextLines of surrounding source
// on either side of the failing line, with the failing line bolded and
// the rest dimmed when color is true.
func FormatWithContext(d Diagnostic, source, file string, contextLines int, color bool) string {
	pos := d.Position()

	ctx := sourceContext(source, pos.Line, contextLines, contextLines)
	if len(ctx) == 0 {
		return Format(d, source, file, color)
	}

	var sb strings.Builder
	if file != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", file, pos.Line, pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", pos.Line, pos.Column))
	}

	startLine := pos.Line - contextLines
	if startLine < 1 {
		startLine = 1
	}

	for i, line := range ctx {
		currentLine := startLine + i
		lineNumStr := fmt.Sprintf("%4d | ", currentLine)

		if currentLine == pos.Line {
			if color {
				sb.WriteString("\033[1m")
			}
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")

			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+pos.Column-1))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		} else {
			if color {
				sb.WriteString("\033[2m")
			}
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Error())
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// sourceLine returns the 1-indexed line of source, or "" if out of range.
func sourceLine(source string, lineNum int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// sourceContext returns the lines from (lineNum-before) to (lineNum+after), clamped.
func sourceContext(source string, lineNum, before, after int) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return nil
	}
	start := lineNum - before
	if start < 1 {
		start = 1
	}
	end := lineNum + after
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start-1 : end]
}

// FormatAll renders a batch of diagnostics, the shape a parse pass
// produces after collecting more than one structural problem (spec's
// parser does not stop at the first error).
func FormatAll[T Diagnostic](ds []T, source, file string, color bool) string {
	if len(ds) == 0 {
		return ""
	}
	if len(ds) == 1 {
		return Format(ds[0], source, file, color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("parsing failed with %d error(s):\n\n", len(ds)))
	for i, d := range ds {
		sb.WriteString(fmt.Sprintf("[error %d of %d]\n", i+1, len(ds)))
		sb.WriteString(Format(d, source, file, color))
		if i < len(ds)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FormatWithTrace renders e the way an uncaught RuntimeError reaches
// the CLI: the diagnostic itself, then its call-stack trace if one was
// attached before the error crossed a function boundary (WithTrace).
func (e *RuntimeError) FormatWithTrace(source, file string, color bool) string {
	s := Format(e, source, file, color)
	if len(e.Trace) > 0 {
		s += "\n" + e.Trace.String()
	}
	return s
}
