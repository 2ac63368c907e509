package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorBlue  = "\033[34m"
	colorCyan  = "\033[36m"
	colorWhite = "\033[37m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printer formats errors with or without ANSI colours.
type printer struct {
	colors bool
}

func (p printer) color(code, text string) string {
	if !p.colors {
		return text
	}
	return code + text + colorReset
}

func (p printer) red(text string) string   { return p.color(colorRed, text) }
func (p printer) blue(text string) string  { return p.color(colorBlue, text) }
func (p printer) cyan(text string) string  { return p.color(colorCyan, text) }
func (p printer) white(text string) string { return p.color(colorWhite, text) }
func (p printer) gray(text string) string  { return p.color(colorGray, text) }
func (p printer) bold(text string) string  { return p.color(colorBold, text) }

// Format returns the error formatted for a terminal without colours.
func (e *Error) Format() string {
	return e.format(printer{})
}

// FormatColor returns the error formatted with ANSI colours.
func (e *Error) FormatColor() string {
	return e.format(printer{colors: true})
}

func (e *Error) format(p printer) string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(p.red(p.bold("ERROR ")))
		b.WriteString(p.white(p.bold(e.Code + ": ")))
	} else {
		b.WriteString(p.red(p.bold("ERROR: ")))
	}
	b.WriteString(p.white(e.Message))
	b.WriteString("\n\n")

	if e.Location != nil {
		b.WriteString("  ")
		b.WriteString(p.cyan(e.Location.String()))
		b.WriteString("\n\n")

		if len(e.Context) > 0 {
			start := e.contextStart()
			for i, line := range e.Context {
				lineNum := start + i
				if lineNum == e.Location.Line {
					b.WriteString("  ")
					b.WriteString(p.red("→ "))
					b.WriteString(fmt.Sprintf("%4d", lineNum))
					b.WriteString(p.gray(" │ "))
					b.WriteString(line)
					b.WriteString("\n")

					if e.Location.Column > 0 {
						b.WriteString("       ")
						b.WriteString(p.gray("│ "))
						b.WriteString(strings.Repeat(" ", e.Location.Column-1))
						b.WriteString(p.red("^"))
						b.WriteString("\n")
					}
				} else {
					b.WriteString("    ")
					b.WriteString(fmt.Sprintf("%4d", lineNum))
					b.WriteString(p.gray(" │ "))
					b.WriteString(line)
					b.WriteString("\n")
				}
			}
			b.WriteString("\n")
		}
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(p.gray("Cause: "))
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(p.cyan("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n\n")
	}

	if e.DocURL != "" {
		b.WriteString("  ")
		b.WriteString(p.gray("Learn more: "))
		b.WriteString(p.blue(e.DocURL))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *Error) FormatCompact() string {
	var b strings.Builder

	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Error())

	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

// Fprint writes err to w, with colours when colors is set.
func Fprint(w io.Writer, err error, colors bool) {
	p := printer{colors: colors}
	if e, ok := err.(*Error); ok {
		fmt.Fprint(w, e.format(p))
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", p.red(p.bold("ERROR:")), err.Error())
}

// PrintError prints a formatted error to stderr, using colours only when
// stderr is a terminal.
func PrintError(err error) {
	Fprint(os.Stderr, err, IsTerminal(os.Stderr))
}
