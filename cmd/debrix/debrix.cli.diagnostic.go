package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/debrix-lang/debrix-go"
)

// diagnostic is a build error located in its source
type diagnostic struct {
	name    string
	message string

	// located is false for errors without a source position
	located bool
	line    int
	column  int
	width   int
	text    string
}

// newDiagnostic locates err in source when it carries a position
func newDiagnostic(name, source string, err error) diagnostic {
	d := diagnostic{name: name, message: err.Error()}

	if pe, ok := debrix.AsParserError(err); ok {
		d.message = pe.Error()
		d.locate(source, pe.Position, 1)
		return d
	}
	if ce, ok := debrix.AsCompilerError(err); ok {
		d.message = ce.Message
		d.locate(source, ce.Start, ce.End-ce.Start)
		return d
	}
	return d
}

func (d *diagnostic) locate(source string, offset, width int) {
	loc := debrix.Locate(source, offset)
	d.located = true
	d.line = loc.Line
	d.column = loc.Column
	d.text = strings.ReplaceAll(loc.Text, "\t", " ")

	// spans that run past the line are cut at its end
	width = min(width, len(d.text)-d.column)
	d.width = max(width, 1)
}

// printer renders diagnostics with styles suited to its writer; plain
// text when the writer is not a terminal
type printer struct {
	w       io.Writer
	errorSt lipgloss.Style
	okSt    lipgloss.Style
	warnSt  lipgloss.Style
	mutedSt lipgloss.Style
	boldSt  lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		errorSt: r.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true),
		okSt:    r.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true),
		warnSt:  r.NewStyle().Foreground(lipgloss.Color(ColorWarning)),
		mutedSt: r.NewStyle().Foreground(lipgloss.Color(ColorMuted)),
		boldSt:  r.NewStyle().Bold(true),
	}
}

// diagnostic prints d as
//
//	error: Unexpected at 14, expected span.
//	  --> page.debrix:2:9
//	   |
//	 2 | <span></p>
//	   |         ^
func (p *printer) diagnostic(d diagnostic) {
	fmt.Fprintln(p.w, p.errorSt.Render(DiagLabelError+":")+" "+p.boldSt.Render(d.message))
	if !d.located {
		fmt.Fprintln(p.w, "  "+p.mutedSt.Render(DiagFrameArrow)+" "+d.name)
		return
	}

	lineNo := strconv.Itoa(d.line + 1)
	pad := strings.Repeat(" ", len(lineNo))
	location := fmt.Sprintf(DiagLocationFmt, d.name, d.line+1, d.column+1)

	fmt.Fprintln(p.w, pad+p.mutedSt.Render(DiagFrameArrow)+" "+location)
	fmt.Fprintln(p.w, pad+" "+p.mutedSt.Render(DiagFrameGutter))
	fmt.Fprintln(p.w, p.mutedSt.Render(lineNo+" "+DiagFrameGutter)+" "+d.text)
	fmt.Fprintln(p.w, pad+" "+p.mutedSt.Render(DiagFrameGutter)+" "+
		strings.Repeat(" ", d.column)+p.errorSt.Render(strings.Repeat(DiagFrameCaret, d.width)))
}

// fileOK prints a success line for a compiled file
func (p *printer) fileOK(line string) {
	fmt.Fprintln(p.w, p.okSt.Render(DiagLabelOK)+"   "+line)
}

// fileFailed prints a failure line for a file
func (p *printer) fileFailed(name string) {
	fmt.Fprintln(p.w, p.errorSt.Render(DiagLabelFail)+" "+name)
}

// summary prints a closing line, highlighted when something failed
func (p *printer) summary(line string, failed bool) {
	if failed {
		fmt.Fprintln(p.w, p.warnSt.Render(line))
		return
	}
	fmt.Fprintln(p.w, p.mutedSt.Render(line))
}

// note prints a muted informational line
func (p *printer) note(line string) {
	fmt.Fprintln(p.w, p.mutedSt.Render(line))
}
