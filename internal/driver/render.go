package driver

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joeycumines/behave"
	"github.com/muesli/termenv"
)

// elapsed times in reports are rounded to this
const timeRounding = time.Millisecond

// Printer renders traces and reports to a writer, optionally with ANSI
// styling. Color detection is left to the caller: a styled Printer always
// emits 256-color sequences, an unstyled one never does.
type Printer struct {
	w      io.Writer
	styled bool

	depth    lipgloss.Style
	root     lipgloss.Style
	name     lipgloss.Style
	statuses map[behave.Status]lipgloss.Style
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, styled bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if styled {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:      w,
		styled: styled,
		depth:  r.NewStyle().Foreground(lipgloss.Color("240")),
		root:   r.NewStyle().Bold(true),
		name:   r.NewStyle().Foreground(lipgloss.Color("75")),
		statuses: map[behave.Status]lipgloss.Style{
			behave.Success: r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
			behave.Failure: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			behave.Running: r.NewStyle().Foreground(lipgloss.Color("214")),
		},
	}
}

// Styled reports whether p emits ANSI styling.
func (p *Printer) Styled() bool { return p.styled }

// Trace writes one line per entry, indented two spaces per level.
func (p *Printer) Trace(entries []behave.TraceEntry) error {
	for _, e := range entries {
		marker, name := "-", e.Name
		if p.styled {
			marker = p.depth.Render(marker)
			if e.Depth == 0 {
				name = p.root.Render(name)
			} else {
				name = p.name.Render(name)
			}
		}
		if _, err := fmt.Fprintf(p.w, "%s%s %s\n", strings.Repeat("  ", e.Depth), marker, name); err != nil {
			return err
		}
	}
	return nil
}

// Status returns the status name, colored when p is styled.
func (p *Printer) Status(s behave.Status) string {
	if style, ok := p.statuses[s]; ok && p.styled {
		return style.Render(s.String())
	}
	return s.String()
}

// Report writes a header line for the tick followed by its trace.
func (p *Printer) Report(r Report) error {
	if _, err := fmt.Fprintf(p.w, "tick %d: %s (%s)\n", r.Tick, p.Status(r.Status), r.Elapsed.Round(timeRounding)); err != nil {
		return err
	}
	return p.Trace(r.Trace)
}

// Result writes the one-line summary of a finished run.
func (p *Printer) Result(r Result) error {
	_, err := fmt.Fprintf(p.w, "%s after %d tick(s) in %s\n", p.Status(r.Status), r.Ticks, r.Elapsed.Round(timeRounding))
	return err
}
