// Package progress draws a single-line loading bar on a terminal.
package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxWidth = 512

var (
	fillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	capStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
)

// Bar is a loading bar like "[42% #####-----]". It redraws in place with a
// carriage return and only when the filled length or the whole percent
// changes, so a long run does not flood the terminal.
type Bar struct {
	Out               io.Writer
	Width             int
	Fill, Empty       rune
	LeftCap, RightCap rune
	filled, percent   int
	drawn             bool
}

// New returns a bar of the given width (capped at 512 cells) with the
// classic '#', '-', '[' and ']' glyphs.
func New(out io.Writer, width int) *Bar {
	if width > maxWidth {
		width = maxWidth
	}
	if width < 1 {
		width = 1
	}
	return &Bar{
		Out:      out,
		Width:    width,
		Fill:     '#',
		Empty:    '-',
		LeftCap:  '[',
		RightCap: ']',
	}
}

// Report implements heatsim.Reporter. step counts completed steps (1..total).
func (b *Bar) Report(step, total int) {
	if total < 1 {
		return
	}
	if step > total {
		step = total
	}
	filled := step * b.Width / total
	percent := step * 100 / total
	if b.drawn && filled == b.filled && percent <= b.percent {
		return
	}
	b.filled, b.percent = filled, percent
	b.Draw()
}

// Draw renders the current state unconditionally.
func (b *Bar) Draw() {
	b.drawn = true
	fmt.Fprint(b.Out, "\r"+b.String())
}

// Finish ends the line so following output starts on a fresh one.
func (b *Bar) Finish() {
	fmt.Fprintln(b.Out)
}

// String renders the bar without the leading carriage return.
func (b *Bar) String() string {
	filled := min(max(b.filled, 0), b.Width)
	percent := min(max(b.percent, 0), 100)
	return fmt.Sprintf("%s%d%% %s%s%s",
		capStyle.Render(string(b.LeftCap)),
		percent,
		fillStyle.Render(strings.Repeat(string(b.Fill), filled)),
		emptyStyle.Render(strings.Repeat(string(b.Empty), b.Width-filled)),
		capStyle.Render(string(b.RightCap)),
	)
}
