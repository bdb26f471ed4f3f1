// Package progress prints per-step operator feedback. It never affects
// control flow or the generated document.
package progress

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	stepStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Reporter writes one line per completed unit of work.
type Reporter struct {
	w     io.Writer
	quiet bool
}

func New(w io.Writer, quiet bool) *Reporter {
	return &Reporter{w: w, quiet: quiet}
}

// Report is a newsletter.ProgressFunc.
func (r *Reporter) Report(step, total int, message string) {
	if r.quiet {
		return
	}
	style := stepStyle
	if step == total {
		style = doneStyle
	}
	fmt.Fprintf(r.w, "%s %s\n", style.Render(fmt.Sprintf("[%d/%d]", step, total)), message)
}
