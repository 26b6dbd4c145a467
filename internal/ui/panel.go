package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Panel draws a framed box using the current theme. Lines wider than the
// terminal are truncated.
func Panel(lines []string) {
	fmt.Fprint(stdout, PanelString(lines, TermWidth()))
}

// PanelString renders the frame for a terminal of the given width.
func PanelString(lines []string, width int) string {
	t := Current()
	inner := max(1, width-4)

	maxw := 0
	fitted := make([]string, len(lines))
	for i, ln := range lines {
		if ansi.StringWidth(ln) > inner {
			ln = Truncate(ln, inner)
		}
		fitted[i] = ln
		maxw = max(maxw, ansi.StringWidth(ln))
	}
	pad := func(s string) string {
		return s + strings.Repeat(" ", maxw-ansi.StringWidth(s))
	}

	var b strings.Builder
	b.WriteString(t.Border.Render(t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR) + "\n")
	for _, ln := range fitted {
		b.WriteString(t.Border.Render(t.V) + " " + pad(ln) + " " + t.Border.Render(t.V) + "\n")
	}
	b.WriteString(t.Border.Render(t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR) + "\n")
	return b.String()
}
