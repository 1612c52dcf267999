package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// ASCII renders a curve as a terminal line chart with its markers listed
// underneath.
func ASCII(c Curve, height, width int) string {
	if len(c.Points) == 0 {
		return ""
	}
	if height <= 0 {
		height = 15
	}
	if width <= 0 {
		width = 60
	}
	var sb strings.Builder
	sb.WriteString(asciigraph.Plot(c.Y(),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(1),
		asciigraph.Caption(c.Title),
	))
	sb.WriteString("\n")

	first, last := c.Points[0].X, c.Points[len(c.Points)-1].X
	sb.WriteString(fmt.Sprintf("  x: %s, %.2f to %.2f\n", c.XLabel, first, last))
	sb.WriteString(fmt.Sprintf("  y: %s\n", c.YLabel))
	for _, m := range c.Markers {
		sb.WriteString(fmt.Sprintf("  %s = %.3f\n", m.Label, m.X))
	}
	return sb.String()
}

// SummaryBox frames a title and result lines in a box.
func SummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes.
func pad(s string, n int) string {
	if r := len([]rune(s)); r < n {
		return s + strings.Repeat(" ", n-r)
	}
	return s
}
