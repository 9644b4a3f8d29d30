package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles derives the explorer's styles from the current theme.
type styles struct {
	canvas, panel, header lipgloss.Style
	label, value, active  lipgloss.Style
	muted, graph, warning lipgloss.Style
}

func themeStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(46),
		header:  lipgloss.NewStyle().Foreground(t.Secondary).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		active:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		graph:   lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		warning: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
	}
}

// Bar renders |v| on a scale of 0..1 as a bar of the given width.
func Bar(v float64, width int) string {
	filled := int(math.Round(math.Min(1, math.Abs(v)) * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Resample picks n evenly spaced samples from ys.
func Resample(ys []float64, n int) []float64 {
	if n <= 0 || len(ys) == 0 {
		return nil
	}
	if len(ys) <= n {
		return append([]float64(nil), ys...)
	}
	out := make([]float64, n)
	step := float64(len(ys)-1) / float64(n-1)
	for i := range out {
		out[i] = ys[int(math.Round(float64(i)*step))]
	}
	return out
}
