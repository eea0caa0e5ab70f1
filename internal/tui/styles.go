package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffcc66"))

	selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff00ff"))

	label  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	value  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	subtle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	on     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	off    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))

	barHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	barMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	barLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

func toggle(b bool) string {
	if b {
		return on.Render("on")
	}
	return off.Render("off")
}

// bar renders a filled ratio of width cells.
func bar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	filled = max(0, min(width, filled))
	s := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case ratio > 0.66:
		return barHigh.Render(s)
	case ratio > 0.33:
		return barMid.Render(s)
	}
	return barLow.Render(s)
}

// sparkline draws one glyph per value scaled to the largest.
func sparkline(values []int) string {
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	top := 0
	for _, v := range values {
		top = max(top, v)
	}
	if top == 0 {
		return strings.Repeat(string(chars[0]), len(values))
	}
	var sb strings.Builder
	for _, v := range values {
		sb.WriteRune(chars[v*(len(chars)-1)/top])
	}
	return value.Render(sb.String())
}
