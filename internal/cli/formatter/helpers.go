package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	return renderBox(title, content, ColorDim)
}

// RenderAlert is RenderBox with a red border, for blocking notices.
func RenderAlert(title string, content string) string {
	return renderBox(title, content, ColorRed)
}

func renderBox(title, content string, border lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2)
	if title == "" {
		return style.Render(content)
	}
	return style.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// HumanSince renders t relative to now, e.g. "3 minutes ago".
func HumanSince(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// ShortDuration renders seconds as "1h 05m", "12m 30s" or "45s".
func ShortDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// Truncate shortens s to at most n visible runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
