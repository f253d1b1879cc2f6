package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/alexanderramin/focuspro/internal/tracker"
	"github.com/charmbracelet/lipgloss"
)

// Palette. Brand is the DDS green used for the timer face.
var (
	ColorBrand  = lipgloss.Color("#006039")
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)

	StyleTimer = lipgloss.NewStyle().Foreground(ColorFg).Background(ColorBrand).Bold(true).Padding(0, 2)
)

// StatePill renders the session state label, e.g. "● WORK".
func StatePill(state domain.State, mode domain.Mode, label string) string {
	text := "● " + strings.ToUpper(label)
	switch {
	case state == domain.StatePaused:
		return StyleYellow.Render(text)
	case state == domain.StateIdle:
		return StyleDim.Render(text)
	case state == domain.StateBreak:
		return StyleBlue.Render(text)
	case mode == domain.ModeMeeting:
		return StylePurple.Render(text)
	default:
		return StyleGreen.Render(text)
	}
}

// Toast renders a one-line notification.
func Toast(level tracker.NoticeLevel, msg string) string {
	switch level {
	case tracker.NoticeSuccess:
		return StyleGreen.Render("✔ " + msg)
	case tracker.NoticeWarning:
		return StyleYellow.Render("! " + msg)
	case tracker.NoticeError:
		return StyleRed.Render("✖ " + msg)
	default:
		return StyleBlue.Render("• " + msg)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
