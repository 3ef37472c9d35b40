package views

import (
	"strings"

	"github.com/Cyclone1070/portfolio/internal/ui/models"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// ContentWidth is the width of the centered content column.
func ContentWidth(s models.State) int {
	w := s.Width
	if s.MaxContentWidth > 0 {
		w = min(w, s.MaxContentWidth)
	}
	return max(w, 1)
}

// ContentMargin is the left offset of the content column.
func ContentMargin(s models.State) int {
	return max((s.Width-ContentWidth(s))/2, 0)
}

// RenderHeader renders the floating header row. It is blank until the page
// scrolls past the threshold.
func RenderHeader(s models.State) string {
	if !s.HeaderVisible {
		return ""
	}
	row := strings.Repeat(" ", ContentMargin(s)) + s.Layout.Header
	return HeaderStyle.Width(s.Width).MaxHeight(1).Render(row)
}

// RenderRoot renders the complete screen: header row, page viewport and
// footer, with toasts and the context menu drawn on top.
func RenderRoot(s models.State, keys help.KeyMap) string {
	footer := RenderFooter(s, keys)
	body := lipgloss.NewStyle().PaddingLeft(ContentMargin(s)).Render(s.Viewport.View())

	screen := lipgloss.JoinVertical(lipgloss.Left, RenderHeader(s), body, footer)

	footerHeight := lipgloss.Height(footer)
	for i, r := range ToastRects(s, footerHeight) {
		screen = Overlay(screen, ToastStyle.Render(s.Toasts[i].Message), r.X, r.Y)
	}
	if s.Menu.Open {
		r := MenuRect(s)
		screen = Overlay(screen, RenderMenu(s), r.X, r.Y)
	}
	return screen
}
