package views

import (
	"github.com/Cyclone1070/portfolio/internal/ui/models"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderFooter renders the key help line.
func RenderFooter(s models.State, keys help.KeyMap) string {
	h := s.Help
	h.ShowAll = s.ShowFullHelp
	h.Width = s.Width
	return FooterStyle.Render(h.View(keys))
}

// ToastRects stacks the toasts upwards from the bottom-right corner, above
// a footer of footerHeight rows. The newest toast is lowest. Rects are
// returned in toast order.
func ToastRects(s models.State, footerHeight int) []models.Rect {
	rects := make([]models.Rect, len(s.Toasts))
	bottom := s.Height - footerHeight
	for i := len(s.Toasts) - 1; i >= 0; i-- {
		box := ToastStyle.Render(s.Toasts[i].Message)
		w, h := lipgloss.Width(box), lipgloss.Height(box)
		bottom -= h
		rects[i] = models.Rect{X: max(s.Width-w-1, 0), Y: bottom, W: w, H: h}
	}
	return rects
}

// ToastAt returns the ID of the toast drawn at (x, y).
func ToastAt(s models.State, footerHeight, x, y int) (string, bool) {
	for i, r := range ToastRects(s, footerHeight) {
		if r.Contains(x, y) {
			return s.Toasts[i].ID, true
		}
	}
	return "", false
}
