package views

import (
	"strings"

	"github.com/Cyclone1070/portfolio/internal/interaction"
	"github.com/Cyclone1070/portfolio/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderMenu renders the context menu box, highlighting the focused item.
func RenderMenu(s models.State) string {
	if !s.Menu.Open {
		return ""
	}

	lines := make([]string, 0, len(interaction.MenuItems))
	for _, item := range interaction.MenuItems {
		if item.Action == s.Menu.Focused {
			lines = append(lines, MenuItemFocusedStyle.Render("▸ "+item.Label))
		} else {
			lines = append(lines, MenuItemStyle.Render("  "+item.Label))
		}
	}
	return MenuBoxStyle.Render(strings.Join(lines, "\n"))
}

// MenuRect places the menu at its open position, shifted left and up so it
// stays on screen.
func MenuRect(s models.State) models.Rect {
	box := RenderMenu(s)
	if box == "" {
		return models.Rect{}
	}
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	return models.Rect{
		X: max(min(s.Menu.Position.X, s.Width-w), 0),
		Y: max(min(s.Menu.Position.Y, s.Height-h), 0),
		W: w,
		H: h,
	}
}

// MenuItemAt maps a screen cell inside the menu to its item. The border
// row and column are not part of any item.
func MenuItemAt(s models.State, x, y int) (interaction.ContextAction, bool) {
	r := MenuRect(s)
	if !r.Contains(x, y) || x == r.X || x == r.X+r.W-1 {
		return "", false
	}
	row := y - r.Y - 1
	if row < 0 || row >= len(interaction.MenuItems) {
		return "", false
	}
	return interaction.MenuItems[row].Action, true
}
