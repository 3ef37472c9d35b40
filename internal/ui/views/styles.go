package views

import (
	"github.com/Cyclone1070/portfolio/internal/content"
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"}
)

var (
	NameStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	TitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	SectionHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	SeparatorStyle      = lipgloss.NewStyle().Foreground(ColorBorder)

	LinkStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle  = lipgloss.NewStyle().Foreground(ColorPrimary)
	FocusedStyle = lipgloss.NewStyle().Reverse(true).Bold(true)

	AvatarStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TechStyle   = lipgloss.NewStyle().Foreground(ColorPrimary).Faint(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
	FocusedCardStyle = CardStyle.BorderForeground(ColorPrimary)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(lipgloss.AdaptiveColor{Light: "#F9FAFB", Dark: "#111827"})

	MenuBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
	MenuItemStyle        = lipgloss.NewStyle().Foreground(ColorText)
	MenuItemFocusedStyle = lipgloss.NewStyle().Reverse(true)

	FooterStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Foreground(ColorText).
			Padding(0, 1)
)

var statusColors = map[content.StatusColor]lipgloss.Color{
	content.StatusGreen:  lipgloss.Color("#22C55E"),
	content.StatusOrange: lipgloss.Color("#F97316"),
	content.StatusYellow: lipgloss.Color("#EAB308"),
	content.StatusRed:    lipgloss.Color("#EF4444"),
	content.StatusBlue:   lipgloss.Color("#3B82F6"),
	content.StatusPurple: lipgloss.Color("#A855F7"),
}

// StatusStyle colors the availability badge.
func StatusStyle(c content.StatusColor) lipgloss.Style {
	color, ok := statusColors[c]
	if !ok {
		color = statusColors[content.StatusGreen]
	}
	return lipgloss.NewStyle().Foreground(color)
}

var icons = map[content.IconName]string{
	content.IconMail:         "✉",
	content.IconLinkedin:     "in",
	content.IconGithub:       "gh",
	content.IconFileText:     "≡",
	content.IconExternalLink: "↗",
}

// Icon returns the glyph for a link icon.
func Icon(name content.IconName) string {
	if g, ok := icons[name]; ok {
		return g
	}
	return icons[content.IconExternalLink]
}
