package views

import (
	"strings"

	"github.com/Cyclone1070/portfolio/internal/content"
	"github.com/Cyclone1070/portfolio/internal/interaction"
	"github.com/Cyclone1070/portfolio/internal/ui/models"
	"github.com/Cyclone1070/portfolio/internal/ui/services"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Node ID prefixes. Contact and page links share LinkIDPrefix so the
// focus-links shortcut can find them.
const (
	LinkIDPrefix   = "link:"
	HeaderIDPrefix = "header:"
	CardIDPrefix   = "card:"
	BackID         = "back"
	AvatarID       = "avatar"
)

// Project interactions reported to analytics.
const (
	ActionCardClick   = "card_click"
	ActionDemoClick   = "demo_click"
	ActionGithubClick = "github_click"
)

const linkGap = 3

// pageBuilder accumulates body lines and the targets drawn on them.
type pageBuilder struct {
	width    int
	focused  string
	renderer services.MarkdownRenderer
	lines    []string
	targets  []models.Target
}

func (b *pageBuilder) add(block string) int {
	start := len(b.lines)
	b.lines = append(b.lines, strings.Split(block, "\n")...)
	return start
}

func (b *pageBuilder) blank() {
	b.lines = append(b.lines, "")
}

func (b *pageBuilder) style(id string, base lipgloss.Style) lipgloss.Style {
	if id == b.focused {
		return FocusedStyle
	}
	return base
}

func (b *pageBuilder) markdown(md string) {
	plain := lipgloss.NewStyle().Width(b.width)
	if b.renderer == nil {
		b.add(plain.Render(md))
		return
	}
	rendered, err := services.RenderMarkdown(md, b.width, b.renderer)
	if err != nil {
		rendered = plain.Render(md)
	}
	b.add(rendered)
}

type rowItem struct {
	node   *interaction.Node
	kind   models.TargetKind
	label  string
	style  lipgloss.Style
	action string
}

// row lays items out left to right, wrapping when the line is full.
func (b *pageBuilder) row(items []rowItem) {
	var cur strings.Builder
	curW := 0
	for _, it := range items {
		w := ansi.StringWidth(it.label)
		if curW > 0 && curW+linkGap+w > b.width {
			b.lines = append(b.lines, cur.String())
			cur.Reset()
			curW = 0
		}
		if curW > 0 {
			cur.WriteString(strings.Repeat(" ", linkGap))
			curW += linkGap
		}
		b.targets = append(b.targets, models.Target{
			Node:   it.node,
			Kind:   it.kind,
			Name:   it.node.Label,
			URL:    it.node.Href,
			Action: it.action,
			Line:   len(b.lines),
			Col:    curW,
			Width:  w,
			Height: 1,
		})
		cur.WriteString(linkText(b.style(it.node.ID, it.style).Render(it.label), it.node.Href))
		curW += w
	}
	if curW > 0 {
		b.lines = append(b.lines, cur.String())
	}
}

func (b *pageBuilder) layout(root *interaction.Node) models.Layout {
	return models.Layout{Lines: b.lines, Targets: b.targets, Root: root}
}

// linkText makes external and mail links clickable in terminals that
// support OSC 8.
func linkText(label, url string) string {
	if strings.HasPrefix(url, "http") || strings.HasPrefix(url, "mailto:") {
		return Hyperlink(label, url)
	}
	return label
}

// wrap renders text wrapped to width and returns its lines.
func wrap(style lipgloss.Style, text string, width int) []string {
	return strings.Split(style.Width(width).Render(text), "\n")
}

// Initials returns up to two initials of name.
func Initials(name string) string {
	var out []rune
	for _, f := range strings.Fields(name) {
		out = append(out, []rune(f)[0])
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

// BuildHome lays out the profile page: profile, contact links and project
// cards.
func BuildHome(site *content.Site, width int, focused string, renderer services.MarkdownRenderer) models.Layout {
	b := &pageBuilder{width: width, focused: focused, renderer: renderer}
	root := interaction.NewNode("page:"+models.HomeRoute, interaction.RoleGeneric)
	profile := interaction.NewNode("profile", interaction.RoleGeneric)
	root.Append(profile)

	avatar := interaction.NewNode(AvatarID, interaction.RoleGeneric).WithLabel(site.Profile.Name)
	profile.Append(avatar)
	avatarLabel := "(" + Initials(site.Profile.Name) + ")"
	line := b.add(AvatarStyle.Render(avatarLabel) + "  " + NameStyle.Render(site.Profile.Name))
	b.targets = append(b.targets, models.Target{
		Node: avatar, Kind: models.TargetAvatar, Name: site.Profile.Name,
		Line: line, Width: ansi.StringWidth(avatarLabel), Height: 1,
	})

	if site.Profile.Title != "" {
		b.add(TitleStyle.Render(site.Profile.Title))
	}
	if site.Status.Enabled && site.Status.Text != "" {
		b.add(StatusStyle(site.Status.Color).Render("● " + site.Status.Text))
	}
	if site.Profile.Location != "" {
		b.add(MutedStyle.Render("⌖ " + site.Profile.Location))
	}
	b.blank()

	if site.Profile.Bio != "" {
		b.markdown(site.Profile.Bio)
		b.blank()
	}

	links := interaction.NewNode("links", interaction.RoleGeneric)
	profile.Append(links)
	b.row(linkItems(links, LinkIDPrefix, site.Links, false))
	b.blank()

	b.add(SeparatorStyle.Render(strings.Repeat("─", width)))
	b.blank()
	b.add(SectionHeadingStyle.Render("Featured Work"))
	b.blank()

	projects := interaction.NewNode("projects", interaction.RoleGeneric)
	root.Append(projects)
	for _, p := range site.Projects {
		b.card(projects, p)
		b.blank()
	}

	return b.layout(root)
}

func linkItems(parent *interaction.Node, prefix string, links []content.Link, iconOnly bool) []rowItem {
	items := make([]rowItem, 0, len(links))
	for _, l := range links {
		node := interaction.NewNode(prefix+l.Name, interaction.RoleLink).WithHref(l.URL).WithLabel(l.Name)
		parent.Append(node)
		label := Icon(l.Icon)
		if !iconOnly {
			label += " " + l.Name
		}
		items = append(items, rowItem{node: node, kind: models.TargetLink, label: label, style: LinkStyle})
	}
	return items
}

func (b *pageBuilder) card(parent *interaction.Node, p content.Project) {
	cardID := CardIDPrefix + p.Slug()
	card := interaction.NewNode(cardID, interaction.RoleLink).WithHref(p.PrimaryURL()).WithLabel(p.Name)
	parent.Append(card)

	inner := max(b.width-4, 1)
	lines := []string{NameStyle.Render(p.Name)}
	if p.Description != "" {
		lines = append(lines, wrap(MutedStyle, p.Description, inner)...)
	}
	if len(p.TechStack) > 0 {
		lines = append(lines, wrap(TechStyle, strings.Join(p.TechStack, " · "), inner)...)
	}

	type cardLink struct {
		node   *interaction.Node
		label  string
		action string
		col    int
	}
	var links []cardLink
	var row strings.Builder
	col := 0
	addLink := func(suffix, label, url, action string, style lipgloss.Style) {
		if url == "" {
			return
		}
		node := interaction.NewNode(cardID+":"+suffix, interaction.RoleLink).WithHref(url).WithLabel(p.Name)
		card.Append(node)
		if col > 0 {
			row.WriteString(strings.Repeat(" ", linkGap))
			col += linkGap
		}
		links = append(links, cardLink{node: node, label: label, action: action, col: col})
		row.WriteString(linkText(b.style(node.ID, style).Render(label), url))
		col += ansi.StringWidth(label)
	}
	addLink("demo", Icon(content.IconExternalLink)+" Demo", p.DemoURL, ActionDemoClick, AccentStyle)
	addLink("github", Icon(content.IconGithub)+" GitHub", p.GithubURL, ActionGithubClick, LinkStyle)

	linkLine := -1
	if len(links) > 0 {
		lines = append(lines, "")
		linkLine = len(lines)
		lines = append(lines, row.String())
	}

	style := CardStyle
	if b.focused == cardID {
		style = FocusedCardStyle
	}
	box := style.Width(b.width - 2).Render(strings.Join(lines, "\n"))
	top := b.add(box)

	b.targets = append(b.targets, models.Target{
		Node: card, Kind: models.TargetProjectCard, Name: p.Name, URL: p.PrimaryURL(), Action: ActionCardClick,
		Line: top, Width: b.width, Height: lipgloss.Height(box),
	})
	for _, l := range links {
		b.targets = append(b.targets, models.Target{
			Node: l.node, Kind: models.TargetProjectLink, Name: p.Name, URL: l.node.Href, Action: l.action,
			// border and padding put the first content cell at (1, 2)
			Line: top + 1 + linkLine, Col: 2 + l.col, Width: ansi.StringWidth(l.label), Height: 1,
		})
	}
}

// BuildProjectPage lays out a project placeholder page.
func BuildProjectPage(page content.Page, width int, focused string, renderer services.MarkdownRenderer) models.Layout {
	b := &pageBuilder{width: width, focused: focused, renderer: renderer}
	root := interaction.NewNode("page:"+page.Path, interaction.RoleGeneric)

	back := interaction.NewNode(BackID, interaction.RoleLink).WithHref(models.HomeRoute).WithLabel("Back to portfolio")
	root.Append(back)
	label := "← Back to portfolio"
	line := b.add(b.style(BackID, LinkStyle).Render(label))
	b.targets = append(b.targets, models.Target{
		Node: back, Kind: models.TargetBack, Name: back.Label, URL: models.HomeRoute,
		Line: line, Width: ansi.StringWidth(label), Height: 1,
	})
	b.blank()

	b.add(NameStyle.Render(page.Title))
	if page.Description != "" {
		b.add(strings.Join(wrap(MutedStyle, page.Description, width), "\n"))
	}
	b.blank()

	if page.Body != "" {
		b.markdown(page.Body)
		b.blank()
	}

	if len(page.Links) > 0 {
		links := interaction.NewNode("page-links", interaction.RoleGeneric)
		root.Append(links)
		b.row(linkItems(links, LinkIDPrefix, page.Links, false))
	}

	return b.layout(root)
}

// headerLinkNames are the links shown as icons in the floating header.
var headerLinkNames = map[string]bool{"Email": true, "LinkedIn": true, "GitHub": true, "Resume": true}

// BuildHeader lays out the floating header: name and title on the left,
// icon links on the right. Targets use line 0.
func BuildHeader(site *content.Site, width int, focused string) (string, []models.Target, *interaction.Node) {
	node := interaction.NewNode("header", interaction.RoleGeneric)

	var shown []content.Link
	for _, l := range site.Links {
		if headerLinkNames[l.Name] {
			shown = append(shown, l)
		}
	}
	b := &pageBuilder{width: width, focused: focused}
	b.row(linkItems(node, HeaderIDPrefix+LinkIDPrefix, shown, true))
	right := ""
	if len(b.lines) > 0 {
		right = b.lines[0]
	}
	rightW := ansi.StringWidth(right)

	left := NameStyle.Render(site.Profile.Name)
	if withTitle := left + MutedStyle.Render(" · "+site.Profile.Title); site.Profile.Title != "" &&
		ansi.StringWidth(withTitle)+rightW+2 <= width {
		left = withTitle
	}
	gap := max(width-ansi.StringWidth(left)-rightW, 1)
	offset := ansi.StringWidth(left) + gap

	var targets []models.Target
	for _, t := range b.targets {
		if t.Line != 0 {
			// icons that overflow the single header line are dropped
			t.Node.Remove()
			continue
		}
		t.Col += offset
		targets = append(targets, t)
	}
	return left + strings.Repeat(" ", gap) + right, targets, node
}
