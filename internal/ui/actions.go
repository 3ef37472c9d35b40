package ui

import (
	"strings"

	"github.com/Cyclone1070/portfolio/internal/content"
	"github.com/Cyclone1070/portfolio/internal/interaction"
	"github.com/Cyclone1070/portfolio/internal/ui/models"
	"github.com/Cyclone1070/portfolio/internal/ui/views"
	tea "github.com/charmbracelet/bubbletea"
)

// Copy confirmations. The first word becomes the copy type in analytics.
const (
	EmailCopiedMessage    = "Email copied!"
	URLCopiedMessage      = "URL copied!"
	LinkedInCopiedMessage = "LinkedIn copied!"
	LinkCopiedMessage     = "Link copied!"
)

// ProfilePhotoClick is the profile interaction reported for the avatar.
const ProfilePhotoClick = "photo_click"

// bindActions publishes the action set for the current site and route. It
// runs on startup, on navigation and on content reload, so the router
// always sees the latest closures.
func (m *BubbleTeaModel) bindActions() {
	site, route, coord := m.state.Site, m.state.Route, m.coord

	m.coord.Bind(interaction.ActionSet{
		CopyEmail: func() tea.Cmd {
			email, ok := site.Email()
			if !ok {
				return nil
			}
			return coord.CopyToClipboard(email, EmailCopiedMessage)
		},
		CopyURL: func() tea.Cmd {
			return coord.CopyToClipboard(absoluteURL(site, route), URLCopiedMessage)
		},
		CopyLinkedIn: func() tea.Cmd {
			l, ok := site.Link(content.LinkLinkedIn)
			if !ok {
				return nil
			}
			return coord.CopyToClipboard(l.URL, LinkedInCopiedMessage)
		},
		FocusFirstLink: func() tea.Cmd {
			focusFirstLink(coord)
			return nil
		},
		CloseContextMenu: func() tea.Cmd {
			coord.CloseMenu()
			return nil
		},
	})
}

// focusFirstLink focuses the first contact or page link in document order.
func focusFirstLink(coord *interaction.Coordinator) bool {
	for _, n := range coord.Document().Focusables() {
		if strings.HasPrefix(n.ID, views.LinkIDPrefix) {
			return coord.Focus().Focus(n)
		}
	}
	return false
}

// absoluteURL resolves a site path against the configured site URL.
func absoluteURL(site *content.Site, path string) string {
	return strings.TrimRight(site.Metadata.SiteURL, "/") + path
}

// activate performs a target's action: navigate, copy, or report.
func (m *BubbleTeaModel) activate(t models.Target) tea.Cmd {
	switch t.Kind {
	case models.TargetAvatar:
		m.tracker.TrackProfileInteraction(ProfilePhotoClick)
		return nil
	case models.TargetBack:
		return m.navigate(models.HomeRoute)
	case models.TargetProjectCard, models.TargetProjectLink:
		m.tracker.TrackProjectInteraction(t.Name, t.Action, t.URL)
		return m.follow(t.URL)
	default:
		m.tracker.TrackLinkClick(t.Name, t.URL, isExternal(t.URL))
		return m.follow(t.URL)
	}
}

// follow opens url: site pages are navigated to; anything a terminal cannot
// open is copied instead.
func (m *BubbleTeaModel) follow(url string) tea.Cmd {
	switch {
	case url == models.HomeRoute:
		return m.navigate(url)
	case content.IsInternal(url):
		if _, ok := m.state.Site.Page(url); ok {
			return m.navigate(url)
		}
		return m.coord.CopyToClipboard(absoluteURL(m.state.Site, url), LinkCopiedMessage)
	case strings.HasPrefix(url, "mailto:"):
		return m.coord.CopyToClipboard(strings.TrimPrefix(url, "mailto:"), EmailCopiedMessage)
	case url == "":
		return nil
	default:
		return m.coord.CopyToClipboard(url, LinkCopiedMessage)
	}
}

func isExternal(url string) bool {
	return strings.HasPrefix(url, "http")
}

// navigate shows route from the top with nothing focused.
func (m *BubbleTeaModel) navigate(route string) tea.Cmd {
	m.state.Route = route
	m.state.Viewport.GotoTop()
	m.coord.CloseMenu()
	m.coord.SyncScroll(0)
	m.coord.Focus().Blur()
	m.bindActions()
	m.relayout()
	m.trackPageView()
	return nil
}

func (m *BubbleTeaModel) trackPageView() {
	site, route := m.state.Site, m.state.Route
	title := site.Metadata.Title
	if page, ok := site.Page(route); ok {
		title = page.Title
	}
	m.tracker.TrackPageView(title, absoluteURL(site, route), route)
}
