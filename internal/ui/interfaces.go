package ui

import (
	"github.com/Cyclone1070/portfolio/internal/clipboard"
	"github.com/Cyclone1070/portfolio/internal/content"
	"github.com/Cyclone1070/portfolio/internal/interaction"
	"github.com/Cyclone1070/portfolio/internal/ui/services"
	"go.uber.org/zap"
)

// Tracker receives the page's analytics events. *analytics.Tracker
// satisfies it.
type Tracker interface {
	interaction.Analytics

	TrackPageView(title, location, path string)
	TrackLinkClick(name, url string, external bool)
	TrackProjectInteraction(project, action, url string)
	TrackProfileInteraction(kind string)
}

type nopTracker struct{}

func (nopTracker) TrackCopy(string, bool, int)                    {}
func (nopTracker) TrackKeyboardShortcut(string, string)           {}
func (nopTracker) TrackContextMenu(string)                        {}
func (nopTracker) TrackPageView(string, string, string)           {}
func (nopTracker) TrackLinkClick(string, string, bool)            {}
func (nopTracker) TrackProjectInteraction(string, string, string) {}
func (nopTracker) TrackProfileInteraction(string)                 {}

// Services holds the collaborators of one UI session. Every field is
// optional.
type Services struct {
	Renderer  services.MarkdownRenderer
	Clipboard clipboard.Writer
	Tracker   Tracker
	// Updates delivers reloaded content.
	Updates <-chan *content.Site
	Logger  *zap.Logger
}
