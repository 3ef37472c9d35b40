package interaction

import (
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a zero-argument operation bound by the hosting page. A nil
// Action is an unbound slot.
type Action func() tea.Cmd

// Run invokes the action. Unbound actions do nothing.
func (a Action) Run() tea.Cmd {
	if a == nil {
		return nil
	}
	return a()
}

// ActionSet is the page's current set of operations.
type ActionSet struct {
	CopyEmail        Action
	CopyURL          Action
	CopyLinkedIn     Action
	FocusFirstLink   Action
	CloseContextMenu Action
}

// ForContext returns the operation behind a context menu action.
func (s ActionSet) ForContext(action ContextAction) Action {
	switch action {
	case ActionEmail:
		return s.CopyEmail
	case ActionURL:
		return s.CopyURL
	case ActionLinkedIn:
		return s.CopyLinkedIn
	}
	return nil
}

// ActionCell holds the latest ActionSet. Dispatch always reads through the
// cell, so rebinding takes effect on the next key.
type ActionCell struct {
	p atomic.Pointer[ActionSet]
}

func (c *ActionCell) Store(set ActionSet) {
	c.p.Store(&set)
}

// Load returns the bound set, or an empty set before the first Store.
func (c *ActionCell) Load() ActionSet {
	if s := c.p.Load(); s != nil {
		return *s
	}
	return ActionSet{}
}

// KeyMap holds the chords the router and menu respond to.
type KeyMap struct {
	CopyEmail  key.Binding
	FocusLinks key.Binding
	Close      key.Binding
	Next       key.Binding
	Prev       key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
}

// DefaultKeyMap maps Mod to ctrl or alt, since terminals do not forward the
// command key.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		CopyEmail: key.NewBinding(
			key.WithKeys("ctrl+s", "alt+s"),
			key.WithHelp("ctrl+s", "copy email"),
		),
		FocusLinks: key.NewBinding(
			key.WithKeys("ctrl+k", "alt+k"),
			key.WithHelp("ctrl+k", "jump to links"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close menu"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CopyEmail, k.FocusLinks}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CopyEmail, k.FocusLinks, k.Close},
		{k.Next, k.Prev, k.Select},
	}
}

// Shortcut names reported to analytics.
const (
	ShortcutCopyEmail  = "cmd+s"
	ShortcutFocusLinks = "cmd+k"
	ShortcutActionCopy = "copy_email"
	ShortcutActionLink = "focus_links"
)

// Router is the page-wide key handler. It is registered once and resolves
// actions through its cell on every dispatch.
type Router struct {
	keys      KeyMap
	actions   *ActionCell
	analytics Analytics
	enabled   bool
}

func NewRouter(keys KeyMap, actions *ActionCell, analytics Analytics, enabled bool) *Router {
	if analytics == nil {
		analytics = nopAnalytics{}
	}
	return &Router{keys: keys, actions: actions, analytics: analytics, enabled: enabled}
}

// HandleKey dispatches a recognized chord and reports whether it was
// consumed. Chords are checked in priority order: copy email, focus links,
// close menu.
func (r *Router) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !r.enabled {
		return nil, false
	}

	set := r.actions.Load()
	switch {
	case key.Matches(msg, r.keys.CopyEmail):
		cmd := set.CopyEmail.Run()
		r.analytics.TrackKeyboardShortcut(ShortcutCopyEmail, ShortcutActionCopy)
		return cmd, true

	case key.Matches(msg, r.keys.FocusLinks):
		cmd := set.FocusFirstLink.Run()
		r.analytics.TrackKeyboardShortcut(ShortcutFocusLinks, ShortcutActionLink)
		return cmd, true

	case key.Matches(msg, r.keys.Close):
		return set.CloseContextMenu.Run(), true
	}
	return nil, false
}
