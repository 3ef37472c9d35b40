// Package interaction coordinates transient UI state: toasts, the context
// menu with its focus trap and outside-click dismissal, the page-wide
// shortcut router and the scroll observer. Everything here runs on the
// bubbletea Update loop; only clipboard writes leave it.
package interaction

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Cyclone1070/portfolio/internal/clipboard"
	"github.com/Cyclone1070/portfolio/internal/config"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	DefaultCopyMessage = "Copied to clipboard!"
	CopyFailedMessage  = "Failed to copy"
	// failedCopyType is reported when a copy fails, whatever its message.
	failedCopyType = "clipboard"

	clipboardTimeout = 2 * time.Second
)

// DocumentRootID identifies the coordinator's document root.
const DocumentRootID = "document"

// Analytics is the subset of the tracker the coordinator reports to.
type Analytics interface {
	TrackCopy(copyType string, success bool, contentLength int)
	TrackKeyboardShortcut(shortcut, action string)
	TrackContextMenu(action string)
}

type nopAnalytics struct{}

func (nopAnalytics) TrackCopy(string, bool, int)           {}
func (nopAnalytics) TrackKeyboardShortcut(string, string) {}
func (nopAnalytics) TrackContextMenu(string)              {}

// CopyResultMsg carries the outcome of a clipboard write back to the loop.
type CopyResultMsg struct {
	Text    string
	Message string
	Err     error
}

// ClickEvent is a primary-button click resolved to its target node. Seq
// orders input events; see Coordinator.NextSeq.
type ClickEvent struct {
	Seq    uint64
	Target *Node
}

// clickListener dismisses the menu on clicks outside its region. It ignores
// events at or before armedAt, so the gesture that opened the menu can
// never close it.
type clickListener struct {
	region  *Node
	armedAt uint64
}

func (l *clickListener) outside(ev ClickEvent) bool {
	if ev.Seq <= l.armedAt {
		return false
	}
	return !l.region.Contains(ev.Target)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTickFunc replaces tea.Tick for toast and frame timers.
func WithTickFunc(tick TickFunc) Option {
	return func(c *Coordinator) {
		c.toasts.tick = tick
		c.scroll.tick = tick
	}
}

// WithIDFunc replaces the toast ID generator.
func WithIDFunc(newID func() string) Option {
	return func(c *Coordinator) {
		c.toasts.newID = newID
	}
}

// WithKeyMap replaces the default chords.
func WithKeyMap(keys KeyMap) Option {
	return func(c *Coordinator) {
		c.keys = keys
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Coordinator owns the transient interaction state of one page session.
type Coordinator struct {
	features config.FeaturesConfig
	keys     KeyMap

	document *Node
	ring     *FocusRing
	trap     *FocusTrap
	menu     *Menu
	toasts   *Toasts
	scroll   *ScrollObserver
	actions  *ActionCell
	router   *Router

	listener     *clickListener
	restoreFocus *Node
	seq          uint64

	clip      clipboard.Writer
	analytics Analytics
	logger    *zap.Logger
}

// NewCoordinator wires the interaction components. clip may be nil, in which
// case every copy fails; analytics may be nil.
func NewCoordinator(cfg *config.Config, clip clipboard.Writer, analytics Analytics, opts ...Option) *Coordinator {
	if analytics == nil {
		analytics = nopAnalytics{}
	}
	if clip == nil {
		clip = clipboard.WriterFunc(func(context.Context, string) error {
			return clipboard.ErrUnavailable
		})
	}
	document := NewNode(DocumentRootID, RoleGeneric)
	ring := NewFocusRing(document)

	c := &Coordinator{
		features:  cfg.Features,
		keys:      DefaultKeyMap(),
		document:  document,
		ring:      ring,
		trap:      NewFocusTrap(ring),
		menu:      NewMenu(),
		toasts:    NewToasts(time.Duration(cfg.UI.ToastDurationMs)*time.Millisecond, cfg.UI.MaxToasts),
		scroll:    NewScrollObserver(cfg.UI.ScrollThreshold, time.Duration(cfg.UI.FrameIntervalMs)*time.Millisecond),
		actions:   &ActionCell{},
		clip:      clip,
		analytics: analytics,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("interaction")
	c.router = NewRouter(c.keys, c.actions, c.analytics, c.features.KeyboardShortcuts)
	return c
}

// Bind replaces the current action set.
func (c *Coordinator) Bind(set ActionSet) {
	c.actions.Store(set)
}

// Actions returns the currently bound set.
func (c *Coordinator) Actions() ActionSet {
	return c.actions.Load()
}

// Document is the root every rendered node hangs from.
func (c *Coordinator) Document() *Node { return c.document }

// Mount replaces the page content under the document root. An open menu
// stays mounted. Focus, and the focus saved by an open menu, move to the
// node with the same ID in the new page.
func (c *Coordinator) Mount(page *Node) {
	focused := c.ring.Focused()
	for _, child := range c.document.Children() {
		if child != c.menu.Region() {
			child.Remove()
		}
	}
	if page == nil {
		return
	}
	c.document.Append(page)
	if c.menu.IsOpen() {
		// keep the menu last in document order
		c.document.Append(c.menu.Region())
	}

	if focused != nil && !c.document.Contains(focused) {
		c.ring.Focus(page.Find(focused.ID))
	}
	if c.restoreFocus != nil && !c.document.Contains(c.restoreFocus) {
		c.restoreFocus = page.Find(c.restoreFocus.ID)
	}
}

func (c *Coordinator) Focus() *FocusRing { return c.ring }
func (c *Coordinator) Menu() *Menu       { return c.menu }
func (c *Coordinator) Toasts() *Toasts   { return c.toasts }
func (c *Coordinator) Keys() KeyMap      { return c.keys }

// Scroll returns the latest applied scroll state.
func (c *Coordinator) Scroll() ScrollState { return c.scroll.State() }

// TrapAttached reports whether focus is confined to the menu.
func (c *Coordinator) TrapAttached() bool { return c.trap.Attached() }

// ListenerAttached reports whether the outside-click listener is live.
func (c *Coordinator) ListenerAttached() bool { return c.listener != nil }

// NextSeq stamps a new input event. Callers stamp every mouse event before
// handing it to OpenMenu or HandleClick.
func (c *Coordinator) NextSeq() uint64 {
	c.seq++
	return c.seq
}

// OpenMenu opens the context menu at pos in response to the current input
// event, or moves it there if already open. It does nothing when the
// context menu feature is off.
func (c *Coordinator) OpenMenu(pos Position) bool {
	if !c.features.ContextMenu {
		return false
	}

	if !c.menu.IsOpen() {
		c.restoreFocus = c.ring.Focused()
		c.document.Append(c.menu.Region())
		c.trap.Attach(c.menu.Region())
		c.ring.Focus(c.menu.ItemNode(MenuItems[0].Action))
	}
	c.menu.Open(pos)
	c.listener = &clickListener{region: c.menu.Region(), armedAt: c.seq}

	c.analytics.TrackContextMenu("")
	return true
}

// CloseMenu closes the menu, detaching the focus trap and the outside-click
// listener in the same step. Closing a closed menu is a no-op.
func (c *Coordinator) CloseMenu() bool {
	if !c.menu.Close() {
		return false
	}
	c.trap.Detach()
	c.listener = nil
	c.menu.Region().Remove()

	if !c.ring.Focus(c.restoreFocus) {
		c.ring.Blur()
	}
	c.restoreFocus = nil
	return true
}

// SelectAction runs a menu action, reports it, and closes the menu. The menu
// closes even when the action is unbound or panics.
func (c *Coordinator) SelectAction(action ContextAction) tea.Cmd {
	defer c.CloseMenu()

	cmd := c.actions.Load().ForContext(action).Run()
	c.analytics.TrackContextMenu(string(action))
	return cmd
}

// HandleClick routes a primary click. A click on a menu item selects it; a
// click elsewhere inside the menu is swallowed; a click outside closes the
// menu and is left for the page to handle.
func (c *Coordinator) HandleClick(ev ClickEvent) (tea.Cmd, bool) {
	if c.listener == nil {
		return nil, false
	}
	if c.listener.outside(ev) {
		c.CloseMenu()
		return nil, false
	}
	if !c.menu.Region().Contains(ev.Target) {
		return nil, false
	}
	if action, ok := c.menu.ActionFor(ev.Target); ok {
		return c.SelectAction(action), true
	}
	return nil, true
}

// HandleKey handles keys for the open menu first, then page-wide chords.
// Unconsumed keys are left to the page.
func (c *Coordinator) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if c.menu.IsOpen() {
		switch {
		case key.Matches(msg, c.keys.Close):
			c.CloseMenu()
			return nil, true
		case key.Matches(msg, c.keys.Next), key.Matches(msg, c.keys.Down):
			if c.trap.Forward() {
				return nil, true
			}
		case key.Matches(msg, c.keys.Prev), key.Matches(msg, c.keys.Up):
			if c.trap.Backward() {
				return nil, true
			}
		case key.Matches(msg, c.keys.Select):
			if action, ok := c.menu.ActionFor(c.ring.Focused()); ok {
				return c.SelectAction(action), true
			}
		}
	}
	return c.router.HandleKey(msg)
}

// CopyToClipboard returns a command that writes text off the UI thread. The
// result comes back as a CopyResultMsg for Update.
func (c *Coordinator) CopyToClipboard(text, message string) tea.Cmd {
	if message == "" {
		message = DefaultCopyMessage
	}
	clip := c.clip
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
		defer cancel()
		return CopyResultMsg{Text: text, Message: message, Err: clip.WriteText(ctx, text)}
	}
}

// ShowToast queues a notification.
func (c *Coordinator) ShowToast(message string) (string, tea.Cmd) {
	return c.toasts.Show(message)
}

// RemoveToast dismisses a notification. Unknown IDs are ignored.
func (c *Coordinator) RemoveToast(id string) bool {
	return c.toasts.Remove(id)
}

// ObserveScroll feeds a scroll offset to the observer.
func (c *Coordinator) ObserveScroll(offset int) tea.Cmd {
	return c.scroll.Observe(offset)
}

// SyncScroll applies an offset without waiting for a frame.
func (c *Coordinator) SyncScroll(offset int) bool {
	return c.scroll.Sync(offset)
}

// Update handles the coordinator's own messages and ignores everything else.
func (c *Coordinator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case CopyResultMsg:
		return c.finishCopy(msg)
	case ToastExpiredMsg:
		c.toasts.Expire(msg)
	case ScrollFrameMsg:
		c.scroll.Frame()
	}
	return nil
}

func (c *Coordinator) finishCopy(msg CopyResultMsg) tea.Cmd {
	if msg.Err != nil {
		level := c.logger.Warn
		if errors.Is(msg.Err, clipboard.ErrUnavailable) {
			level = c.logger.Debug
		}
		level("copy failed", zap.Error(msg.Err))

		_, cmd := c.toasts.Show(CopyFailedMessage)
		c.analytics.TrackCopy(failedCopyType, false, 0)
		return cmd
	}

	_, cmd := c.toasts.Show(msg.Message)
	c.analytics.TrackCopy(copyType(msg.Message), true, len(msg.Text))
	return cmd
}

// copyType is the lowercased first word of a copy confirmation.
func copyType(message string) string {
	fields := strings.Fields(message)
	if len(fields) == 0 {
		return failedCopyType
	}
	return strings.ToLower(fields[0])
}
