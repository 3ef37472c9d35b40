package ui

import (
	"strings"

	"github.com/Cyclone1070/portfolio/internal/config"
	"github.com/Cyclone1070/portfolio/internal/content"
	"github.com/Cyclone1070/portfolio/internal/interaction"
	"github.com/Cyclone1070/portfolio/internal/ui/models"
	"github.com/Cyclone1070/portfolio/internal/ui/services"
	"github.com/Cyclone1070/portfolio/internal/ui/views"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Size used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State
	keys  KeyMap

	// Dependencies
	coord     *interaction.Coordinator
	renderer  services.MarkdownRenderer
	tracker   Tracker
	updates   <-chan *content.Site
	rowHeight int
	logger    *zap.Logger
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state, m.keys)
}

// newBubbleTeaModel creates a model showing site from the home page.
func newBubbleTeaModel(cfg *config.Config, site *content.Site, svc Services, opts ...interaction.Option) BubbleTeaModel {
	logger := svc.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tracker := svc.Tracker
	if tracker == nil {
		tracker = nopTracker{}
	}
	keys := DefaultKeyMap()

	opts = append([]interaction.Option{
		interaction.WithLogger(logger),
		interaction.WithKeyMap(keys.KeyMap),
	}, opts...)

	m := BubbleTeaModel{
		state: models.State{
			Width:           defaultWidth,
			Height:          defaultHeight,
			Site:            site,
			Route:           models.HomeRoute,
			Viewport:        viewport.New(defaultWidth, defaultHeight-2),
			Help:            help.New(),
			MaxContentWidth: cfg.UI.MaxContentWidth,
		},
		keys:      keys,
		coord:     interaction.NewCoordinator(cfg, svc.Clipboard, tracker, opts...),
		renderer:  svc.Renderer,
		tracker:   tracker,
		updates:   svc.Updates,
		rowHeight: max(cfg.UI.RowHeight, 1),
		logger:    logger.Named("ui"),
	}
	m.state.Viewport.KeyMap = keys.Scroll
	m.bindActions()
	m.relayout()
	return m
}

// Internal messages
type contentReloadedMsg struct {
	site *content.Site
}

// Init reports the landing page view and starts listening for content.
func (m BubbleTeaModel) Init() tea.Cmd {
	m.trackPageView()
	return listenForContent(m.updates)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.relayout()

	case contentReloadedMsg:
		m.state.Site = msg.site
		if _, ok := msg.site.Page(m.state.Route); !ok && m.state.Route != models.HomeRoute {
			m.state.Route = models.HomeRoute
			m.state.Viewport.GotoTop()
		}
		m.bindActions()
		m.relayout()
		m.logger.Debug("content reloaded", zap.String("route", m.state.Route))
		cmds = append(cmds, listenForContent(m.updates))

	case interaction.ScrollFrameMsg:
		before := m.coord.Scroll().PastThreshold
		m.coord.Update(msg)
		if m.coord.Scroll().PastThreshold != before {
			m.relayout()
		}

	default:
		cmds = append(cmds, m.coord.Update(msg))
	}

	if m.focusedID() != m.state.FocusedID {
		m.relayout()
		cmds = append(cmds, m.scrollToFocused())
	}
	m.syncTransient()

	return m, tea.Batch(cmds...)
}

// handleKeyPress gives the coordinator first refusal, then handles page keys.
func (m *BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if cmd, ok := m.coord.HandleKey(msg); ok {
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.coord.Focus().Next()
		return nil

	case key.Matches(msg, m.keys.Prev):
		m.coord.Focus().Prev()
		return nil

	case key.Matches(msg, m.keys.Activate):
		if t, ok := m.focusedTarget(); ok {
			return m.activate(t)
		}
		return nil

	case key.Matches(msg, m.keys.Back):
		if m.state.Route != models.HomeRoute {
			return m.navigate(models.HomeRoute)
		}
		return nil

	case key.Matches(msg, m.keys.Help):
		m.state.ShowFullHelp = !m.state.ShowFullHelp
		m.relayout()
		return nil
	}

	var cmd tea.Cmd
	m.state.Viewport, cmd = m.state.Viewport.Update(msg)
	return tea.Batch(cmd, m.coord.ObserveScroll(m.scrollOffset()))
}

// handleMouse stamps every press so the menu can tell the gesture that
// opened it from later clicks.
func (m *BubbleTeaModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if tea.MouseEvent(msg).IsWheel() {
		var cmd tea.Cmd
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		return tea.Batch(cmd, m.coord.ObserveScroll(m.scrollOffset()))
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	seq := m.coord.NextSeq()
	switch msg.Button {
	case tea.MouseButtonRight:
		m.coord.OpenMenu(interaction.Position{X: msg.X, Y: msg.Y})
		return nil
	case tea.MouseButtonLeft:
		return m.handleClick(seq, msg.X, msg.Y)
	}
	return nil
}

func (m *BubbleTeaModel) handleClick(seq uint64, x, y int) tea.Cmd {
	h := m.hitTest(x, y)
	if cmd, consumed := m.coord.HandleClick(interaction.ClickEvent{Seq: seq, Target: h.node}); consumed {
		return cmd
	}

	if h.toastID != "" {
		m.coord.RemoveToast(h.toastID)
		return nil
	}
	if h.target == nil {
		return nil
	}
	m.coord.Focus().Focus(h.target.Node)
	return m.activate(*h.target)
}

// hit is what lies under a screen cell, topmost first.
type hit struct {
	node    *interaction.Node
	target  *models.Target
	toastID string
}

func (m *BubbleTeaModel) hitTest(x, y int) hit {
	h := hit{node: m.coord.Document()}

	menu := m.coord.Menu()
	if menu.IsOpen() && views.MenuRect(m.state).Contains(x, y) {
		h.node = menu.Region()
		if action, ok := views.MenuItemAt(m.state, x, y); ok {
			h.node = menu.ItemNode(action)
		}
		return h
	}

	if id, ok := views.ToastAt(m.state, m.footerHeight(), x, y); ok {
		h.toastID = id
		return h
	}

	col := x - views.ContentMargin(m.state)
	if m.state.HeaderVisible && y == 0 {
		h.target = findTarget(m.state.Layout.HeaderTargets, col, 0)
	} else if y >= 1 && y <= m.state.Viewport.Height {
		h.target = findTarget(m.state.Layout.Targets, col, y-1+m.state.Viewport.YOffset)
	}
	if h.target != nil {
		h.node = h.target.Node
	}
	return h
}

// findTarget returns the innermost target at (col, line). Nested targets
// follow their container, so the search runs backwards.
func findTarget(targets []models.Target, col, line int) *models.Target {
	for i := len(targets) - 1; i >= 0; i-- {
		if targets[i].Contains(col, line) {
			return &targets[i]
		}
	}
	return nil
}

func (m *BubbleTeaModel) focusedID() string {
	if n := m.coord.Focus().Focused(); n != nil {
		return n.ID
	}
	return ""
}

func (m *BubbleTeaModel) focusedTarget() (models.Target, bool) {
	n := m.coord.Focus().Focused()
	if n == nil {
		return models.Target{}, false
	}
	for _, targets := range [][]models.Target{m.state.Layout.HeaderTargets, m.state.Layout.Targets} {
		for _, t := range targets {
			if t.Node == n {
				return t, true
			}
		}
	}
	return models.Target{}, false
}

// relayout rebuilds the page for the current size, route, focus and header
// state, and mounts the new node tree.
func (m *BubbleTeaModel) relayout() {
	s := &m.state
	focused := m.focusedID()
	s.HeaderVisible = m.coord.Scroll().PastThreshold
	width := views.ContentWidth(*s)

	var layout models.Layout
	if page, ok := s.Site.Page(s.Route); ok {
		layout = views.BuildProjectPage(page, width, focused, m.renderer)
	} else {
		layout = views.BuildHome(s.Site, width, focused, m.renderer)
	}

	root := layout.Root
	header, headerTargets, headerNode := views.BuildHeader(s.Site, width, focused)
	layout.Header = header
	if s.HeaderVisible {
		// header links are only reachable while the header is shown
		layout.HeaderTargets = headerTargets
		root = interaction.NewNode("page", interaction.RoleGeneric)
		root.Append(headerNode, layout.Root)
	}

	s.Layout = layout
	m.coord.Mount(root)
	s.FocusedID = m.focusedID()

	s.Viewport.Width = width
	s.Viewport.Height = max(s.Height-1-m.footerHeight(), 1)
	s.Viewport.SetContent(strings.Join(layout.Lines, "\n"))

	// New content or a new height can move the offset without any scroll
	// input, so the scroll state is re-derived from the clamped offset.
	s.Viewport.SetYOffset(s.Viewport.YOffset)
	if offset := m.scrollOffset(); offset != m.coord.Scroll().Offset {
		m.coord.SyncScroll(offset)
	}
	if m.coord.Scroll().PastThreshold != s.HeaderVisible {
		m.relayout()
	}
}

// scrollToFocused brings the focused body target into view.
func (m *BubbleTeaModel) scrollToFocused() tea.Cmd {
	t, ok := m.focusedTarget()
	if !ok || t.Line < 0 || m.isHeaderTarget(t) {
		return nil
	}
	vp := &m.state.Viewport
	bottom := t.Line + max(t.Height, 1)
	switch {
	case t.Line < vp.YOffset:
		vp.SetYOffset(t.Line)
	case bottom > vp.YOffset+vp.Height:
		vp.SetYOffset(min(t.Line, bottom-vp.Height))
	default:
		return nil
	}
	return m.coord.ObserveScroll(m.scrollOffset())
}

func (m *BubbleTeaModel) isHeaderTarget(t models.Target) bool {
	for _, h := range m.state.Layout.HeaderTargets {
		if h.Node == t.Node {
			return true
		}
	}
	return false
}

// scrollOffset converts the viewport row offset to page scroll units.
func (m *BubbleTeaModel) scrollOffset() int {
	return m.state.Viewport.YOffset * m.rowHeight
}

func (m *BubbleTeaModel) footerHeight() int {
	return lipgloss.Height(views.RenderFooter(m.state, m.keys))
}

// syncTransient copies the coordinator's toasts and menu into the render
// state.
func (m *BubbleTeaModel) syncTransient() {
	m.state.Toasts = m.coord.Toasts().Items()

	menu := m.coord.Menu()
	m.state.Menu = models.MenuState{Open: menu.IsOpen(), Position: menu.Position()}
	if action, ok := menu.ActionFor(m.coord.Focus().Focused()); ok {
		m.state.Menu.Focused = action
	}
}

// Helper commands for listening to channels
func listenForContent(ch <-chan *content.Site) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		site, ok := <-ch
		if !ok {
			return nil
		}
		return contentReloadedMsg{site: site}
	}
}
