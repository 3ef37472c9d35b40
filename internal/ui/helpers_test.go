package ui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Cyclone1070/portfolio/internal/config"
	"github.com/Cyclone1070/portfolio/internal/content"
	"github.com/Cyclone1070/portfolio/internal/interaction"
	"github.com/Cyclone1070/portfolio/internal/ui/views"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockMarkdownRenderer returns its input unless RenderFunc is set.
type MockMarkdownRenderer struct {
	RenderFunc func(string, int) (string, error)
}

func (m *MockMarkdownRenderer) Render(content string, width int) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(content, width)
	}
	return content, nil
}

type fakeClipboard struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (f *fakeClipboard) WriteText(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, text)
	return nil
}

// fakeTracker records events as readable strings.
type fakeTracker struct {
	events []string
}

func (f *fakeTracker) add(format string, args ...any) {
	f.events = append(f.events, fmt.Sprintf(format, args...))
}

func (f *fakeTracker) TrackCopy(copyType string, success bool, n int) {
	f.add("copy_action:%s:%t:%d", copyType, success, n)
}
func (f *fakeTracker) TrackKeyboardShortcut(shortcut, action string) {
	f.add("keyboard_shortcut:%s:%s", shortcut, action)
}
func (f *fakeTracker) TrackContextMenu(action string) {
	f.add("context_menu:%s", action)
}
func (f *fakeTracker) TrackPageView(title, location, path string) {
	f.add("page_view:%s:%s:%s", title, location, path)
}
func (f *fakeTracker) TrackLinkClick(name, url string, external bool) {
	f.add("link_click:%s:%s:%t", name, url, external)
}
func (f *fakeTracker) TrackProjectInteraction(project, action, url string) {
	f.add("project_click:%s:%s:%s", project, action, url)
}
func (f *fakeTracker) TrackProfileInteraction(kind string) {
	f.add("profile_interaction:%s", kind)
}

// immediateTick fires timers as soon as their command runs.
func immediateTick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(time.Time{}) }
}

// driver feeds messages through the model and runs the commands it
// returns, except toast expiries, which tests deliver explicitly.
type driver struct {
	t       *testing.T
	m       BubbleTeaModel
	clip    *fakeClipboard
	tracker *fakeTracker
	quit    bool
}

func newDriver(t *testing.T, mutate ...func(*config.Config)) *driver {
	t.Helper()
	cfg := config.DefaultConfig()
	for _, fn := range mutate {
		fn(cfg)
	}
	site, err := content.Default()
	require.NoError(t, err)

	d := &driver{t: t, clip: &fakeClipboard{}, tracker: &fakeTracker{}}
	ids := 0
	d.m = newBubbleTeaModel(cfg, site, Services{
		Renderer: &MockMarkdownRenderer{RenderFunc: func(md string, width int) (string, error) {
			return lipgloss.NewStyle().Width(width).Render(md), nil
		}},
		Clipboard: d.clip,
		Tracker:   d.tracker,
		Logger:    zaptest.NewLogger(t),
	},
		interaction.WithTickFunc(immediateTick),
		interaction.WithIDFunc(func() string {
			ids++
			return fmt.Sprintf("toast-%d", ids)
		}),
	)
	d.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	return d
}

func (d *driver) send(msg tea.Msg) {
	d.t.Helper()
	next, cmd := d.m.Update(msg)
	d.m = next.(BubbleTeaModel)
	d.run(cmd)
}

func (d *driver) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			d.run(c)
		}
	case tea.QuitMsg:
		d.quit = true
	case interaction.ToastExpiredMsg:
	default:
		d.send(msg)
	}
}

func (d *driver) key(k tea.KeyType) {
	d.t.Helper()
	d.send(tea.KeyMsg{Type: k})
}

func (d *driver) runes(s string) {
	d.t.Helper()
	d.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (d *driver) mouse(button tea.MouseButton, x, y int) {
	d.t.Helper()
	d.send(tea.MouseMsg{X: x, Y: y, Button: button, Action: tea.MouseActionPress})
}

// targetCell returns the screen cell of a body target's first character.
func (d *driver) targetCell(id string) (int, int) {
	d.t.Helper()
	for _, tg := range d.m.state.Layout.Targets {
		if tg.Node.ID == id {
			x := views.ContentMargin(d.m.state) + tg.Col
			y := 1 + tg.Line - d.m.state.Viewport.YOffset
			require.True(d.t, y >= 1 && y <= d.m.state.Viewport.Height, "target %s is off screen", id)
			return x, y
		}
	}
	d.t.Fatalf("no target %s", id)
	return 0, 0
}

func (d *driver) clickTarget(id string) {
	d.t.Helper()
	x, y := d.targetCell(id)
	d.mouse(tea.MouseButtonLeft, x, y)
}

func (d *driver) toastMessages() []string {
	var out []string
	for _, toast := range d.m.state.Toasts {
		out = append(out, toast.Message)
	}
	return out
}

func (d *driver) route() string {
	return d.m.state.Route
}

