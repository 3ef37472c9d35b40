package interaction

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Cyclone1070/portfolio/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap/zaptest"
)

// fakeClock records scheduled durations and fires timers immediately when
// the returned command runs.
type fakeClock struct {
	scheduled []time.Duration
}

func (f *fakeClock) tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	f.scheduled = append(f.scheduled, d)
	return func() tea.Msg { return fn(time.Time{}) }
}

// fakeClipboard records writes and fails with err when set.
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

// fakeAnalytics records calls as readable strings.
type fakeAnalytics struct {
	events []string
}

func (f *fakeAnalytics) TrackCopy(copyType string, success bool, n int) {
	f.events = append(f.events, fmt.Sprintf("copy_action:%s:%t:%d", copyType, success, n))
}

func (f *fakeAnalytics) TrackKeyboardShortcut(shortcut, action string) {
	f.events = append(f.events, fmt.Sprintf("keyboard_shortcut:%s:%s", shortcut, action))
}

func (f *fakeAnalytics) TrackContextMenu(action string) {
	if action == "" {
		f.events = append(f.events, "context_menu_open")
		return
	}
	f.events = append(f.events, "context_menu_action:"+action)
}

type harness struct {
	coord     *Coordinator
	clock     *fakeClock
	clip      *fakeClipboard
	analytics *fakeAnalytics
}

func newHarness(t *testing.T, mutate ...func(*config.Config)) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	for _, m := range mutate {
		m(cfg)
	}
	h := &harness{clock: &fakeClock{}, clip: &fakeClipboard{}, analytics: &fakeAnalytics{}}
	h.coord = NewCoordinator(cfg, h.clip, h.analytics,
		WithTickFunc(h.clock.tick),
		WithLogger(zaptest.NewLogger(t)))
	return h
}

// run executes cmd and feeds the resulting message back into the coordinator,
// following returned commands until none remain.
func (h *harness) run(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				h.run(c)
			}
			return
		}
		cmd = h.coord.Update(msg)
	}
}

// page builds a small document: a header with two links and a card button.
func page() (*Node, map[string]*Node) {
	root := NewNode("page", RoleGeneric)
	header := NewNode("header", RoleGeneric)
	email := NewNode("link-email", RoleLink).WithHref("mailto:a@b.c")
	github := NewNode("link-github", RoleLink).WithHref("https://github.com/x")
	card := NewNode("card", RoleButton)
	text := NewNode("bio", RoleGeneric)
	header.Append(email, github)
	root.Append(header, text, card)
	return root, map[string]*Node{
		"header": header, "email": email, "github": github, "card": card, "bio": text,
	}
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}
