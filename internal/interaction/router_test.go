package interaction

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	calls []string
}

func (r *recorder) action(name string) Action {
	return func() tea.Cmd {
		r.calls = append(r.calls, name)
		return nil
	}
}

func (r *recorder) set() ActionSet {
	return ActionSet{
		CopyEmail:        r.action("copyEmail"),
		CopyURL:          r.action("copyUrl"),
		CopyLinkedIn:     r.action("copyLinkedIn"),
		FocusFirstLink:   r.action("focusFirstLink"),
		CloseContextMenu: r.action("closeContextMenu"),
	}
}

func newTestRouter(enabled bool) (*Router, *ActionCell, *fakeAnalytics) {
	cell := &ActionCell{}
	analytics := &fakeAnalytics{}
	return NewRouter(DefaultKeyMap(), cell, analytics, enabled), cell, analytics
}

func TestRouter_Chords(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.KeyMsg
		wantCall  string
		wantEvent string
	}{
		{"ctrl+s", keyMsg(tea.KeyCtrlS), "copyEmail", "keyboard_shortcut:cmd+s:copy_email"},
		{"alt+s", altKey('s'), "copyEmail", "keyboard_shortcut:cmd+s:copy_email"},
		{"ctrl+k", keyMsg(tea.KeyCtrlK), "focusFirstLink", "keyboard_shortcut:cmd+k:focus_links"},
		{"alt+k", altKey('k'), "focusFirstLink", "keyboard_shortcut:cmd+k:focus_links"},
		{"escape", keyMsg(tea.KeyEsc), "closeContextMenu", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, cell, analytics := newTestRouter(true)
			rec := &recorder{}
			cell.Store(rec.set())

			_, consumed := router.HandleKey(tt.msg)

			assert.True(t, consumed)
			assert.Equal(t, []string{tt.wantCall}, rec.calls)
			if tt.wantEvent == "" {
				assert.Empty(t, analytics.events)
			} else {
				assert.Equal(t, []string{tt.wantEvent}, analytics.events)
			}
		})
	}
}

func TestRouter_UnmatchedKeysPassThrough(t *testing.T) {
	router, cell, analytics := newTestRouter(true)
	rec := &recorder{}
	cell.Store(rec.set())

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'s'}},
		{Type: tea.KeyRunes, Runes: []rune{'k'}},
		keyMsg(tea.KeyEnter),
		keyMsg(tea.KeyTab),
	} {
		cmd, consumed := router.HandleKey(msg)
		assert.False(t, consumed, msg.String())
		assert.Nil(t, cmd)
	}
	assert.Empty(t, rec.calls)
	assert.Empty(t, analytics.events)
}

func TestRouter_DisabledConsumesNothing(t *testing.T) {
	router, cell, analytics := newTestRouter(false)
	rec := &recorder{}
	cell.Store(rec.set())

	_, consumed := router.HandleKey(keyMsg(tea.KeyCtrlS))

	assert.False(t, consumed)
	assert.Empty(t, rec.calls)
	assert.Empty(t, analytics.events)
}

func TestRouter_ReadsLatestActionSet(t *testing.T) {
	router, cell, _ := newTestRouter(true)
	first := &recorder{}
	second := &recorder{}

	cell.Store(first.set())
	router.HandleKey(keyMsg(tea.KeyCtrlS))
	cell.Store(second.set())
	router.HandleKey(keyMsg(tea.KeyCtrlS))

	assert.Equal(t, []string{"copyEmail"}, first.calls)
	assert.Equal(t, []string{"copyEmail"}, second.calls)
}

func TestRouter_UnboundActionIsNoOp(t *testing.T) {
	router, _, analytics := newTestRouter(true)

	assert.NotPanics(t, func() {
		cmd, consumed := router.HandleKey(keyMsg(tea.KeyCtrlS))
		assert.True(t, consumed)
		assert.Nil(t, cmd)
		_, consumed = router.HandleKey(keyMsg(tea.KeyEsc))
		assert.True(t, consumed)
	})
	assert.Equal(t, []string{"keyboard_shortcut:cmd+s:copy_email"}, analytics.events)
}

func TestActionSet_ForContext(t *testing.T) {
	rec := &recorder{}
	set := rec.set()

	set.ForContext(ActionEmail).Run()
	set.ForContext(ActionURL).Run()
	set.ForContext(ActionLinkedIn).Run()

	assert.Equal(t, []string{"copyEmail", "copyUrl", "copyLinkedIn"}, rec.calls)
	assert.Nil(t, set.ForContext("unknown"))
}
