package interaction

import (
	"errors"
	"testing"
	"time"

	"github.com/Cyclone1070/portfolio/internal/clipboard"
	"github.com/Cyclone1070/portfolio/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (h *harness) openAt(x, y int) {
	h.coord.NextSeq()
	h.coord.OpenMenu(Position{X: x, Y: y})
}

func (h *harness) click(target *Node) (tea.Cmd, bool) {
	return h.coord.HandleClick(ClickEvent{Seq: h.coord.NextSeq(), Target: target})
}

func TestCoordinator_MenuSingleton(t *testing.T) {
	h := newHarness(t)
	root, _ := page()
	h.coord.Mount(root)

	h.openAt(10, 4)
	h.openAt(30, 12)

	assert.True(t, h.coord.Menu().IsOpen())
	assert.Equal(t, Position{X: 30, Y: 12}, h.coord.Menu().Position())

	regions := 0
	for _, child := range h.coord.Document().Children() {
		if child.ID == MenuRegionID {
			regions++
		}
	}
	assert.Equal(t, 1, regions)
	assert.Equal(t, []string{"context_menu_open", "context_menu_open"}, h.analytics.events)
}

func TestCoordinator_OpenFocusesFirstItemAndAttachesTrap(t *testing.T) {
	h := newHarness(t)
	root, _ := page()
	h.coord.Mount(root)

	h.openAt(1, 1)

	assert.True(t, h.coord.TrapAttached())
	assert.True(t, h.coord.ListenerAttached())
	assert.Equal(t, h.coord.Menu().ItemNode(ActionEmail), h.coord.Focus().Focused())
}

func TestCoordinator_OutsideClickCloses(t *testing.T) {
	h := newHarness(t)
	root, nodes := page()
	h.coord.Mount(root)
	h.openAt(5, 5)

	_, consumed := h.click(nodes["bio"])

	assert.False(t, consumed)
	assert.False(t, h.coord.Menu().IsOpen())
	assert.False(t, h.coord.TrapAttached())
	assert.False(t, h.coord.ListenerAttached())
	assert.Nil(t, h.coord.Document().Find(MenuRegionID))
}

func TestCoordinator_InsideClickKeepsMenuOpen(t *testing.T) {
	h := newHarness(t)
	root, _ := page()
	h.coord.Mount(root)
	h.openAt(5, 5)

	_, consumed := h.click(h.coord.Menu().Region())

	assert.True(t, consumed)
	assert.True(t, h.coord.Menu().IsOpen())
}

func TestCoordinator_ClickOnSameEventAsOpenIsIgnored(t *testing.T) {
	h := newHarness(t)
	root, nodes := page()
	h.coord.Mount(root)

	seq := h.coord.NextSeq()
	h.coord.OpenMenu(Position{X: 2, Y: 2})
	_, consumed := h.coord.HandleClick(ClickEvent{Seq: seq, Target: nodes["bio"]})

	assert.False(t, consumed)
	assert.True(t, h.coord.Menu().IsOpen())
}

func TestCoordinator_ClickItemSelectsAndCloses(t *testing.T) {
	h := newHarness(t)
	root, _ := page()
	h.coord.Mount(root)
	rec := &recorder{}
	h.coord.Bind(rec.set())
	h.openAt(5, 5)

	_, consumed := h.click(h.coord.Menu().ItemNode(ActionLinkedIn))

	assert.True(t, consumed)
	assert.Equal(t, []string{"copyLinkedIn"}, rec.calls)
	assert.False(t, h.coord.Menu().IsOpen())
	assert.Equal(t, []string{"context_menu_open", "context_menu_action:linkedin"}, h.analytics.events)
}

func TestCoordinator_EscapeClosesFromAnyItem(t *testing.T) {
	for _, item := range MenuItems {
		t.Run(string(item.Action), func(t *testing.T) {
			h := newHarness(t)
			root, _ := page()
			h.coord.Mount(root)
			h.openAt(5, 5)
			require.True(t, h.coord.Focus().Focus(h.coord.Menu().ItemNode(item.Action)))

			_, consumed := h.coord.HandleKey(keyMsg(tea.KeyEsc))

			assert.True(t, consumed)
			assert.False(t, h.coord.Menu().IsOpen())
			assert.False(t, h.coord.TrapAttached())
		})
	}
}

func TestCoordinator_EscapeClosesEvenWithShortcutsDisabled(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Features.KeyboardShortcuts = false })
	h.openAt(5, 5)

	_, consumed := h.coord.HandleKey(keyMsg(tea.KeyEsc))

	assert.True(t, consumed)
	assert.False(t, h.coord.Menu().IsOpen())
}

func TestCoordinator_ModSWhileMenuOpenCopiesWithoutClosing(t *testing.T) {
	h := newHarness(t)
	root, _ := page()
	h.coord.Mount(root)
	rec := &recorder{}
	set := rec.set()
	set.CloseContextMenu = func() tea.Cmd {
		rec.calls = append(rec.calls, "closeContextMenu")
		h.coord.CloseMenu()
		return nil
	}
	h.coord.Bind(set)
	h.openAt(5, 5)

	_, consumed := h.coord.HandleKey(keyMsg(tea.KeyCtrlS))

	assert.True(t, consumed)
	assert.Equal(t, []string{"copyEmail"}, rec.calls)
	assert.True(t, h.coord.Menu().IsOpen())
}

func TestCoordinator_RebindBetweenChords(t *testing.T) {
	h := newHarness(t)
	first := &recorder{}
	second := &recorder{}

	h.coord.Bind(first.set())
	h.coord.HandleKey(keyMsg(tea.KeyCtrlK))
	h.coord.Bind(second.set())
	h.coord.HandleKey(keyMsg(tea.KeyCtrlK))

	assert.Equal(t, []string{"focusFirstLink"}, first.calls)
	assert.Equal(t, []string{"focusFirstLink"}, second.calls)
}

func TestCoordinator_TabWrapsInsideOpenMenu(t *testing.T) {
	h := newHarness(t)
	root, _ := page()
	h.coord.Mount(root)
	h.openAt(5, 5)
	menu := h.coord.Menu()
	require.True(t, h.coord.Focus().Focus(menu.ItemNode(ActionLinkedIn)))

	h.coord.HandleKey(keyMsg(tea.KeyTab))
	assert.Equal(t, menu.ItemNode(ActionEmail), h.coord.Focus().Focused())

	h.coord.HandleKey(keyMsg(tea.KeyShiftTab))
	assert.Equal(t, menu.ItemNode(ActionLinkedIn), h.coord.Focus().Focused())

	h.coord.HandleKey(keyMsg(tea.KeyUp))
	assert.Equal(t, menu.ItemNode(ActionURL), h.coord.Focus().Focused())
}

func TestCoordinator_EnterSelectsFocusedItem(t *testing.T) {
	h := newHarness(t)
	rec := &recorder{}
	h.coord.Bind(rec.set())
	h.openAt(5, 5)
	h.coord.HandleKey(keyMsg(tea.KeyDown))

	_, consumed := h.coord.HandleKey(keyMsg(tea.KeyEnter))

	assert.True(t, consumed)
	assert.Equal(t, []string{"copyUrl"}, rec.calls)
	assert.False(t, h.coord.Menu().IsOpen())
}

func TestCoordinator_SelectUnboundActionStillCloses(t *testing.T) {
	h := newHarness(t)
	h.openAt(5, 5)

	assert.NotPanics(t, func() {
		assert.Nil(t, h.coord.SelectAction(ActionURL))
	})
	assert.False(t, h.coord.Menu().IsOpen())
}

func TestCoordinator_CloseRestoresFocus(t *testing.T) {
	h := newHarness(t)
	root, nodes := page()
	h.coord.Mount(root)
	require.True(t, h.coord.Focus().Focus(nodes["github"]))

	h.openAt(5, 5)
	h.coord.CloseMenu()

	assert.Equal(t, nodes["github"], h.coord.Focus().Focused())
}

func TestCoordinator_CloseTwiceIsNoOp(t *testing.T) {
	h := newHarness(t)
	h.openAt(5, 5)

	assert.True(t, h.coord.CloseMenu())
	assert.False(t, h.coord.CloseMenu())
	assert.False(t, h.coord.TrapAttached())
	assert.False(t, h.coord.ListenerAttached())
}

func TestCoordinator_ContextMenuFeatureOff(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Features.ContextMenu = false })

	h.openAt(5, 5)

	assert.False(t, h.coord.Menu().IsOpen())
	assert.False(t, h.coord.TrapAttached())
	assert.Empty(t, h.analytics.events)
}

func TestCoordinator_MountKeepsOpenMenu(t *testing.T) {
	h := newHarness(t)
	first, _ := page()
	h.coord.Mount(first)
	h.openAt(5, 5)

	second, _ := page()
	h.coord.Mount(second)

	children := h.coord.Document().Children()
	require.Len(t, children, 2)
	assert.Equal(t, second, children[0])
	assert.Equal(t, MenuRegionID, children[1].ID)
	assert.Nil(t, first.Parent())
}

func TestCoordinator_CopySuccessShowsToastAndReports(t *testing.T) {
	h := newHarness(t)

	h.run(h.coord.CopyToClipboard("urav06@gmail.com", "Email copied!"))

	assert.Equal(t, []string{"urav06@gmail.com"}, h.clip.writes)
	assert.Equal(t, []string{"copy_action:email:true:16"}, h.analytics.events)
	// The fake clock fires the expiry immediately, so the toast is gone again.
	assert.Equal(t, []time.Duration{3 * time.Second}, h.clock.scheduled)
	assert.Zero(t, h.coord.Toasts().Len())
}

func TestCoordinator_CopyResultQueuesToast(t *testing.T) {
	h := newHarness(t)

	cmd := h.coord.Update(CopyResultMsg{Text: "x", Message: "URL copied!"})

	require.NotNil(t, cmd)
	items := h.coord.Toasts().Items()
	require.Len(t, items, 1)
	assert.Equal(t, "URL copied!", items[0].Message)
	assert.Equal(t, []string{"copy_action:url:true:1"}, h.analytics.events)
}

func TestCoordinator_CopyDefaultMessage(t *testing.T) {
	h := newHarness(t)

	msg := h.coord.CopyToClipboard("x", "")()
	h.coord.Update(msg)

	assert.Equal(t, DefaultCopyMessage, h.coord.Toasts().Items()[0].Message)
	assert.Equal(t, []string{"copy_action:copied:true:1"}, h.analytics.events)
}

func TestCoordinator_CopyFailureShowsFailedToast(t *testing.T) {
	h := newHarness(t)
	h.clip.err = errors.New("permission denied")

	msg := h.coord.CopyToClipboard("x", "Email copied!")()
	h.coord.Update(msg)

	items := h.coord.Toasts().Items()
	require.Len(t, items, 1)
	assert.Equal(t, CopyFailedMessage, items[0].Message)
	assert.Equal(t, []string{"copy_action:clipboard:false:0"}, h.analytics.events)
}

func TestCoordinator_NilClipboardFails(t *testing.T) {
	coord := NewCoordinator(config.DefaultConfig(), nil, nil)

	msg := coord.CopyToClipboard("x", "")().(CopyResultMsg)

	assert.ErrorIs(t, msg.Err, clipboard.ErrUnavailable)
	coord.Update(msg)
	assert.Equal(t, CopyFailedMessage, coord.Toasts().Items()[0].Message)
}

func TestCoordinator_ToastDismissBeforeExpiry(t *testing.T) {
	h := newHarness(t)
	id, cmd := h.coord.ShowToast("Link copied!")

	assert.True(t, h.coord.RemoveToast(id))
	assert.False(t, h.coord.RemoveToast(id))
	h.coord.Update(cmd())

	assert.Zero(t, h.coord.Toasts().Len())
}

func TestCoordinator_ScrollFrames(t *testing.T) {
	h := newHarness(t)

	cmd := h.coord.ObserveScroll(149)
	h.coord.ObserveScroll(151)
	h.run(cmd)

	assert.Equal(t, ScrollState{Offset: 151, PastThreshold: true}, h.coord.Scroll())

	h.coord.SyncScroll(149)
	assert.False(t, h.coord.Scroll().PastThreshold)
}

func TestCopyType(t *testing.T) {
	assert.Equal(t, "email", copyType("Email copied!"))
	assert.Equal(t, "linkedin", copyType("LinkedIn copied!"))
	assert.Equal(t, "clipboard", copyType("   "))
}

func TestCoordinator_MountCarriesFocusByID(t *testing.T) {
	h := newHarness(t)
	first, nodes := page()
	h.coord.Mount(first)
	require.True(t, h.coord.Focus().Focus(nodes["github"]))

	second, fresh := page()
	h.coord.Mount(second)

	assert.Equal(t, fresh["github"], h.coord.Focus().Focused())
}

func TestCoordinator_MountRemapsFocusRestoredByMenu(t *testing.T) {
	h := newHarness(t)
	first, nodes := page()
	h.coord.Mount(first)
	require.True(t, h.coord.Focus().Focus(nodes["email"]))
	h.openAt(5, 5)

	second, fresh := page()
	h.coord.Mount(second)
	h.coord.CloseMenu()

	assert.Equal(t, fresh["email"], h.coord.Focus().Focused())
}

func TestCoordinator_MountDropsFocusOfVanishedNode(t *testing.T) {
	h := newHarness(t)
	first, nodes := page()
	h.coord.Mount(first)
	require.True(t, h.coord.Focus().Focus(nodes["card"]))

	h.coord.Mount(NewNode("empty", RoleGeneric))

	assert.Nil(t, h.coord.Focus().Focused())
}
