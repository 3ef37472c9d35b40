package interaction

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultScrollThreshold = 150
	DefaultFrameInterval   = 16 * time.Millisecond
)

// ScrollState is the derived header visibility state.
type ScrollState struct {
	Offset        int
	PastThreshold bool
}

// ScrollFrameMsg marks a frame boundary for the scroll observer.
type ScrollFrameMsg struct{}

// ScrollObserver samples a scroll offset at most once per frame. Offsets
// observed between frames are coalesced and only the latest is applied.
type ScrollObserver struct {
	threshold int
	frame     time.Duration
	tick      TickFunc

	state   ScrollState
	pending int
	ticking bool
	applied int
}

func NewScrollObserver(threshold int, frame time.Duration) *ScrollObserver {
	if threshold < 0 {
		threshold = DefaultScrollThreshold
	}
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &ScrollObserver{threshold: threshold, frame: frame, tick: tea.Tick}
}

// Observe records offset and schedules a frame if none is pending.
func (o *ScrollObserver) Observe(offset int) tea.Cmd {
	o.pending = max(offset, 0)
	if o.ticking {
		return nil
	}
	o.ticking = true
	return o.tick(o.frame, func(time.Time) tea.Msg {
		return ScrollFrameMsg{}
	})
}

// Frame applies the latest observed offset. It reports whether the state
// changed.
func (o *ScrollObserver) Frame() bool {
	if !o.ticking {
		return false
	}
	o.ticking = false
	return o.apply(o.pending)
}

// Sync applies offset immediately, as on mount.
func (o *ScrollObserver) Sync(offset int) bool {
	o.pending = max(offset, 0)
	return o.apply(o.pending)
}

func (o *ScrollObserver) apply(offset int) bool {
	o.applied++
	next := ScrollState{Offset: offset, PastThreshold: offset > o.threshold}
	changed := next != o.state
	o.state = next
	return changed
}

func (o *ScrollObserver) State() ScrollState { return o.state }

// Updates counts state evaluations.
func (o *ScrollObserver) Updates() int { return o.applied }
