package clipboard

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Terminal copies by emitting an OSC 52 sequence to the terminal output. It
// is the only clipboard reachable from an SSH session.
type Terminal struct {
	mu   sync.Mutex
	out  io.Writer
	tmux bool
}

// NewTerminal writes sequences to out. With tmux set the sequence is wrapped
// in a DCS passthrough so tmux forwards it to the outer terminal.
func NewTerminal(out io.Writer, tmux bool) *Terminal {
	return &Terminal{out: out, tmux: tmux}
}

func (t *Terminal) WriteText(ctx context.Context, text string) error {
	if t.out == nil {
		return ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	seq := osc52.New(text)
	if t.tmux {
		seq = seq.Tmux()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := seq.WriteTo(t.out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

var _ Writer = (*Terminal)(nil)
