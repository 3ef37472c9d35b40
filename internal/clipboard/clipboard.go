// Package clipboard writes text to the visitor's clipboard, either through the
// local system clipboard or through an OSC 52 escape sequence on the terminal.
package clipboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard mechanism is usable.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer places text on a clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// WriterFunc adapts a function to the Writer interface.
type WriterFunc func(ctx context.Context, text string) error

func (f WriterFunc) WriteText(ctx context.Context, text string) error {
	return f(ctx, text)
}

// System writes to the local system clipboard via atotto/clipboard.
type System struct {
	// write is swapped in tests.
	write func(string) error
}

// NewSystem returns a System writer.
func NewSystem() *System {
	return &System{write: clipboard.WriteAll}
}

// Available reports whether the platform has a clipboard utility.
func (s *System) Available() bool {
	return !clipboard.Unsupported
}

// WriteText copies text. The platform helper runs in its own goroutine so a
// cancelled context returns promptly.
func (s *System) WriteText(ctx context.Context, text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- s.write(text)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("system clipboard: %w", err)
		}
		return nil
	}
}

// Chain tries each writer in order and returns on the first success.
type Chain []Writer

func (c Chain) WriteText(ctx context.Context, text string) error {
	if len(c) == 0 {
		return ErrUnavailable
	}
	var errs []error
	for _, w := range c {
		err := w.WriteText(ctx, text)
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

var (
	_ Writer = (*System)(nil)
	_ Writer = Chain(nil)
	_ Writer = WriterFunc(nil)
)
