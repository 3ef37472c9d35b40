// Package sshserver serves the portfolio to remote terminals: every SSH
// session with a pty gets its own page program.
package sshserver

import (
	"context"
	"errors"
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/Cyclone1070/portfolio/internal/analytics"
	"github.com/Cyclone1070/portfolio/internal/clipboard"
	"github.com/Cyclone1070/portfolio/internal/config"
	"github.com/Cyclone1070/portfolio/internal/content"
	"github.com/Cyclone1070/portfolio/internal/ui"
	"github.com/Cyclone1070/portfolio/internal/ui/services"
	tea "github.com/charmbracelet/bubbletea"
	gliderssh "github.com/gliderlabs/ssh"
	"go.uber.org/zap"
)

// Server exposes the portfolio over SSH.
type Server struct {
	Config      *config.Config
	Addr        string
	HostKeyPath string
	// Listener, when set, is served instead of listening on Addr.
	Listener net.Listener
	Hub      *content.Hub
	Renderer services.MarkdownRenderer
	Tracker  *analytics.Tracker
	Logger   *zap.Logger

	active atomic.Int64
}

// ListenAndServe starts the SSH server and shuts down on context
// cancellation.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if s.Hub == nil {
		return errors.New("content hub is required for SSH")
	}

	signer, err := EnsureHostKey(s.HostKeyPath)
	if err != nil {
		return err
	}

	server := &gliderssh.Server{
		Addr:        s.Addr,
		Handler:     s.handleSession,
		IdleTimeout: time.Duration(s.Config.Server.IdleTimeoutSec) * time.Second,
	}
	server.AddHostKey(signer)

	errCh := make(chan error, 1)
	go func() {
		if s.Listener != nil {
			errCh <- server.Serve(s.Listener)
			return
		}
		errCh <- server.ListenAndServe()
	}()
	s.Logger.Info("ssh server listening", zap.String("addr", s.Addr))

	select {
	case <-ctx.Done():
		_ = server.Close()
		return nil
	case err := <-errCh:
		if errors.Is(err, gliderssh.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Active reports the number of open sessions.
func (s *Server) Active() int64 {
	return s.active.Load()
}

// acquire reserves a session slot. It fails once MaxSessions are open.
func (s *Server) acquire() bool {
	if n := s.active.Add(1); n > int64(s.Config.Server.MaxSessions) {
		s.active.Add(-1)
		return false
	}
	return true
}

func (s *Server) release() {
	s.active.Add(-1)
}

func (s *Server) handleSession(sess gliderssh.Session) {
	sessionID := sess.Context().SessionID()
	log := s.Logger.With(
		zap.String("remote", sess.RemoteAddr().String()),
		zap.String("ssh_session", shortID(sessionID)))

	pty, winCh, ok := sess.Pty()
	if !ok {
		log.Info("ssh session rejected", zap.String("reason", "pty required"))
		_, _ = io.WriteString(sess, "pty required, try: ssh -t\n")
		_ = sess.Exit(1)
		return
	}
	if !s.acquire() {
		log.Warn("ssh session rejected", zap.String("reason", "session limit"))
		_, _ = io.WriteString(sess, "too many visitors right now, try again soon\n")
		_ = sess.Exit(1)
		return
	}
	defer s.release()

	updates, unsubscribe := s.Hub.Subscribe()
	defer unsubscribe()

	var tracker ui.Tracker
	if s.Tracker != nil {
		tracker = s.Tracker.ForClient(sessionID)
	}

	program := ui.NewUI(s.Config, s.Hub.Current(), ui.Services{
		Renderer:  s.Renderer,
		Clipboard: clipboard.NewTerminal(sess, false),
		Tracker:   tracker,
		Updates:   updates,
		Logger:    log,
	},
		tea.WithInput(sess),
		tea.WithOutput(sess),
		tea.WithEnvironment(append(sess.Environ(), "TERM="+pty.Term)),
		tea.WithContext(sess.Context()),
	)

	go func() {
		for win := range winCh {
			program.Send(tea.WindowSizeMsg{Width: win.Width, Height: win.Height})
		}
	}()

	log.Info("ssh session opened", zap.String("term", pty.Term),
		zap.Int("width", pty.Window.Width), zap.Int("height", pty.Window.Height))
	if err := program.Start(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Warn("ssh session ended with error", zap.Error(err))
	}
	log.Info("ssh session closed")
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
