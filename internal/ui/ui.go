package ui

import (
	"github.com/Cyclone1070/portfolio/internal/config"
	"github.com/Cyclone1070/portfolio/internal/content"
	tea "github.com/charmbracelet/bubbletea"
)

// UI runs the portfolio page as a Bubble Tea program.
type UI struct {
	program *tea.Program
}

// NewUI creates a program showing site. Extra options set the program's
// input and output for remote sessions.
func NewUI(cfg *config.Config, site *content.Site, svc Services, opts ...tea.ProgramOption) *UI {
	model := newBubbleTeaModel(cfg, site, svc)

	var programOpts []tea.ProgramOption
	if cfg.UI.EnableAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.UI.EnableMouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	programOpts = append(programOpts, opts...)

	return &UI{program: tea.NewProgram(model, programOpts...)}
}

// Start runs the program until the user quits.
func (u *UI) Start() error {
	_, err := u.program.Run()
	return err
}

// Send delivers a message to the running program, e.g. a window resize.
func (u *UI) Send(msg tea.Msg) {
	u.program.Send(msg)
}

// Quit asks the program to exit.
func (u *UI) Quit() {
	u.program.Quit()
}
