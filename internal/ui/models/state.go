package models

import (
	"github.com/Cyclone1070/portfolio/internal/content"
	"github.com/Cyclone1070/portfolio/internal/interaction"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
)

// HomeRoute is the path of the profile page.
const HomeRoute = "/"

// TargetKind says what activating a target does.
type TargetKind int

const (
	TargetLink TargetKind = iota
	TargetProjectCard
	TargetProjectLink
	TargetBack
	TargetAvatar
)

// Target is a clickable or focusable element of the rendered page. Body
// targets use content coordinates (line within the page, column within the
// content column); header targets use screen coordinates.
type Target struct {
	Node *interaction.Node
	Kind TargetKind
	// Name is the link or project name.
	Name string
	URL  string
	// Action is the project interaction reported for project targets.
	Action string

	Line, Col     int
	Width, Height int
}

// Contains reports whether the cell (col, line) falls inside the target.
func (t Target) Contains(col, line int) bool {
	h := max(t.Height, 1)
	return line >= t.Line && line < t.Line+h && col >= t.Col && col < t.Col+t.Width
}

// Layout is the rendered page: body lines for the viewport plus every target
// and the node tree mounted in the coordinator's document.
type Layout struct {
	Lines         []string
	Targets       []Target
	Header        string
	HeaderTargets []Target
	Root          *interaction.Node
}

// Rect is a screen rectangle.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// MenuState mirrors the coordinator's context menu for rendering.
type MenuState struct {
	Open     bool
	Position interaction.Position
	Focused  interaction.ContextAction
}

// State holds everything the views need to draw a frame.
type State struct {
	Width  int
	Height int

	Site  *content.Site
	Route string

	Viewport     viewport.Model
	Help         help.Model
	ShowFullHelp bool

	Layout        Layout
	FocusedID     string
	HeaderVisible bool

	Toasts []interaction.Toast
	Menu   MenuState

	MaxContentWidth int
}
