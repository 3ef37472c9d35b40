package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for a given wrap width.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders with glamour, keeping one TermRenderer per width.
// It is safe for concurrent use by several sessions.
type GlamourRenderer struct {
	mu        sync.Mutex
	style     string
	renderers map[int]*glamour.TermRenderer
}

// NewGlamourRenderer uses a glamour standard style such as "dark" or "light".
// An empty style selects "dark".
func NewGlamourRenderer(style string) *GlamourRenderer {
	if style == "" {
		style = "dark"
	}
	return &GlamourRenderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	if width < 1 {
		return "", fmt.Errorf("invalid markdown width %d", width)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(g.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("create markdown renderer: %w", err)
		}
		g.renderers[width] = r
	}
	return r.Render(content)
}

// RenderMarkdown renders content and strips the blank lines glamour puts
// around a document.
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) (string, error) {
	if renderer == nil {
		return content, nil
	}
	out, err := renderer.Render(content, width)
	if err != nil {
		return "", err
	}
	return trimBlankLines(out), nil
}

func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
