package views

import (
	"testing"

	"github.com/Cyclone1070/portfolio/internal/content"
	"github.com/Cyclone1070/portfolio/internal/ui/models"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	out string
	err error
}

func (s stubRenderer) Render(string, int) (string, error) {
	return s.out, s.err
}

func testSite(t *testing.T) *content.Site {
	t.Helper()
	site, err := content.Default()
	require.NoError(t, err)
	return site
}

// textAt returns the plain text a target covers on its first line.
func textAt(lines []string, tg models.Target) string {
	return ansi.Strip(ansi.Cut(lines[tg.Line], tg.Col, tg.Col+tg.Width))
}

func targetByID(targets []models.Target, id string) (models.Target, bool) {
	for _, tg := range targets {
		if tg.Node.ID == id {
			return tg, true
		}
	}
	return models.Target{}, false
}

func nodeIDs(targets []models.Target) []string {
	ids := make([]string, 0, len(targets))
	for _, tg := range targets {
		ids = append(ids, tg.Node.ID)
	}
	return ids
}
