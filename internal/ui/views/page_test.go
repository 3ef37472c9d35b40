package views

import (
	"errors"
	"strings"
	"testing"

	"github.com/Cyclone1070/portfolio/internal/content"
	"github.com/Cyclone1070/portfolio/internal/ui/models"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHome_TargetsCoverTheirText(t *testing.T) {
	layout := BuildHome(testSite(t), 80, "", nil)

	tests := []struct {
		id   string
		want string
	}{
		{AvatarID, "(UM)"},
		{"link:Email", "✉ Email"},
		{"link:LinkedIn", "in LinkedIn"},
		{"link:Resume", "≡ Resume"},
		{"card:chess-engine:demo", "↗ Demo"},
		{"card:chess-engine:github", "gh GitHub"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tg, ok := targetByID(layout.Targets, tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, textAt(layout.Lines, tg))
		})
	}
}

func TestBuildHome_CardTargetSpansBox(t *testing.T) {
	layout := BuildHome(testSite(t), 80, "", nil)

	card, ok := targetByID(layout.Targets, "card:chess-engine")
	require.True(t, ok)
	assert.Equal(t, models.TargetProjectCard, card.Kind)
	assert.Equal(t, "/chess", card.URL)
	assert.Equal(t, ActionCardClick, card.Action)
	assert.Equal(t, 80, card.Width)
	assert.Greater(t, card.Height, 4)

	top := ansi.Strip(layout.Lines[card.Line])
	assert.True(t, strings.HasPrefix(top, "╭"), top)
	assert.Contains(t, ansi.Strip(layout.Lines[card.Line+1]), "Chess Engine")

	demo, _ := targetByID(layout.Targets, "card:chess-engine:demo")
	assert.True(t, card.Contains(demo.Col, demo.Line))
}

func TestBuildHome_NodeTreeInDocumentOrder(t *testing.T) {
	layout := BuildHome(testSite(t), 80, "", nil)

	var ids []string
	for _, n := range layout.Root.Focusables() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{
		"link:Email", "link:LinkedIn", "link:GitHub", "link:Resume",
		"card:chess-engine", "card:chess-engine:demo", "card:chess-engine:github",
		"card:resume-generator", "card:resume-generator:demo", "card:resume-generator:github",
	}, ids)
}

func TestBuildHome_ContentSections(t *testing.T) {
	layout := BuildHome(testSite(t), 60, "", nil)
	text := ansi.Strip(strings.Join(layout.Lines, "\n"))

	assert.Contains(t, text, "Urav Maniar")
	assert.Contains(t, text, "Data Scientist & Software Engineer")
	assert.Contains(t, text, "● Available Jan 2026")
	assert.Contains(t, text, "Melbourne, Australia")
	assert.Contains(t, text, "Featured Work")
	assert.Contains(t, text, "Python · NumPy · Machine Learning")
	for _, line := range layout.Lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), 60)
	}
}

func TestBuildHome_HidesDisabledStatus(t *testing.T) {
	site := testSite(t)
	site.Status.Enabled = false

	layout := BuildHome(site, 80, "", nil)

	assert.NotContains(t, ansi.Strip(strings.Join(layout.Lines, "\n")), "Available")
}

func TestBuildHome_LinksWrapOnNarrowWidth(t *testing.T) {
	layout := BuildHome(testSite(t), 24, "", nil)

	email, _ := targetByID(layout.Targets, "link:Email")
	resume, _ := targetByID(layout.Targets, "link:Resume")
	assert.Greater(t, resume.Line, email.Line)
	assert.Equal(t, "≡ Resume", textAt(layout.Lines, resume))
}

func TestBuildHome_BioUsesRendererWithFallback(t *testing.T) {
	layout := BuildHome(testSite(t), 80, "", stubRenderer{out: "RENDERED BIO"})
	assert.Contains(t, strings.Join(layout.Lines, "\n"), "RENDERED BIO")

	layout = BuildHome(testSite(t), 80, "", stubRenderer{err: errors.New("boom")})
	assert.Contains(t, ansi.Strip(strings.Join(layout.Lines, "\n")), "systems thinker")
}

func TestBuildProjectPage(t *testing.T) {
	site := testSite(t)
	page, ok := site.Page("/resume-generator")
	require.True(t, ok)

	layout := BuildProjectPage(page, 80, "", nil)

	back, ok := targetByID(layout.Targets, BackID)
	require.True(t, ok)
	assert.Equal(t, models.TargetBack, back.Kind)
	assert.Equal(t, models.HomeRoute, back.URL)
	assert.Equal(t, "← Back to portfolio", textAt(layout.Lines, back))

	text := ansi.Strip(strings.Join(layout.Lines, "\n"))
	assert.Contains(t, text, "Resume Generator")
	assert.Contains(t, text, "Coming Soon")

	sample, ok := targetByID(layout.Targets, "link:Download Sample")
	require.True(t, ok)
	assert.Equal(t, "/resume.pdf", sample.URL)
	assert.Equal(t, "≡ Download Sample", textAt(layout.Lines, sample))

	assert.Equal(t, []string{BackID, "link:View on GitHub", "link:Download Sample"}, nodeIDs(layout.Targets))
}

func TestBuildHeader(t *testing.T) {
	site := testSite(t)

	line, targets, node := BuildHeader(site, 80, "")

	assert.Equal(t, 80, ansi.StringWidth(line))
	assert.Contains(t, ansi.Strip(line), "Urav Maniar · Data Scientist")
	assert.Equal(t, []string{
		"header:link:Email", "header:link:LinkedIn", "header:link:GitHub", "header:link:Resume",
	}, nodeIDs(targets))
	for _, tg := range targets {
		assert.Zero(t, tg.Line)
		assert.Equal(t, ansi.Strip(Icon(iconFor(site, tg.Node.Label))), textAt([]string{line}, tg))
	}
	assert.Len(t, node.Children(), 4)
}

func TestBuildHeader_NarrowDropsTitle(t *testing.T) {
	line, targets, _ := BuildHeader(testSite(t), 40, "")

	assert.NotContains(t, ansi.Strip(line), "Data Scientist")
	assert.Len(t, targets, 4)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "UM", Initials("Urav Maniar"))
	assert.Equal(t, "AB", Initials("ada byron lovelace"))
	assert.Equal(t, "", Initials("  "))
}

func iconFor(site *content.Site, name string) content.IconName {
	l, _ := site.Link(name)
	return l.Icon
}
