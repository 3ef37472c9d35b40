// Package content holds the static site content: profile, contact links,
// projects and the project placeholder pages.
package content

import (
	"strings"
)

// StatusColor names the badge color of the availability status.
type StatusColor string

const (
	StatusGreen  StatusColor = "green"
	StatusOrange StatusColor = "orange"
	StatusYellow StatusColor = "yellow"
	StatusRed    StatusColor = "red"
	StatusBlue   StatusColor = "blue"
	StatusPurple StatusColor = "purple"
)

// IconName identifies the glyph shown next to a link.
type IconName string

const (
	IconMail         IconName = "Mail"
	IconLinkedin     IconName = "Linkedin"
	IconGithub       IconName = "Github"
	IconFileText     IconName = "FileText"
	IconExternalLink IconName = "ExternalLink"
)

// Well-known link names the page actions look up.
const (
	LinkEmail    = "Email"
	LinkLinkedIn = "LinkedIn"
)

type Profile struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Bio      string `yaml:"bio"`
	Location string `yaml:"location"`
}

type Status struct {
	Enabled bool        `yaml:"enabled"`
	Text    string      `yaml:"text"`
	Color   StatusColor `yaml:"color"`
}

type Link struct {
	Name string   `yaml:"name"`
	URL  string   `yaml:"url"`
	Icon IconName `yaml:"icon"`
}

// IsExternal reports whether the link leaves the site.
func (l Link) IsExternal() bool {
	return strings.HasPrefix(l.URL, "http")
}

type Project struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	TechStack   []string `yaml:"tech_stack"`
	DemoURL     string   `yaml:"demo_url"`
	GithubURL   string   `yaml:"github_url"`
}

// PrimaryURL is the card's click target: the demo when present, otherwise GitHub.
func (p Project) PrimaryURL() string {
	if p.DemoURL != "" {
		return p.DemoURL
	}
	return p.GithubURL
}

// Slug is the analytics-friendly project name.
func (p Project) Slug() string {
	return strings.Join(strings.Fields(strings.ToLower(p.Name)), "-")
}

// Page is a project placeholder page reachable from a project's demo URL.
type Page struct {
	Path        string `yaml:"path"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Body        string `yaml:"body"` // markdown
	Links       []Link `yaml:"links"`
}

type Metadata struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
	SiteURL     string   `yaml:"site_url"`
}

// Site is the complete content of the portfolio.
type Site struct {
	Profile  Profile   `yaml:"profile"`
	Status   Status    `yaml:"status"`
	Links    []Link    `yaml:"links"`
	Projects []Project `yaml:"projects"`
	Pages    []Page    `yaml:"pages"`
	Metadata Metadata  `yaml:"metadata"`
}

// Link finds a contact link by name.
func (s *Site) Link(name string) (Link, bool) {
	for _, l := range s.Links {
		if l.Name == name {
			return l, true
		}
	}
	return Link{}, false
}

// Email returns the address behind the Email link, without the mailto: scheme.
func (s *Site) Email() (string, bool) {
	l, ok := s.Link(LinkEmail)
	if !ok {
		return "", false
	}
	return strings.TrimPrefix(l.URL, "mailto:"), true
}

// Page finds a placeholder page by its internal path.
func (s *Site) Page(path string) (Page, bool) {
	for _, p := range s.Pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

// IsInternal reports whether a URL is a path inside the site.
func IsInternal(url string) bool {
	return strings.HasPrefix(url, "/")
}
