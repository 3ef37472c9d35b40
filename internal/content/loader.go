package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// ErrInvalidContent is returned when content parses but fails validation.
var ErrInvalidContent = errors.New("invalid content")

// ContentReadError is returned when a content file cannot be read.
type ContentReadError struct {
	Path  string
	Cause error
}

func (e *ContentReadError) Error() string {
	return fmt.Sprintf("failed to read content at %s: %v", e.Path, e.Cause)
}
func (e *ContentReadError) Unwrap() error { return e.Cause }

// Default returns the embedded site content.
func Default() (*Site, error) {
	return Parse(defaultContent)
}

// Load reads content from path. An empty path yields the embedded content.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ContentReadError{Path: path, Cause: err}
	}
	site, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return site, nil
}

// Parse decodes and validates YAML content.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// Validate checks the invariants the pages rely on.
func (s *Site) Validate() error {
	var errs []string

	if strings.TrimSpace(s.Profile.Name) == "" {
		errs = append(errs, "profile.name is required")
	}

	seen := make(map[string]bool, len(s.Links))
	for i, l := range s.Links {
		if l.Name == "" || l.URL == "" {
			errs = append(errs, fmt.Sprintf("links[%d] needs name and url", i))
		}
		if seen[l.Name] {
			errs = append(errs, fmt.Sprintf("links[%d] duplicates %q", i, l.Name))
		}
		seen[l.Name] = true
	}

	for i, p := range s.Projects {
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("projects[%d].name is required", i))
		}
		if IsInternal(p.DemoURL) {
			if _, ok := s.Page(p.DemoURL); !ok {
				errs = append(errs, fmt.Sprintf("projects[%d].demo_url %s has no page", i, p.DemoURL))
			}
		}
	}

	for i, p := range s.Pages {
		if !IsInternal(p.Path) {
			errs = append(errs, fmt.Sprintf("pages[%d].path must start with /", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidContent, errs)
	}
	return nil
}
