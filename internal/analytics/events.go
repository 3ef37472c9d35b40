// Package analytics reports visitor interactions. Tracking is fire-and-forget:
// callers never block on delivery and never see an error.
package analytics

import (
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Event names an interaction.
type Event string

const (
	EventPageView           Event = "page_view"
	EventLinkClick          Event = "link_click"
	EventProjectClick       Event = "project_click"
	EventCopyAction         Event = "copy_action"
	EventKeyboardShortcut   Event = "keyboard_shortcut"
	EventContextMenuOpen    Event = "context_menu_open"
	EventContextMenuAction  Event = "context_menu_action"
	EventProfileInteraction Event = "profile_interaction"
)

// PageView is the payload of EventPageView.
type PageView struct {
	Title    string `mapstructure:"page_title,omitempty"`
	Location string `mapstructure:"page_location,omitempty"`
	Path     string `mapstructure:"page_path"`
}

type LinkClick struct {
	Name     string `mapstructure:"link_name"`
	URL      string `mapstructure:"link_url"`
	External bool   `mapstructure:"external"`
}

type ProjectClick struct {
	Project string `mapstructure:"project_name"`
	Action  string `mapstructure:"action"`
	URL     string `mapstructure:"project_url,omitempty"`
}

// CopyAction reports a clipboard write. ContentLength is omitted when zero.
type CopyAction struct {
	CopyType      string `mapstructure:"copy_type"`
	Success       bool   `mapstructure:"success"`
	ContentLength int    `mapstructure:"content_length,omitempty"`
}

type KeyboardShortcut struct {
	Shortcut string `mapstructure:"shortcut"`
	Action   string `mapstructure:"action"`
}

type ContextMenuAction struct {
	Action string `mapstructure:"action"`
}

type ProfileInteraction struct {
	Type string `mapstructure:"interaction_type"`
}

// baseParams are attached to every event. Payload keys override them.
func baseParams() map[string]any {
	return map[string]any{
		"event_category":                   "interaction",
		"anonymize_ip":                     true,
		"allow_google_signals":             false,
		"allow_ad_personalization_signals": false,
	}
}

// Params flattens a payload into event parameters merged over the base
// parameters. The payload may be nil, a map[string]any, or a struct with
// mapstructure tags.
func Params(payload any) (map[string]any, error) {
	params := baseParams()
	if payload == nil {
		return params, nil
	}

	var flat map[string]any
	switch p := payload.(type) {
	case map[string]any:
		flat = p
	default:
		if err := mapstructure.Decode(payload, &flat); err != nil {
			return nil, err
		}
	}
	for k, v := range flat {
		params[k] = v
	}
	return params, nil
}

// slug lowercases a name and joins its words with dashes.
func slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
