package models

import (
	"fmt"
	"strings"
)

// Story is a titled sequence of chapters.
type Story struct {
	Title    string    `toml:"title" json:"title"`
	Subtitle string    `toml:"subtitle" json:"subtitle,omitempty"`
	Chapters []Chapter `toml:"chapters" json:"chapters"`
}

// Chapter is one layer of a story.
type Chapter struct {
	Title   string `toml:"title" json:"title"`
	Period  string `toml:"period" json:"period,omitempty"`   // Short label for the timeline (e.g. "1972")
	Heading string `toml:"heading" json:"heading,omitempty"` // Large text in the content pane
	Body    string `toml:"body" json:"body,omitempty"`       // Prose in the text pane
	Accent  string `toml:"accent" json:"accent,omitempty"`   // Hex color for the content pane
}

// Label returns the chapter's timeline label, falling back to its 1-based position.
func (c Chapter) Label(index int) string {
	if p := strings.TrimSpace(c.Period); p != "" {
		return p
	}
	return fmt.Sprintf("%d", index+1)
}

// Validate checks that the story can be presented.
func (s *Story) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("story title is required")
	}
	if len(s.Chapters) == 0 {
		return fmt.Errorf("story %q has no chapters", s.Title)
	}
	for i, ch := range s.Chapters {
		if strings.TrimSpace(ch.Title) == "" {
			return fmt.Errorf("chapter %d title is required", i+1)
		}
		if ch.Accent != "" && !isHexColor(ch.Accent) {
			return fmt.Errorf("chapter %d accent %q is not a hex color", i+1, ch.Accent)
		}
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 && len(s) != 4 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
