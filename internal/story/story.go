// Package story loads the chapters a presenter run walks through.
package story

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/desertthunder/chapters/internal/models"
	"github.com/desertthunder/chapters/internal/shared"
)

//go:embed story.example.toml
var exampleStory []byte

// Parse decodes a story from TOML and validates it.
func Parse(data []byte) (*models.Story, error) {
	var s models.Story
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidStory, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", shared.ErrInvalidStory, strings.Join(keys, ", "))
	}

	for i := range s.Chapters {
		s.Chapters[i].Body = strings.TrimSpace(s.Chapters[i].Body)
	}

	if len(s.Chapters) == 0 {
		return nil, fmt.Errorf("%w: %q", shared.ErrEmptyStory, s.Title)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidStory, err)
	}
	return &s, nil
}

// Load reads the story at path. An empty path returns [Default].
func Load(path string) (*models.Story, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story file: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in story.
func Default() *models.Story {
	s, err := Parse(exampleStory)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded story: %v", err))
	}
	return s
}

// Example returns the raw TOML of the built-in story, for use as a template.
func Example() []byte {
	return exampleStory
}
