// package formatter exports a story outline to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/desertthunder/chapters/internal/models"
	"github.com/desertthunder/chapters/internal/shared"
)

// TextWidth is the wrap width of prose in plain text exports.
const TextWidth = 72

// Format names an export format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatMarkdown, FormatText, FormatCSV, FormatJSON}

// ParseFormat accepts a format name or a common alias ("markdown", "text").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
}

// Export renders the story outline in format f.
func Export(story *models.Story, f Format) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return ExportToMarkdown(story)
	case FormatText:
		return ExportToText(story)
	case FormatCSV:
		return ExportToCSV(story)
	case FormatJSON:
		return shared.MarshalJSON(story, true)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
}

// ExportToCSV converts a story to CSV format with columns: Chapter, Period, Title, Heading, Words
func ExportToCSV(story *models.Story) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Chapter", "Period", "Title", "Heading", "Words"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, ch := range story.Chapters {
		record := []string{
			strconv.Itoa(i + 1),
			ch.Period,
			ch.Title,
			ch.Heading,
			strconv.Itoa(len(strings.Fields(ch.Body))),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a story to Markdown with one section per chapter
func ExportToMarkdown(story *models.Story) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", story.Title))
	if story.Subtitle != "" {
		buf.WriteString(fmt.Sprintf("_%s_\n\n", story.Subtitle))
	}
	buf.WriteString(fmt.Sprintf("**Chapters**: %d\n\n", len(story.Chapters)))

	buf.WriteString("## Contents\n\n")
	for i, ch := range story.Chapters {
		buf.WriteString(fmt.Sprintf("%d. [%s](#%s)", i+1, ch.Title, anchor(ch.Title)))
		if ch.Period != "" {
			buf.WriteString(fmt.Sprintf(" (%s)", ch.Period))
		}
		buf.WriteString("\n")
	}

	for _, ch := range story.Chapters {
		buf.WriteString(fmt.Sprintf("\n## %s\n\n", ch.Title))
		if ch.Period != "" {
			buf.WriteString(fmt.Sprintf("**Period**: %s\n\n", ch.Period))
		}
		if ch.Heading != "" {
			buf.WriteString(fmt.Sprintf("### %s\n\n", ch.Heading))
		}
		if ch.Body != "" {
			buf.WriteString(ch.Body)
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a story to plain text with prose wrapped at [TextWidth]
func ExportToText(story *models.Story) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Story: %s\n", story.Title))
	if story.Subtitle != "" {
		buf.WriteString(fmt.Sprintf("Subtitle: %s\n", story.Subtitle))
	}
	buf.WriteString(fmt.Sprintf("Chapters: %d\n", len(story.Chapters)))

	for i, ch := range story.Chapters {
		buf.WriteString(fmt.Sprintf("\n%d. %s", i+1, ch.Title))
		if ch.Period != "" {
			buf.WriteString(fmt.Sprintf(" [%s]", ch.Period))
		}
		buf.WriteString("\n")
		if ch.Heading != "" {
			buf.WriteString(indent.String(ch.Heading, 3) + "\n")
		}
		if ch.Body != "" {
			wrapped := wordwrap.String(ch.Body, TextWidth-3)
			buf.WriteString(indent.String(wrapped, 3) + "\n")
		}
	}

	return buf.Bytes(), nil
}

// WriteExport writes the outline to path. An empty path or a directory gets "{slug}.{format}".
//
// Returns the path written.
func WriteExport(story *models.Story, f Format, path string) (string, error) {
	name := fmt.Sprintf("%s.%s", Slug(story.Title), f)
	if path == "" {
		path = name
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, name)
	}

	data, err := Export(story, f)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", f, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", f, err)
	}

	return path, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and joins its alphanumeric runs with dashes.
func Slug(s string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		return "story"
	}
	return slug
}

// anchor matches the heading IDs GitHub generates for Markdown headings.
func anchor(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r == ' ':
			b.WriteRune('-')
		case r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}
	return b.String()
}
