package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/desertthunder/chapters/internal/deck"
	"github.com/desertthunder/chapters/internal/models"
)

// rowSources returns, for each of height rows, the index of the layer drawn there, or -1
// when every layer has been wiped past that row. Lower indices stack on top.
func rowSources(layers []deck.Layer, height int) []int {
	rows := make([]int, height)
	for r := range rows {
		rows[r] = -1
		for _, l := range layers {
			if r < visibleRows(l, height) {
				rows[r] = l.Index
				break
			}
		}
	}
	return rows
}

// visibleRows converts a layer's visible fraction into whole rows from the top edge.
func visibleRows(l deck.Layer, height int) int {
	n := int(math.Round(l.Visible() * float64(height)))
	return max(0, min(height, n))
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// center pads s on both sides to width cells.
func center(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	pad := (width - runewidth.StringWidth(s)) / 2
	return fit(strings.Repeat(" ", max(0, pad))+s, width)
}

// panes holds the pre-rendered lines of one chapter at the current size.
type panes struct {
	content []string
	text    []string
}

// pane sizes for a terminal width: the content pane takes three fifths.
func paneWidths(width int) (content, text int) {
	if width < 40 {
		return 0, width
	}
	content = width * 3 / 5
	return content, width - content - 1
}

// renderPanes draws chapter i of total into exactly height lines per pane.
func renderPanes(ch models.Chapter, i, total, width, height int) panes {
	cw, tw := paneWidths(width)
	return panes{
		content: contentPane(ch, i, cw, height),
		text:    textPane(ch, i, total, tw, height),
	}
}

func contentPane(ch models.Chapter, i, width, height int) []string {
	if width == 0 {
		return make([]string, height)
	}

	block := []string{
		strings.ToUpper(ch.Label(i)),
		"",
		ch.Heading,
	}
	top := max(0, (height-len(block))/2)

	style := lipgloss.NewStyle().Background(accentFor(ch.Accent, i)).Foreground(lipgloss.Color(ink))
	bold := style.Bold(true)

	lines := make([]string, height)
	for r := range lines {
		plain := fit("", width)
		s := style
		if b := r - top; b >= 0 && b < len(block) {
			plain = center(block[b], width)
			if b == 0 {
				s = bold
			}
		}
		lines[r] = s.Render(plain)
	}
	return lines
}

func textPane(ch models.Chapter, i, total, width, height int) []string {
	const margin = 2
	inner := max(1, width-2*margin)

	raw := []string{
		styles.help.Render(fit(fmt.Sprintf("Chapter %d of %d", i+1, total), inner)),
		styles.ok.Render(fit(ch.Title, inner)),
		fit("", inner),
	}
	for _, line := range strings.Split(wordwrap.String(ch.Body, inner), "\n") {
		raw = append(raw, fit(line, inner))
	}

	gutter := strings.Repeat(" ", margin)
	lines := make([]string, height)
	for r := range lines {
		if r-1 >= 0 && r-1 < len(raw) {
			lines[r] = gutter + raw[r-1] + strings.Repeat(" ", max(0, width-margin-inner))
			continue
		}
		lines[r] = fit("", width)
	}
	return lines
}

// composite stacks the chapter panes row by row according to the layer layout.
func composite(layers []deck.Layer, cache []panes, width, height int) string {
	cw, tw := paneWidths(width)
	blank := panes{content: blankLines(cw, height), text: blankLines(tw, height)}

	var b strings.Builder
	for r, src := range rowSources(layers, height) {
		p := blank
		if src >= 0 && src < len(cache) {
			p = cache[src]
		}
		if cw > 0 {
			b.WriteString(p.content[r])
			b.WriteString(" ")
		}
		b.WriteString(p.text[r])
		if r < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func blankLines(width, height int) []string {
	lines := make([]string, height)
	for r := range lines {
		lines[r] = fit("", width)
	}
	return lines
}

// span is the half-open column range of one timeline segment.
type span struct {
	start, end int
}

// timeline draws the chapter labels with the active one highlighted and returns each
// segment's column range for click hit-testing.
func timeline(chapters []models.Chapter, active, offset, width int) (string, []span) {
	labels := make([]string, len(chapters))
	total := 0
	for i, ch := range chapters {
		labels[i] = " " + ch.Label(i) + " "
		total += runewidth.StringWidth(labels[i])
	}
	if total > width-offset {
		for i := range labels {
			labels[i] = fmt.Sprintf(" %d ", i+1)
		}
	}

	var (
		b     strings.Builder
		spans = make([]span, len(labels))
		col   = offset
	)
	for i, label := range labels {
		w := runewidth.StringWidth(label)
		spans[i] = span{start: col, end: col + w}
		col += w

		switch {
		case i == active:
			b.WriteString(styles.ok.Reverse(true).Render(label))
		case i < active:
			b.WriteString(styles.help.Render(label))
		default:
			b.WriteString(label)
		}
	}
	return b.String(), spans
}

// hit returns the segment under column x, or -1.
func hit(spans []span, x int) int {
	for i, s := range spans {
		if x >= s.start && x < s.end {
			return i
		}
	}
	return -1
}
