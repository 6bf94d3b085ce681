package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// accents cycle through chapters that do not set their own color.
var accents = []string{"#7D56F4", "#04B575", "#FFA500", "#3C91E6", "#E86A92"}

// ink is the foreground drawn over chapter accents.
const ink = "#1A1A1A"

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// accentFor returns the chapter's accent or a rotating default.
func accentFor(accent string, index int) lipgloss.Color {
	if accent != "" {
		return lipgloss.Color(accent)
	}
	return lipgloss.Color(accents[index%len(accents)])
}
