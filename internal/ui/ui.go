package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/chapters/internal/audio"
	"github.com/desertthunder/chapters/internal/deck"
	"github.com/desertthunder/chapters/internal/models"
)

const (
	defaultWidth      = 80
	defaultHeight     = 24
	defaultWheelStep  = 100
	defaultCellHeight = 16
)

// Recorder receives a chapter view each time the timeline changes.
type Recorder interface {
	Record(chapter int, source string) error
}

// Options configures a [Model].
type Options struct {
	Story         *models.Story
	Tuning        deck.Tuning
	FrameInterval time.Duration
	WheelStep     float64 // delta per wheel notch
	CellHeight    float64 // pixels per row for drag gestures
	Player        audio.Player
	Recorder      Recorder
	Logger        *log.Logger
	Clock         func() time.Time // defaults to time.Now
	SoundOff      bool             // stay muted after the title card
}

// Model represents the presenter state.
type Model struct {
	story   *models.Story
	deck    *deck.Controller
	player  audio.Player
	journal Recorder
	logger  *log.Logger
	keys    keyMap
	help    help.Model

	width  int
	height int
	cache  []panes
	cacheH int
	spans  []span

	started  bool
	soundOff bool
	ticking  bool
	dragging bool
	status   string

	// last values reported by the controller
	index    int
	progress float64
	timeline int
	more     bool

	interval   time.Duration
	wheelStep  float64
	cellHeight float64
}

var (
	_ tea.Model = (*Model)(nil)
	_ deck.Sink = (*Model)(nil)
)

// NewModel creates a presenter for the story. The deck is not started until the reader
// leaves the title card.
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == nil {
		opts.Player = audio.NewSilent()
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 60
	}
	if opts.WheelStep <= 0 {
		opts.WheelStep = defaultWheelStep
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = defaultCellHeight
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	m := &Model{
		story:      opts.Story,
		player:     opts.Player,
		journal:    opts.Recorder,
		logger:     opts.Logger,
		keys:       newKeyMap(),
		help:       help.New(),
		width:      defaultWidth,
		height:     defaultHeight,
		soundOff:   opts.SoundOff,
		interval:   opts.FrameInterval,
		wheelStep:  opts.WheelStep,
		cellHeight: opts.CellHeight,
	}
	m.deck = deck.New(len(opts.Story.Chapters),
		deck.WithSink(m),
		deck.WithTuning(opts.Tuning),
		deck.WithClock(opts.Clock),
		deck.WithLogger(opts.Logger.With("component", "deck")),
	)
	return m
}

// Render implements [deck.Sink].
func (m *Model) Render(index int, progress float64) {
	m.index = index
	m.progress = progress
}

// LayerChanged implements [deck.Sink]: it moves the timeline marker and records the view.
func (m *Model) LayerChanged(index int) {
	m.timeline = index
	if m.journal == nil {
		return
	}
	if err := m.journal.Record(index, m.deck.LastInput().String()); err != nil {
		m.logger.Warn("failed to record chapter view", "chapter", index, "error", err)
		m.status = "reading log unavailable"
	}
}

// SetMoreContent implements [deck.Sink].
func (m *Model) SetMoreContent(visible bool) {
	m.more = visible
}

// Init sets the window title.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.story.Title)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.cache = nil
		return m, nil

	case frameMsg:
		if m.deck.Tick(time.Time(msg)) {
			return m, frameCmd(m.interval)
		}
		m.ticking = false
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		if !m.started {
			return m, m.start()
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if !m.started {
			if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
				return m, m.start()
			}
			return m, nil
		}
		return m, m.handleMouse(msg)
	}
	return m, nil
}

// start leaves the title card, dispatches the first chapter and starts the audio.
func (m *Model) start() tea.Cmd {
	m.started = true
	m.deck.Start()
	if !m.soundOff {
		m.player.Unmute()
	}
	m.logger.Info("presentation started", "story", m.story.Title, "chapters", len(m.story.Chapters))
	return m.ensureFrames()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.mute):
		m.soundOff = audio.Toggle(m.player)
		return nil
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.jump):
		if n := int(msg.Runes[0] - '1'); n < m.deck.Count() {
			m.deck.Jump(n)
		}
		return m.ensureFrames()
	}

	if code, ok := m.keys.deckKey(msg); ok {
		m.deck.Handle(deck.Key{Code: code})
	}
	return m.ensureFrames()
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	y := float64(msg.Y) * m.cellHeight

	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		m.deck.Handle(deck.Wheel{DeltaY: m.wheelStep})
	case msg.Button == tea.MouseButtonWheelUp:
		m.deck.Handle(deck.Wheel{DeltaY: -m.wheelStep})

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y == 0 {
			if i := hit(m.spans, msg.X); i >= 0 {
				m.deck.Jump(i)
			}
			break
		}
		m.dragging = true
		m.deck.Handle(deck.TouchStart{Y: y})
	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.deck.Handle(deck.TouchMove{Y: y})
	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		m.deck.Handle(deck.TouchEnd{Y: y})
	}
	return m.ensureFrames()
}

// ensureFrames starts the frame loop when the deck needs ticks and no loop is running.
func (m *Model) ensureFrames() tea.Cmd {
	if m.ticking || !m.deck.Busy() {
		return nil
	}
	m.ticking = true
	return frameCmd(m.interval)
}

// View renders the title card or the current frame.
func (m *Model) View() string {
	if !m.started {
		return m.renderTitleCard()
	}

	footer := m.renderFooter()
	bodyHeight := max(1, m.height-1-lipgloss.Height(footer))

	if len(m.cache) != len(m.story.Chapters) || m.cacheH != bodyHeight {
		m.cacheH = bodyHeight
		m.cache = make([]panes, len(m.story.Chapters))
		for i, ch := range m.story.Chapters {
			m.cache[i] = renderPanes(ch, i, len(m.story.Chapters), m.width, bodyHeight)
		}
	}

	layers := deck.Layers(len(m.story.Chapters), m.index, m.progress)
	return strings.Join([]string{m.renderHeader(), composite(layers, m.cache, m.width, bodyHeight), footer}, "\n")
}

func (m *Model) renderTitleCard() string {
	block := []string{styles.title.Render(m.story.Title)}
	if m.story.Subtitle != "" {
		block = append(block, m.story.Subtitle, "")
	}
	block = append(block,
		fmt.Sprintf("%d chapters", len(m.story.Chapters)),
		"",
		styles.help.Render("press any key or click to begin"),
	)
	card := lipgloss.JoinVertical(lipgloss.Center, block...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

func (m *Model) renderHeader() string {
	title := " " + m.story.Title + " │"
	offset := lipgloss.Width(title)
	if offset > m.width/3 {
		title, offset = "", 0
	}

	var bar string
	bar, m.spans = timeline(m.story.Chapters, m.timeline, offset, m.width)
	return title + bar
}

func (m *Model) renderFooter() string {
	var left string
	if m.more {
		left = styles.ok.Render("↓ more")
	}

	sound := styles.help.Render("♪ on")
	if m.player.Muted() {
		sound = styles.warn.Render("♪ off")
	}

	right := sound
	if m.status != "" {
		right = styles.err.Render(m.status) + "  " + sound
	}

	helpView := m.help.View(m.keys)
	if m.help.ShowAll {
		return lipgloss.JoinVertical(lipgloss.Left, helpView, m.footerLine(left, right))
	}
	return m.footerLine(left+"  "+helpView, right)
}

// footerLine puts left and right at the edges of one terminal row.
func (m *Model) footerLine(left, right string) string {
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
