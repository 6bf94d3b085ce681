// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"
)

// RenderCall is one recorded [deck.Sink.Render] call.
type RenderCall struct {
	Index    int
	Progress float64
}

// RecordingSink is a test double for deck.Sink that keeps every call.
type RecordingSink struct {
	Renders  []RenderCall
	Layers   []int
	MoreFlag []bool
}

func (s *RecordingSink) Render(index int, progress float64) {
	s.Renders = append(s.Renders, RenderCall{Index: index, Progress: progress})
}

func (s *RecordingSink) LayerChanged(index int) {
	s.Layers = append(s.Layers, index)
}

func (s *RecordingSink) SetMoreContent(visible bool) {
	s.MoreFlag = append(s.MoreFlag, visible)
}

// LastRender returns the most recent render call, failing the test when there is none.
func (s *RecordingSink) LastRender(t *testing.T) RenderCall {
	t.Helper()
	if len(s.Renders) == 0 {
		t.Fatal("expected at least one render call")
	}
	return s.Renders[len(s.Renders)-1]
}

// LastMore returns the most recent more-content flag, failing the test when there is none.
func (s *RecordingSink) LastMore(t *testing.T) bool {
	t.Helper()
	if len(s.MoreFlag) == 0 {
		t.Fatal("expected at least one more-content call")
	}
	return s.MoreFlag[len(s.MoreFlag)-1]
}

// Reset forgets all recorded calls.
func (s *RecordingSink) Reset() {
	s.Renders = nil
	s.Layers = nil
	s.MoreFlag = nil
}

// View is one recorded chapter view.
type View struct {
	Chapter int
	Source  string
}

// RecordingJournal is a test double for the presenter's reading log.
type RecordingJournal struct {
	Views []View
	Err   error
}

func (j *RecordingJournal) Record(chapter int, source string) error {
	j.Views = append(j.Views, View{Chapter: chapter, Source: source})
	return j.Err
}

// Last returns the most recent view, failing the test when there is none.
func (j *RecordingJournal) Last(t *testing.T) View {
	t.Helper()
	if len(j.Views) == 0 {
		t.Fatal("expected at least one recorded view")
	}
	return j.Views[len(j.Views)-1]
}

// Clock is a manually advanced wall clock.
type Clock struct {
	t time.Time
}

// NewClock returns a clock frozen at a fixed instant.
func NewClock() *Clock {
	return &Clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time { return c.t }

// Advance moves the clock forward by d and returns the new time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// ApproxEqual reports whether a and b differ by less than 1e-9.
func ApproxEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
