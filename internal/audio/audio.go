// Package audio plays the presenter's background loop.
//
// Players start muted; the presenter unmutes once the reader leaves the title card.
package audio

import "sync"

// Player is the audio sink the presenter toggles.
type Player interface {
	Mute()
	Unmute()
	Muted() bool
	Close() error
}

var (
	_ Player = (*Silent)(nil)
	_ Player = (*BeepPlayer)(nil)
)

// Silent is a Player that produces no sound but tracks the mute state,
// so the UI shows the same toggle whether or not audio is available.
type Silent struct {
	mu    sync.Mutex
	muted bool
}

// NewSilent returns a muted Silent player.
func NewSilent() *Silent { return &Silent{muted: true} }

func (s *Silent) Mute() {
	s.mu.Lock()
	s.muted = true
	s.mu.Unlock()
}

func (s *Silent) Unmute() {
	s.mu.Lock()
	s.muted = false
	s.mu.Unlock()
}

func (s *Silent) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *Silent) Close() error { return nil }

// Toggle flips p between muted and playing and reports the new muted state.
func Toggle(p Player) bool {
	if p.Muted() {
		p.Unmute()
	} else {
		p.Mute()
	}
	return p.Muted()
}
