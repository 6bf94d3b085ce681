package models

import (
	"fmt"
	"strings"
	"time"
)

var (
	_ Model = (*Session)(nil)
	_ Model = (*ChapterView)(nil)
)

// Session is one presenter run over a story.
type Session struct {
	id           string
	sequence     int
	storyTitle   string
	chapterCount int
	startedAt    time.Time
	endedAt      *time.Time
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewSession creates a session starting now.
func NewSession(sequence int, storyTitle string, chapterCount int) *Session {
	now := time.Now().UTC()
	return &Session{
		sequence:     sequence,
		storyTitle:   storyTitle,
		chapterCount: chapterCount,
		startedAt:    now,
		createdAt:    now,
		updatedAt:    now,
	}
}

// RestoreSession rebuilds a session from stored values.
func RestoreSession(id string, sequence int, storyTitle string, chapterCount int, startedAt time.Time, endedAt *time.Time, createdAt, updatedAt time.Time, deletedAt *time.Time) *Session {
	return &Session{
		id:           id,
		sequence:     sequence,
		storyTitle:   storyTitle,
		chapterCount: chapterCount,
		startedAt:    startedAt,
		endedAt:      endedAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		deletedAt:    deletedAt,
	}
}

func (s *Session) ID() string            { return s.id }
func (s *Session) Sequence() int         { return s.sequence }
func (s *Session) StoryTitle() string    { return s.storyTitle }
func (s *Session) ChapterCount() int     { return s.chapterCount }
func (s *Session) StartedAt() time.Time  { return s.startedAt }
func (s *Session) EndedAt() *time.Time   { return s.endedAt }
func (s *Session) CreatedAt() time.Time  { return s.createdAt }
func (s *Session) UpdatedAt() time.Time  { return s.updatedAt }
func (s *Session) DeletedAt() *time.Time { return s.deletedAt }

func (s *Session) SetID(id string)           { s.id = id }
func (s *Session) SetSequence(seq int)       { s.sequence = seq }
func (s *Session) SetUpdatedAt(t time.Time)  { s.updatedAt = t }
func (s *Session) SetDeletedAt(t *time.Time) { s.deletedAt = t }

// End marks the session finished at t.
func (s *Session) End(t time.Time) {
	s.endedAt = &t
	s.updatedAt = t
}

// Duration returns how long the session lasted, or zero while it is still open.
func (s *Session) Duration() time.Duration {
	if s.endedAt == nil {
		return 0
	}
	return s.endedAt.Sub(s.startedAt)
}

func (s *Session) Validate() error {
	if strings.TrimSpace(s.storyTitle) == "" {
		return fmt.Errorf("story title is required")
	}
	if s.chapterCount < 1 {
		return fmt.Errorf("chapter count must be positive, got %d", s.chapterCount)
	}
	if s.endedAt != nil && s.endedAt.Before(s.startedAt) {
		return fmt.Errorf("session ends before it starts")
	}
	return nil
}

// ChapterView records a chapter becoming current during a session.
type ChapterView struct {
	id        string
	sessionID string
	chapter   int
	source    string
	viewedAt  time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewChapterView creates a view of chapter (0-based) caused by the named input source.
func NewChapterView(sessionID string, chapter int, source string) *ChapterView {
	now := time.Now().UTC()
	return &ChapterView{
		sessionID: sessionID,
		chapter:   chapter,
		source:    source,
		viewedAt:  now,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreChapterView rebuilds a view from stored values.
func RestoreChapterView(id, sessionID string, chapter int, source string, viewedAt, createdAt, updatedAt time.Time) *ChapterView {
	return &ChapterView{
		id:        id,
		sessionID: sessionID,
		chapter:   chapter,
		source:    source,
		viewedAt:  viewedAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (v *ChapterView) ID() string           { return v.id }
func (v *ChapterView) SessionID() string    { return v.sessionID }
func (v *ChapterView) Chapter() int         { return v.chapter }
func (v *ChapterView) Source() string       { return v.source }
func (v *ChapterView) ViewedAt() time.Time  { return v.viewedAt }
func (v *ChapterView) CreatedAt() time.Time { return v.createdAt }
func (v *ChapterView) UpdatedAt() time.Time { return v.updatedAt }

func (v *ChapterView) SetID(id string) { v.id = id }

func (v *ChapterView) Validate() error {
	if v.sessionID == "" {
		return fmt.Errorf("session ID is required")
	}
	if v.chapter < 0 {
		return fmt.Errorf("chapter must not be negative, got %d", v.chapter)
	}
	if v.source == "" {
		return fmt.Errorf("source is required")
	}
	return nil
}
