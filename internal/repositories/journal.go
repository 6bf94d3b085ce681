package repositories

import (
	"database/sql"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/chapters/internal/models"
)

// Journal records one reading session: the session row plus a view for each timeline change.
//
// The journal is append-only. Nothing reads it back to restore a position.
type Journal struct {
	mu       sync.Mutex
	sessions *SessionRepository
	views    *ViewRepository
	session  *models.Session
	logger   *log.Logger
	now      func() time.Time
}

// NewJournal creates a Journal over db. A nil logger discards output.
func NewJournal(db *sql.DB, logger *log.Logger) *Journal {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Journal{
		sessions: NewSessionRepository(db),
		views:    NewViewRepository(db),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Begin opens a new session for the story.
func (j *Journal) Begin(storyTitle string, chapters int) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.session != nil {
		return fmt.Errorf("session %s already open", j.session.ID())
	}

	session := models.NewSession(0, storyTitle, chapters)
	if err := j.sessions.Create(session); err != nil {
		return err
	}
	j.session = session
	j.logger.Debug("session started", "id", session.ID(), "sequence", session.Sequence())
	return nil
}

// Record appends a view of chapter caused by source. It does nothing before [Journal.Begin].
func (j *Journal) Record(chapter int, source string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.session == nil {
		return nil
	}
	if source == "" {
		source = "unknown"
	}
	view := models.NewChapterView(j.session.ID(), chapter, source)
	if err := j.views.Create(view); err != nil {
		j.logger.Warn("failed to record chapter view", "chapter", chapter, "error", err)
		return err
	}
	return nil
}

// Session returns the open session, or nil.
func (j *Journal) Session() *models.Session {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.session
}

// Close ends the open session. Calling it again is a no-op.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.session == nil {
		return nil
	}
	j.session.End(j.now())
	err := j.sessions.Update(j.session)
	j.logger.Debug("session ended", "id", j.session.ID(), "duration", j.session.Duration(), "error", err)
	j.session = nil
	return err
}
