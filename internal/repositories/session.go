package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/chapters/internal/models"
	"github.com/desertthunder/chapters/internal/shared"
)

var _ models.Repository[*models.Session] = (*SessionRepository)(nil)

// SessionRepository implements models.Repository[*models.Session].
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, sequence, story_title, chapter_count, started_at, ended_at, created_at, updated_at, deleted_at`

// Create inserts a new session with generated ID and sequence
func (r *SessionRepository) Create(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "sessions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	session.SetID(shared.GenerateID())
	session.SetSequence(sequence)

	query := `
		INSERT INTO sessions (id, sequence, story_title, chapter_count, started_at, ended_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		session.ID(),
		session.Sequence(),
		session.StoryTitle(),
		session.ChapterCount(),
		session.StartedAt(),
		nullTime(session.EndedAt()),
		session.CreatedAt(),
		session.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID, excluding soft-deleted sessions
func (r *SessionRepository) Get(id string) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ? AND deleted_at IS NULL`

	session, err := scanSession(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
	}
	return session, err
}

// Update writes the session's end time.
func (r *SessionRepository) Update(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	session.SetUpdatedAt(now)

	query := `
		UPDATE sessions
		SET ended_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, nullTime(session.EndedAt()), now, session.ID())
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return expectRow(result, session.ID())
}

// Delete soft-deletes a session by ID
func (r *SessionRepository) Delete(id string) error {
	query := `
		UPDATE sessions
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return expectRow(result, id)
}

// List retrieves sessions newest first, excluding soft-deleted sessions.
//
// Supported criteria: "story" (string) filters by story title, "limit" (int) caps the result.
func (r *SessionRepository) List(criteria map[string]any) ([]*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE deleted_at IS NULL`
	args := []any{}

	if story, ok := criteria["story"].(string); ok && story != "" {
		query += " AND story_title = ?"
		args = append(args, story)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sessions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*models.Session, error) {
	var (
		id           string
		sequence     int
		storyTitle   string
		chapterCount int
		startedAt    time.Time
		endedAt      sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := row.Scan(&id, &sequence, &storyTitle, &chapterCount, &startedAt, &endedAt, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	return models.RestoreSession(id, sequence, storyTitle, chapterCount, startedAt,
		timePtr(endedAt), createdAt, updatedAt, timePtr(deletedAt)), nil
}

func expectRow(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
