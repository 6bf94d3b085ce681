package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/chapters/internal/models"
	"github.com/desertthunder/chapters/internal/shared"
)

// ViewRepository stores chapter views. Views are append-only.
type ViewRepository struct {
	db *sql.DB
}

// NewViewRepository creates a new ViewRepository with the given database connection
func NewViewRepository(db *sql.DB) *ViewRepository {
	return &ViewRepository{db: db}
}

// Create inserts a view with a generated ID.
func (r *ViewRepository) Create(view *models.ChapterView) error {
	if err := view.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	view.SetID(shared.GenerateID())

	query := `
		INSERT INTO chapter_views (id, session_id, chapter, source, viewed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		view.ID(),
		view.SessionID(),
		view.Chapter(),
		view.Source(),
		view.ViewedAt(),
		view.CreatedAt(),
		view.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chapter view: %w", err)
	}

	return nil
}

// ListBySession returns a session's views in the order they happened.
func (r *ViewRepository) ListBySession(sessionID string) ([]*models.ChapterView, error) {
	query := `
		SELECT id, session_id, chapter, source, viewed_at, created_at, updated_at
		FROM chapter_views
		WHERE session_id = ?
		ORDER BY viewed_at ASC, rowid ASC
	`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapter views: %w", err)
	}
	defer rows.Close()

	var views []*models.ChapterView
	for rows.Next() {
		var (
			id        string
			session   string
			chapter   int
			source    string
			viewedAt  time.Time
			createdAt time.Time
			updatedAt time.Time
		)

		if err := rows.Scan(&id, &session, &chapter, &source, &viewedAt, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chapter view: %w", err)
		}
		views = append(views, models.RestoreChapterView(id, session, chapter, source, viewedAt, createdAt, updatedAt))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return views, nil
}

// CountBySession returns the number of views recorded for a session.
func (r *ViewRepository) CountBySession(sessionID string) (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM chapter_views WHERE session_id = ?", sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count chapter views: %w", err)
	}
	return n, nil
}

// DistinctChapters returns how many different chapters a session reached.
func (r *ViewRepository) DistinctChapters(sessionID string) (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(DISTINCT chapter) FROM chapter_views WHERE session_id = ?", sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count chapters: %w", err)
	}
	return n, nil
}
