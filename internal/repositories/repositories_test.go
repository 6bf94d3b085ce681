package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/chapters/internal/models"
	"github.com/desertthunder/chapters/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "sessions")
		if err != nil {
			t.Fatalf("failed to get sequence: %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for table without a sequence")
	}
}

func TestSessionRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := models.NewSession(0, "Lighthouse", 5)

		if err := repo.Create(session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
		if session.ID() == "" {
			t.Error("session ID should be set after creation")
		}
		if session.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", session.Sequence())
		}
	})

	t.Run("CreateInvalid", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		if err := repo.Create(models.NewSession(0, "", 5)); err == nil {
			t.Fatal("expected validation error for empty story title")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := models.NewSession(0, "Lighthouse", 5)
		if err := repo.Create(session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		retrieved, err := repo.Get(session.ID())
		if err != nil {
			t.Fatalf("failed to get session: %v", err)
		}
		if retrieved.StoryTitle() != "Lighthouse" {
			t.Errorf("expected story title Lighthouse, got %s", retrieved.StoryTitle())
		}
		if retrieved.ChapterCount() != 5 {
			t.Errorf("expected 5 chapters, got %d", retrieved.ChapterCount())
		}
		if retrieved.EndedAt() != nil {
			t.Error("new session should not have an end time")
		}
	})

	t.Run("GetNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		_, err := NewSessionRepository(db).Get("nonexistent-id")
		if !errors.Is(err, shared.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := models.NewSession(0, "Lighthouse", 5)
		if err := repo.Create(session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		session.End(session.StartedAt().Add(time.Minute))
		if err := repo.Update(session); err != nil {
			t.Fatalf("failed to update session: %v", err)
		}

		retrieved, err := repo.Get(session.ID())
		if err != nil {
			t.Fatalf("failed to get session: %v", err)
		}
		if retrieved.EndedAt() == nil {
			t.Fatal("expected end time to be stored")
		}
		if d := retrieved.Duration(); d != time.Minute {
			t.Errorf("expected 1m duration, got %v", d)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := models.NewSession(0, "Lighthouse", 5)
		if err := repo.Create(session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		if err := repo.Delete(session.ID()); err != nil {
			t.Fatalf("failed to delete session: %v", err)
		}
		if _, err := repo.Get(session.ID()); err == nil {
			t.Error("expected error when getting deleted session")
		}
		if err := repo.Delete(session.ID()); !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound on second delete, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		for _, title := range []string{"Lighthouse", "Harbor", "Lighthouse"} {
			if err := repo.Create(models.NewSession(0, title, 3)); err != nil {
				t.Fatalf("failed to create session: %v", err)
			}
		}

		all, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list sessions: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 sessions, got %d", len(all))
		}
		if all[0].Sequence() != 3 {
			t.Errorf("expected newest session first, got sequence %d", all[0].Sequence())
		}

		limited, err := repo.List(map[string]any{"limit": 2})
		if err != nil {
			t.Fatalf("failed to list sessions: %v", err)
		}
		if len(limited) != 2 {
			t.Errorf("expected 2 sessions, got %d", len(limited))
		}

		filtered, err := repo.List(map[string]any{"story": "Harbor"})
		if err != nil {
			t.Fatalf("failed to list sessions: %v", err)
		}
		if len(filtered) != 1 || filtered[0].StoryTitle() != "Harbor" {
			t.Errorf("expected one Harbor session, got %d", len(filtered))
		}
	})
}

func TestViewRepository(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	sessions := NewSessionRepository(db)
	session := models.NewSession(0, "Lighthouse", 5)
	if err := sessions.Create(session); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	views := NewViewRepository(db)
	for _, v := range []struct {
		chapter int
		source  string
	}{{0, "start"}, {1, "wheel"}, {2, "key"}, {1, "touch"}} {
		if err := views.Create(models.NewChapterView(session.ID(), v.chapter, v.source)); err != nil {
			t.Fatalf("failed to create view: %v", err)
		}
	}

	t.Run("ListBySession", func(t *testing.T) {
		got, err := views.ListBySession(session.ID())
		if err != nil {
			t.Fatalf("failed to list views: %v", err)
		}
		if len(got) != 4 {
			t.Fatalf("expected 4 views, got %d", len(got))
		}
		if got[0].Source() != "start" || got[3].Source() != "touch" {
			t.Errorf("views out of order: first=%s last=%s", got[0].Source(), got[3].Source())
		}
	})

	t.Run("Counts", func(t *testing.T) {
		n, err := views.CountBySession(session.ID())
		if err != nil || n != 4 {
			t.Errorf("expected 4 views, got %d (%v)", n, err)
		}
		d, err := views.DistinctChapters(session.ID())
		if err != nil || d != 3 {
			t.Errorf("expected 3 distinct chapters, got %d (%v)", d, err)
		}
	})

	t.Run("UnknownSession", func(t *testing.T) {
		if err := views.Create(models.NewChapterView("nonexistent", 0, "wheel")); err == nil {
			t.Error("expected foreign key error for unknown session")
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		if err := views.Create(models.NewChapterView(session.ID(), 0, "")); err == nil {
			t.Error("expected validation error for empty source")
		}
	})
}

func TestJournal(t *testing.T) {
	t.Run("RecordBeforeBegin", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		j := NewJournal(db, nil)
		if err := j.Record(1, "wheel"); err != nil {
			t.Fatalf("record before begin should be a no-op, got %v", err)
		}
		if err := j.Close(); err != nil {
			t.Fatalf("close before begin should be a no-op, got %v", err)
		}
	})

	t.Run("Lifecycle", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		j := NewJournal(db, nil)
		if err := j.Begin("Lighthouse", 5); err != nil {
			t.Fatalf("failed to begin: %v", err)
		}
		if err := j.Begin("Lighthouse", 5); err == nil {
			t.Error("expected error when beginning twice")
		}

		session := j.Session()
		if session == nil {
			t.Fatal("expected open session")
		}

		_ = j.Record(0, "start")
		_ = j.Record(1, "")
		if err := j.Close(); err != nil {
			t.Fatalf("failed to close: %v", err)
		}
		if j.Session() != nil {
			t.Error("session should be cleared after close")
		}

		views, err := NewViewRepository(db).ListBySession(session.ID())
		if err != nil {
			t.Fatalf("failed to list views: %v", err)
		}
		if len(views) != 2 {
			t.Fatalf("expected 2 views, got %d", len(views))
		}
		if views[1].Source() != "unknown" {
			t.Errorf("expected empty source to be stored as unknown, got %s", views[1].Source())
		}

		stored, err := NewSessionRepository(db).Get(session.ID())
		if err != nil {
			t.Fatalf("failed to get session: %v", err)
		}
		if stored.EndedAt() == nil {
			t.Error("expected closed session to have an end time")
		}
	})
}
