package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chapters/internal/repositories"
	"github.com/desertthunder/chapters/internal/shared"
)

// historyEntry is one session as shown by the history command.
type historyEntry struct {
	ID        string     `json:"id"`
	Sequence  int        `json:"sequence"`
	Story     string     `json:"story"`
	Chapters  int        `json:"chapters"`
	Reached   int        `json:"reached"`
	Views     int        `json:"views"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Duration  string     `json:"duration,omitempty"`
}

// History lists recent reading sessions with their view counts.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return fmt.Errorf("failed to open reading log: %w", err)
	}
	defer db.Close()

	sessions, err := repositories.NewSessionRepository(db).List(map[string]any{
		"limit": cmd.Int("limit"),
		"story": cmd.String("story"),
	})
	if err != nil {
		return err
	}

	views := repositories.NewViewRepository(db)
	entries := make([]historyEntry, 0, len(sessions))
	for _, s := range sessions {
		count, err := views.CountBySession(s.ID())
		if err != nil {
			return err
		}
		reached, err := views.DistinctChapters(s.ID())
		if err != nil {
			return err
		}

		entry := historyEntry{
			ID:        s.ID(),
			Sequence:  s.Sequence(),
			Story:     s.StoryTitle(),
			Chapters:  s.ChapterCount(),
			Reached:   reached,
			Views:     count,
			StartedAt: s.StartedAt(),
			EndedAt:   s.EndedAt(),
		}
		if s.EndedAt() != nil {
			entry.Duration = shared.FormatDuration(s.Duration())
		}
		entries = append(entries, entry)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Reading History")
	if len(entries) == 0 {
		return r.writePlain("No sessions recorded yet.\n")
	}

	for _, e := range entries {
		duration := e.Duration
		if duration == "" {
			duration = "open"
		}
		r.writePlain("#%-4d %s  %-28s %d/%d chapters  %s  %s\n",
			e.Sequence,
			e.StartedAt.Local().Format("2006-01-02 15:04"),
			e.Story,
			e.Reached,
			e.Chapters,
			shared.Plural(e.Views, "view"),
			duration,
		)
	}
	return r.writePlainln("%s", shared.Plural(len(entries), "session"))
}
