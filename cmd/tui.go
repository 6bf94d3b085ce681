package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chapters/internal/audio"
	"github.com/desertthunder/chapters/internal/repositories"
	"github.com/desertthunder/chapters/internal/shared"
	"github.com/desertthunder/chapters/internal/ui"
)

// Present launches the interactive presenter.
func (r *Runner) Present(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, err := r.loadStory(cmd, config)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logger, err := r.tuiLogger(config.Log)
	if err != nil {
		return err
	}
	r.SetLogger(logger)

	player, soundOff := r.openAudio(config.Audio, cmd.Bool("no-audio"))
	defer player.Close()

	var recorder ui.Recorder
	if !cmd.Bool("no-log") {
		if db, journal := r.openJournal(config, s.Title, len(s.Chapters)); journal != nil {
			defer db.Close()
			defer journal.Close()
			recorder = journal
		}
	}

	model := ui.NewModel(ui.Options{
		Story:         s,
		Tuning:        tuning(config.Input),
		FrameInterval: config.Presenter.FrameInterval(),
		WheelStep:     config.Presenter.WheelStep,
		CellHeight:    config.Presenter.CellHeight,
		Player:        player,
		Recorder:      recorder,
		Logger:        r.logger,
		SoundOff:      soundOff,
	})

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running presenter: %w", err)
	}

	return nil
}

func (r *Runner) tuiLogger(cfg shared.LogConfig) (*log.Logger, error) {
	if cfg.Path == "" {
		return log.New(io.Discard), nil
	}

	logger, err := shared.NewFileLogger(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(logger, shared.ParseLogLevel(cfg.Level))
	return shared.WithLogger(logger, "component", "presenter"), nil
}

// openAudio returns the background player and whether sound starts off. Audio failures fall
// back to a silent player so the presenter still runs.
func (r *Runner) openAudio(cfg shared.AudioConfig, disabled bool) (audio.Player, bool) {
	if disabled || !cfg.Enabled {
		return audio.NewSilent(), true
	}

	player, err := audio.NewBeepPlayer(audio.Options{
		Path:       cfg.Path,
		Volume:     cfg.Volume,
		SampleRate: cfg.SampleRate,
		Logger:     r.logger.With("component", "audio"),
	})
	if err != nil {
		r.logger.Warn("audio unavailable, continuing without sound", "error", err)
		return audio.NewSilent(), true
	}
	return player, false
}

// openJournal starts a reading-log session. Failures are logged and the presenter runs unrecorded.
func (r *Runner) openJournal(config *shared.Config, title string, chapters int) (*sql.DB, *repositories.Journal) {
	db, err := r.openDatabase(config)
	if err != nil {
		r.logger.Warn("reading log disabled", "error", err)
		return nil, nil
	}

	journal := repositories.NewJournal(db, r.logger.With("component", "journal"))
	if err := journal.Begin(title, chapters); err != nil {
		r.logger.Warn("failed to start reading session", "error", err)
		db.Close()
		return nil, nil
	}
	return db, journal
}
