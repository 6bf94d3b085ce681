package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chapters/internal/deck"
	"github.com/desertthunder/chapters/internal/models"
	"github.com/desertthunder/chapters/internal/shared"
	"github.com/desertthunder/chapters/internal/story"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string // file Config was loaded from, if any
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		presentCommand, outlineCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// resolveConfig returns the config named by --config, falling back to the runner's config when
// the flag was left at its default and that file does not exist.
func (r *Runner) resolveConfig(cmd *cli.Command) (*shared.Config, error) {
	path := cmd.String("config")
	if path == "" || path == r.configPath {
		return r.config, nil
	}

	if _, err := os.Stat(path); err != nil {
		if cmd.IsSet("config") {
			return nil, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
		}
		return r.config, nil
	}
	return shared.LoadConfig(path)
}

// loadStory resolves the --story flag, then the configured story, then the built-in story.
func (r *Runner) loadStory(cmd *cli.Command, config *shared.Config) (*models.Story, error) {
	path := cmd.String("story")
	if path == "" {
		path = config.Presenter.Story
	}
	s, err := story.Load(path)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("story loaded", "title", s.Title, "chapters", len(s.Chapters), "path", path)
	return s, nil
}

// openDatabase connects to the configured database and brings its schema up to date.
func (r *Runner) openDatabase(config *shared.Config) (*sql.DB, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// tuning converts the [input] config section into controller tuning. Zero values keep defaults.
func tuning(in shared.InputConfig) deck.Tuning {
	return deck.Tuning{
		WheelWindow:    shared.Millis(in.WheelWindowMS),
		WheelDivisor:   in.WheelDivisor,
		WheelFactor:    in.WheelFactor,
		TouchDivisor:   in.TouchDivisor,
		TouchThreshold: in.TouchThreshold,
		Duration:       shared.Millis(in.AnimationMS),
		StepBackDelay:  shared.Millis(in.StepBackDelayMS),
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
