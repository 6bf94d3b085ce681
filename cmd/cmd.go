// submodule cmd contains command definitions
package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chapters/internal/formatter"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   defaultConfigPath,
	}
}

func storyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "story",
		Aliases: []string{"s"},
		Usage:   "Path to a story TOML file (default: config presenter.story, then the built-in story)",
	}
}

// presentCommand launches the interactive presenter.
func presentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "present",
		Aliases: []string{"p", "read"},
		Usage:   "Present a story in the terminal",
		Flags: []cli.Flag{
			configFlag(),
			storyFlag(),
			&cli.BoolFlag{
				Name:  "no-audio",
				Usage: "Disable background audio",
			},
			&cli.BoolFlag{
				Name:  "no-log",
				Usage: "Do not record this session in the reading log",
			},
		},
		Action: r.Present,
	}
}

// outlineCommand exports the story outline.
func outlineCommand(r *Runner) *cli.Command {
	names := make([]string, len(formatter.Formats))
	for i, f := range formatter.Formats {
		names[i] = string(f)
	}

	return &cli.Command{
		Name:  "outline",
		Usage: "Export the story outline",
		Flags: []cli.Flag{
			configFlag(),
			storyFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("Output format (%s)", strings.Join(names, ", ")),
				Value:   string(formatter.FormatMarkdown),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
		},
		Action: r.Outline,
	}
}

// historyCommand lists recorded reading sessions.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent reading sessions",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of sessions to show",
				Value:   10,
			},
			&cli.StringFlag{
				Name:  "story",
				Usage: "Only show sessions for this story title",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.History,
	}
}

// setupCommand writes the config file and initializes the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml, initialize the database and run migrations",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "story-template",
				Usage: "Also write the built-in story to this path as a starting point",
			},
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Revert the most recent migration instead of applying migrations",
			},
		},
		Action: r.Setup,
	}
}
