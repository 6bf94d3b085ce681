package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chapters/internal/formatter"
)

// Outline writes the story outline to stdout or to --output.
func (r *Runner) Outline(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, err := r.loadStory(cmd, config)
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" && output != "-" {
		path, err := formatter.WriteExport(s, format, output)
		if err != nil {
			return err
		}
		r.logger.Info("outline written", "path", path, "format", format)
		return nil
	}

	data, err := formatter.Export(s, format)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", format, err)
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
