package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/workshopsize/pkg/cli/config"
	"github.com/m-mizutani/workshopsize/pkg/domain/types"
	"github.com/m-mizutani/workshopsize/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// runConfig holds settings that are not exposed as flags
type runConfig struct {
	stdout io.Writer
	stderr io.Writer
}

// Option is a functional option for Run
type Option func(*runConfig)

// WithStdout sets where reports are written
func WithStdout(w io.Writer) Option {
	return func(c *runConfig) {
		c.stdout = w
	}
}

// WithStderr sets where logs and the progress bar are written
func WithStderr(w io.Writer) Option {
	return func(c *runConfig) {
		c.stderr = w
	}
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	rc := &runConfig{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(rc)
	}

	var (
		loggerCfg config.Logger
		steamCfg  config.Steam
		reportCfg config.Report
		logger    *slog.Logger
	)
	loggerCfg.Writer = rc.stderr

	flags := append(loggerCfg.Flags(), steamCfg.Flags()...)
	flags = append(flags, reportCfg.Flags()...)

	app := &cli.Command{
		Name:      "workshopsize",
		Usage:     "Calculate the total download size of a Steam Workshop collection",
		ArgsUsage: "<collection_url>",
		Version:   types.Version,
		Flags:     flags,
		Writer:    rc.stdout,
		ErrWriter: rc.stderr,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if reportCfg.NoColor {
				color.NoColor = true
				loggerCfg.NoColor = true
			}

			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = logging.With(ctx, logger)
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runSize(ctx, c, rc, &steamCfg, &reportCfg)
		},
		Commands: []*cli.Command{
			cmdServe(&steamCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(rc.stderr, nil))
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
