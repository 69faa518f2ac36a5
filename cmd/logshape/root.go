package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rugwirobaker/logshape/internal/command"
	"github.com/rugwirobaker/logshape/internal/config"
	"github.com/rugwirobaker/logshape/internal/convert"
	"github.com/rugwirobaker/logshape/internal/flag"
	"github.com/rugwirobaker/logshape/internal/iostreams"
	"github.com/rugwirobaker/logshape/internal/logging"
	"github.com/rugwirobaker/logshape/internal/metrics"
	"github.com/rugwirobaker/logshape/internal/render"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "logshape.yaml"

func NewRootCmd() *cobra.Command {
	const (
		long  = "Reads a whitespace-aligned log file, reshapes every line into a timestamp,messageType,path,message row and appends the rows, after a header, to log.csv in the working directory. A log file named like a subcommand (preview, init, help) must be given with a path, e.g. ./preview."
		short = "Converts a log file into CSV rows"
	)

	cmd := command.New("logshape <logfile>", short, long, runShape)
	cmd.Args = cobra.ExactArgs(1)

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
	}

	flag.Add(cmd,
		flag.Config(defaultConfigFile),
		flag.String{
			Name:        "output-dir",
			Shorthand:   "d",
			Description: "Directory holding the CSV file (default: working directory)",
			Aliases:     []string{"dir"},
		},
		flag.String{
			Name:        "output-name",
			Description: "Name of the CSV file (default: log.csv)",
		},
		flag.String{
			Name:        "metrics-file",
			Description: "Write run counters to this file in Prometheus text format",
		},
		flag.String{
			Name:        "log-format",
			Description: "Diagnostic log format: text or json",
		},
		flag.String{
			Name:        "log-path",
			Description: "Also write diagnostic logs to this rotated file",
		},
		flag.Bool{
			Name:        "debug",
			Description: "Enable debug logging",
		},
		flag.Strict(),
	)

	cmd.AddCommand(
		NewPreviewCommand(),
		NewInitCommand(),
	)
	return cmd
}

func runShape(ctx context.Context) error {
	io := iostreams.FromContext(ctx)

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.OverrideWithFlags(ctx)
	if err := cfg.Validate(); err != nil {
		return err
	}

	closer, err := logging.Configure(cfg.Log, io.ErrOut)
	if err != nil {
		return err
	}
	defer closer.Close()

	slog.SetDefault(slog.Default().With("run", logging.RunID()))

	report := convert.File(ctx, cfg, flag.FirstArg(ctx), metrics.New())

	if cfg.Strict {
		if err := report.Err(); err != nil {
			return err
		}
	}

	render.Finished(io.Out)
	return nil
}
