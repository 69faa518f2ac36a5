package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rugwirobaker/logshape/internal/command"
	"github.com/rugwirobaker/logshape/internal/config"
	"github.com/rugwirobaker/logshape/internal/flag"
	"github.com/rugwirobaker/logshape/internal/iostreams"
	"github.com/spf13/cobra"
)

func NewInitCommand() *cobra.Command {
	const (
		long  = "Creates a default logshape configuration file at the specified path"
		short = "Creates configuration file"
	)

	cmd := command.New("init", short, long, runInit)
	cmd.Args = cobra.NoArgs

	flag.Add(cmd,
		flag.String{
			Name:        "path",
			Shorthand:   "p",
			Description: "The path to write the configuration file",
			Default:     defaultConfigFile,
		},
	)
	return cmd
}

func runInit(ctx context.Context) (err error) {
	var path = flag.GetString(ctx, "path")

	cfg := config.Default()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("could not create configuration file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close configuration file: %w", cerr)
		}
	}()

	if err := cfg.Write(file); err != nil {
		return fmt.Errorf("could not write configuration file: %w", err)
	}

	fmt.Fprintf(iostreams.FromContext(ctx).Out, "Wrote %s\n", path)
	return
}
