package main

import (
	"context"

	"github.com/rugwirobaker/logshape/internal/command"
	"github.com/rugwirobaker/logshape/internal/convert"
	"github.com/rugwirobaker/logshape/internal/flag"
	"github.com/rugwirobaker/logshape/internal/iostreams"
	"github.com/rugwirobaker/logshape/internal/render"
	"github.com/spf13/cobra"
)

func NewPreviewCommand() *cobra.Command {
	const (
		long  = "Shows how every line of a log file would be reshaped, without touching the CSV file."
		short = "Previews the reshaped rows"
	)

	cmd := command.New("preview <logfile>", short, long, runPreview)
	cmd.Args = cobra.ExactArgs(1)

	flag.Add(cmd,
		flag.Bool{
			Name:        "json",
			Description: "Print the preview as JSON",
		},
	)
	return cmd
}

func runPreview(ctx context.Context) error {
	io := iostreams.FromContext(ctx)

	rows, err := convert.Preview(flag.FirstArg(ctx))
	if err != nil {
		return err
	}

	if flag.GetBool(ctx, "json") {
		return render.JSON(io.Out, rows)
	}
	render.Preview(io.Out, rows)
	return nil
}
