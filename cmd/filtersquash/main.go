package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/jvillar/filtersquash/internal/cli"
)

func main() {
	var c cli.CLI

	parser := kong.Must(&c,
		kong.Name("filtersquash"),
		kong.Description("Squash redundant Gmail filters that share an action into one OR-combined sender filter"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	execCtx, err := cli.NewContext(&c.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := ctx.Run(execCtx); err != nil {
		execCtx.Formatter.PrintError(err)
		os.Exit(1)
	}
}
