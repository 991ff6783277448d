package cli

import (
	"context"

	"github.com/jvillar/filtersquash/internal/gmail"
	"github.com/jvillar/filtersquash/internal/squash"
)

func (c *SquashCmd) Run(ctx *Context) error {
	if !c.Apply {
		ctx.Formatter.Infof("Running in dry-run mode. No changes will be applied.")
	}

	runCtx := context.Background()
	client, err := gmail.NewClient(runCtx, ctx.Config, ctx.Formatter)
	if err != nil {
		return err
	}

	runner := &squash.Runner{
		Dir:    client,
		Out:    ctx.Formatter,
		Apply:  c.Apply,
		Backup: c.Backup,
	}

	res, err := runner.Run(runCtx)
	if err != nil {
		return err
	}

	if ctx.Formatter.JSON {
		return ctx.Formatter.PrintJSON(res)
	}
	return nil
}
