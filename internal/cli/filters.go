package cli

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jvillar/filtersquash/internal/gmail"
)

func (c *FiltersListCmd) Run(ctx *Context) error {
	runCtx := context.Background()
	client, err := gmail.NewClient(runCtx, ctx.Config, ctx.Formatter)
	if err != nil {
		return err
	}

	ctx.Formatter.Verbosef("Listing filters...")

	rules, err := client.ListFilters(runCtx)
	if err != nil {
		return err
	}

	if ctx.Formatter.JSON {
		return ctx.Formatter.PrintJSON(map[string]interface{}{
			"count":   len(rules),
			"filters": rules,
		})
	}

	if len(rules) == 0 {
		fmt.Println("No filters found.")
		return nil
	}

	table := ctx.Formatter.NewTable("ID", "CRITERIA", "ACTION")
	for _, r := range rules {
		table.AddRow(r.ID, r.Criteria.String(), r.Action.String())
	}
	table.Flush()

	fmt.Printf("\n%d filters\n", len(rules))
	return nil
}

func (c *FiltersExportCmd) Run(ctx *Context) error {
	runCtx := context.Background()
	client, err := gmail.NewClient(runCtx, ctx.Config, ctx.Formatter)
	if err != nil {
		return err
	}

	rules, err := client.ListFilters(runCtx)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("marshal filters: %w", err)
	}

	if c.Out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(c.Out, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", c.Out, err)
	}
	ctx.Formatter.PrintSuccess(fmt.Sprintf("Exported %d filters to %s", len(rules), c.Out))
	return nil
}
