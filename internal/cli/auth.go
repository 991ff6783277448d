package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jvillar/filtersquash/internal/config"
	"github.com/jvillar/filtersquash/internal/gmail"
)

// Run authenticates against Gmail, caching the token, and verifies the
// session with a real filter listing. The listing doubles as a sanity
// check that the granted scope actually covers the settings API.
func (c *AuthLoginCmd) Run(ctx *Context) error {
	runCtx := context.Background()
	client, err := gmail.NewClient(runCtx, ctx.Config, ctx.Formatter)
	if err != nil {
		return err
	}

	rules, err := client.ListFilters(runCtx)
	if err != nil {
		return err
	}

	if ctx.Formatter.JSON {
		return ctx.Formatter.PrintJSON(map[string]interface{}{
			"authenticated": true,
			"filters":       len(rules),
		})
	}
	ctx.Formatter.PrintSuccess(fmt.Sprintf("Authenticated. The account has %d filters.", len(rules)))
	return nil
}

func (c *AuthStatusCmd) Run(ctx *Context) error {
	tok, err := gmail.CachedToken(ctx.Config)
	if errors.Is(err, config.ErrNoToken) {
		if ctx.Formatter.JSON {
			return ctx.Formatter.PrintJSON(map[string]interface{}{
				"token": false,
				"store": ctx.Config.Auth.TokenStore,
			})
		}
		fmt.Printf("No cached token in the %s store - run 'filtersquash auth login'\n", ctx.Config.Auth.TokenStore)
		return nil
	}
	if err != nil {
		return err
	}

	if ctx.Formatter.JSON {
		return ctx.Formatter.PrintJSON(map[string]interface{}{
			"token":       true,
			"store":       ctx.Config.Auth.TokenStore,
			"valid":       tok.Valid(),
			"refreshable": tok.RefreshToken != "",
			"expiry":      tok.Expiry,
		})
	}

	fmt.Printf("Token store: %s\n", ctx.Config.Auth.TokenStore)
	if ctx.Config.Auth.Account != "" {
		fmt.Printf("Account:     %s\n", ctx.Config.Auth.Account)
	}
	switch {
	case tok.Valid():
		fmt.Printf("Token:       valid, expires %s\n", tok.Expiry.Format(time.RFC3339))
	case tok.RefreshToken != "":
		fmt.Println("Token:       expired, will refresh on next use")
	default:
		fmt.Println("Token:       expired and not refreshable - run 'filtersquash auth login'")
	}
	return nil
}

func (c *AuthLogoutCmd) Run(ctx *Context) error {
	if err := ctx.Config.DeleteToken(); err != nil {
		return fmt.Errorf("delete cached token: %w", err)
	}
	ctx.Formatter.PrintSuccess("Cached token removed.")
	return nil
}
