package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jvillar/filtersquash/internal/config"
)

func (c *ConfigInitCmd) Run(ctx *Context) error {
	fmt.Println("filtersquash Configuration Wizard")
	fmt.Println("=================================")
	fmt.Println()
	fmt.Println("This wizard configures access to the Gmail settings API.")
	fmt.Println("You need an OAuth client secret JSON (\"Desktop app\" type) from the")
	fmt.Println("Google Cloud console, with the gmail.settings.basic scope enabled.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	cfg := config.DefaultConfig()

	fmt.Printf("Path to client secret JSON [%s]: ", config.DefaultCredentialsFile)
	credPath, _ := reader.ReadString('\n')
	credPath = strings.TrimSpace(credPath)
	if credPath != "" {
		cfg.Auth.CredentialsFile = credPath
	}

	resolved, err := cfg.CredentialsPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(resolved); err != nil {
		fmt.Printf("Note: %s does not exist yet. Place the client secret there before running 'filtersquash auth login'.\n", resolved)
	}

	fmt.Printf("Gmail account (optional, used to label the stored token): ")
	account, _ := reader.ReadString('\n')
	cfg.Auth.Account = strings.TrimSpace(account)

	fmt.Printf("Token store, 'keyring' or 'file' [%s]: ", config.TokenStoreKeyring)
	store, _ := reader.ReadString('\n')
	store = strings.TrimSpace(store)
	switch store {
	case "", config.TokenStoreKeyring:
		cfg.Auth.TokenStore = config.TokenStoreKeyring
	case config.TokenStoreFile:
		cfg.Auth.TokenStore = config.TokenStoreFile
	default:
		return fmt.Errorf("invalid token store %q", store)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(""); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	fmt.Println()
	fmt.Println("Next: filtersquash auth login")
	return nil
}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	if ctx.Config == nil {
		return fmt.Errorf("no configuration found - run 'filtersquash config init' first")
	}

	if ctx.Formatter.JSON {
		return ctx.Formatter.PrintJSON(map[string]interface{}{
			"auth": map[string]interface{}{
				"credentials_file": ctx.Config.Auth.CredentialsFile,
				"token_store":      ctx.Config.Auth.TokenStore,
				"token_file":       ctx.Config.Auth.TokenFile,
				"account":          ctx.Config.Auth.Account,
			},
			"defaults": map[string]interface{}{
				"format": ctx.Config.Defaults.Format,
			},
		})
	}

	configPath, _ := config.ConfigPath()
	fmt.Printf("Configuration file: %s\n\n", configPath)

	fmt.Println("Auth:")
	fmt.Printf("  Credentials file: %s\n", ctx.Config.Auth.CredentialsFile)
	fmt.Printf("  Token store:      %s\n", ctx.Config.Auth.TokenStore)
	if ctx.Config.Auth.TokenStore == config.TokenStoreFile {
		fmt.Printf("  Token file:       %s\n", ctx.Config.Auth.TokenFile)
	}
	if ctx.Config.Auth.Account != "" {
		fmt.Printf("  Account:          %s\n", ctx.Config.Auth.Account)
	}

	fmt.Println("Defaults:")
	fmt.Printf("  Format: %s\n", ctx.Config.Defaults.Format)
	return nil
}

func (c *ConfigSetCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	switch c.Key {
	case "auth.credentials_file":
		cfg.Auth.CredentialsFile = c.Value
	case "auth.token_store":
		if c.Value != config.TokenStoreKeyring && c.Value != config.TokenStoreFile {
			return fmt.Errorf("auth.token_store must be %q or %q", config.TokenStoreKeyring, config.TokenStoreFile)
		}
		cfg.Auth.TokenStore = c.Value
	case "auth.token_file":
		cfg.Auth.TokenFile = c.Value
	case "auth.account":
		cfg.Auth.Account = c.Value
	case "defaults.format":
		if c.Value != "text" && c.Value != "json" {
			return fmt.Errorf("defaults.format must be \"text\" or \"json\"")
		}
		cfg.Defaults.Format = c.Value
	default:
		return fmt.Errorf("unknown configuration key %q", c.Key)
	}

	if err := cfg.Save(ctx.Globals.Config); err != nil {
		return err
	}
	ctx.Formatter.PrintSuccess(fmt.Sprintf("%s = %s", c.Key, c.Value))
	return nil
}

func (c *ConfigPathCmd) Run(ctx *Context) error {
	path := ctx.Globals.Config
	if path == "" {
		var err error
		path, err = config.ConfigPath()
		if err != nil {
			return err
		}
	}
	fmt.Println(path)
	return nil
}
