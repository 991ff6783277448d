package cli

import (
	"github.com/jvillar/filtersquash/internal/config"
	"github.com/jvillar/filtersquash/internal/output"
)

var Version = "0.1.0"

type Globals struct {
	JSON    bool   `help:"Output as JSON" name:"json"`
	Config  string `help:"Path to config file" short:"c" type:"path"`
	Verbose bool   `help:"Verbose output" short:"v"`
	Quiet   bool   `help:"Suppress non-essential output" short:"q"`
	NoColor bool   `help:"Disable colored output" name:"no-color"`
}

type CLI struct {
	Globals

	Squash  SquashCmd  `cmd:"" help:"Merge same-action sender filters into one"`
	Filters FiltersCmd `cmd:"" help:"Inspect and export Gmail filters"`
	Auth    AuthCmd    `cmd:"" help:"Manage the Gmail OAuth session"`
	Config  ConfigCmd  `cmd:"" help:"Configuration management"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type Context struct {
	Config    *config.Config
	Formatter *output.Formatter
	Globals   *Globals
}

func NewContext(globals *Globals) (*Context, error) {
	cfg, loadErr := loadConfig(globals)

	// A missing or unreadable config file is not fatal; commands that
	// need real settings fail with their own guidance.
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	jsonOut := globals.JSON
	if !jsonOut && cfg.Defaults.Format == "json" {
		jsonOut = true
	}
	formatter := output.New(jsonOut, globals.Verbose, globals.Quiet, globals.NoColor)

	// An explicitly named config file that fails to load deserves a
	// heads-up before the run proceeds on defaults.
	if loadErr != nil && globals.Config != "" {
		formatter.Warningf("Could not load %s (%v), using defaults.", globals.Config, loadErr)
	}

	return &Context{
		Config:    cfg,
		Formatter: formatter,
		Globals:   globals,
	}, nil
}

func loadConfig(globals *Globals) (*config.Config, error) {
	if globals.Config != "" {
		return config.Load(globals.Config)
	}
	if config.Exists() {
		return config.Load("")
	}
	return nil, nil
}

// SquashCmd runs the core operation: group filters by action and merge
// each group's sender-only rules into a single OR-joined rule.
type SquashCmd struct {
	Apply  bool   `help:"Apply the changes. Without this flag the run is a dry run and nothing is modified."`
	Backup string `help:"Write a YAML backup of all filters to this path before doing anything else" type:"path"`
}

// FiltersCmd groups read-only filter inspection commands.
type FiltersCmd struct {
	List   FiltersListCmd   `cmd:"" help:"List all filters on the account"`
	Export FiltersExportCmd `cmd:"" help:"Export all filters as YAML"`
}

type FiltersListCmd struct{}

type FiltersExportCmd struct {
	Out string `help:"Output path (default: stdout)" short:"o" type:"path"`
}

// AuthCmd manages the cached OAuth session.
type AuthCmd struct {
	Login  AuthLoginCmd  `cmd:"" help:"Run the OAuth consent flow and cache the token"`
	Status AuthStatusCmd `cmd:"" help:"Show the cached token state"`
	Logout AuthLogoutCmd `cmd:"" help:"Forget the cached token"`
}

type AuthLoginCmd struct{}

type AuthStatusCmd struct{}

type AuthLogoutCmd struct{}

// ConfigCmd handles configuration management
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Interactive setup wizard"`
	Show ConfigShowCmd `cmd:"" help:"Display current configuration"`
	Set  ConfigSetCmd  `cmd:"" help:"Set a configuration value"`
	Path ConfigPathCmd `cmd:"" help:"Print the config file location"`
}

type ConfigInitCmd struct{}

type ConfigShowCmd struct{}

type ConfigSetCmd struct {
	Key   string `arg:"" help:"Configuration key (e.g., auth.credentials_file, auth.token_store)"`
	Value string `arg:"" help:"Value to set"`
}

type ConfigPathCmd struct{}

// VersionCmd shows version information
type VersionCmd struct{}
