package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/followdiff"
	"github.com/fwojciec/followdiff/config"
	"github.com/fwojciec/followdiff/fs"
	"github.com/fwojciec/followdiff/pipeline"
	"github.com/fwojciec/followdiff/report"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *config.Config
	Extractor followdiff.RecordExtractor
	Importer  *pipeline.Importer
	Renderer  *report.Renderer
	// Automator launches the browser on first use.
	Automator func() (followdiff.Automator, error)
	Format    report.Format
	// Output is the report file. Empty means Stdout.
	Output   string
	Progress bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ConfigFile    string `name:"config" short:"c" type:"path" help:"Config file (default: .followdiff.yaml or ~/.config/followdiff/config.yaml)"`
	LogLevel      string `help:"Log level: debug, info, warn or error"`
	Verbose       bool   `short:"v" help:"Also write log records to stderr"`
	Headless      bool   `help:"Hide the browser window"`
	UserDataDir   string `type:"path" help:"Chrome profile directory"`
	CaseSensitive bool   `help:"Compare usernames case-sensitively"`
	Format        string `short:"f" default:"table" enum:"table,json,csv,html,markdown,xml" help:"Report format (${enum})"`
	Output        string `short:"o" type:"path" help:"Write the report to a file"`
	NoColor       bool   `help:"Disable colored output"`
	NoProgress    bool   `help:"Disable progress bars"`

	Import         ImportCmd         `cmd:"" help:"Import a data export archive and list non-followers"`
	Diff           DiffCmd           `cmd:"" help:"Compare a followers file with a following file"`
	Parse          ParseCmd          `cmd:"" help:"List the accounts in one export file"`
	Login          LoginCmd          `cmd:"" help:"Check or establish the browser login"`
	Open           OpenCmd           `cmd:"" help:"Open a profile in the browser"`
	Unfollow       UnfollowCmd       `cmd:"" help:"Unfollow accounts"`
	RemoveRequests RemoveRequestsCmd `cmd:"" name:"remove-requests" help:"Remove follow requests you have received"`
	Settings       ConfigCmd         `cmd:"" name:"config" help:"Print the effective configuration"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Archive    string `arg:"" type:"path" help:"Data export zip"`
	ExtractDir string `type:"path" help:"Directory to expand the archive into"`
	All        bool   `short:"a" help:"Show every list, not only non-followers"`
}

// DiffCmd is the "diff" subcommand.
type DiffCmd struct {
	Followers string `arg:"" help:"followers_1.html"`
	Following string `arg:"" help:"following.html"`
	All       bool   `short:"a" help:"Show both lists too"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File string `arg:"" help:"Export HTML file"`
	Kind string `short:"k" help:"List kind (followers, following, requests_received, requests_sent)"`
}

// LoginCmd is the "login" subcommand.
type LoginCmd struct {
	Wait time.Duration `default:"0s" help:"Keep the browser open up to this long for a manual login"`
	Poll time.Duration `default:"5s" hidden:"" help:"Interval between login checks"`
}

// OpenCmd is the "open" subcommand.
type OpenCmd struct {
	Target string `arg:"" help:"Username or URL"`
}

// TargetFlags select the accounts a bulk action applies to.
type TargetFlags struct {
	Usernames   []string `arg:"" optional:"" help:"Usernames"`
	FromArchive string   `type:"path" xor:"source" help:"Take targets from a data export zip"`
	FromFile    string   `type:"path" xor:"source" help:"Take targets from an export HTML file"`
	Limit       int      `help:"Act on at most this many accounts (0 = all)"`
	Simulate    bool     `short:"n" help:"Report what would be done without opening the browser"`
	Yes         bool     `short:"y" help:"Confirm acting on the live account"`
}

// UnfollowCmd is the "unfollow" subcommand. With --from-archive the
// targets are the non-followers of the export.
type UnfollowCmd struct {
	Targets TargetFlags `embed:""`
}

// RemoveRequestsCmd is the "remove-requests" subcommand. With
// --from-archive the targets are the follow requests received in the export.
type RemoveRequestsCmd struct {
	Targets TargetFlags `embed:""`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct{}

// applyFlags overrides configuration with explicitly set flags.
func (c *CLI) applyFlags(cfg *config.Config) {
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.Headless {
		cfg.Browser.Headless = true
	}
	if c.UserDataDir != "" {
		cfg.Browser.UserDataDir = c.UserDataDir
	}
}

// writeReport renders sections to the configured output.
func writeReport(deps *Dependencies, sections []report.Section) error {
	if deps.Output == "" {
		return deps.Renderer.Render(deps.Stdout, deps.Format, sections)
	}

	return fs.WriteFile(deps.Output, func(w io.Writer) error {
		return deps.Renderer.Render(w, deps.Format, sections)
	})
}
