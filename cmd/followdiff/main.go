package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/fwojciec/followdiff"
	"github.com/fwojciec/followdiff/config"
	"github.com/fwojciec/followdiff/fs"
	"github.com/fwojciec/followdiff/goquery"
	"github.com/fwojciec/followdiff/htmltomarkdown"
	"github.com/fwojciec/followdiff/pipeline"
	"github.com/fwojciec/followdiff/report"
	"github.com/fwojciec/followdiff/rod"
	fdslog "github.com/fwojciec/followdiff/slog"
	"github.com/fwojciec/followdiff/zip"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Loader resolves configuration. Set before calling Run().
	Loader *config.Loader

	// Now returns the current time, used to name log files.
	Now func() time.Time

	// NewAutomator launches the browser. Replaced in end-to-end tests.
	NewAutomator func(cfg *config.Config, logger *slog.Logger) (followdiff.Automator, error)

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Loader:       config.NewLoader(),
		Now:          time.Now,
		NewAutomator: newRodAutomator,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if cerr := m.closers[i].Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	m.closers = nil
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("followdiff"),
		kong.Description("Find who does not follow you back in an Instagram data export."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'followdiff --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := m.Loader.Load(cli.ConfigFile)
	if err != nil {
		return err
	}
	cli.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "Hint: run 'followdiff config' to see the effective settings")
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, logFile, err := newLogger(cfg, cli.Verbose, stderr, m.now())
	if err != nil {
		return err
	}
	if logFile != nil {
		m.closers = append(m.closers, logFile)
	}
	defer m.Close()

	matcher := followdiff.CaseInsensitive
	if cli.CaseSensitive {
		matcher = followdiff.CaseSensitive
	}

	extractor := fdslog.NewLoggingExtractor(
		goquery.NewExtractor(goquery.WithSelectors(cfg.Extract.AnchorSelector, cfg.Extract.TimestampSelector)),
		logger,
	)

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    logger,
		Config:    cfg,
		Extractor: extractor,
		Importer: &pipeline.Importer{
			Archive:   fdslog.NewLoggingArchiveLoader(zip.NewLoader(), logger),
			Locator:   fdslog.NewLoggingLocator(fs.NewLocator(), logger),
			Extractor: extractor,
			Matcher:   matcher,
			Logger:    logger,
		},
		Renderer: &report.Renderer{
			Converter: htmltomarkdown.NewConverter(),
			Color:     !cli.NoColor && !color.NoColor && cli.Output == "",
		},
		Format:   report.Format(cli.Format),
		Output:   cli.Output,
		Progress: !cli.NoProgress,
		Automator: func() (followdiff.Automator, error) {
			a, err := m.NewAutomator(cfg, logger)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			return fdslog.NewLoggingAutomator(a, logger), nil
		},
	}

	return kongCtx.Run(deps)
}

func (m *Main) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// newRodAutomator launches Chrome on the configured profile.
func newRodAutomator(cfg *config.Config, logger *slog.Logger) (followdiff.Automator, error) {
	manager, err := rod.NewBrowserManager(
		rod.WithHeadless(cfg.Browser.Headless),
		rod.WithUserDataDir(cfg.Browser.UserDataDir),
		rod.WithBin(cfg.Browser.Bin),
		rod.WithLauncherOutput(rod.NewLogWriter(logger)),
	)
	if err != nil {
		return nil, err
	}
	return rod.NewAutomator(manager,
		rod.WithStepTimeout(cfg.Browser.StepTimeout),
		rod.WithSettleDelay(cfg.Browser.SettleDelay),
	), nil
}
