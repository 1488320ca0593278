// Package config loads followdiff settings from defaults, a YAML file,
// .env files and FOLLOWDIFF_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/followdiff/action"
	"github.com/fwojciec/followdiff/goquery"
	"github.com/fwojciec/followdiff/rod"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FOLLOWDIFF_"

// Config holds all followdiff settings.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Browser BrowserConfig `yaml:"browser"`
	Actions ActionsConfig `yaml:"actions"`
	Extract ExtractConfig `yaml:"extract"`
	Import  ImportConfig  `yaml:"import"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Dir         string `yaml:"dir"`
	FileEnabled bool   `yaml:"file_enabled"`
}

// BrowserConfig controls the automation browser.
type BrowserConfig struct {
	UserDataDir string        `yaml:"user_data_dir"`
	Headless    bool          `yaml:"headless"`
	Bin         string        `yaml:"bin"`
	StepTimeout time.Duration `yaml:"step_timeout"`
	SettleDelay time.Duration `yaml:"settle_delay"`
}

// ActionsConfig controls bulk actions.
type ActionsConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// ExtractConfig holds the selectors used to read export pages.
type ExtractConfig struct {
	AnchorSelector    string `yaml:"anchor_selector"`
	TimestampSelector string `yaml:"timestamp_selector"`
}

// ImportConfig controls archive imports.
type ImportConfig struct {
	// ExtractDir overrides the directory archives are expanded into.
	// Empty means next to the archive.
	ExtractDir string `yaml:"extract_dir"`
}

// Default returns the built-in settings rooted at home.
func Default(home string) *Config {
	base := filepath.Join(home, ".followdiff")
	return &Config{
		Log: LogConfig{
			Level:       "info",
			Dir:         filepath.Join(base, "logs"),
			FileEnabled: true,
		},
		Browser: BrowserConfig{
			UserDataDir: filepath.Join(base, "chrome-profile"),
			StepTimeout: rod.DefaultStepTimeout,
			SettleDelay: rod.DefaultSettleDelay,
		},
		Actions: ActionsConfig{
			Interval: action.DefaultInterval,
		},
		Extract: ExtractConfig{
			AnchorSelector:    goquery.DefaultAnchorSelector,
			TimestampSelector: goquery.DefaultTimestampSelector,
		},
	}
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: invalid level %q", c.Log.Level))
	}
	if c.Log.FileEnabled && c.Log.Dir == "" {
		errs = append(errs, errors.New("log.dir: required when file logging is enabled"))
	}
	if c.Browser.StepTimeout <= 0 {
		errs = append(errs, errors.New("browser.step_timeout: must be positive"))
	}
	if c.Browser.SettleDelay < 0 {
		errs = append(errs, errors.New("browser.settle_delay: cannot be negative"))
	}
	if c.Actions.Interval < 0 {
		errs = append(errs, errors.New("actions.interval: cannot be negative"))
	}
	if _, err := cascadia.Compile(c.Extract.AnchorSelector); err != nil {
		errs = append(errs, fmt.Errorf("extract.anchor_selector: %w", err))
	}
	if _, err := cascadia.Compile(c.Extract.TimestampSelector); err != nil {
		errs = append(errs, fmt.Errorf("extract.timestamp_selector: %w", err))
	}

	return errors.Join(errs...)
}

// YAML returns the settings as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Loader resolves settings from the file system and environment.
type Loader struct {
	// Home is the user's home directory.
	Home string
	// Dir is the working directory searched for .followdiff.yaml and .env.
	Dir string
	// Getenv looks up environment variables. Defaults to os.LookupEnv.
	Getenv func(key string) (string, bool)
}

// NewLoader returns a Loader for the current process.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	dir, _ := os.Getwd()
	return &Loader{Home: home, Dir: dir, Getenv: os.LookupEnv}
}

// Load applies defaults, then the YAML file, then .env files, then the
// process environment. An explicit path must exist; otherwise the first
// file found in the standard locations is used, if any.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default(l.Home)

	if path == "" {
		path = l.findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := l.applyEnv(cfg, l.lookup()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile searches the standard locations in order of precedence.
func (l *Loader) findConfigFile() string {
	var locations []string
	if l.Dir != "" {
		locations = append(locations,
			filepath.Join(l.Dir, ".followdiff.yaml"),
			filepath.Join(l.Dir, ".followdiff.yml"),
		)
	}
	if l.Home != "" {
		locations = append(locations,
			filepath.Join(l.Home, ".config", "followdiff", "config.yaml"),
			filepath.Join(l.Home, ".config", "followdiff", "config.yml"),
		)
	}
	for _, loc := range locations {
		if info, err := os.Stat(loc); err == nil && !info.IsDir() {
			return loc
		}
	}
	return ""
}

// lookup layers .env values under the process environment.
func (l *Loader) lookup() func(string) (string, bool) {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.LookupEnv
	}

	dotenv := map[string]string{}
	var files []string
	if l.Home != "" {
		files = append(files, filepath.Join(l.Home, ".followdiff.env"))
	}
	if l.Dir != "" {
		files = append(files, filepath.Join(l.Dir, ".env"))
	}
	// Later files win, so the working directory overrides home.
	for _, f := range files {
		values, err := godotenv.Read(f)
		if err != nil {
			continue
		}
		for k, v := range values {
			dotenv[k] = v
		}
	}

	return func(key string) (string, bool) {
		if v, ok := getenv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

func (l *Loader) applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: invalid boolean %q", EnvPrefix, name, v))
			return
		}
		*dst = b
	}
	duration := func(name string, dst *time.Duration) {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: invalid duration %q", EnvPrefix, name, v))
			return
		}
		*dst = d
	}

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_DIR", &cfg.Log.Dir)
	boolean("LOG_FILE", &cfg.Log.FileEnabled)
	str("USER_DATA_DIR", &cfg.Browser.UserDataDir)
	boolean("HEADLESS", &cfg.Browser.Headless)
	str("CHROME_BIN", &cfg.Browser.Bin)
	duration("STEP_TIMEOUT", &cfg.Browser.StepTimeout)
	duration("SETTLE_DELAY", &cfg.Browser.SettleDelay)
	duration("ACTION_INTERVAL", &cfg.Actions.Interval)
	str("ANCHOR_SELECTOR", &cfg.Extract.AnchorSelector)
	str("TIMESTAMP_SELECTOR", &cfg.Extract.TimestampSelector)
	str("EXTRACT_DIR", &cfg.Import.ExtractDir)

	return errors.Join(errs...)
}
