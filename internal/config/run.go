package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Browser engines understood by the run configuration
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"

	// BrowserCDP drives Chrome over the DevTools protocol instead of Playwright.
	BrowserCDP = "cdp"
)

// ArtifactPolicy decides when screenshots, traces and videos are kept
type ArtifactPolicy string

// Artifact policies
const (
	ArtifactsOnFailure ArtifactPolicy = "on-failure"
	ArtifactsAlways    ArtifactPolicy = "always"
	ArtifactsNever     ArtifactPolicy = "never"
)

// ErrRetriesUnsupported is returned when a configuration asks for retries.
var ErrRetriesUnsupported = errors.New("retries must be 0: every failure is terminal for its scenario")

// Viewport is the browser window size in CSS pixels
type Viewport struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Profile is a named set of overrides selected with --profile
type Profile struct {
	Browser  string         `mapstructure:"browser"`
	Headless *bool          `mapstructure:"headless"`
	SlowMo   *time.Duration `mapstructure:"slow_mo"`
	Workers  int            `mapstructure:"workers"`
	Tags     []string       `mapstructure:"tags"`
}

// BrowserOverride is forced onto every run of one engine, whatever the profile says
type BrowserOverride struct {
	Headless *bool          `mapstructure:"headless"`
	SlowMo   *time.Duration `mapstructure:"slow_mo"`
}

// RunConfig holds everything a suite run needs
type RunConfig struct {
	BaseURL      string         `mapstructure:"base_url"`
	Browser      string         `mapstructure:"browser"`
	Headless     bool           `mapstructure:"headless"`
	SlowMo       time.Duration  `mapstructure:"slow_mo"`
	Workers      int            `mapstructure:"workers"`
	Timeout      time.Duration  `mapstructure:"timeout"`
	PollInterval time.Duration  `mapstructure:"poll_interval"`
	Viewport     Viewport       `mapstructure:"viewport"`
	Retries      int            `mapstructure:"retries"`
	Reporters    []string       `mapstructure:"reporters"`
	OutputDir    string         `mapstructure:"output_dir"`
	Artifacts    ArtifactPolicy `mapstructure:"artifacts"`
	Inspect      bool           `mapstructure:"inspect"`
	DataFile     string         `mapstructure:"data_file"`
	Tags         []string       `mapstructure:"tags"`
	Logger       LoggerConfig   `mapstructure:"logger"`

	Profiles         map[string]Profile         `mapstructure:"profiles"`
	BrowserOverrides map[string]BrowserOverride `mapstructure:"browser_overrides"`

	// Profile is the name of the applied profile, if any.
	Profile string `mapstructure:"-"`
}

// SetDefaults initializes default values for the run configuration
func SetDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("browser", BrowserChromium)
	v.SetDefault("headless", true)
	v.SetDefault("slow_mo", "0s")
	v.SetDefault("workers", 4)
	v.SetDefault("timeout", "60s")
	v.SetDefault("poll_interval", "100ms")
	v.SetDefault("viewport.width", 1720)
	v.SetDefault("viewport.height", 850)
	v.SetDefault("retries", 0)
	v.SetDefault("reporters", []string{"console", "html", "junit", "results"})
	v.SetDefault("output_dir", "test-results")
	v.SetDefault("artifacts", string(ArtifactsOnFailure))
	v.SetDefault("inspect", false)
	v.SetDefault("data_file", "")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "shopcheck")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", false)
}

// NewViper builds a viper instance with defaults, SHOPCHECK_ environment
// variables and, when present, the config file.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("shopcheck")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SHOPCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}
	return v, nil
}

// LoadRunConfig unmarshals the run configuration from v
func LoadRunConfig(v *viper.Viper) (RunConfig, error) {
	var cfg RunConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

func boolPtr(b bool) *bool { return &b }

func durationPtr(d time.Duration) *time.Duration { return &d }

// BuiltinProfiles returns the profiles available without a config file
func BuiltinProfiles() map[string]Profile {
	return map[string]Profile{
		BrowserChromium: {Browser: BrowserChromium},
		BrowserFirefox:  {Browser: BrowserFirefox},
		BrowserWebKit:   {Browser: BrowserWebKit},
		BrowserCDP:      {Browser: BrowserCDP},
		"smoke":         {Tags: []string{"smoke"}},
		"serial":        {Workers: 1},
		"headed":        {Headless: boolPtr(false), Workers: 1},
	}
}

// BuiltinBrowserOverrides returns the per-engine settings forced on every run
func BuiltinBrowserOverrides() map[string]BrowserOverride {
	return map[string]BrowserOverride{
		BrowserFirefox: {Headless: boolPtr(true), SlowMo: durationPtr(250 * time.Millisecond)},
		BrowserWebKit:  {Headless: boolPtr(true)},
		BrowserCDP:     {Headless: boolPtr(true)},
	}
}

// WithProfile applies the named profile and then the browser overrides.
// Profiles from the config file shadow built-in profiles of the same name.
func (c RunConfig) WithProfile(name string) (RunConfig, error) {
	if name != "" {
		p, ok := c.Profiles[name]
		if !ok {
			p, ok = BuiltinProfiles()[name]
		}
		if !ok {
			return c, fmt.Errorf("unknown profile %q", name)
		}
		if p.Browser != "" {
			c.Browser = p.Browser
		}
		if p.Headless != nil {
			c.Headless = *p.Headless
		}
		if p.SlowMo != nil {
			c.SlowMo = *p.SlowMo
		}
		if p.Workers > 0 {
			c.Workers = p.Workers
		}
		if len(p.Tags) > 0 {
			c.Tags = slices.Clone(p.Tags)
		}
		c.Profile = name
	}
	return c.withBrowserOverride(), nil
}

func (c RunConfig) withBrowserOverride() RunConfig {
	o, ok := c.BrowserOverrides[c.Browser]
	if !ok {
		o, ok = BuiltinBrowserOverrides()[c.Browser]
	}
	if !ok {
		return c
	}
	if o.Headless != nil {
		c.Headless = *o.Headless
	}
	if o.SlowMo != nil {
		c.SlowMo = *o.SlowMo
	}
	return c
}

// Flags are command-line overrides. Zero values leave the configuration alone.
type Flags struct {
	Browser   string
	Workers   int
	Headed    bool
	Inspect   bool
	BaseURL   string
	OutputDir string
	DataFile  string
	Tags      []string
}

// WithFlags applies f on top of the profile. Browser overrides are applied
// again afterwards, so --headed cannot unlock a forced-headless engine.
func (c RunConfig) WithFlags(f Flags) RunConfig {
	if f.Browser != "" {
		c.Browser = f.Browser
	}
	if f.Workers > 0 {
		c.Workers = f.Workers
	}
	if f.Headed {
		c.Headless = false
	}
	if f.Inspect {
		c.Inspect = true
	}
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.OutputDir != "" {
		c.OutputDir = f.OutputDir
	}
	if f.DataFile != "" {
		c.DataFile = f.DataFile
	}
	if len(f.Tags) > 0 {
		c.Tags = slices.Clone(f.Tags)
	}
	return c.withBrowserOverride()
}

// Validate checks the configuration for values the runner cannot honour
func (c RunConfig) Validate() error {
	if c.Retries != 0 {
		return ErrRetriesUnsupported
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}
	switch c.Browser {
	case BrowserChromium, BrowserFirefox, BrowserWebKit, BrowserCDP:
	default:
		return fmt.Errorf("unsupported browser %q", c.Browser)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	switch c.Artifacts {
	case ArtifactsOnFailure, ArtifactsAlways, ArtifactsNever:
	default:
		return fmt.Errorf("unsupported artifacts policy %q", c.Artifacts)
	}
	for _, r := range c.Reporters {
		switch r {
		case "console", "html", "junit", "results":
		default:
			return fmt.Errorf("unsupported reporter %q", r)
		}
	}
	return nil
}
