package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/swaglabs/shopcheck/internal/browser"
	"github.com/swaglabs/shopcheck/internal/config"
	"github.com/swaglabs/shopcheck/internal/dataset"
	"github.com/swaglabs/shopcheck/internal/fixture"
	"github.com/swaglabs/shopcheck/internal/pages"
	"github.com/swaglabs/shopcheck/internal/report"
	"github.com/swaglabs/shopcheck/internal/runner"
	"github.com/swaglabs/shopcheck/internal/scenario"
	"github.com/swaglabs/shopcheck/internal/scenarios"
	"go.uber.org/zap"
)

// ErrNoScenarios is returned when the filters select nothing
var ErrNoScenarios = errors.New("no scenarios selected")

// ErrTestsFailed is returned by RunSuite when at least one test failed
var ErrTestsFailed = errors.New("tests failed")

// SuiteOptions are what the run and list commands read from their flags
type SuiteOptions struct {
	ConfigFile string
	Profile    string
	Flags      config.Flags
	Files      []string
	IDs        []string
	Shard      string
}

// LoadSuiteConfig resolves the run configuration: defaults, config file,
// SHOPCHECK_ environment, profile and finally flags.
func LoadSuiteConfig(opts SuiteOptions) (config.RunConfig, runner.Filter, error) {
	v, err := config.NewViper(opts.ConfigFile)
	if err != nil {
		return config.RunConfig{}, runner.Filter{}, err
	}
	cfg, err := config.LoadRunConfig(v)
	if err != nil {
		return config.RunConfig{}, runner.Filter{}, err
	}
	if cfg, err = cfg.WithProfile(opts.Profile); err != nil {
		return config.RunConfig{}, runner.Filter{}, err
	}
	cfg = cfg.WithFlags(opts.Flags)
	if err := cfg.Validate(); err != nil {
		return config.RunConfig{}, runner.Filter{}, fmt.Errorf("invalid configuration: %w", err)
	}

	shard, err := runner.ParseShard(opts.Shard)
	if err != nil {
		return config.RunConfig{}, runner.Filter{}, err
	}
	filter := runner.Filter{
		Tags:  cfg.Tags,
		Files: opts.Files,
		IDs:   opts.IDs,
		Shard: shard,
	}
	return cfg, filter, nil
}

// SelectScenarios applies filter to the full catalog
func SelectScenarios(filter runner.Filter) ([]scenario.Scenario, error) {
	selected := runner.Select(scenarios.All(), filter)
	if len(selected) == 0 {
		return nil, ErrNoScenarios
	}
	return selected, nil
}

// ListScenarios writes one line per selected scenario
func ListScenarios(w io.Writer, selected []scenario.Scenario) error {
	for _, s := range selected {
		if _, err := fmt.Fprintf(w, "%-6s %-9s %-40s [%s]\n", s.ID, s.File, s.Name, strings.Join(s.Tags, ",")); err != nil {
			return err
		}
	}
	return nil
}

// RunSuite launches the configured browser and runs the selection. The
// returned error wraps ErrTestsFailed when any test failed.
func RunSuite(ctx context.Context, cfg config.RunConfig, filter runner.Filter, logger *zap.Logger) (report.RunResult, error) {
	selected, err := SelectScenarios(filter)
	if err != nil {
		return report.RunResult{}, err
	}

	engine, err := browser.Launch(browser.LaunchOptions{
		Browser:  cfg.Browser,
		Headless: cfg.Headless,
		SlowMo:   cfg.SlowMo,
	})
	if err != nil {
		return report.RunResult{}, fmt.Errorf("failed to launch %s: %w", cfg.Browser, err)
	}
	defer func() {
		if err := engine.Close(); err != nil {
			logger.Warn("Error closing browser", zap.Error(err))
		}
	}()

	return ExecuteSuite(ctx, engine, cfg, selected, logger)
}

// ExecuteSuite runs selected on an already launched engine and writes
// the configured reports.
func ExecuteSuite(ctx context.Context, engine browser.Engine, cfg config.RunConfig, selected []scenario.Scenario, logger *zap.Logger) (report.RunResult, error) {
	data, err := dataset.Load(cfg.DataFile)
	if err != nil {
		return report.RunResult{}, fmt.Errorf("failed to load dataset: %w", err)
	}

	writers, err := report.NewWriters(cfg.Reporters, cfg.OutputDir)
	if err != nil {
		return report.RunResult{}, err
	}
	var listeners []report.Listener
	if slices.Contains(cfg.Reporters, report.ReporterConsole) {
		listeners = append(listeners, report.NewConsole(logger))
	}

	provider := fixture.NewProvider(fixture.Options{
		Engine:   engine,
		Viewport: browser.Viewport{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height},
		Pages: pages.Options{
			BaseURL:  cfg.BaseURL,
			Poll:     cfg.PollInterval,
			Inspect:  cfg.Inspect,
			Headless: cfg.Headless,
		},
		Artifacts:   cfg.Artifacts,
		OutputDir:   cfg.OutputDir,
		CallTimeout: cfg.Timeout,
		Logger:      logger,
	})

	r := runner.New(provider, data, report.NewMulti(listeners...), runner.Options{
		Workers: cfg.Workers,
		Timeout: cfg.Timeout,
		Inspect: cfg.Inspect,
		Profile: cfg.Profile,
		Browser: cfg.Browser,
		BaseURL: cfg.BaseURL,
		Logger:  logger,
	})
	result := r.Run(ctx, selected)

	if err := report.WriteAll(writers, result); err != nil {
		return result, fmt.Errorf("failed to write reports: %w", err)
	}
	if result.Failed() {
		passed, _, _ := result.Counts()
		return result, fmt.Errorf("%w: %d of %d", ErrTestsFailed, len(result.Tests)-passed, len(result.Tests))
	}
	return result, nil
}
