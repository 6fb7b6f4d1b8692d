package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	internalcli "github.com/swaglabs/shopcheck/internal/cli"
	"github.com/swaglabs/shopcheck/internal/config"
	"github.com/swaglabs/shopcheck/internal/database"
	"github.com/swaglabs/shopcheck/internal/observability"
	"github.com/swaglabs/shopcheck/internal/repository"
	"github.com/swaglabs/shopcheck/internal/services"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var version = "0.1.0"

// selectionFlags are shared by run and list
func selectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file (default ./shopcheck.yaml)"},
		&cli.StringFlag{Name: "profile", Aliases: []string{"p"}, Usage: "chromium, firefox, webkit, cdp, smoke, serial, headed or a profile from the config file"},
		&cli.StringSliceFlag{Name: "tag", Usage: "only run scenarios with this tag (repeatable)"},
		&cli.StringSliceFlag{Name: "file", Usage: "only run scenarios from this file (repeatable)"},
		&cli.StringSliceFlag{Name: "id", Usage: "only run this scenario (repeatable)"},
		&cli.StringFlag{Name: "shard", Usage: "run one contiguous slice of the selection, as current/total"},
	}
}

func suiteOptions(c *cli.Context) internalcli.SuiteOptions {
	return internalcli.SuiteOptions{
		ConfigFile: c.String("config"),
		Profile:    c.String("profile"),
		Flags: config.Flags{
			Browser:   c.String("browser"),
			Workers:   c.Int("workers"),
			Headed:    c.Bool("headed"),
			Inspect:   c.Bool("inspect"),
			BaseURL:   c.String("base-url"),
			OutputDir: c.String("output"),
			DataFile:  c.String("data"),
			Tags:      c.StringSlice("tag"),
		},
		Files: c.StringSlice("file"),
		IDs:   c.StringSlice("id"),
		Shard: c.String("shard"),
	}
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	flags := append(selectionFlags(),
		&cli.StringFlag{Name: "browser", Aliases: []string{"b"}, Usage: "chromium, firefox, webkit or cdp"},
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "number of tests run in parallel"},
		&cli.BoolFlag{Name: "headed", Usage: "show the browser window"},
		&cli.BoolFlag{Name: "inspect", Usage: "pause failed tests before closing the browser (headed only)"},
		&cli.StringFlag{Name: "base-url", Usage: "storefront URL"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "directory for reports and artifacts"},
		&cli.StringFlag{Name: "data", Usage: "dataset file replacing the built-in one"},
	)

	return &cli.Command{
		Name:  "run",
		Usage: "Run the storefront scenarios",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, filter, err := internalcli.LoadSuiteConfig(suiteOptions(c))
			if err != nil {
				return err
			}

			logger, err := observability.NewStdoutLogger(cfg.Logger)
			if err != nil {
				return err
			}
			defer observability.Sync(logger)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := internalcli.RunSuite(ctx, cfg, filter, logger)
			if errors.Is(err, internalcli.ErrTestsFailed) {
				logger.Info("Reports written", zap.String("dir", cfg.OutputDir), zap.String("run_id", result.RunID))
				return cli.Exit(err.Error(), 1)
			}
			return err
		},
	}
}

// ListCommand returns the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print the scenarios a run would execute",
		Flags: selectionFlags(),
		Action: func(c *cli.Context) error {
			_, filter, err := internalcli.LoadSuiteConfig(suiteOptions(c))
			if err != nil {
				return err
			}
			selected, err := internalcli.SelectScenarios(filter)
			if err != nil {
				return err
			}
			return internalcli.ListScenarios(c.App.Writer, selected)
		},
	}
}

// openOrderRepository stores orders in Postgres when POSTGRES_* is set and
// in memory otherwise. The returned func releases the connection.
func openOrderRepository(logger *zap.Logger) (services.OrderRepository, func(), error) {
	if !config.PostgresConfigured(os.Getenv) {
		logger.Info("Storing orders in memory")
		return repository.NewMemoryOrderRepository(), func() {}, nil
	}

	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("missing required Postgres configuration: %w", err)
	}
	db, err := database.Connect(pgConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Connected to database", zap.String("host", pgConfig.Host))

	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return repository.NewOrderRepository(db), func() { db.Close() }, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the Swag Labs storefront",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
		},
		Action: func(c *cli.Context) error {
			logger, err := observability.NewStdoutLogger(config.LoggerConfig{
				Level:       c.String("log-level"),
				Format:      "console",
				ServiceName: "storefront",
			})
			if err != nil {
				return err
			}
			defer observability.Sync(logger)

			orderRepo, closeRepo, err := openOrderRepository(logger)
			if err != nil {
				return err
			}
			defer closeRepo()

			deps, err := internalcli.BuildServerDependencies(config.LoadServerConfig(os.Getenv), orderRepo, logger)
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "shopcheck",
		Usage:   "End-to-end checks for the Swag Labs storefront",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			ListCommand(),
			ServeCommand(),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
