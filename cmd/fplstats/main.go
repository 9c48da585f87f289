package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-superlatives/internal/app"
	"github.com/riskibarqy/fpl-superlatives/internal/config"
	"github.com/riskibarqy/fpl-superlatives/internal/platform/logging"
	"github.com/riskibarqy/fpl-superlatives/internal/usecase"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	build := func() (*app.App, error) { return app.New(cfg, logger) }
	if err := newCLIApp(build, os.Stdout).RunContext(ctx, os.Args); err != nil {
		logger.Error("command failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newCLIApp(build func() (*app.App, error), stdout io.Writer) *cli.App {
	seasonFlag := &cli.StringFlag{
		Name:     "season",
		Usage:    "season key, e.g. 2024_2025",
		Required: true,
	}
	leagueFlag := &cli.Int64Flag{
		Name:     "league",
		Usage:    "classic league id",
		Required: true,
	}

	return &cli.App{
		Name:      "fplstats",
		Usage:     "fetch fantasy league data and compute end-of-season superlatives",
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:  "fetch",
				Usage: "download a league snapshot from the fantasy api",
				Flags: []cli.Flag{
					seasonFlag,
					leagueFlag,
					&cli.BoolFlag{Name: "force", Usage: "refetch even if a snapshot exists"},
					&cli.IntFlag{Name: "workers", Usage: "concurrent manager fetches, 0 uses FETCH_WORKERS"},
				},
				Action: func(c *cli.Context) error {
					return withApp(c.Context, build, func(application *app.App) error {
						result, err := application.Ingestion.FetchLeague(c.Context, usecase.FetchLeagueInput{
							Season:     c.String("season"),
							LeagueID:   c.Int64("league"),
							Force:      c.Bool("force"),
							MaxWorkers: c.Int("workers"),
						})
						if err != nil {
							return err
						}
						return writeJSON(stdout, result)
					})
				},
			},
			{
				Name:  "analyze",
				Usage: "compute statistics from a stored snapshot",
				Flags: []cli.Flag{
					seasonFlag,
					leagueFlag,
					&cli.BoolFlag{Name: "live", Usage: "include the in-progress gameweek"},
					&cli.StringSliceFlag{
						Name:  "stat",
						Usage: "statistic to compute, repeatable",
						Value: cli.NewStringSlice(usecase.StatAll),
					},
				},
				Action: func(c *cli.Context) error {
					return withApp(c.Context, build, func(application *app.App) error {
						report, err := application.Analysis.Analyze(c.Context, usecase.AnalyzeInput{
							Season:   c.String("season"),
							LeagueID: c.Int64("league"),
							Live:     c.Bool("live"),
							Stats:    c.StringSlice("stat"),
						})
						if err != nil {
							return err
						}
						return writeJSON(stdout, report)
					})
				},
			},
		},
	}
}

func withApp(ctx context.Context, build func() (*app.App, error), fn func(*app.App) error) error {
	application, err := build()
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = application.Close(closeCtx)
	}()

	return fn(application)
}

func writeJSON(w io.Writer, value any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	raw = append(raw, '\n')
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
