// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/mailidx"
	"github.com/poiesic/mailidx/core"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "mailidx",
		Usage: "Incremental indexer for daily-digest mail threads",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the ingestion pipeline once, or on an interval",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB state directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "credentials",
						Usage: "Path to OAuth client secret file",
						Value: "credentials.json",
					},
					&cli.StringFlag{
						Name:  "token",
						Usage: "Path to cached OAuth token file",
						Value: "token.json",
					},
					&cli.DurationFlag{
						Name:  "every",
						Usage: "Repeat the run on this interval (0 runs once)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Override the embedding model name",
					},
				},
			},
			{
				Name:   "inspect",
				Usage:  "Dry-run extraction against the most recent matching thread",
				Action: inspectCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB state directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "credentials",
						Usage: "Path to OAuth client secret file",
						Value: "credentials.json",
					},
					&cli.StringFlag{
						Name:  "token",
						Usage: "Path to cached OAuth token file",
						Value: "token.json",
					},
				},
			},
			{
				Name:   "check-config",
				Usage:  "Report whether every mandatory configuration value is present",
				Action: checkConfigCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB state directory",
						Required: true,
					},
				},
			},
			{
				Name:  "config",
				Usage: "Read and write persisted configuration values",
				Subcommands: []*cli.Command{
					{
						Name:      "get",
						Usage:     "Print a configuration value",
						ArgsUsage: "<key>",
						Action:    configGetCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "db",
								Aliases:  []string{"d"},
								Usage:    "Path to BadgerDB state directory",
								Required: true,
							},
						},
					},
					{
						Name:      "set",
						Usage:     "Store a configuration value",
						ArgsUsage: "<key> <value>",
						Action:    configSetCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "db",
								Aliases:  []string{"d"},
								Usage:    "Path to BadgerDB state directory",
								Required: true,
							},
						},
					},
				},
			},
			{
				Name:   "reset",
				Usage:  "Clear fingerprints and watermark so the next run reprocesses everything",
				Action: resetCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB state directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openIndexer(c *cli.Context) (*mailidx.Indexer, error) {
	var opts []mailidx.IndexerOption
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, mailidx.WithEmbeddingModel(model))
	}
	ix, err := mailidx.NewIndexer(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	return ix, nil
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	ix, err := openIndexer(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	pipeline, err := ix.NewIngestionPipeline(ctx, c.String("credentials"), c.String("token"))
	if err != nil {
		return fmt.Errorf("failed to assemble pipeline: %w", err)
	}

	every := c.Duration("every")
	for {
		summary, err := pipeline.Run(ctx)
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Processed: %d  Skipped: %d  Errored: %d  Total: %d\n",
			summary.Processed, summary.Skipped, summary.Errored, summary.Total)

		if every <= 0 {
			return nil
		}
		slog.Info("sleeping until next run", "interval", every)
		time.Sleep(every)
	}
}

func inspectCommand(c *cli.Context) error {
	ctx := context.Background()

	ix, err := openIndexer(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	pipeline, err := ix.NewIngestionPipeline(ctx, c.String("credentials"), c.String("token"))
	if err != nil {
		return fmt.Errorf("failed to assemble pipeline: %w", err)
	}

	inspection, err := pipeline.InspectLatest(ctx)
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	record := inspection.Record
	fmt.Printf("Thread:        %s\n", record.ThreadID)
	fmt.Printf("Subject:       %s\n", record.Subject)
	fmt.Printf("Publisher:     %s\n", record.PublisherID)
	fmt.Printf("Participants:  %s\n", strings.Join(record.Participants, ", "))
	fmt.Printf("Labels:        %s\n", strings.Join(record.Labels, ", "))
	fmt.Printf("Last message:  %s\n", time.Unix(record.LastMessage, 0).Format(time.RFC3339))
	fmt.Printf("Fingerprint:   %s (stored match: %t)\n", inspection.Fingerprint, inspection.StoredMatches)
	fmt.Printf("Daily digest:  %t\n", inspection.IsDailyDigest)
	fmt.Printf("Text length:   %d\n", len(record.FullText))
	return nil
}

func checkConfigCommand(c *cli.Context) error {
	ctx := context.Background()

	ix, err := openIndexer(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	cfg, err := ix.LoadConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	fmt.Println("configuration complete")
	return nil
}

func configGetCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: config get <key>")
	}

	ix, err := openIndexer(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	value, err := ix.StateStore().ConfigValue(context.Background(), c.Args().Get(0))
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func configSetCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: config set <key> <value>")
	}

	ix, err := openIndexer(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	return ix.StateStore().SetConfigValue(context.Background(), c.Args().Get(0), c.Args().Get(1))
}

func resetCommand(c *cli.Context) error {
	ix, err := openIndexer(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	ctx := context.Background()
	if err := ix.StateStore().ResetFingerprints(ctx); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	// Zero the run state too so the next run scans from the epoch.
	if err := ix.StateStore().SaveRunState(ctx, &core.RunState{}); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	fmt.Println("fingerprints and watermark cleared")
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
