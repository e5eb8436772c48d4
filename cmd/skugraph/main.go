// Copyright 2025 Skugraph Authors
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

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/skugraph/skugraph"
	"github.com/skugraph/skugraph/ai"
	"github.com/skugraph/skugraph/ai/openai"
	"github.com/skugraph/skugraph/core"
	"github.com/skugraph/skugraph/dataset"
	"github.com/skugraph/skugraph/graph"
	"github.com/skugraph/skugraph/specs"
)

func main() {
	app := &cli.App{
		Name:  "skugraph",
		Usage: "Load tabular product catalogs into a Neo4j property graph",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:   setup,
		Commands: []*cli.Command{
			{
				Name:   "prepare",
				Usage:  "Parse and normalize the specification column of a catalog",
				Action: prepareCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to the raw catalog CSV (.csv or .csv.gz)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Path for the prepared catalog CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Path to the normalization cache directory",
						Value: "skugraph-cache",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "Normalizer service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Normalizer model name",
						Value: "llama3.1:latest",
					},
					&cli.DurationFlag{
						Name:  "request-timeout",
						Usage: "Per-call normalizer timeout",
						Value: 30 * time.Second,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent parser workers",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed normalizer calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.StringFlag{
						Name:  "fallback",
						Usage: "Fallback when normalization is unavailable (abort, skip, raw)",
						Value: "abort",
					},
				},
			},
			{
				Name:   "load",
				Usage:  "Load a catalog into the graph store",
				Action: loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to the catalog CSV (raw or prepared)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Path to the normalization cache directory",
						Value: "skugraph-cache",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Checkpoint label for resume (defaults to the input path)",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records per transaction",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.BoolFlag{
						Name:  "no-resume",
						Usage: "Ignore any existing checkpoint and start from the first batch",
					},
					&cli.StringFlag{
						Name:  "uri",
						Usage: "Graph store URI (defaults to NEO4J_URI)",
					},
					&cli.StringFlag{
						Name:  "user",
						Usage: "Graph store user (defaults to NEO4J_USER)",
					},
					&cli.StringFlag{
						Name:  "password",
						Usage: "Graph store password (defaults to NEO4J_PASSWORD)",
					},
					&cli.StringFlag{
						Name:  "database",
						Usage: "Graph database name (defaults to NEO4J_DATABASE)",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "Normalizer service host URL (used when the input is raw)",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Normalizer model name (used when the input is raw)",
						Value: "llama3.1:latest",
					},
				},
			},
			{
				Name:      "split",
				Usage:     "Normalize glued tokens through the model, one per argument",
				ArgsUsage: "TOKEN [TOKEN...]",
				Action:    splitCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "Normalizer service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Normalizer model name",
						Value: "llama3.1:latest",
					},
					&cli.DurationFlag{
						Name:  "request-timeout",
						Usage: "Per-call normalizer timeout",
						Value: 30 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func prepareCommand(c *cli.Context) error {
	ctx := context.Background()

	inputPath := c.String("input")
	outputPath := c.String("output")

	policy, err := parseFallbackPolicy(c.String("fallback"))
	if err != nil {
		return err
	}

	table, err := dataset.ReadCSV(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	// Create normalizer config
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
		ai.WithRequestTimeout(c.Duration("request-timeout")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid normalizer configuration: %w", err)
	}

	imp, err := skugraph.NewImporter(c.String("cache"),
		skugraph.WithAIConfig(aiConfig),
		skugraph.WithPoolSize(c.Int("pool-size")),
		skugraph.WithProgress(os.Stderr, c.Int("report-interval")),
		skugraph.WithParserOptions(
			specs.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
			specs.WithFallbackPolicy(policy),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to open importer: %w", err)
	}
	defer imp.Close(ctx)

	fmt.Fprintf(os.Stderr, "Input: %s (%d rows)\n", inputPath, len(table.Rows))
	fmt.Fprintf(os.Stderr, "Normalizer host: %s\n", c.String("host"))
	fmt.Fprintf(os.Stderr, "Normalizer model: %s\n", c.String("model"))
	fmt.Fprintln(os.Stderr)

	prepared, err := imp.Prepare(ctx, table)
	if err != nil {
		return fmt.Errorf("prepare failed: %w", err)
	}

	if err := dataset.WriteCSV(outputPath, prepared); err != nil {
		return fmt.Errorf("failed to write prepared catalog: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s\n", outputPath)
	return nil
}

func loadCommand(c *cli.Context) error {
	ctx := context.Background()

	inputPath := c.String("input")
	source := c.String("source")
	if source == "" {
		source = inputPath
	}

	table, err := dataset.ReadCSV(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	// Create graph config from environment, flags win
	graphConfig := graph.FromEnv()
	if uri := c.String("uri"); uri != "" {
		graphConfig.URI = uri
	}
	if user := c.String("user"); user != "" {
		graphConfig.Username = user
	}
	if password := c.String("password"); password != "" {
		graphConfig.Password = password
	}
	if database := c.String("database"); database != "" {
		graphConfig.Database = database
	}
	if err := graphConfig.Validate(); err != nil {
		return fmt.Errorf("invalid graph configuration: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid normalizer configuration: %w", err)
	}

	imp, err := skugraph.NewImporter(c.String("cache"),
		skugraph.WithAIConfig(aiConfig),
		skugraph.WithGraphConfig(graphConfig),
		skugraph.WithBatchSize(c.Int("batch-size")),
		skugraph.WithResume(!c.Bool("no-resume")),
		skugraph.WithProgress(os.Stderr, c.Int("report-interval")),
	)
	if err != nil {
		return fmt.Errorf("failed to open importer: %w", err)
	}
	defer imp.Close(ctx)

	// A raw catalog is prepared on the fly before loading
	if !table.HasColumn(core.ColumnParsedSpecs) && table.HasColumn(core.ColumnSpecification) {
		fmt.Fprintf(os.Stderr, "Input has no %q column, parsing specifications first\n", core.ColumnParsedSpecs)
		table, err = imp.Prepare(ctx, table)
		if err != nil {
			return fmt.Errorf("prepare failed: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Input: %s (%d rows)\n", inputPath, len(table.Rows))
	fmt.Fprintf(os.Stderr, "Graph: %s\n", graphConfig.URI)
	fmt.Fprintln(os.Stderr)

	result, err := imp.LoadTable(ctx, source, table)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	fmt.Fprintln(os.Stderr, result.Summary())
	return nil
}

func splitCommand(c *cli.Context) error {
	ctx := context.Background()

	tokens := c.Args().Slice()
	if len(tokens) == 0 {
		return fmt.Errorf("at least one token argument is required")
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
		ai.WithRequestTimeout(c.Duration("request-timeout")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid normalizer configuration: %w", err)
	}

	normalizer, err := openai.NewNormalizer(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create normalizer: %w", err)
	}

	for _, token := range tokens {
		output, err := normalizer.Normalize(ctx, token)
		if err != nil {
			return fmt.Errorf("normalize %q: %w", token, err)
		}
		fmt.Printf("%s\t%s\n", token, output)
	}
	return nil
}

func parseFallbackPolicy(name string) (specs.FallbackPolicy, error) {
	switch strings.ToLower(name) {
	case "abort":
		return specs.FallbackAbort, nil
	case "skip":
		return specs.FallbackSkip, nil
	case "raw":
		return specs.FallbackRaw, nil
	default:
		return 0, fmt.Errorf("invalid fallback policy %q: must be one of abort, skip, raw", name)
	}
}

func setup(c *cli.Context) error {
	// Values already present in the environment win over .env entries.
	_ = godotenv.Load()

	return setupLogger(c)
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
