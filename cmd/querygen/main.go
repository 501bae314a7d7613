// Copyright 2025 Poiesic Systems
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
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/querygen"
	"github.com/poiesic/querygen/ai"
	"github.com/poiesic/querygen/core"
	"github.com/poiesic/querygen/dataset"
	"github.com/poiesic/querygen/report"
)

func main() {
	app := &cli.App{
		Name:  "querygen",
		Usage: "Boolean candidate-query generation from job descriptions",
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
				Name:   "extract",
				Usage:  "Extract ranked keywords from a job description",
				Action: extractCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Path to job description text file (reads stdin if omitted)",
					},
					&cli.BoolFlag{
						Name:  "compare",
						Usage: "Show baseline and semantic extraction side by side",
					},
				}, aiFlags()...),
			},
			{
				Name:   "query",
				Usage:  "Generate a Boolean search query from a job description",
				Action: queryCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Path to job description text file (reads stdin if omitted)",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB directory for saving the query",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Persist the generated query (requires --db)",
					},
				}, aiFlags()...),
			},
			{
				Name:   "evaluate",
				Usage:  "Score keyword extraction against a labeled dataset",
				Action: evaluateCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "dataset",
						Aliases:  []string{"i"},
						Usage:    "Path to evaluation dataset (.json or .csv)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB directory for recording the run",
					},
					&cli.StringFlag{
						Name:  "out-json",
						Usage: "Write the full result as JSON to this file",
					},
					&cli.StringFlag{
						Name:  "out-csv",
						Usage: "Write per-item metrics as CSV to this file",
					},
				}, aiFlags()...),
			},
			{
				Name:   "history",
				Usage:  "Show saved queries and past evaluation runs",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum entries to show per section",
						Value: 10,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// aiFlags are the AI service flags shared by the commands that extract
// keywords. Without an API key extraction runs in deterministic offline
// mode, so all of them are optional.
func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "ai",
			Usage: "Put the AI extractor at the front of the extraction chain",
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "extractor-model",
			Usage: "Keyword extraction model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the AI service (omit for offline extraction)",
			EnvVars: []string{"QUERYGEN_API_KEY"},
		},
	}
}

// newEngine builds an Engine from the command's flags. Commands without a
// --db flag (or with it unset) get in-memory storage.
func newEngine(c *cli.Context) (*querygen.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithExtractorModel(c.String("extractor-model")),
		ai.WithAPIKey(c.String("api-key")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []querygen.Option{
		querygen.WithAIConfig(aiConfig),
		querygen.WithAIExtraction(c.Bool("ai")),
	}
	dbPath := ""
	if c.IsSet("db") {
		dbPath = c.String("db")
	} else {
		opts = append(opts, querygen.WithInMemoryStorage())
	}

	engine, err := querygen.NewEngine(dbPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}

// readDescription returns the job description text from --file or stdin.
func readDescription(c *cli.Context) (string, error) {
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read description: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no job description provided: pass --file or pipe text on stdin")
	}
	return string(data), nil
}

func extractCommand(c *cli.Context) error {
	ctx := context.Background()

	text, err := readDescription(c)
	if err != nil {
		return err
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if c.Bool("compare") {
		comparison, err := engine.Compare(ctx, text)
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		fmt.Printf("Baseline (%d keywords, %v):\n", len(comparison.Baseline), comparison.BaselineElapsed)
		printKeywords(comparison.Baseline)
		fmt.Printf("\nSemantic (%d keywords, %v):\n", len(comparison.Semantic), comparison.SemanticElapsed)
		printKeywords(comparison.Semantic)
		fmt.Printf("\nOverlap: %d terms\n", comparison.Overlap)
		return nil
	}

	keywords, strategy, err := engine.ExtractKeywords(ctx, text)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Strategy: %s\n", strategy)
	printKeywords(keywords)
	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.Bool("save") && !c.IsSet("db") {
		return fmt.Errorf("--save requires --db")
	}

	text, err := readDescription(c)
	if err != nil {
		return err
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	keywords, strategy, err := engine.ExtractKeywords(ctx, text)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	queryText := engine.GenerateQuery(ctx, keywords)
	if queryText == "" {
		return fmt.Errorf("no keywords found in the description")
	}

	fmt.Fprintf(os.Stderr, "Strategy: %s\n", strategy)
	fmt.Println(queryText)

	if c.Bool("save") {
		record, err := engine.SaveQuery(ctx, queryText, keywords)
		if err != nil {
			return fmt.Errorf("failed to save query: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved query %d\n", record.Id)
	}
	return nil
}

func evaluateCommand(c *cli.Context) error {
	ctx := context.Background()

	items, err := dataset.Load(c.String("dataset"))
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	fmt.Fprintf(os.Stderr, "Dataset: %s (%d items)\n", c.String("dataset"), len(items))

	result, err := engine.Evaluate(ctx, c.String("dataset"), items, func(done, total int) {
		fmt.Fprintf(os.Stderr, "\rEvaluating %d/%d", done, total)
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	fmt.Printf("Overall:  precision %.3f  recall %.3f  f1 %.3f  rank %.3f\n",
		result.Overall.Precision, result.Overall.Recall, result.Overall.F1Score, result.Overall.RankCorrelation)
	fmt.Printf("Baseline: precision %.3f  recall %.3f  f1 %.3f  rank %.3f\n",
		result.Baseline.Precision, result.Baseline.Recall, result.Baseline.F1Score, result.Baseline.RankCorrelation)
	if result.Advanced != nil {
		fmt.Printf("F1 spread: mean %.3f  median %.3f  stddev %.3f  min %.3f  max %.3f\n",
			result.Advanced.Mean.F1Score, result.Advanced.Median.F1Score,
			result.Advanced.StdDev.F1Score, result.Advanced.Min.F1Score, result.Advanced.Max.F1Score)
	}

	if path := c.String("out-json"); path != "" {
		if err := writeReport(path, result, report.WriteJSON); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	}
	if path := c.String("out-csv"); path != "" {
		if err := writeReport(path, result, report.WriteCSV); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	}
	return nil
}

func historyCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := querygen.NewEngine(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	limit := c.Int("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	queries, err := engine.RecentQueries(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}
	fmt.Printf("Saved queries (%d):\n", len(queries))
	for _, q := range queries {
		fmt.Printf("  %s  %s\n", q.CreatedAt.Local().Format("2006-01-02 15:04"), q.Query)
	}

	runs, err := engine.RecentRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}
	fmt.Printf("\nEvaluation runs (%d):\n", len(runs))
	for _, r := range runs {
		fmt.Printf("  %s  %s  items=%d ai=%t f1=%.3f baseline_f1=%.3f elapsed=%v\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Dataset,
			r.ItemCount, r.UsedAI, r.Overall.F1Score, r.Baseline.F1Score, r.Elapsed)
	}
	return nil
}

func printKeywords(keywords []core.KeywordItem) {
	for _, k := range keywords {
		if k.Category != "" {
			fmt.Printf("  %-30s %5.1f  %s\n", k.Keyword, k.Frequency, k.Category)
			continue
		}
		fmt.Printf("  %-30s %5.1f\n", k.Keyword, k.Frequency)
	}
}

// writeReport writes an evaluation result to a file with the given
// report writer.
func writeReport(path string, result *core.EvaluationResult, write func(io.Writer, *core.EvaluationResult) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f, result); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
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
