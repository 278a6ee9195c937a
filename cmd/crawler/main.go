package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/halverson/reddit-user-crawler/internal/collector"
	"github.com/halverson/reddit-user-crawler/internal/config"
	"github.com/halverson/reddit-user-crawler/internal/crawler"
	"github.com/halverson/reddit-user-crawler/internal/domain"
	"github.com/halverson/reddit-user-crawler/internal/ingest"
	"github.com/halverson/reddit-user-crawler/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Setup
	godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 2. Resolve credentials (fatal before any network call)
	creds, err := config.Load(config.DefaultSecretsFile)
	if err != nil {
		var credErr *config.MissingCredentialError
		if errors.As(err, &credErr) {
			logger.Error("credentials incomplete", "missing", credErr.Fields,
				"template_created", credErr.TemplateCreated)
		} else {
			logger.Error("credential resolution failed", "error", err)
		}
		return 1
	}

	// 3. Construct client (fatal on bad credentials)
	client, err := collector.NewCollector(creds)
	if err != nil {
		logger.Error("failed to initialize collector", "error", err)
		return 1
	}
	logger.Info("collector initialized",
		"mode", os.Getenv("CRAWLER_MODE"), "authenticated", client.Authenticated())

	// 4. Resolve targets
	targets := resolveTargets(creds)
	if len(targets) == 0 {
		logger.Error("no target username: provide input/users.csv, REDDIT_TARGET_USER, or REDDIT_USERNAME")
		return 1
	}

	// 5. Run the sequence per target
	outputDir := os.Getenv("CRAWLER_OUTPUT_DIR")
	if outputDir == "" {
		outputDir = "reddit_data"
	}
	writer := storage.NewWriter(outputDir)
	c := crawler.New(client, writer, logger)

	ctx := context.Background()
	for _, username := range targets {
		results := c.Run(ctx, username)
		for _, r := range results {
			if !r.Succeeded && !r.Skipped {
				logger.Warn("step did not complete", "user", username,
					"category", r.Category, "err", r.Error)
			}
		}
	}

	logger.Info("all data saved", "dir", outputDir, "targets", len(targets))
	return 0
}

// resolveTargets prefers the users CSV, then the env override, then the
// authenticated account itself.
func resolveTargets(creds domain.Credentials) []string {
	if users, err := ingest.LoadUsers("input/users.csv"); err == nil && len(users) > 0 {
		return users
	}
	if u := os.Getenv("REDDIT_TARGET_USER"); u != "" {
		return []string{u}
	}
	if creds.Username != "" {
		return []string{creds.Username}
	}
	return nil
}
