// Copyright 2025 The Butler Authors
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
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/theMladyPan/butler"
	"github.com/theMladyPan/butler/config"
	"github.com/theMladyPan/butler/ingestion"
	"github.com/theMladyPan/butler/storage"
)

func main() {
	app := &cli.App{
		Name:  "butler",
		Usage: "Knowledge base ingestion daemon",
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
				Name:   "watch",
				Usage:  "Watch the intake directory and ingest arriving artifacts",
				Action: watchCommand,
			},
			{
				Name:      "process",
				Usage:     "Ingest the given files once and exit",
				ArgsUsage: "FILE [FILE...]",
				Action:    processCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func watchCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, pipeline, err := setupService(ctx)
	if err != nil {
		return err
	}
	defer service.Close()
	defer pipeline.Release()

	watcher, ok := service.Bucket().(storage.Watcher)
	if !ok {
		return fmt.Errorf("bucket does not support watching")
	}
	events, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	// Artifacts that arrived before the watcher started.
	pending, err := service.Bucket().List(ctx)
	if err != nil {
		return err
	}
	for _, name := range pending {
		runPipeline(ctx, pipeline, storage.Notification{
			Bucket:  service.Config().IntakeDir,
			Name:    name,
			EventID: uuid.NewString(),
		})
	}

	slog.Info("watching intake directory", "dir", service.Config().IntakeDir)
	for notif := range events {
		runPipeline(ctx, pipeline, notif)
	}
	return nil
}

func processCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file argument required")
	}

	ctx := c.Context
	service, pipeline, err := setupService(ctx)
	if err != nil {
		return err
	}
	defer service.Close()
	defer pipeline.Release()

	intake := service.Config().IntakeDir
	for _, path := range c.Args().Slice() {
		name := filepath.Base(path)
		if filepath.Dir(path) != filepath.Clean(intake) {
			if err := copyIntoIntake(path, intake); err != nil {
				return err
			}
		}

		outcome, err := pipeline.Process(ctx, storage.Notification{
			Bucket:  intake,
			Name:    name,
			EventID: uuid.NewString(),
		})
		if err != nil {
			return err
		}
		reportOutcome(name, outcome)
		if outcome.Status == ingestion.Failed {
			return fmt.Errorf("ingestion of %s failed at %s: %w", name, outcome.Stage, outcome.Err)
		}
	}
	return nil
}

// setupService wires the service and its pipeline from the environment and
// ensures the index collection exists.
func setupService(ctx context.Context) (*butler.Service, *ingestion.Pipeline, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, nil, err
	}

	service, err := butler.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := service.EnsureCollection(ctx); err != nil {
		service.Close()
		return nil, nil, err
	}

	pipeline, err := service.NewPipeline()
	if err != nil {
		service.Close()
		return nil, nil, err
	}
	return service, pipeline, nil
}

// runPipeline processes one notification; outcomes are logged, never fatal
// to the daemon.
func runPipeline(ctx context.Context, pipeline *ingestion.Pipeline, notif storage.Notification) {
	outcome, err := pipeline.Process(ctx, notif)
	if err != nil {
		slog.Error("pipeline run incomplete", "artifact", notif.Name, "error", err)
		return
	}
	reportOutcome(notif.Name, outcome)
}

func reportOutcome(name string, outcome ingestion.Outcome) {
	switch outcome.Status {
	case ingestion.Processed:
		slog.Info("artifact ingested", "artifact", name, "shards", outcome.Shards, "archived_as", outcome.ArchivedAs)
	case ingestion.Skipped:
		slog.Info("artifact skipped", "artifact", name)
	case ingestion.Failed:
		slog.Error("artifact failed", "artifact", name, "stage", outcome.Stage.String(), "error", outcome.Err)
	}
}

func copyIntoIntake(path, intakeDir string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(filepath.Join(intakeDir, filepath.Base(path)))
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
