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


// shardctl is the maintenance tool for the butler knowledge index: collection
// lifecycle, ad-hoc search, full question answering, and journal replay.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/theMladyPan/butler"
	"github.com/theMladyPan/butler/config"
	"github.com/theMladyPan/butler/core"
	"github.com/theMladyPan/butler/index"
	"github.com/theMladyPan/butler/search"
)

func main() {
	app := &cli.App{
		Name:  "shardctl",
		Usage: "Maintenance tool for the butler knowledge index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "create-collection",
				Usage:  "Create the index collection if it does not exist",
				Action: createCollectionCommand,
			},
			{
				Name:   "delete-collection",
				Usage:  "Delete the index collection and all its points",
				Action: deleteCollectionCommand,
			},
			{
				Name:   "info",
				Usage:  "Show collection name, vector size and point count",
				Action: infoCommand,
			},
			{
				Name:   "random-upsert",
				Usage:  "Upsert random points, for index smoke testing",
				Action: randomUpsertCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of random points",
						Value:   10,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Retrieve the nearest shards for a query",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags:     []cli.Flag{limitFlag()},
			},
			{
				Name:      "ask",
				Usage:     "Answer a question from the knowledge base",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags:     []cli.Flag{limitFlag()},
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the index collection from the shard journal",
				Action: reindexCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func limitFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"k"},
		Usage:   "Maximum number of shards to retrieve",
		Value:   search.DefaultLimit,
	}
}

// withService wires a service from the environment and hands it to fn.
func withService(c *cli.Context, fn func(*butler.Service) error) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	service, err := butler.New(cfg)
	if err != nil {
		return err
	}
	defer service.Close()
	return fn(service)
}

func createCollectionCommand(c *cli.Context) error {
	return withService(c, func(s *butler.Service) error {
		if err := s.EnsureCollection(c.Context); err != nil {
			return err
		}
		fmt.Printf("collection %q ready (%d dimensions)\n",
			s.Config().Collection, s.Config().VectorSize)
		return nil
	})
}

func deleteCollectionCommand(c *cli.Context) error {
	return withService(c, func(s *butler.Service) error {
		if err := s.Indexer().DeleteCollection(c.Context); err != nil {
			return err
		}
		fmt.Printf("collection %q deleted\n", s.Config().Collection)
		return nil
	})
}

func infoCommand(c *cli.Context) error {
	return withService(c, func(s *butler.Service) error {
		info, err := s.Indexer().Info(c.Context)
		if err != nil {
			return err
		}
		journaled, err := s.Journal().Count(c.Context)
		if err != nil {
			return err
		}
		fmt.Printf("collection: %s\nvector size: %d\npoints: %d\njournaled shards: %d\n",
			info.Name, info.VectorSize, info.PointCount, journaled)
		return nil
	})
}

func randomUpsertCommand(c *cli.Context) error {
	return withService(c, func(s *butler.Service) error {
		if err := s.EnsureCollection(c.Context); err != nil {
			return err
		}

		count := c.Int("count")
		size := s.Config().VectorSize
		points := make([]index.Point, count)
		for i := range points {
			vector := make([]float32, size)
			for d := range vector {
				vector[d] = rand.Float32()*2 - 1
			}
			points[i] = index.Point{
				ID:      core.ID(rand.Uint64()),
				Vector:  vector,
				Payload: index.Payload{InformationShard: fmt.Sprintf("random point %d", i)},
			}
		}

		if err := s.Store().Upsert(c.Context, points); err != nil {
			return err
		}
		fmt.Printf("upserted %d random points\n", count)
		return nil
	})
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query argument required")
	}

	return withService(c, func(s *butler.Service) error {
		retriever, err := search.NewRetriever(s.Provider().Embedder(), s.Indexer())
		if err != nil {
			return err
		}

		results, err := retriever.Retrieve(c.Context, query, c.Int("limit"))
		if err != nil {
			return err
		}
		if results.Empty() {
			fmt.Println("no matches")
			return nil
		}
		for i, match := range results.Matches {
			fmt.Printf("%d. [%.4f] %s\n", i+1, match.Score, match.Information)
		}
		return nil
	})
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question argument required")
	}

	return withService(c, func(s *butler.Service) error {
		searcher, err := s.NewSearcher()
		if err != nil {
			return err
		}

		answer, err := searcher.Ask(c.Context, question, c.Int("limit"))
		if err != nil {
			return err
		}
		fmt.Println(answer.Text)
		fmt.Printf("\n(query: %q, matches: %d, max score: %.4f)\n",
			answer.Query, answer.Matches, answer.MaxScore)
		return nil
	})
}

func reindexCommand(c *cli.Context) error {
	return withService(c, func(s *butler.Service) error {
		if err := s.EnsureCollection(c.Context); err != nil {
			return err
		}
		written, err := s.Reindex(c.Context)
		if err != nil {
			return err
		}
		fmt.Printf("reindexed %d points from the journal\n", written)
		return nil
	})
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
