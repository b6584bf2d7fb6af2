// Command loadentries ingests a directory of dictionary entry documents
// into the database, one transaction per entry, and refreshes the site
// statistics snapshot after a clean run. It is intended to be run offline,
// not as part of a server.
//
// Flags:
//
//	--dir             source directory (overrides config)
//	--skip-unchanged  skip entries whose raw source matches the stored snapshot
//
// Exit codes: 0 = success, 1 = any file failed.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres/artist"
	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres/entry"
	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres/example"
	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres/namedentity"
	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres/place"
	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres/sense"
	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres/song"
	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres/stats"
	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres/taxonomy"
	"github.com/rhymebook/rhymebook-backend/internal/app"
	"github.com/rhymebook/rhymebook-backend/internal/config"
	"github.com/rhymebook/rhymebook-backend/internal/geo"
	"github.com/rhymebook/rhymebook-backend/internal/ingest"
	"github.com/rhymebook/rhymebook-backend/internal/ingest/doctree"
)

// Compile-time interface assertions.
var (
	_ ingest.EntryRepo = (*entry.Repo)(nil)
	_ ingest.SenseRepo = (*sense.Repo)(nil)
	_ ingest.StatsRepo = (*stats.Repo)(nil)
)

func main() {
	dirFlag := flag.String("dir", "", "source directory (overrides config)")
	skipFlag := flag.Bool("skip-unchanged", false, "skip entries whose raw source matches the stored snapshot")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	slog.SetDefault(logger)
	logger.Info("starting loader", slog.String("version", app.BuildVersion()))

	dir := cfg.Ingest.SourceDir
	if *dirFlag != "" {
		dir = *dirFlag
	}
	skipUnchanged := cfg.Ingest.SkipUnchanged || *skipFlag

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	repos := ingest.Repos{
		Entries:  entry.New(pool),
		Senses:   sense.New(pool),
		Examples: example.New(pool),
		Songs:    song.New(pool),
		Artists:  artist.New(pool),
		Places:   place.New(pool),
		Taxonomy: taxonomy.New(pool),
		Entities: namedentity.New(pool),
	}

	var geocoder geo.Geocoder
	if cfg.Geo.Enabled {
		geocoder = geo.NewNominatim(cfg.Geo.Endpoint, cfg.Geo.UserAgent, logger)
	}

	pipeline := ingest.NewPipeline(logger, txm, repos, geocoder, ingest.Options{
		SkipUnchanged: skipUnchanged,
	})
	converter := doctree.NewConverter(cfg.Ingest.ForceListElements...)
	loader := ingest.NewLoader(logger, converter, pipeline, cfg.Ingest.MalformedMarker)

	report, err := loader.Run(ctx, dir)
	if err != nil {
		logger.Error("run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if !report.OK() {
		for _, f := range report.Failures {
			logger.Error("file failed",
				slog.String("file", f.File),
				slog.String("error", f.Err.Error()))
		}
		os.Exit(1)
	}

	if _, err := ingest.UpdateStats(ctx, logger, stats.New(pool)); err != nil {
		logger.Error("update stats", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
