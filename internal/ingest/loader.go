package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rhymebook/rhymebook-backend/internal/ingest/doctree"
	"github.com/rhymebook/rhymebook-backend/internal/ingest/extract"
)

// FileFailure records one file that could not be fully ingested.
type FileFailure struct {
	File string
	Err  error
}

// RunReport summarizes a directory load.
type RunReport struct {
	FilesProcessed  int
	EntriesIngested int
	EntriesSkipped  int
	Failures        []FileFailure
	Duration        time.Duration
}

// OK reports whether every file ingested cleanly.
func (r *RunReport) OK() bool {
	return len(r.Failures) == 0
}

// Loader feeds a directory of entry documents through the pipeline.
// A failing file is recorded and the run continues: one bad document must
// not block the rest of the corpus.
type Loader struct {
	log             *slog.Logger
	converter       *doctree.Converter
	pipeline        *Pipeline
	malformedMarker string
}

// NewLoader creates a Loader. Files whose name contains the marker
// (case-insensitively) are excluded from a run.
func NewLoader(log *slog.Logger, converter *doctree.Converter, pipeline *Pipeline, malformedMarker string) *Loader {
	return &Loader{
		log:             log,
		converter:       converter,
		pipeline:        pipeline,
		malformedMarker: malformedMarker,
	}
}

// CollectFiles lists the .xml files of dir, non-recursively, excluding
// names that carry the malformed marker, sorted case-insensitively so runs
// are deterministic across filesystems.
func (l *Loader) CollectFiles(dir string) ([]string, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}

	marker := strings.ToLower(l.malformedMarker)
	var files []string
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		name := strings.ToLower(de.Name())
		if !strings.HasSuffix(name, ".xml") {
			l.log.Warn("skipping non-xml file", slog.String("file", de.Name()))
			continue
		}
		if marker != "" && strings.Contains(name, marker) {
			l.log.Debug("skipping marked file", slog.String("file", de.Name()))
			continue
		}
		files = append(files, filepath.Join(dir, de.Name()))
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i]) < strings.ToLower(files[j])
	})
	return files, nil
}

// Run ingests every collected file of dir and reports the outcome. The
// error return covers only the directory scan itself; per-file failures
// land in the report.
func (l *Loader) Run(ctx context.Context, dir string) (*RunReport, error) {
	start := time.Now()

	files, err := l.CollectFiles(dir)
	if err != nil {
		return nil, err
	}

	report := &RunReport{}
	for _, file := range files {
		report.FilesProcessed++
		if err := l.loadFile(ctx, file, report); err != nil {
			l.log.Error("file failed",
				slog.String("file", file),
				slog.String("error", err.Error()))
			report.Failures = append(report.Failures, FileFailure{File: file, Err: err})
		}
	}
	report.Duration = time.Since(start)

	l.log.Info("run finished",
		slog.Int("files", report.FilesProcessed),
		slog.Int("ingested", report.EntriesIngested),
		slog.Int("skipped", report.EntriesSkipped),
		slog.Int("failed", len(report.Failures)),
		slog.Duration("duration", report.Duration),
	)
	return report, nil
}

func (l *Loader) loadFile(ctx context.Context, file string, report *RunReport) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	doc, err := l.converter.Convert(raw)
	if err != nil {
		return err
	}

	for _, node := range extract.EntryNodes(doc) {
		result, err := l.pipeline.IngestEntry(ctx, node)
		if err != nil {
			return err
		}
		if result.Skipped {
			report.EntriesSkipped++
		} else {
			report.EntriesIngested++
			l.log.Info("entry ingested",
				slog.String("slug", result.Slug),
				slog.Int("senses", result.Senses))
		}
	}
	return nil
}
