package ingest

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rhymebook/rhymebook-backend/internal/ingest/doctree"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func entryDoc(headword string) string {
	return `<dictionary><entries>
<entry publish="true">
  <head><headword>` + headword + `</headword></head>
  <forms><form freq="1"><label>` + headword + `</label></form></forms>
</entry>
</entries></dictionary>`
}

func newTestLoader(t *testing.T) (*Loader, *mockStore) {
	t.Helper()
	store := newMockStore()
	pipeline := NewPipeline(discardLogger(), &fakeTx{}, store.repos(), nil, Options{})
	return NewLoader(discardLogger(), doctree.NewConverter(), pipeline, "malformed"), store
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Bravo.xml", "")
	writeFile(t, dir, "alpha.XML", "")
	writeFile(t, dir, "charlie.xml", "")
	writeFile(t, dir, "delta_malformed.xml", "")
	writeFile(t, dir, "notes.txt", "")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	store := newMockStore()
	pipeline := NewPipeline(logger, &fakeTx{}, store.repos(), nil, Options{})
	loader := NewLoader(logger, doctree.NewConverter(), pipeline, "malformed")

	files, err := loader.CollectFiles(dir)
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}

	want := []string{
		filepath.Join(dir, "alpha.XML"),
		filepath.Join(dir, "Bravo.xml"),
		filepath.Join(dir, "charlie.xml"),
	}
	if len(files) != len(want) {
		t.Fatalf("files: got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d]: got %q, want %q", i, files[i], want[i])
		}
	}

	// A misnamed source should leave a trace, not vanish silently.
	if !strings.Contains(logBuf.String(), "notes.txt") {
		t.Error("skipped non-xml file not reported in the log")
	}
}

func TestRun_IsolatesFileFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xml", entryDoc("apple"))
	writeFile(t, dir, "b.xml", "<dictionary><entries><entry></dictionary")
	writeFile(t, dir, "c.xml", entryDoc("cheddar"))

	loader, store := newTestLoader(t)
	report, err := loader.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.FilesProcessed != 3 {
		t.Errorf("files processed: got %d, want 3", report.FilesProcessed)
	}
	if report.EntriesIngested != 2 {
		t.Errorf("entries ingested: got %d, want 2", report.EntriesIngested)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("failures: got %d, want 1", len(report.Failures))
	}
	if report.Failures[0].File != filepath.Join(dir, "b.xml") {
		t.Errorf("failed file: got %q", report.Failures[0].File)
	}
	if report.OK() {
		t.Error("report.OK() true despite a failure")
	}

	// The broken file must not block its neighbors.
	for _, slug := range []string{"apple", "cheddar"} {
		if _, ok := store.entryIDs[slug]; !ok {
			t.Errorf("entry %q not ingested", slug)
		}
	}
}

func TestRun_MissingEntryFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.xml", `<dictionary><entries>
<entry publish="true"><head></head></entry>
</entries></dictionary>`)

	loader, _ := newTestLoader(t)
	report, err := loader.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("failures: got %d, want 1", len(report.Failures))
	}
	if report.EntriesIngested != 0 {
		t.Errorf("ingested: got %d, want 0", report.EntriesIngested)
	}
}

func TestRun_SkipCounted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xml", entryDoc("apple"))

	store := newMockStore()
	pipeline := NewPipeline(discardLogger(), &fakeTx{}, store.repos(), nil, Options{SkipUnchanged: true})
	loader := NewLoader(discardLogger(), doctree.NewConverter(), pipeline, "malformed")

	if _, err := loader.Run(context.Background(), dir); err != nil {
		t.Fatalf("first run: %v", err)
	}
	report, err := loader.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.EntriesSkipped != 1 || report.EntriesIngested != 0 {
		t.Errorf("second run: ingested=%d skipped=%d, want 0/1", report.EntriesIngested, report.EntriesSkipped)
	}

	if !report.OK() {
		t.Error("clean run not OK")
	}
}