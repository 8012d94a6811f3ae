package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/austinkregel/local-media/musicd/internal/analysis"
	"github.com/austinkregel/local-media/musicd/internal/audio"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func TestScanPathsFindsSupportedExtensionsOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mp3"))
	writeFile(t, filepath.Join(dir, "b.flac"))
	writeFile(t, filepath.Join(dir, "notes.txt"))

	s := NewScanner()
	results := s.ScanPaths(context.Background(), []string{dir})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", results[0].TotalFiles)
	}
	if s.GetStatus().Status != "complete" {
		t.Errorf("status = %q, want complete", s.GetStatus().Status)
	}
}

func TestScanPathsSkipsHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".cache")
	if err := os.Mkdir(hidden, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	writeFile(t, filepath.Join(hidden, "skip.mp3"))
	writeFile(t, filepath.Join(dir, "keep.wav"))

	s := NewScanner()
	results := s.ScanPaths(context.Background(), []string{dir})
	if results[0].TotalFiles != 1 {
		t.Fatalf("TotalFiles = %d, want 1 (hidden dir contents should be skipped)", results[0].TotalFiles)
	}
	if results[0].Files[0].Path != filepath.Join(dir, "keep.wav") {
		t.Errorf("Files[0].Path = %q, want keep.wav", results[0].Files[0].Path)
	}
}

func TestScanPathsReportsErrorForMissingDirectory(t *testing.T) {
	s := NewScanner()
	results := s.ScanPaths(context.Background(), []string{"/nonexistent/library/path"})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Error == "" {
		t.Error("expected a non-empty Error for a missing library path")
	}
}

func TestAnalyzeLibraryFailsEveryDiscoveredFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mp3"))
	writeFile(t, filepath.Join(dir, "b.flac"))

	s := NewScanner()
	var results []analysis.Result
	scanResults := s.AnalyzeLibrary(context.Background(), []string{dir}, audio.DefaultOptions(), 2, func(r analysis.Result) {
		results = append(results, r)
	})

	if len(scanResults) != 1 || scanResults[0].TotalFiles != 2 {
		t.Fatalf("scanResults = %+v, want 1 result with 2 files", scanResults)
	}
	if len(results) != 2 {
		t.Fatalf("got %d analysis results, want 2", len(results))
	}
	for _, r := range results {
		if r.Err == nil {
			t.Errorf("result for %q: expected a decode error for a fake text-content file", r.Path)
		}
	}
}
