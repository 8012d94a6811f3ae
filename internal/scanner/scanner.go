// Package scanner walks configured library paths, finds audio files, and
// drives them through the concurrent analysis pipeline.
package scanner

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/austinkregel/local-media/musicd/internal/analysis"
	"github.com/austinkregel/local-media/musicd/internal/audio"
)

// SupportedExtensions are the audio file extensions the codec registry
// recognizes.
var SupportedExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".oga":  true,
	".wav":  true,
}

// FileInfo represents basic info about a discovered audio file.
type FileInfo struct {
	Path       string `json:"path"`
	Size       int64  `json:"size"`
	ModifiedAt int64  `json:"modifiedAt"` // Unix timestamp
}

// ScanResult is the result of a library scan.
type ScanResult struct {
	LibraryPath string     `json:"libraryPath"`
	Files       []FileInfo `json:"files"`
	TotalFiles  int        `json:"totalFiles"`
	ScanTimeMs  int64      `json:"scanTimeMs"`
	Error       string     `json:"error,omitempty"`
}

// ScanStatus represents the current scan state.
type ScanStatus struct {
	Status   string // "idle", "scanning", "complete", "error"
	Progress int    // 0-100
	Message  string
}

// Scanner discovers audio files under configured library paths and can hand
// them off to an analysis.Worker.
type Scanner struct {
	mu          sync.Mutex
	isRunning   bool
	cancel      context.CancelFunc
	status      ScanStatus
	lastResults []ScanResult
}

// NewScanner creates a new scanner.
func NewScanner() *Scanner {
	return &Scanner{status: ScanStatus{Status: "idle"}}
}

// GetStatus returns the current scan status.
func (s *Scanner) GetStatus() ScanStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// GetLastResults returns the last scan results.
func (s *Scanner) GetLastResults() []ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResults
}

// ClearResults clears the last scan results (after they've been fetched).
func (s *Scanner) ClearResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResults = nil
	if s.status.Status == "complete" {
		s.status.Status = "idle"
	}
}

// IsRunning returns whether a scan is in progress.
func (s *Scanner) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// Stop stops any running scan.
func (s *Scanner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.isRunning = false
}

// ScanPaths scans the given library paths for audio files (synchronous).
func (s *Scanner) ScanPaths(ctx context.Context, paths []string) []ScanResult {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return []ScanResult{{Error: "scan already in progress"}}
	}
	s.isRunning = true
	s.status = ScanStatus{Status: "scanning", Progress: 0, Message: "Starting scan..."}
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRunning = false
		s.cancel = nil
		s.mu.Unlock()
	}()

	results := make([]ScanResult, 0, len(paths))
	totalPaths := len(paths)

	for i, path := range paths {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.status = ScanStatus{Status: "idle", Message: "Scan cancelled"}
			s.mu.Unlock()
			return results
		default:
		}

		progress := (i * 100) / totalPaths
		s.mu.Lock()
		s.status = ScanStatus{Status: "scanning", Progress: progress, Message: "Scanning: " + path}
		s.mu.Unlock()

		result := s.scanPath(ctx, path)
		results = append(results, result)
	}

	s.mu.Lock()
	s.lastResults = results
	s.status = ScanStatus{Status: "complete", Progress: 100, Message: "Scan complete"}
	s.mu.Unlock()

	return results
}

// ScanPathsAsync starts a background scan and returns immediately.
func (s *Scanner) ScanPathsAsync(ctx context.Context, paths []string) bool {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return false
	}
	s.isRunning = true
	s.status = ScanStatus{Status: "scanning", Progress: 0, Message: "Starting scan..."}
	s.lastResults = nil
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.cancel = nil
			s.mu.Unlock()
		}()

		log.Printf("[SCANNER] Async scan starting for %d paths", len(paths))
		results := make([]ScanResult, 0, len(paths))
		totalPaths := len(paths)

		for i, path := range paths {
			select {
			case <-ctx.Done():
				log.Printf("[SCANNER] Scan cancelled")
				s.mu.Lock()
				s.status = ScanStatus{Status: "idle", Message: "Scan cancelled"}
				s.mu.Unlock()
				return
			default:
			}

			progress := (i * 100) / totalPaths
			s.mu.Lock()
			s.status = ScanStatus{Status: "scanning", Progress: progress, Message: "Scanning: " + path}
			s.mu.Unlock()

			result := s.scanPath(ctx, path)
			results = append(results, result)
			log.Printf("[SCANNER] Found %d files in %s", result.TotalFiles, path)
		}

		totalFiles := 0
		for _, r := range results {
			totalFiles += r.TotalFiles
		}

		s.mu.Lock()
		s.lastResults = results
		s.status = ScanStatus{Status: "complete", Progress: 100, Message: "Scan complete"}
		s.mu.Unlock()

		log.Printf("[SCANNER] Async scan complete: %d total files from %d library paths", totalFiles, len(paths))
	}()

	return true
}

// scanPath walks a single library path and collects audio file metadata. No
// tag reading happens here; it is pure filesystem discovery.
func (s *Scanner) scanPath(ctx context.Context, libraryPath string) ScanResult {
	start := time.Now()
	result := ScanResult{
		LibraryPath: libraryPath,
		Files:       []FileInfo{},
	}

	info, err := os.Stat(libraryPath)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if !info.IsDir() {
		result.Error = "path is not a directory"
		return result
	}

	var fileInfos []FileInfo
	err = filepath.WalkDir(libraryPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files we can't access
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != libraryPath {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !SupportedExtensions[ext] {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}

		fileInfos = append(fileInfos, FileInfo{
			Path:       path,
			Size:       fi.Size(),
			ModifiedAt: fi.ModTime().Unix(),
		})
		return nil
	})

	if err != nil && err != context.Canceled {
		result.Error = err.Error()
	}

	result.Files = fileInfos
	result.TotalFiles = len(fileInfos)
	result.ScanTimeMs = time.Since(start).Milliseconds()

	log.Printf("[SCANNER] Discovered %d audio files in %s", result.TotalFiles, libraryPath)

	return result
}

// ScanPathsStreaming scans paths and sends discovered files via a channel.
// Useful for large libraries where incremental updates matter.
func (s *Scanner) ScanPathsStreaming(ctx context.Context, paths []string, results chan<- FileInfo) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRunning = false
		s.cancel = nil
		s.mu.Unlock()
		close(results)
	}()

	for _, libraryPath := range paths {
		info, err := os.Stat(libraryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		err = filepath.WalkDir(libraryPath, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != libraryPath {
					return filepath.SkipDir
				}
				return nil
			}

			ext := strings.ToLower(filepath.Ext(path))
			if !SupportedExtensions[ext] {
				return nil
			}

			fi, err := d.Info()
			if err != nil {
				return nil
			}

			select {
			case results <- FileInfo{
				Path:       path,
				Size:       fi.Size(),
				ModifiedAt: fi.ModTime().Unix(),
			}:
			case <-ctx.Done():
				return ctx.Err()
			}

			return nil
		})

		if err == context.Canceled {
			return err
		}
	}

	return nil
}

// AnalyzeLibrary discovers audio files under paths and runs every one of
// them through an analysis.Worker, invoking onResult as each file finishes.
// It returns once discovery and analysis of every path have completed or
// ctx is cancelled.
func (s *Scanner) AnalyzeLibrary(ctx context.Context, paths []string, opts audio.Options, maxConcurrent int, onResult analysis.ResultCallback) []ScanResult {
	scanResults := s.ScanPaths(ctx, paths)

	var files []string
	for _, sr := range scanResults {
		for _, f := range sr.Files {
			files = append(files, f.Path)
		}
	}

	worker := analysis.NewWorker(maxConcurrent, opts)
	worker.AnalyzeAll(ctx, files, onResult)

	log.Printf("[SCANNER] Analysis complete: %d analyzed, %d failed", worker.Analyzed(), worker.Failed())

	return scanResults
}
