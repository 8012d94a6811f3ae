// Package main is the entry point for musicd.
// musicd walks configured audio libraries, decodes and analyzes the tracks
// it finds, and reports the resulting feature vectors.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/austinkregel/local-media/musicd/internal/analysis"
	"github.com/austinkregel/local-media/musicd/internal/audio"
	"github.com/austinkregel/local-media/musicd/internal/config"
	"github.com/austinkregel/local-media/musicd/internal/scanner"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "scan":
		err = runScan(ctx, os.Args[2:])
	case "analyze":
		err = runAnalyze(ctx, os.Args[2:])
	case "version":
		fmt.Printf("musicd version %s\n", Version)
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: musicd <scan|analyze|version> [flags]\n")
}

// runScan and runAnalyze both load the daemon config for its
// AnalysisConfig defaults, matching the teacher's config.NewManager /
// Load pattern.
func loadConfig(configDir string) (*config.Manager, error) {
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = homeDir + "/.config/musicd"
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	mgr := config.NewManager(configDir)
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return mgr, nil
}

func runScan(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	configDir := fs.String("config", "", "Configuration directory (default: ~/.config/musicd)")
	fs.Parse(args)

	paths := fs.Args()
	mgr, err := loadConfig(*configDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		paths = mgr.Get().LibraryPaths
	}
	if len(paths) == 0 {
		return fmt.Errorf("no library paths configured or given")
	}

	s := scanner.NewScanner()
	results := s.ScanPaths(ctx, paths)
	return json.NewEncoder(os.Stdout).Encode(results)
}

func runAnalyze(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configDir := fs.String("config", "", "Configuration directory (default: ~/.config/musicd)")
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	fs.Parse(args)

	if *verbose {
		log.Printf("musicd version %s starting analysis...", Version)
	}

	mgr, err := loadConfig(*configDir)
	if err != nil {
		return err
	}
	cfg := mgr.Get()

	paths := fs.Args()
	var files []string
	if len(paths) > 0 {
		files = paths
	} else {
		s := scanner.NewScanner()
		libPaths := cfg.LibraryPaths
		if len(libPaths) == 0 {
			return fmt.Errorf("no library paths configured or given")
		}
		for _, sr := range s.ScanPaths(ctx, libPaths) {
			for _, f := range sr.Files {
				files = append(files, f.Path)
			}
		}
	}

	opts := cfg.Analysis.ToAudioOptions()
	worker := analysis.NewWorker(cfg.Analysis.MaxConcurrentAnalyses, opts)

	enc := json.NewEncoder(os.Stdout)
	worker.AnalyzeAll(ctx, files, func(r analysis.Result) {
		if r.Err != nil {
			log.Printf("analysis failed for %q: %v", r.Path, r.Err)
			return
		}
		out := struct {
			Path     string                   `json:"path"`
			Desc     *audio.AudioDescription  `json:"description"`
			Features analysis.SpectralFeatures `json:"features"`
		}{Path: r.Path, Desc: r.Desc, Features: r.Features}
		if err := enc.Encode(out); err != nil {
			log.Printf("failed to encode result for %q: %v", r.Path, err)
		}
	})

	log.Printf("analyzed %d files, %d failed", worker.Analyzed(), worker.Failed())
	return nil
}
