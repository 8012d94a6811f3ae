package analysis

import (
	"context"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/austinkregel/local-media/musicd/internal/audio"
)

// Result pairs one file's path with its analysis outcome.
type Result struct {
	Path     string
	Desc     *audio.AudioDescription
	Features SpectralFeatures
	Err      error
}

// ResultCallback is invoked once per file as its analysis completes. It may
// be called concurrently from multiple worker goroutines.
type ResultCallback func(Result)

// Worker drives up to maxWorkers concurrent file analyses, gated by a
// counting semaphore, matching the teacher's worker-pool shape generalised
// to run the full audio.Analyzer pipeline instead of a single
// FeatureExtractor call.
type Worker struct {
	maxWorkers int
	opts       audio.Options
	logger     *log.Logger

	analyzed int64
	failed   int64
	inFlight int64
}

// NewWorker builds a Worker that analyzes at most maxWorkers files at
// once, each through its own Analyzer instance (Analyzer and its
// resampler/batch buffers are not shared across goroutines, matching the
// §5 resource model).
func NewWorker(maxWorkers int, opts audio.Options) *Worker {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[WORKER] ", log.LstdFlags)
	}
	return &Worker{maxWorkers: maxWorkers, opts: opts, logger: logger}
}

// AnalyzeAll analyzes every path in paths, calling onResult once per file
// as it completes. It blocks until all files are processed or ctx is
// cancelled, at which point any analyses still running are cancelled
// cooperatively and already-running workers are allowed to unwind.
func (w *Worker) AnalyzeAll(ctx context.Context, paths []string, onResult ResultCallback) {
	sem := make(chan struct{}, w.maxWorkers)
	var wg sync.WaitGroup

	for _, path := range paths {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}

		wg.Add(1)
		atomic.AddInt64(&w.inFlight, 1)
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()
			defer atomic.AddInt64(&w.inFlight, -1)

			opts := w.opts
			opts.Logger = w.logger
			analyzer := audio.NewAnalyzer(opts)
			desc, err := analyzer.Analyze(ctx, path)

			result := Result{Path: path}
			if err != nil {
				atomic.AddInt64(&w.failed, 1)
				result.Err = err
				w.logger.Printf("analysis failed for %q: %v", path, err)
			} else {
				atomic.AddInt64(&w.analyzed, 1)
				result.Desc = desc
				result.Features = ExtractSpectralFeatures(desc, opts.WindowSize)
			}
			if onResult != nil {
				onResult(result)
			}
		}(path)
	}

	wg.Wait()
}

// Analyzed is the number of files successfully analyzed so far.
func (w *Worker) Analyzed() int64 { return atomic.LoadInt64(&w.analyzed) }

// Failed is the number of files that failed analysis so far.
func (w *Worker) Failed() int64 { return atomic.LoadInt64(&w.failed) }

// InFlight is the number of analyses currently running.
func (w *Worker) InFlight() int64 { return atomic.LoadInt64(&w.inFlight) }
