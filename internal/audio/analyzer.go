// Package audio implements the decode -> mix -> resample -> window ->
// batch-FFT -> accumulate analysis pipeline (components C1-C5).
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/austinkregel/local-media/musicd/internal/codec"
	"github.com/austinkregel/local-media/musicd/internal/gpufft"
)

// ErrEmptyInput is returned when a file produces zero analysis windows
// (e.g. a zero-length or all-metadata container). The original analyzer
// panicked on this condition; here it is a typed, recoverable error.
var ErrEmptyInput = errors.New("audio: no analysable samples")

// ErrCancelled is returned when the analysis is cooperatively cancelled
// via the context passed to Analyze.
var ErrCancelled = errors.New("audio: analysis cancelled")

// AudioDescription is the feature vector produced for one file: the
// time-domain averages (RMS, ZCR, energy) and the average complex
// spectrum, which C7 takes the modulus of and turns into spectral-shape,
// chroma, loudness, and MFCC features.
type AudioDescription struct {
	Path            string   `json:"path"`
	SampleRate      int      `json:"sampleRate"`
	DurationSec     float64  `json:"durationSeconds"`
	WindowCount     uint64   `json:"windowCount"`
	MeanRMS         float64  `json:"meanRms"`
	MeanZCR         float64  `json:"meanZcr"`
	MeanEnergy      float64  `json:"meanEnergy"`
	AverageSpectrum Spectrum `json:"averageSpectrum"`
}

// Options configures an Analyzer.
type Options struct {
	WindowSize  int
	OverlapSize int
	Device      ComputeDevice
	BatchSize   int
	Logger      *log.Logger
}

// DefaultOptions matches the teacher's defaults: a 1024-sample window with
// no overlap on the CPU device.
func DefaultOptions() Options {
	return Options{
		WindowSize:  1024,
		OverlapSize: 0,
		Device:      DeviceCPU,
		BatchSize:   0, // resolved to the device default
	}
}

// Analyzer drives one file at a time through the full pipeline. It is not
// safe for concurrent use by multiple goroutines on the same instance; the
// orchestrator in internal/analysis creates one Analyzer per worker.
type Analyzer struct {
	opts   Options
	logger *log.Logger
}

// NewAnalyzer builds an Analyzer with the given options. If opts.Logger is
// nil, a logger writing to os.Stderr is used, matching the teacher's
// worker.go construction pattern.
func NewAnalyzer(opts Options) *Analyzer {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "[ANALYZER] ", log.LstdFlags)
	}
	return &Analyzer{opts: opts, logger: opts.Logger}
}

// Analyze decodes path, resamples to 11025 Hz, windows and batch-FFTs it,
// and returns the resulting feature vector. ctx is polled cooperatively at
// packet boundaries and at forced-flush boundaries; cancelling it returns
// ErrCancelled rather than a partial result.
func (a *Analyzer) Analyze(ctx context.Context, path string) (*AudioDescription, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: opening %q: %w", path, err)
	}
	track, err := codec.Open(path, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	defer track.Close()

	resampler, err := NewResampler(track.SampleRate())
	if err != nil {
		return nil, err
	}
	windowBuf := NewWindowBuffer(a.opts.WindowSize, a.opts.OverlapSize)
	accum := &FeatureAccumulator{}

	var kernel gpufft.Kernel
	if a.opts.Device == DeviceGPU {
		vk, err := gpufft.NewVulkanKernel()
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		defer vk.Close()
		kernel = vk
	}
	batch, err := NewBatchFFT(a.opts.WindowSize, a.opts.Device, a.opts.BatchSize, kernel)
	if err != nil {
		return nil, err
	}

	inputFrames := resampler.InputFramesMax()
	pending := make([]float32, 0, inputFrames*2)
	var totalSamples uint64

	// analysisHop is W-O, measured at the analysis (resampled) rate, but
	// applied directly to the source-rate pending buffer below. This
	// couples hop cadence loosely to the source rate rather than the
	// analysis rate; it is a deliberate contract, not a bug, and must be
	// preserved as-is.
	analysisHop := a.opts.WindowSize - a.opts.OverlapSize
	if analysisHop <= 0 {
		analysisHop = a.opts.WindowSize
	}

	flushPending := func(forcePad bool) error {
		for len(pending) >= inputFrames {
			chunk := pending[:inputFrames]
			rest := pending[inputFrames:]
			out, err := resampler.Process(chunk)
			if err != nil {
				return err
			}
			for _, win := range windowBuf.Push(out) {
				accum.Accumulate(win)
				if err := batch.Stage(win); err != nil {
					return err
				}
			}
			drain := analysisHop
			if drain > len(rest) {
				drain = len(rest)
			}
			pending = append([]float32{}, rest[drain:]...)
		}
		if forcePad && len(pending) > 0 {
			padded := make([]float32, inputFrames)
			copy(padded, pending)
			pending = pending[:0]
			out, err := resampler.Process(padded)
			if err != nil {
				return err
			}
			for _, win := range windowBuf.Push(out) {
				accum.Accumulate(win)
				if err := batch.Stage(win); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ErrCancelled
		default:
		}

		packet, err := track.NextPacket()
		if err != nil && err != io.EOF {
			if errors.Is(err, codec.ErrDecodeFatal) {
				return nil, fmt.Errorf("audio: %q: %w", path, err)
			}
			a.logger.Printf("transient decode error in %q: %v", path, err)
			continue
		}
		if len(packet) > 0 {
			pending = append(pending, packet...)
			totalSamples += uint64(len(packet))
			if err := flushPending(false); err != nil {
				return nil, err
			}
		}
		if err == io.EOF {
			break
		}
	}

	if err := flushPending(true); err != nil {
		return nil, err
	}
	if final := windowBuf.Flush(); final != nil {
		accum.Accumulate(final)
		if err := batch.Stage(final); err != nil {
			return nil, err
		}
	}
	select {
	case <-ctx.Done():
		return nil, ErrCancelled
	default:
	}
	if err := batch.ForceFlush(); err != nil {
		return nil, err
	}

	if accum.Count() == 0 {
		return nil, fmt.Errorf("audio: %q: %w", path, ErrEmptyInput)
	}

	meanRMS, meanZCR, meanEnergy := accum.Means()
	durationSec := float64(totalSamples) / float64(track.SampleRate())

	return &AudioDescription{
		Path:            path,
		SampleRate:      track.SampleRate(),
		DurationSec:     durationSec,
		WindowCount:     accum.Count(),
		MeanRMS:         meanRMS,
		MeanZCR:         meanZCR,
		MeanEnergy:      meanEnergy,
		AverageSpectrum: batch.AverageSpectrum(),
	}, nil
}
