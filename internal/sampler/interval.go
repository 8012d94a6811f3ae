package sampler

import (
	"context"
	"errors"
	"io"
	"time"
)

var errSampleDurationTooShort = errors.New("sampler: sample duration too short for target sample rate")

// IntervalSampler emits a sampleDuration-long segment every interval,
// back-to-back across the file's duration (not a fixed count of segments
// like UniformSampler). A segment that straddles the end of the file, or
// that the stream runs dry before filling, is zero-padded before emission
// rather than dropped.
type IntervalSampler struct {
	sampleDuration   time.Duration
	interval         time.Duration
	targetSampleRate int
}

// NewIntervalSampler builds an interval sampler that emits a
// sampleDuration-long, targetSampleRate segment every interval.
func NewIntervalSampler(sampleDuration, interval time.Duration, targetSampleRate int) *IntervalSampler {
	return &IntervalSampler{
		sampleDuration:   sampleDuration,
		interval:         interval,
		targetSampleRate: targetSampleRate,
	}
}

// Run streams src's samples, emitting SampleEvents on out every interval
// until fileDuration elapses or the stream ends. Returns ctx.Err() if
// cancelled, including while blocked trying to send: Run selects on
// ctx.Done() alongside every send so a stuck consumer cannot hang the
// sampler forever.
func (s *IntervalSampler) Run(ctx context.Context, src Source, fileDuration time.Duration, out chan<- SampleEvent) error {
	samplesPerChunk := int(s.sampleDuration.Seconds() * float64(s.targetSampleRate))
	if samplesPerChunk <= 0 {
		return errSampleDurationTooShort
	}

	buf := make([]float64, 0, samplesPerChunk)
	index := 0
	var currentTime time.Duration
	nextSampleTime := time.Duration(0)
	sampleInterval := time.Second / time.Duration(s.targetSampleRate)

	var pending []float64
	eof := false

	nextSample := func() (float64, bool, error) {
		for len(pending) == 0 {
			if eof {
				return 0, false, nil
			}
			packet, err := drain(src)
			if len(packet) > 0 {
				pending = packet
			}
			if err == io.EOF {
				eof = true
			} else if err != nil {
				return 0, false, err
			}
			if eof && len(pending) == 0 {
				return 0, false, nil
			}
		}
		v := pending[0]
		pending = pending[1:]
		return v, true, nil
	}

	emit := func(start time.Duration) error {
		chunk := make([]float64, samplesPerChunk)
		n := copy(chunk, buf)
		for i := n; i < samplesPerChunk; i++ {
			chunk[i] = 0
		}
		event := SampleEvent{
			SampleIndex: index,
			Data:        chunk,
			SampleRate:  s.targetSampleRate,
			Duration:    s.sampleDuration,
			StartTime:   start,
			EndTime:     start + s.sampleDuration,
		}
		select {
		case out <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
		index++
		buf = buf[:0]
		nextSampleTime += s.interval
		return nil
	}

	for currentTime < fileDuration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		sample, ok, err := nextSample()
		if err != nil {
			return err
		}
		if !ok {
			if len(buf) > 0 {
				if err := emit(nextSampleTime); err != nil {
					return err
				}
			}
			break
		}

		inWindow := currentTime >= nextSampleTime && currentTime < nextSampleTime+s.sampleDuration
		if inWindow {
			buf = append(buf, sample)
			if len(buf) >= samplesPerChunk {
				if err := emit(nextSampleTime); err != nil {
					return err
				}
			}
		} else if currentTime >= nextSampleTime+s.sampleDuration && len(buf) > 0 {
			if err := emit(nextSampleTime); err != nil {
				return err
			}
		}

		currentTime += sampleInterval
	}
	if len(buf) > 0 {
		return emit(nextSampleTime)
	}
	return nil
}
