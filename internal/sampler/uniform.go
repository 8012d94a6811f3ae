package sampler

import (
	"context"
	"errors"
	"io"
	"time"
)

// UniformSampler emits exactly sampleCount segments of sampleDuration each,
// taken back-to-back from the start of a file. If sampleCount segments of that
// duration would overrun the file's actual duration, consecutive segments
// overlap just enough to still fit exactly sampleCount segments in.
type UniformSampler struct {
	sampleDuration   time.Duration
	sampleCount      int
	targetSampleRate int
}

// NewUniformSampler builds a uniform sampler that will emit sampleCount
// segments of sampleDuration each, resampled to targetSampleRate.
func NewUniformSampler(sampleDuration time.Duration, sampleCount, targetSampleRate int) *UniformSampler {
	return &UniformSampler{
		sampleDuration:   sampleDuration,
		sampleCount:      sampleCount,
		targetSampleRate: targetSampleRate,
	}
}

// Run streams src's samples, emitting SampleEvents on out. fileDuration is
// the file's total playable duration, used to decide whether overlap is
// needed. Run returns ctx.Err() if ctx is cancelled, including while
// blocked trying to send an event to a slow or gone consumer.
func (s *UniformSampler) Run(ctx context.Context, src Source, fileDuration time.Duration, out chan<- SampleEvent) error {
	samplesPerChunk := int(s.sampleDuration.Seconds() * float64(s.targetSampleRate))
	if samplesPerChunk <= 0 {
		return errors.New("sampler: sample duration too short for target sample rate")
	}

	var overlapSamples int
	totalDesired := s.sampleDuration * time.Duration(s.sampleCount)
	if totalDesired > fileDuration && s.sampleCount > 1 {
		overlapSeconds := (totalDesired - fileDuration).Seconds() / float64(s.sampleCount-1)
		overlapSamples = int(overlapSeconds * float64(s.targetSampleRate))
		if overlapSamples >= samplesPerChunk {
			overlapSamples = samplesPerChunk - 1
		}
		if overlapSamples < 0 {
			overlapSamples = 0
		}
	}
	hop := samplesPerChunk - overlapSamples
	if hop <= 0 {
		hop = 1
	}

	buf := make([]float64, 0, samplesPerChunk*2)
	index := 0
	eof := false

	emit := func() error {
		chunk := make([]float64, samplesPerChunk)
		n := copy(chunk, buf)
		for i := n; i < samplesPerChunk; i++ {
			chunk[i] = 0
		}
		event := SampleEvent{
			SampleIndex:  index,
			TotalSamples: s.sampleCount,
			Data:         chunk,
			SampleRate:   s.targetSampleRate,
			Duration:     s.sampleDuration,
		}
		select {
		case out <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
		index++
		if hop >= len(buf) {
			buf = buf[:0]
		} else {
			buf = append(buf[:0], buf[hop:]...)
		}
		return nil
	}

	for index < s.sampleCount {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !eof {
			packet, err := drain(src)
			if len(packet) > 0 {
				buf = append(buf, packet...)
			}
			if err == io.EOF {
				eof = true
			} else if err != nil {
				return err
			}
		}

		for len(buf) >= samplesPerChunk && index < s.sampleCount {
			if err := emit(); err != nil {
				return err
			}
		}

		if eof && index < s.sampleCount {
			if err := emit(); err != nil {
				return err
			}
		}
	}
	return nil
}
