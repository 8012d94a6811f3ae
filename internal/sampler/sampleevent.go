// Package sampler implements the two independent sampling strategies (C8
// uniform, C9 interval) that emit fixed-duration, resampled segments of a
// decoded file on a channel for downstream fingerprinting or display.
package sampler

import "time"

// SampleEvent is one emitted segment. StartTime/EndTime are only populated
// by the interval sampler; the uniform sampler identifies segments purely
// by index, matching the two samplers' distinct event shapes in the
// reference implementation.
type SampleEvent struct {
	SampleIndex  int
	TotalSamples int
	Data         []float64
	SampleRate   int
	Duration     time.Duration
	StartTime    time.Duration
	EndTime      time.Duration
}
