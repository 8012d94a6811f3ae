package sampler

import (
	"context"
	"testing"
	"time"
)

func TestIntervalSamplerEmitsBackToBackSegments(t *testing.T) {
	// 2 seconds of audio at 10 Hz, 1-second segments every 1 second: two
	// back-to-back, non-overlapping segments expected.
	src := &fakeSource{rate: 10, packets: [][]float64{
		make([]float64, 10),
		make([]float64, 10),
	}}
	s := NewIntervalSampler(time.Second, time.Second, 10)
	out := make(chan SampleEvent, 10)

	if err := s.Run(context.Background(), src, 2*time.Second, out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(out)

	var events []SampleEvent
	for e := range out {
		events = append(events, e)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].StartTime != 0 || events[0].EndTime != time.Second {
		t.Errorf("event 0 window = [%v, %v), want [0s, 1s)", events[0].StartTime, events[0].EndTime)
	}
	if events[1].StartTime != time.Second || events[1].EndTime != 2*time.Second {
		t.Errorf("event 1 window = [%v, %v), want [1s, 2s)", events[1].StartTime, events[1].EndTime)
	}
}

func TestIntervalSamplerZeroPadsShortTrailingSegment(t *testing.T) {
	// Only half a second of data available for a 1-second segment: the
	// trailing segment must still emit, zero-padded.
	src := &fakeSource{rate: 10, packets: [][]float64{
		make([]float64, 5),
	}}
	s := NewIntervalSampler(time.Second, time.Second, 10)
	out := make(chan SampleEvent, 10)

	if err := s.Run(context.Background(), src, time.Second, out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(out)

	var events []SampleEvent
	for e := range out {
		events = append(events, e)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if len(events[0].Data) != 10 {
		t.Fatalf("Data length = %d, want 10 (zero-padded)", len(events[0].Data))
	}
	for i := 5; i < 10; i++ {
		if events[0].Data[i] != 0 {
			t.Errorf("Data[%d] = %v, want 0 (padding)", i, events[0].Data[i])
		}
	}
}

func TestIntervalSamplerRejectsTooShortSampleDuration(t *testing.T) {
	s := NewIntervalSampler(time.Nanosecond, time.Second, 10)
	out := make(chan SampleEvent, 1)
	src := &fakeSource{rate: 10}

	err := s.Run(context.Background(), src, time.Second, out)
	if err != errSampleDurationTooShort {
		t.Fatalf("Run() error = %v, want errSampleDurationTooShort", err)
	}
}
