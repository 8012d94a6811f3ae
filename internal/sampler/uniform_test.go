package sampler

import (
	"context"
	"io"
	"testing"
	"time"
)

type fakeSource struct {
	rate    int
	packets [][]float64
	i       int
}

func (f *fakeSource) SampleRate() int { return f.rate }

func (f *fakeSource) NextSamples() ([]float64, error) {
	if f.i >= len(f.packets) {
		return nil, io.EOF
	}
	p := f.packets[f.i]
	f.i++
	return p, nil
}

func TestUniformSamplerEmitsExactlySampleCount(t *testing.T) {
	src := &fakeSource{rate: 10, packets: [][]float64{
		make([]float64, 10),
		make([]float64, 10),
		make([]float64, 10),
		make([]float64, 10),
	}}
	s := NewUniformSampler(time.Second, 2, 10)
	out := make(chan SampleEvent, 10)

	err := s.Run(context.Background(), src, 4*time.Second, out)
	if err != nil {
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
	if events[0].SampleIndex != 0 || events[1].SampleIndex != 1 {
		t.Errorf("unexpected sample indices: %d, %d", events[0].SampleIndex, events[1].SampleIndex)
	}
	if events[0].TotalSamples != 2 {
		t.Errorf("TotalSamples = %d, want 2", events[0].TotalSamples)
	}
}

func TestUniformSamplerOverlapsWhenFileTooShort(t *testing.T) {
	// 3 one-second segments requested but the file is only 2 seconds long:
	// segments must overlap to still fit 3 in.
	src := &fakeSource{rate: 10, packets: [][]float64{
		make([]float64, 10),
		make([]float64, 10),
	}}
	s := NewUniformSampler(time.Second, 3, 10)
	out := make(chan SampleEvent, 10)

	if err := s.Run(context.Background(), src, 2*time.Second, out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(out)

	count := 0
	for range out {
		count++
	}
	if count != 3 {
		t.Fatalf("got %d events, want 3 even though the file is shorter than 3 uncorrelated segments", count)
	}
}

func TestUniformSamplerRespectsCancellation(t *testing.T) {
	src := &fakeSource{rate: 10, packets: [][]float64{make([]float64, 10)}}
	s := NewUniformSampler(time.Second, 5, 10)
	out := make(chan SampleEvent) // unbuffered, never drained

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, src, 5*time.Second, out)
	if err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}
