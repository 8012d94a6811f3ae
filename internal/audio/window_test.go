package audio

import "testing"

func TestWindowBufferEmitsOnceFull(t *testing.T) {
	wb := NewWindowBuffer(4, 0)
	windows := wb.Push([]float32{1, 2, 3})
	if len(windows) != 0 {
		t.Fatalf("expected no windows yet, got %d", len(windows))
	}
	windows = wb.Push([]float32{4, 5})
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if len(windows[0]) != 4 {
		t.Fatalf("window length = %d, want 4", len(windows[0]))
	}
}

func TestWindowBufferOverlapAdvancesByHop(t *testing.T) {
	wb := NewWindowBuffer(4, 2) // hop = 2
	windows := wb.Push([]float32{1, 2, 3, 4, 5, 6, 7, 8})
	if len(windows) != 3 {
		t.Fatalf("expected 3 overlapping windows, got %d", len(windows))
	}
	want := [][]float32{{1, 2, 3, 4}, {3, 4, 5, 6}, {5, 6, 7, 8}}
	for i, w := range want {
		for j, v := range w {
			if windows[i][j] != v {
				t.Errorf("window %d sample %d = %v, want %v", i, j, windows[i][j], v)
			}
		}
	}
}

func TestWindowBufferFlushPadsToQuantum(t *testing.T) {
	wb := NewWindowBuffer(1024, 0)
	wb.Push(make([]float32, 100))
	final := wb.Flush()
	if len(final) != 1024 {
		t.Fatalf("Flush() length = %d, want 1024", len(final))
	}
	if wb.Flush() != nil {
		t.Fatalf("second Flush() should return nil on an empty buffer")
	}
}
