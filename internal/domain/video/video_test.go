package video

import (
	"context"
	"fmt"
	"testing"

	"pralay-server-go/internal/domain/imaging"
)

func TestFramePositions(t *testing.T) {
	tests := []struct {
		duration float64
		want     []float64
	}{
		{5, []float64{0.2, 0.5, 0.8}},
		{30, []float64{0.2, 0.5, 0.8}},
		{60, []float64{0.1, 0.3, 0.6, 0.9}},
		{120, []float64{0.1, 0.3, 0.6, 0.9}},
		{290, []float64{0.1, 0.3, 0.6, 0.9}},
	}
	for _, tt := range tests {
		got := FramePositions(tt.duration)
		if len(got) != len(tt.want) {
			t.Errorf("duration %.0fs: expected %d positions, got %d", tt.duration, len(tt.want), len(got))
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("duration %.0fs: position %d is %f, want %f", tt.duration, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		rate string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 29.97002997002997},
		{"0/0", 0},
		{"garbage", 0},
		{"1/0", 0},
	}
	for _, tt := range tests {
		if got := parseFrameRate(tt.rate); got != tt.want {
			t.Errorf("parseFrameRate(%q) = %f, want %f", tt.rate, got, tt.want)
		}
	}
}

// stubExtractor returns canned frames and lets tests break selected offsets.
type stubExtractor struct {
	info    *Info
	failAt  map[float64]bool
	frame   *imaging.Frame
	calls   []float64
	probeOK bool
}

func (s *stubExtractor) Probe(ctx context.Context, path string) (*Info, error) {
	if !s.probeOK {
		return nil, fmt.Errorf("probe failed")
	}
	return s.info, nil
}

func (s *stubExtractor) ExtractFrame(ctx context.Context, path string, atSeconds float64, maxWidth int) (*imaging.Frame, error) {
	s.calls = append(s.calls, atSeconds)
	if s.failAt[atSeconds] {
		return nil, fmt.Errorf("extract failed")
	}
	return s.frame, nil
}

func TestSamplerSchedule(t *testing.T) {
	stub := &stubExtractor{
		frame: imaging.NewFrame(4, 4),
	}
	sampler := NewSampler(stub, nil)

	frames := sampler.Sample(context.Background(), "clip.mp4", &Info{Duration: 10})
	if len(frames) != 3 {
		t.Errorf("10s clip should yield 3 frames, got %d", len(frames))
	}
	want := []float64{2, 5, 8}
	for i, at := range stub.calls {
		if at != want[i] {
			t.Errorf("call %d at %fs, want %fs", i, at, want[i])
		}
	}
}

func TestSamplerSkipsFailedFrames(t *testing.T) {
	stub := &stubExtractor{
		frame:  imaging.NewFrame(4, 4),
		failAt: map[float64]bool{30: true},
	}
	sampler := NewSampler(stub, nil)

	frames := sampler.Sample(context.Background(), "clip.mp4", &Info{Duration: 100})
	if len(frames) != 3 {
		t.Errorf("one failed frame of four should leave 3, got %d", len(frames))
	}
}
