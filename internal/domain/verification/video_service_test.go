package verification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pralay-server-go/internal/domain/analysis"
	"pralay-server-go/internal/domain/imaging"
	"pralay-server-go/internal/domain/verification/cache"
	"pralay-server-go/internal/domain/verification/model"
	"pralay-server-go/internal/domain/video"
	"pralay-server-go/internal/platform/config"
)

// stubExtractor serves canned probe results and frames without ffmpeg.
type stubExtractor struct {
	info       *video.Info
	probeErr   error
	frame      *imaging.Frame
	extractErr error
	probes     int
	extracts   int
}

func (s *stubExtractor) Probe(ctx context.Context, path string) (*video.Info, error) {
	s.probes++
	if s.probeErr != nil {
		return nil, s.probeErr
	}
	return s.info, nil
}

func (s *stubExtractor) ExtractFrame(ctx context.Context, path string, atSeconds float64, maxWidth int) (*imaging.Frame, error) {
	s.extracts++
	if s.extractErr != nil {
		return nil, s.extractErr
	}
	return s.frame, nil
}

// oceanHazardFrame is half saturated blue water, half emergency red.
func oceanHazardFrame() *imaging.Frame {
	f := imaging.NewFrame(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if x < 32 {
				f.SetRGB(x, y, 0, 60, 255)
			} else {
				f.SetRGB(x, y, 255, 0, 0)
			}
		}
	}
	return f
}

func newVideoService(ext video.Extractor) *VideoService {
	cfg := config.DefaultConfig()
	store := cache.NewMemory(cache.Config{Driver: "memory", Capacity: 50})
	return NewVideoService(cfg.Verify.Video, ext, store, nil)
}

func TestVideoVerifyTooLarge(t *testing.T) {
	cfg := config.DefaultConfig().Verify.Video
	cfg.MaxFileSize = 4
	ext := &stubExtractor{info: &video.Info{Duration: 10}}
	svc := NewVideoService(cfg, ext, cache.NewMemory(cache.Config{Capacity: 50}), nil)

	verdict := svc.Verify(context.Background(), VideoRequest{
		Data:     []byte("too big"),
		Filename: "clip.mp4",
	})

	if verdict.Status != model.StatusFailed {
		t.Fatalf("status = %s, want failed", verdict.Status)
	}
	if verdict.Message != "Video file too large" {
		t.Errorf("message = %q", verdict.Message)
	}
	if ext.probes != 0 {
		t.Error("oversized payload should not reach the prober")
	}
}

func TestVideoVerifyDurationBounds(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		message  string
	}{
		{"too short", 0.5, "Video too short"},
		{"too long", 400, "Video too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := &stubExtractor{info: &video.Info{Duration: tt.duration}}
			svc := newVideoService(ext)

			verdict := svc.Verify(context.Background(), VideoRequest{
				Data:     []byte("payload-" + tt.name),
				Filename: "clip.mp4",
			})

			if verdict.Status != model.StatusFailed {
				t.Fatalf("status = %s, want failed", verdict.Status)
			}
			if verdict.Message != tt.message {
				t.Errorf("message = %q, want %q", verdict.Message, tt.message)
			}
			if ext.extracts != 0 {
				t.Error("out-of-range duration should not extract frames")
			}
		})
	}
}

func TestVideoVerifyKeywordFallback(t *testing.T) {
	ext := &stubExtractor{probeErr: errors.New("moov atom not found")}
	svc := newVideoService(ext)

	verdict := svc.Verify(context.Background(), VideoRequest{
		Data:     []byte("broken container"),
		Category: analysis.CategoryFlooding,
		Filename: "storm_flood_warning.mp4",
	})

	if verdict.Status != model.StatusVerified {
		t.Fatalf("status = %s (%s), want verified", verdict.Status, verdict.Message)
	}
	if !verdict.Fallback {
		t.Error("fallback flag not set")
	}
	if verdict.Message != "Video verified (keyword-based fallback)" {
		t.Errorf("message = %q", verdict.Message)
	}
	if verdict.HazardDetection == nil || verdict.HazardDetection.DetectedType != analysis.CategoryFlooding {
		t.Errorf("detected = %+v, want selected category", verdict.HazardDetection)
	}
}

func TestVideoVerifyKeywordFallbackNoSignal(t *testing.T) {
	ext := &stubExtractor{probeErr: errors.New("moov atom not found")}
	svc := newVideoService(ext)

	verdict := svc.Verify(context.Background(), VideoRequest{
		Data:     []byte("broken container 2"),
		Filename: "vacation.mp4",
	})

	if verdict.Status != model.StatusFailed {
		t.Fatalf("status = %s, want failed", verdict.Status)
	}
	if !strings.Contains(verdict.Message, "Could not extract frames") {
		t.Errorf("message = %q", verdict.Message)
	}
	if verdict.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", verdict.Confidence)
	}
	if verdict.HazardDetection != nil || verdict.FrameAnalysis != nil {
		t.Error("failed fallback should carry no analysis payloads")
	}
}

func TestVideoVerifyQuickMode(t *testing.T) {
	ext := &stubExtractor{info: &video.Info{Duration: 20}}
	svc := newVideoService(ext)

	verdict := svc.Verify(context.Background(), VideoRequest{
		Data:      []byte("quick payload"),
		Filename:  "ocean_wave_storm.mp4",
		QuickMode: true,
	})

	if verdict.Status != model.StatusVerified {
		t.Fatalf("status = %s (%s), want verified", verdict.Status, verdict.Message)
	}
	if !verdict.QuickMode {
		t.Error("quick mode flag not set")
	}
	if verdict.Message != "Video verified (quick mode)" {
		t.Errorf("message = %q", verdict.Message)
	}
	if ext.extracts != 0 {
		t.Error("quick mode should not extract frames")
	}
}

func TestVideoVerifyFrameAnalysis(t *testing.T) {
	ext := &stubExtractor{
		info:  &video.Info{Duration: 20},
		frame: oceanHazardFrame(),
	}
	svc := newVideoService(ext)

	verdict := svc.Verify(context.Background(), VideoRequest{
		Data:     []byte("frame payload"),
		Filename: "clip.mp4",
	})

	if verdict.Status != model.StatusVerified {
		t.Fatalf("status = %s (%s), want verified", verdict.Status, verdict.Message)
	}
	if verdict.FrameAnalysis == nil {
		t.Fatal("missing frame analysis")
	}
	// Duration <= 30s samples three positions.
	if verdict.FrameAnalysis.TotalFramesAnalyzed != 3 {
		t.Errorf("frames = %d, want 3", verdict.FrameAnalysis.TotalFramesAnalyzed)
	}
	if verdict.FrameAnalysis.OceanPercentage < 0.99 {
		t.Errorf("ocean pct = %v, want ~1", verdict.FrameAnalysis.OceanPercentage)
	}
	if verdict.FrameAnalysis.HazardPercentage < 0.99 {
		t.Errorf("hazard pct = %v, want ~1", verdict.FrameAnalysis.HazardPercentage)
	}
}

func TestVideoVerifyCachedSecondCall(t *testing.T) {
	ext := &stubExtractor{
		info:  &video.Info{Duration: 20},
		frame: oceanHazardFrame(),
	}
	svc := newVideoService(ext)

	req := VideoRequest{
		Data:     []byte("cache payload"),
		Filename: "clip.mp4",
	}

	first := svc.Verify(context.Background(), req)
	if first.Cached {
		t.Error("first verdict should not be cached")
	}

	second := svc.Verify(context.Background(), req)
	if !second.Cached {
		t.Fatal("second verdict should come from cache")
	}
	if second.Status != first.Status || second.Message != first.Message {
		t.Errorf("cached verdict diverged: %+v vs %+v", second, first)
	}
	if ext.probes != 1 {
		t.Errorf("probes = %d, want 1", ext.probes)
	}
}

func TestVideoVerifyNoFramesFallsBack(t *testing.T) {
	ext := &stubExtractor{
		info:       &video.Info{Duration: 20},
		extractErr: errors.New("decoder stalled"),
	}
	svc := newVideoService(ext)

	verdict := svc.Verify(context.Background(), VideoRequest{
		Data:     []byte("no frames payload"),
		Filename: "tsunami_wave.mp4",
	})

	if !verdict.Fallback {
		t.Error("expected keyword fallback after frame extraction failure")
	}
	if verdict.Status != model.StatusVerified {
		t.Fatalf("status = %s (%s), want verified via keywords", verdict.Status, verdict.Message)
	}
}
