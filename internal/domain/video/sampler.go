package video

import (
	"context"

	"pralay-server-go/internal/domain/imaging"
	"pralay-server-go/internal/utils"
)

// Frames wider than this get downscaled by the extractor before analysis.
const MaxFrameWidth = 480

// FramePositions returns the proportional offsets to sample from a stream of
// the given duration: three spread points for short clips, four for anything
// longer.
func FramePositions(durationSeconds float64) []float64 {
	if durationSeconds <= 30 {
		return []float64{0.2, 0.5, 0.8}
	}
	return []float64{0.1, 0.3, 0.6, 0.9}
}

// Sampler pulls the analysis frames out of a probed video.
type Sampler struct {
	extractor Extractor
	logger    *utils.Logger
}

// NewSampler builds a sampler over the given extractor.
func NewSampler(extractor Extractor, logger *utils.Logger) *Sampler {
	return &Sampler{extractor: extractor, logger: logger}
}

// Sample extracts frames at the schedule positions. Individual frame
// failures are skipped; an empty result means the container is unusable.
func (s *Sampler) Sample(ctx context.Context, path string, info *Info) []*imaging.Frame {
	var frames []*imaging.Frame
	for _, pos := range FramePositions(info.Duration) {
		at := pos * info.Duration
		frame, err := s.extractor.ExtractFrame(ctx, path, at, MaxFrameWidth)
		if err != nil {
			s.logger.WarnTag("VIDEO", "frame extraction failed at %.2fs: %v", at, err)
			continue
		}
		frames = append(frames, frame)
	}
	s.logger.DebugTag("VIDEO", "sampled %d frames from %.1fs of video", len(frames), info.Duration)
	return frames
}
