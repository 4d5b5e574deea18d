package verification

import (
	"context"
	"fmt"
	"math"
	"os"

	"golang.org/x/sync/singleflight"

	"pralay-server-go/internal/domain/analysis"
	"pralay-server-go/internal/domain/eventbus"
	"pralay-server-go/internal/domain/verification/cache"
	"pralay-server-go/internal/domain/verification/model"
	"pralay-server-go/internal/domain/video"
	"pralay-server-go/internal/platform/config"
	"pralay-server-go/internal/platform/observability"
	"pralay-server-go/internal/utils"
)

// VideoRequest is one video verification call.
type VideoRequest struct {
	Data        []byte
	Category    analysis.Category
	Description string
	Filename    string
	QuickMode   bool
}

// VideoService runs the video verification pipeline: cache lookup, frame
// sampling, per-frame analysis and aggregation. Identical concurrent
// requests collapse onto a single analysis.
type VideoService struct {
	cfg       config.VideoVerifyConfig
	extractor video.Extractor
	sampler   *video.Sampler
	cache     cache.Store
	logger    *utils.Logger
	group     singleflight.Group
}

// NewVideoService builds the video verification service.
func NewVideoService(cfg config.VideoVerifyConfig, extractor video.Extractor, store cache.Store, logger *utils.Logger) *VideoService {
	if logger == nil {
		logger = utils.DefaultLogger
	}
	return &VideoService{
		cfg:       cfg,
		extractor: extractor,
		sampler:   video.NewSampler(extractor, logger),
		cache:     store,
		logger:    logger,
	}
}

// Verify checks the verdict cache, then analyzes the video and caches the
// outcome. Cached hits return a copy with a refreshed timestamp.
func (s *VideoService) Verify(ctx context.Context, req VideoRequest) *model.Verdict {
	ctx, end := observability.StartSpan(ctx, "verification", "verify_video")
	defer end(nil)

	key := cache.Key(req.Data, string(req.Category), req.Filename)

	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		s.logger.InfoTag("CACHE", "verdict cache hit for %q", req.Filename)
		hit := cached.Clone()
		hit.Cached = true
		hit.Timestamp = model.Now()
		return hit
	} else if err != nil {
		s.logger.WarnTag("CACHE", "verdict cache lookup failed: %v", err)
	}

	result, _, _ := s.group.Do(key, func() (any, error) {
		verdict := s.analyze(ctx, req)
		if verdict.Status != model.StatusError {
			if err := s.cache.Put(ctx, key, verdict); err != nil {
				s.logger.WarnTag("CACHE", "verdict cache store failed: %v", err)
			}
		}
		return verdict, nil
	})

	verdict := result.(*model.Verdict).Clone()
	eventbus.PublishAsync(eventbus.EventVideoVerified, eventbus.VerificationEventData{
		MediaType:  "video",
		Filename:   req.Filename,
		Category:   string(req.Category),
		Status:     string(verdict.Status),
		Confidence: verdict.Confidence,
		Message:    verdict.Message,
		Timestamp:  verdict.Timestamp,
	})
	return verdict
}

func (s *VideoService) analyze(ctx context.Context, req VideoRequest) *model.Verdict {
	if int64(len(req.Data)) > s.cfg.MaxFileSize {
		return &model.Verdict{
			Status:     model.StatusFailed,
			Message:    "Video file too large",
			Confidence: 0,
			Timestamp:  model.Now(),
		}
	}

	tmp, err := os.CreateTemp("", "pralay-video-*.mp4")
	if err != nil {
		return s.internalError(fmt.Errorf("create temp file: %w", err))
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(req.Data); err != nil {
		tmp.Close()
		return s.internalError(fmt.Errorf("write temp file: %w", err))
	}
	tmp.Close()

	probeCtx := ctx
	if s.cfg.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, s.cfg.ProbeTimeout)
		defer cancel()
	}

	info, err := s.extractor.Probe(probeCtx, tmpPath)
	if err != nil {
		s.logger.WarnTag("VIDEO", "probe failed for %q, using keyword fallback: %v", req.Filename, err)
		return s.keywordFallback(req)
	}

	if verdict := s.checkDuration(info.Duration); verdict != nil {
		return verdict
	}

	if req.QuickMode {
		return s.quickVerify(req)
	}

	frames := s.sampler.Sample(ctx, tmpPath, info)
	if len(frames) == 0 {
		s.logger.WarnTag("VIDEO", "no frames extracted from %q, using keyword fallback", req.Filename)
		return s.keywordFallback(req)
	}

	oceanFrames := 0
	hazardFrames := 0
	var oceanScoreSum, hazardScoreSum float64
	for _, frame := range frames {
		ocean := analysis.AnalyzeOceanFrame(frame)
		hazard := analysis.AnalyzeFrameHazards(frame)
		if ocean.HasOceanContent {
			oceanFrames++
		}
		if hazard.HasHazardIndicators {
			hazardFrames++
		}
		oceanScoreSum += ocean.WaterConfidence
		hazardScoreSum += hazard.Score
	}

	frameCount := float64(len(frames))
	oceanPct := float64(oceanFrames) / frameCount
	hazardPct := float64(hazardFrames) / frameCount

	prediction := analysis.ClassifyVideo(
		oceanScoreSum/frameCount, hazardScoreSum/frameCount,
		req.Filename, req.Description,
	)

	status := model.StatusVerified
	message := "Video verified successfully"

	switch {
	case oceanPct < 0.1:
		status = model.StatusFailed
		message = "Insufficient ocean content detected - please upload videos showing water/ocean scenes"

	case hazardPct < 0.05:
		status = model.StatusFailed
		message = "No significant hazard indicators detected - please upload videos showing actual hazard conditions"

	case req.Category != "" && !analysis.Compatible(req.Category, prediction.DetectedType, analysis.VideoCompat):
		status = model.StatusFailed
		message = fmt.Sprintf("Video content does not match selected hazard type. Detected: %s",
			prediction.DetectedType)

	case prediction.Confidence < 0.2:
		status = model.StatusFailed
		message = "Low confidence in hazard detection - please check video quality and content"
	}

	confidence := (prediction.Confidence + prediction.OceanScore + prediction.HazardScore) / 3

	observability.RecordMetric(ctx, "verify_video_confidence", confidence, map[string]string{
		"status": string(status),
	})
	s.logger.InfoTag("VIDEO", "video %q: status=%s detected=%s frames=%d confidence=%.2f",
		req.Filename, status, prediction.DetectedType, len(frames), confidence)

	return &model.Verdict{
		Status:          status,
		Message:         message,
		Confidence:      confidence,
		HazardDetection: &prediction,
		FrameAnalysis: &model.FrameAnalysis{
			TotalFramesAnalyzed: len(frames),
			OceanFrames:         oceanFrames,
			HazardFrames:        hazardFrames,
			OceanPercentage:     oceanPct,
			HazardPercentage:    hazardPct,
		},
		Timestamp: model.Now(),
	}
}

// checkDuration gates on the configured duration bounds; nil means in range.
func (s *VideoService) checkDuration(durationSeconds float64) *model.Verdict {
	if durationSeconds < s.cfg.MinDuration.Seconds() {
		return &model.Verdict{
			Status:     model.StatusFailed,
			Message:    "Video too short",
			Confidence: 0,
			Timestamp:  model.Now(),
		}
	}
	if durationSeconds > s.cfg.MaxDuration.Seconds() {
		return &model.Verdict{
			Status:     model.StatusFailed,
			Message:    "Video too long",
			Confidence: 0,
			Timestamp:  model.Now(),
		}
	}
	return nil
}

// quickVerify skips frame sampling entirely: duration was already validated,
// so only the keyword signal remains.
func (s *VideoService) quickVerify(req VideoRequest) *model.Verdict {
	oceanScore, hazardScore := keywordScores(req.Filename, req.Description)

	verdict := s.textVerdict(req, oceanScore, hazardScore, 0.8,
		"Video verified (quick mode)", "No ocean hazard indicators found")
	verdict.QuickMode = true
	if verdict.Status == model.StatusFailed {
		verdict.Confidence = 0.2
	}
	return verdict
}

// keywordFallback degrades to pure text scoring when the container is
// unreadable. Unlike the image path this can still verify.
func (s *VideoService) keywordFallback(req VideoRequest) *model.Verdict {
	oceanScore, hazardScore := keywordScores(req.Filename, req.Description)

	verdict := s.textVerdict(req, oceanScore, hazardScore, 0.7,
		"Video verified (keyword-based fallback)",
		"Could not extract frames from video and no ocean hazard keywords found")
	verdict.Fallback = true
	if verdict.Status == model.StatusFailed {
		verdict.Confidence = 0
		verdict.HazardDetection = nil
		verdict.FrameAnalysis = nil
	}
	return verdict
}

func (s *VideoService) textVerdict(req VideoRequest, oceanScore, hazardScore, confCap float64, okMsg, failMsg string) *model.Verdict {
	detected := analysis.CategoryOther
	if req.Category != "" {
		detected = req.Category
	}
	confidence := math.Min(confCap, (oceanScore+hazardScore)*0.5)

	status := model.StatusVerified
	message := okMsg
	if oceanScore <= 0.1 && hazardScore <= 0.1 {
		status = model.StatusFailed
		message = failMsg
	}

	return &model.Verdict{
		Status:     status,
		Message:    message,
		Confidence: confidence,
		HazardDetection: &analysis.TypePrediction{
			DetectedType: detected,
			Confidence:   confidence,
			TopPredictions: []analysis.Prediction{
				{HazardType: detected, Confidence: confidence},
			},
			OceanScore:  oceanScore,
			HazardScore: hazardScore,
		},
		FrameAnalysis: &model.FrameAnalysis{
			OceanPercentage:  oceanScore,
			HazardPercentage: hazardScore,
		},
		Timestamp: model.Now(),
	}
}

func (s *VideoService) internalError(err error) *model.Verdict {
	s.logger.ErrorTag("VIDEO", "video verification error: %v", err)
	return &model.Verdict{
		Status:     model.StatusError,
		Message:    fmt.Sprintf("Verification failed: %v", err),
		Confidence: 0,
		Timestamp:  model.Now(),
	}
}
