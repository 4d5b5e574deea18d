// Package verification implements the image and video verification
// pipelines: decode, analyze, gate, and emit a terminal verdict.
package verification

import (
	"context"
	"fmt"

	"pralay-server-go/internal/domain/analysis"
	"pralay-server-go/internal/domain/eventbus"
	"pralay-server-go/internal/domain/media"
	"pralay-server-go/internal/domain/verification/model"
	"pralay-server-go/internal/platform/config"
	"pralay-server-go/internal/platform/observability"
	"pralay-server-go/internal/utils"
)

// ImageRequest is one image verification call.
type ImageRequest struct {
	Data        []byte
	Category    analysis.Category
	Description string
	Filename    string
}

// ImageService runs the image verification state machine: a single pass over
// the content gates, no retries.
type ImageService struct {
	validator *media.Validator
	logger    *utils.Logger
}

// NewImageService builds the image verification service.
func NewImageService(cfg *config.ImageVerifyConfig, logger *utils.Logger) *ImageService {
	if logger == nil {
		logger = utils.DefaultLogger
	}
	return &ImageService{
		validator: media.NewValidator(cfg, logger),
		logger:    logger,
	}
}

// Verify runs the full image pipeline and always returns a terminal verdict;
// processing failures surface as status "error", rejected content as
// status "failed".
func (s *ImageService) Verify(ctx context.Context, req ImageRequest) *model.Verdict {
	ctx, end := observability.StartSpan(ctx, "verification", "verify_image")
	verdict := s.verify(ctx, req)
	if verdict.Status == model.StatusError {
		end(fmt.Errorf("%s", verdict.Message))
	} else {
		end(nil)
	}

	eventbus.PublishAsync(eventbus.EventImageVerified, eventbus.VerificationEventData{
		MediaType:  "image",
		Filename:   req.Filename,
		Category:   string(req.Category),
		Status:     string(verdict.Status),
		Confidence: verdict.Confidence,
		Message:    verdict.Message,
		Timestamp:  verdict.Timestamp,
	})
	return verdict
}

func (s *ImageService) verify(ctx context.Context, req ImageRequest) *model.Verdict {
	validation := s.validator.ValidateBytes(req.Data, "")
	if !validation.IsValid {
		s.logger.WarnTag("VERIFY", "image validation failed: %v", validation.Error)
		return &model.Verdict{
			Status:     model.StatusError,
			Message:    "Failed to process image",
			Confidence: 0,
			Timestamp:  model.Now(),
		}
	}

	decoded, err := media.DecodeAndNormalize(req.Data)
	if err != nil {
		s.logger.WarnTag("VERIFY", "image decode failed: %v", err)
		return &model.Verdict{
			Status:     model.StatusError,
			Message:    "Failed to process image",
			Confidence: 0,
			Timestamp:  model.Now(),
		}
	}

	metrics := analysis.ComputeMetrics(decoded.Frame, decoded.SourceWidth, decoded.SourceHeight)
	aiDetection := analysis.DetectAIGenerated(metrics, req.Filename)
	hazards := analysis.AnalyzeHazards(decoded.Frame, metrics)
	prediction := analysis.ClassifyImage(metrics, req.Filename, req.Description)

	status := model.StatusVerified
	message := "Image verified successfully"

	switch {
	case !aiDetection.IsRealImage:
		status = model.StatusFailed
		message = "AI-generated image detected - only real photos are accepted"

	case !metrics.Water.HasSignificantWater:
		status = model.StatusFailed
		message = "No significant water content detected - please upload images with water/ocean scenes"

	case !hazards.HasHazardIndicators:
		status = model.StatusFailed
		message = "No hazard indicators detected - please upload images showing actual flood damage, destruction, or emergency situations"

	case req.Category != "" && !analysis.Compatible(req.Category, prediction.DetectedType, analysis.ImageCompat):
		status = model.StatusFailed
		message = fmt.Sprintf("Image content does not match selected hazard type. Detected: %s",
			prediction.DetectedType)

	case prediction.Confidence < 0.4:
		status = model.StatusFailed
		message = "Low confidence in hazard detection - please check image quality"
	}

	confidence := (prediction.Confidence + aiDetection.Confidence) / 2

	observability.RecordMetric(ctx, "verify_image_confidence", confidence, map[string]string{
		"status": string(status),
	})
	s.logger.InfoTag("VERIFY", "image %q: status=%s detected=%s confidence=%.2f",
		req.Filename, status, prediction.DetectedType, confidence)

	return &model.Verdict{
		Status:          status,
		Message:         message,
		Confidence:      confidence,
		HazardDetection: &prediction,
		AIDetection:     &aiDetection,
		Timestamp:       model.Now(),
	}
}
