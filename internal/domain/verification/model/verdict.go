// Package model holds the verdict types shared by the verification services,
// the verdict cache and the HTTP layer.
package model

import (
	"time"

	"pralay-server-go/internal/domain/analysis"
)

// Status is the terminal outcome of one verification request.
type Status string

const (
	// StatusVerified means the media passed every content gate.
	StatusVerified Status = "verified"
	// StatusFailed means a content gate rejected the media; this is a
	// legitimate negative verdict, not an error.
	StatusFailed Status = "failed"
	// StatusError means the media could not be processed at all.
	StatusError Status = "error"
)

// FrameAnalysis summarizes the per-frame results of a sampled video.
type FrameAnalysis struct {
	TotalFramesAnalyzed int     `json:"total_frames_analyzed"`
	OceanFrames         int     `json:"ocean_frames"`
	HazardFrames        int     `json:"hazard_frames"`
	OceanPercentage     float64 `json:"ocean_percentage"`
	HazardPercentage    float64 `json:"hazard_percentage"`
}

// Verdict is the terminal result of one verification request. It is never
// mutated after construction; cached copies are cloned before reuse.
type Verdict struct {
	Status          Status                      `json:"status"`
	Message         string                      `json:"message"`
	Confidence      float64                     `json:"confidence"`
	HazardDetection *analysis.TypePrediction    `json:"hazard_detection,omitempty"`
	AIDetection     *analysis.AIDetectionResult `json:"ai_detection,omitempty"`
	FrameAnalysis   *FrameAnalysis              `json:"frame_analysis,omitempty"`
	Timestamp       string                      `json:"timestamp"`
	Cached          bool                        `json:"cached,omitempty"`
	Fallback        bool                        `json:"fallback,omitempty"`
	QuickMode       bool                        `json:"quick_mode,omitempty"`
}

// Now returns the verdict timestamp format used across the service.
func Now() string {
	return time.Now().Format(time.RFC3339)
}

// Clone returns a deep copy safe to hand to a new caller.
func (v *Verdict) Clone() *Verdict {
	if v == nil {
		return nil
	}
	out := *v
	if v.HazardDetection != nil {
		hd := *v.HazardDetection
		hd.TopPredictions = append([]analysis.Prediction(nil), v.HazardDetection.TopPredictions...)
		out.HazardDetection = &hd
	}
	if v.AIDetection != nil {
		ai := *v.AIDetection
		ai.Indicators = append([]string(nil), v.AIDetection.Indicators...)
		out.AIDetection = &ai
	}
	if v.FrameAnalysis != nil {
		fa := *v.FrameAnalysis
		out.FrameAnalysis = &fa
	}
	return &out
}
