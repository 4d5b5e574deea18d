package verify

import (
	"pralay-server-go/internal/domain/analysis"
	"pralay-server-go/internal/domain/verification/model"
)

// ImageChecks is the per-criterion breakdown the reporting frontend
// renders as a checklist.
type ImageChecks struct {
	IsImage         bool `json:"isImage"`
	FileSize        bool `json:"fileSize"`
	FileName        bool `json:"fileName"`
	IsRealImage     bool `json:"isRealImage"`
	HazardTypeMatch bool `json:"hazardTypeMatch"`
	ScenarioMatch   bool `json:"scenarioMatch"`
	LocationValid   bool `json:"locationValid"`
	ContentAnalysis bool `json:"contentAnalysis"`
	HazardRelevant  bool `json:"hazardRelevant"`
}

// ImageHazardMatching summarizes the classifier outcome for the frontend.
type ImageHazardMatching struct {
	MatchesSelectedType bool                `json:"matchesSelectedType"`
	DetectedHazardTypes []analysis.Category `json:"detectedHazardTypes"`
	Confidence          float64             `json:"confidence"`
	ScenarioMatch       bool                `json:"scenarioMatch"`
}

// ImageResult is the verify-image response body.
type ImageResult struct {
	Status         string                      `json:"status"`
	Checks         *ImageChecks                `json:"checks"`
	AIDetection    *analysis.AIDetectionResult `json:"aiDetection"`
	HazardMatching *ImageHazardMatching        `json:"hazardMatching"`
	Confidence     float64                     `json:"confidence"`
	Message        string                      `json:"message"`
	Timestamp      string                      `json:"timestamp"`
	Filename       string                      `json:"filename,omitempty"`
}

// VideoChecks mirrors ImageChecks for the video pipeline.
type VideoChecks struct {
	IsVideo             bool `json:"isVideo"`
	FileSize            bool `json:"fileSize"`
	FileName            bool `json:"fileName"`
	HasOceanContent     bool `json:"hasOceanContent"`
	HasHazardIndicators bool `json:"hasHazardIndicators"`
	HazardTypeMatch     bool `json:"hazardTypeMatch"`
	DurationAppropriate bool `json:"durationAppropriate"`
	ContentAnalysis     bool `json:"contentAnalysis"`
}

// VideoHazardMatching adds the aggregated frame scores.
type VideoHazardMatching struct {
	MatchesSelectedType bool                `json:"matchesSelectedType"`
	DetectedHazardTypes []analysis.Category `json:"detectedHazardTypes"`
	Confidence          float64             `json:"confidence"`
	OceanScore          float64             `json:"oceanScore"`
	HazardScore         float64             `json:"hazardScore"`
}

// VideoResult is the verify-video response body.
type VideoResult struct {
	Status         string               `json:"status"`
	Checks         VideoChecks          `json:"checks"`
	HazardMatching VideoHazardMatching  `json:"hazardMatching"`
	FrameAnalysis  *model.FrameAnalysis `json:"frameAnalysis"`
	Confidence     float64              `json:"confidence"`
	Message        string               `json:"message"`
	Timestamp      string               `json:"timestamp"`
}

// BatchResult aggregates per-file image results.
type BatchResult struct {
	Status        string        `json:"status"`
	Results       []ImageResult `json:"results"`
	TotalImages   int           `json:"total_images"`
	VerifiedCount int           `json:"verified_count"`
	FailedCount   int           `json:"failed_count"`
	ErrorCount    int           `json:"error_count"`
}

// ServiceInfo describes the verification service for clients.
type ServiceInfo struct {
	ServiceType  string              `json:"service_type"`
	HazardTypes  []analysis.Category `json:"hazard_types"`
	MinDurationS float64             `json:"min_video_duration"`
	MaxDurationS float64             `json:"max_video_duration"`
	Version      string              `json:"version"`
}
