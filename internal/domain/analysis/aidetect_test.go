package analysis

import (
	"math"
	"testing"
)

func TestDetectAIGeneratedClean(t *testing.T) {
	m := MetricSet{EdgeVariance: 400, SaturationStd: 0.2, Width: 4032, Height: 3024}
	res := DetectAIGenerated(m, "IMG_2031.jpg")
	if !res.IsRealImage {
		t.Errorf("ordinary photo metrics flagged as generated: %+v", res)
	}
	if res.AIScore != 0 {
		t.Errorf("expected zero score, got %f", res.AIScore)
	}
	if res.Confidence != 0.5 {
		t.Errorf("expected base confidence 0.5, got %f", res.Confidence)
	}
}

func TestDetectAIGeneratedSmoothMonotonicity(t *testing.T) {
	base := MetricSet{EdgeVariance: 400, SaturationStd: 0.2, Width: 100, Height: 200}
	smooth := base
	smooth.EdgeVariance = 10

	baseRes := DetectAIGenerated(base, "photo.jpg")
	smoothRes := DetectAIGenerated(smooth, "photo.jpg")

	if diff := smoothRes.AIScore - baseRes.AIScore; math.Abs(diff-0.2) > 1e-9 {
		t.Errorf("over-smooth trigger should add exactly 0.2, added %f", diff)
	}
}

func TestDetectAIGeneratedFilename(t *testing.T) {
	m := MetricSet{EdgeVariance: 400, SaturationStd: 0.2, Width: 100, Height: 200}
	res := DetectAIGenerated(m, "midjourney_ocean_v5.png")
	if res.AIScore != 0.3 {
		t.Errorf("expected filename score 0.3, got %f", res.AIScore)
	}
	// Exactly 0.3 does not exceed the gate; the filename alone is not enough.
	if !res.IsRealImage {
		t.Error("filename pattern alone should not flag the image")
	}

	lowSat := m
	lowSat.SaturationStd = 0.01
	res = DetectAIGenerated(lowSat, "midjourney_ocean_v5.png")
	if res.IsRealImage {
		t.Errorf("filename plus low saturation diversity should flag, score=%f", res.AIScore)
	}
}

func TestDetectAIGeneratedStacked(t *testing.T) {
	// 512x512 power-of-64 square + flat saturation + over-smooth.
	m := MetricSet{EdgeVariance: 5, SaturationStd: 0.01, Width: 512, Height: 512}
	res := DetectAIGenerated(m, "render.png")
	if res.IsRealImage {
		t.Errorf("stacked indicators should flag as generated, score=%f", res.AIScore)
	}
	if math.Abs(res.AIScore-0.4) > 1e-9 {
		t.Errorf("expected score 0.4, got %f", res.AIScore)
	}
	if math.Abs(res.Confidence-0.9) > 1e-9 {
		t.Errorf("confidence should cap at 0.9, got %f", res.Confidence)
	}
}
