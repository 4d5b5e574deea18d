package analysis

import (
	"math"
	"strings"
)

// AIDetectionResult reports whether a frame looks like a real photograph.
// This is a heuristic proxy over image statistics and filename patterns, not
// a trained detector.
type AIDetectionResult struct {
	IsRealImage     bool     `json:"is_real_image"`
	Confidence      float64  `json:"confidence"`
	DetectionMethod string   `json:"detection_method"`
	Indicators      []string `json:"indicators"`
	AIScore         float64  `json:"ai_score"`
}

var aiFilenamePatterns = []string{
	"ai_generated", "dalle", "midjourney", "stable_diffusion", "generated",
}

// DetectAIGenerated scores generation likelihood from edge variance,
// saturation spread, dimension patterns and filename hints. A score above
// 0.3 flags the image as generated.
func DetectAIGenerated(m MetricSet, filename string) AIDetectionResult {
	var score float64
	var indicators []string

	if m.EdgeVariance < 30 {
		score += 0.2
		indicators = append(indicators, "Very low edge variance (over-smooth)")
	} else if m.EdgeVariance > 2000 {
		score += 0.15
		indicators = append(indicators, "Very high edge variance (over-sharpened)")
	}

	if m.SaturationStd < 0.05 {
		score += 0.1
		indicators = append(indicators, "Low saturation diversity")
	}

	if m.Width == m.Height && m.Width > 0 && m.Width%64 == 0 {
		score += 0.1
		indicators = append(indicators, "Perfect square with power-of-64 dimensions")
	}

	if filename != "" {
		lower := strings.ToLower(filename)
		for _, pattern := range aiFilenamePatterns {
			if strings.Contains(lower, pattern) {
				score += 0.3
				indicators = append(indicators, "AI-related filename patterns")
				break
			}
		}
	}

	return AIDetectionResult{
		IsRealImage:     score <= 0.3,
		Confidence:      math.Min(0.9, 0.5+score),
		DetectionMethod: "Enhanced Content Analysis",
		Indicators:      indicators,
		AIScore:         score,
	}
}
