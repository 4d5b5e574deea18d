package analysis

import (
	"math"

	"pralay-server-go/internal/domain/imaging"
)

// OceanFrameAnalysis is the per-frame ocean-content score used on the video
// path. Looser than AnalyzeWater: sampled frames only need a coarse ocean
// signal.
type OceanFrameAnalysis struct {
	BluePercentage        float64
	WhiteFoamPercentage   float64
	GreyWaterPercentage   float64
	TotalWaterPercentage  float64
	HorizontalEdgeDensity float64
	WaterConfidence       float64
	HasOceanContent       bool
}

var (
	videoBlueRange  = imaging.HSVRange{HueLo: 100, HueHi: 130, SatLo: 50, SatHi: 255, ValLo: 30, ValHi: 255}
	videoWhiteRange = imaging.HSVRange{HueLo: 0, HueHi: 180, SatLo: 0, SatHi: 30, ValLo: 150, ValHi: 255}
	videoGreyRange  = imaging.HSVRange{HueLo: 0, HueHi: 180, SatLo: 0, SatHi: 50, ValLo: 50, ValHi: 150}
)

// horizontalWaveKernel accentuates horizontal edge runs typical of wave crests.
var horizontalWaveKernel = [9]float64{
	-1, -1, -1,
	2, 2, 2,
	-1, -1, -1,
}

// AnalyzeOceanFrame scores one sampled video frame for ocean content.
func AnalyzeOceanFrame(f *imaging.Frame) OceanFrameAnalysis {
	if f == nil || f.Pixels() == 0 {
		return OceanFrameAnalysis{}
	}

	totalPixels := float64(f.Pixels())
	hsv := imaging.ToHSV(f)

	bluePct := float64(hsv.CountInRange(videoBlueRange)) / totalPixels
	whitePct := float64(hsv.CountInRange(videoWhiteRange)) / totalPixels
	greyPct := float64(hsv.CountInRange(videoGreyRange)) / totalPixels
	totalWater := bluePct + whitePct + greyPct

	// Horizontal structure in the edge map picks up wave crests.
	gray := imaging.ToGray(f)
	edges := imaging.Canny(gray, 50, 150)
	edgeGray := &imaging.Gray{W: edges.W, H: edges.H, Pix: make([]uint8, len(edges.Pix))}
	for i, v := range edges.Pix {
		if v != 0 {
			edgeGray.Pix[i] = 255
		}
	}
	resp := imaging.Convolve3x3(edgeGray, horizontalWaveKernel)
	positive := 0
	for _, v := range resp {
		if v > 0 {
			positive++
		}
	}
	horizontalDensity := float64(positive) / totalPixels

	confidence := math.Min(1, totalWater*2+horizontalDensity*3)

	return OceanFrameAnalysis{
		BluePercentage:        bluePct,
		WhiteFoamPercentage:   whitePct,
		GreyWaterPercentage:   greyPct,
		TotalWaterPercentage:  totalWater,
		HorizontalEdgeDensity: horizontalDensity,
		WaterConfidence:       confidence,
		HasOceanContent:       totalWater > 0.1 || confidence > 0.3,
	}
}

// FrameHazardAnalysis is the per-frame hazard score used on the video path.
// The gate is far looser than the image path: one indicator is enough.
type FrameHazardAnalysis struct {
	Score               float64
	Indicators          []string
	EdgeVariance        float64
	EdgeDensity         float64
	RedPercentage       float64
	OrangePercentage    float64
	HasHazardIndicators bool
}

// AnalyzeFrameHazards scores one sampled video frame for hazard indicators.
func AnalyzeFrameHazards(f *imaging.Frame) FrameHazardAnalysis {
	if f == nil || f.Pixels() == 0 {
		return FrameHazardAnalysis{}
	}

	totalPixels := float64(f.Pixels())
	gray := imaging.ToGray(f)
	edgeVariance := imaging.LaplacianVariance(gray)

	edges := imaging.Canny(gray, 50, 150)
	edgeDensity := float64(edges.Count()) / totalPixels

	hsv := imaging.ToHSV(f)
	redPct := float64(hsv.CountInRange(redRange)) / totalPixels
	orangePct := float64(hsv.CountInRange(orangeRange)) / totalPixels

	var score float64
	var indicators []string

	if edgeVariance > 200 {
		score += 0.3
		indicators = append(indicators, "high_activity")
	}
	if edgeDensity > 0.1 {
		score += 0.2
		indicators = append(indicators, "debris_patterns")
	}
	if redPct > 0.05 {
		score += 0.2
		indicators = append(indicators, "emergency_red")
	}
	if orangePct > 0.05 {
		score += 0.15
		indicators = append(indicators, "emergency_orange")
	}

	return FrameHazardAnalysis{
		Score:               score,
		Indicators:          indicators,
		EdgeVariance:        edgeVariance,
		EdgeDensity:         edgeDensity,
		RedPercentage:       redPct,
		OrangePercentage:    orangePct,
		HasHazardIndicators: score > 0.1 || len(indicators) >= 1,
	}
}
