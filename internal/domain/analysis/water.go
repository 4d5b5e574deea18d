package analysis

import (
	"math"

	"pralay-server-go/internal/domain/imaging"
)

// WaterAnalysis summarizes the water-content heuristics of one frame.
type WaterAnalysis struct {
	WaterPercentage     float64
	WaterConfidence     float64
	WaterEdgeRatio      float64
	HorizontalEdgeRatio float64
	TextureVariance     float64
	HasSignificantWater bool
}

// Color windows covering the water conditions citizen reports show: open
// ocean blues, cyan shallows, breaking-wave foam, grey storm water and brown
// flood water.
var waterRanges = []imaging.HSVRange{
	{HueLo: 100, HueHi: 130, SatLo: 50, SatHi: 255, ValLo: 30, ValHi: 255},  // standard blue
	{HueLo: 100, HueHi: 130, SatLo: 100, SatHi: 255, ValLo: 20, ValHi: 200}, // deep blue
	{HueLo: 100, HueHi: 130, SatLo: 50, SatHi: 150, ValLo: 100, ValHi: 255}, // light blue
	{HueLo: 80, HueHi: 100, SatLo: 50, SatHi: 255, ValLo: 30, ValHi: 255},   // cyan/teal
	{HueLo: 0, HueHi: 180, SatLo: 0, SatHi: 30, ValLo: 150, ValHi: 255},     // white foam
	{HueLo: 0, HueHi: 180, SatLo: 0, SatHi: 50, ValLo: 50, ValHi: 150},      // grey storm water
	{HueLo: 10, HueHi: 30, SatLo: 50, SatHi: 200, ValLo: 30, ValHi: 150},    // brown flood water
}

const edgeMagnitudeThreshold = 30

// AnalyzeWater scores a frame for water content. Water presence is a blend of
// color coverage, wave-like edge direction mix and texture; a coherence guard
// knocks down frames whose "water" is scattered noise rather than one region.
func AnalyzeWater(f *imaging.Frame) WaterAnalysis {
	if f == nil || f.Pixels() == 0 {
		return WaterAnalysis{}
	}

	totalPixels := float64(f.Pixels())
	hsv := imaging.ToHSV(f)

	waterMask := imaging.NewMask(f.W, f.H)
	for _, r := range waterRanges {
		waterMask.Or(hsv.InRange(r))
	}
	waterPct := float64(waterMask.Count()) / totalPixels

	gray := imaging.ToGray(f)
	gx, gy := imaging.Sobel(gray)

	var horizontal, vertical, diagonal, totalEdges float64
	for i := range gx {
		if math.Hypot(gx[i], gy[i]) <= edgeMagnitudeThreshold {
			continue
		}
		totalEdges++
		dir := math.Atan2(gy[i], gx[i])
		switch {
		case dir > -0.3 && dir < 0.3:
			horizontal++
		case dir > 1.4 || dir < -1.4:
			vertical++
		default:
			diagonal++
		}
	}

	var waterEdgeRatio, horizontalEdgeRatio float64
	if totalEdges > 0 {
		waterEdges := horizontal + vertical*0.8 + diagonal*0.6
		waterEdgeRatio = waterEdges / totalEdges
		horizontalEdgeRatio = horizontal / totalEdges
	}

	textureVariance := imaging.Variance(gray.Pix)

	confidence := waterPct*0.4 +
		math.Min(waterEdgeRatio*1.5, 1)*0.35 +
		math.Min(textureVariance/1000, 1)*0.25

	// Scattered color noise can clear the percentage gate without forming a
	// single large region; require at least one coherent patch.
	if waterPct > 0.1 {
		coherentRatio := float64(imaging.LargestContourArea(waterMask)) / totalPixels
		if coherentRatio < 0.05 {
			confidence *= 0.3
		}
	}

	return WaterAnalysis{
		WaterPercentage:     waterPct,
		WaterConfidence:     confidence,
		WaterEdgeRatio:      waterEdgeRatio,
		HorizontalEdgeRatio: horizontalEdgeRatio,
		TextureVariance:     textureVariance,
		HasSignificantWater: waterPct > 0.4 && confidence > 0.75,
	}
}
