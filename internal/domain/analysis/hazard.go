package analysis

import (
	"pralay-server-go/internal/domain/imaging"
)

// HazardAnalysis summarizes the hazard-indicator heuristics of one frame.
// Each triggered heuristic adds a fixed weight to Score and appends a named
// indicator tag.
type HazardAnalysis struct {
	Score               float64
	Indicators          []string
	HasHazardIndicators bool
}

var (
	orangeRange = imaging.HSVRange{HueLo: 10, HueHi: 25, SatLo: 100, SatHi: 255, ValLo: 100, ValHi: 255}
	redRange    = imaging.HSVRange{HueLo: 0, HueHi: 10, SatLo: 100, SatHi: 255, ValLo: 100, ValHi: 255}
	yellowRange = imaging.HSVRange{HueLo: 20, HueHi: 30, SatLo: 100, SatHi: 255, ValLo: 100, ValHi: 255}
	brightRange = imaging.HSVRange{HueLo: 0, HueHi: 180, SatLo: 0, SatHi: 30, ValLo: 200, ValHi: 255}
)

// AnalyzeHazards scores a frame for signs of actual hazard conditions:
// chaotic detail, debris texture, emergency colors, structural damage and
// emergency equipment. Image uploads are held to a strict bar (score > 0.6
// and at least three distinct indicators).
func AnalyzeHazards(f *imaging.Frame, m MetricSet) HazardAnalysis {
	if f == nil || f.Pixels() == 0 {
		return HazardAnalysis{}
	}

	var score float64
	var indicators []string
	add := func(weight float64, tag string) {
		score += weight
		indicators = append(indicators, tag)
	}

	if m.EdgeVariance > 200 {
		add(0.3, "high_chaos_damage")
	}
	if m.EdgeVariance > 500 {
		add(0.2, "severe_destruction")
	}
	if m.Water.TextureVariance > 2000 {
		add(0.2, "debris_patterns")
	}

	hsv := imaging.ToHSV(f)
	if hsv.CountInRange(orangeRange) > 1000 {
		add(0.15, "orange_emergency_equipment")
	}
	if hsv.CountInRange(redRange) > 1000 {
		add(0.15, "red_danger_signs")
	}
	if hsv.CountInRange(yellowRange) > 1000 {
		add(0.1, "yellow_warning_signs")
	}

	gray := imaging.ToGray(f)
	edges := imaging.Canny(gray, 50, 150)
	edgeDensity := float64(edges.Count()) / float64(f.Pixels())
	if edgeDensity > 0.1 {
		add(0.2, "high_edge_density_damage")
	}

	contours := imaging.FindContours(edges)
	irregular := 0
	vehicleLike := 0
	for _, c := range contours {
		if c.Area > 100 && c.Circularity() < 0.3 {
			irregular++
		}
		if c.Area > 5000 {
			if ar := c.AspectRatio(); ar > 1.5 && ar < 4.0 {
				vehicleLike++
			}
		}
	}
	if irregular > 5 {
		add(0.15, "irregular_debris_shapes")
	}
	if vehicleLike > 0 {
		add(0.1, "vehicle_like_objects")
	}

	if hsv.CountInRange(brightRange) > 2000 {
		add(0.1, "reflective_equipment")
	}

	return HazardAnalysis{
		Score:               score,
		Indicators:          indicators,
		HasHazardIndicators: score > 0.6 && len(indicators) >= 3,
	}
}
