// Package analysis implements the heuristic content analyzers used by media
// verification: water detection, hazard indicators, AI-generation scoring and
// hazard-type classification. All analyzers are pure functions of the frame;
// a failing metric yields a documented zero value instead of an error so a
// single bad measurement never aborts the pipeline.
package analysis

import (
	"math"

	"pralay-server-go/internal/domain/imaging"
)

// MetricSet holds the scalar measurements extracted from one frame. Width and
// Height carry the pre-resize source dimensions so the square-dimension
// heuristic sees what the uploader actually sent.
type MetricSet struct {
	EdgeVariance   float64
	MeanSaturation float64
	SaturationStd  float64
	Width          int
	Height         int
	Water          WaterAnalysis
}

// ComputeMetrics extracts edge and saturation statistics plus the nested
// water analysis from a decoded frame.
func ComputeMetrics(f *imaging.Frame, srcWidth, srcHeight int) MetricSet {
	if f == nil || f.Pixels() == 0 {
		return MetricSet{Width: srcWidth, Height: srcHeight}
	}

	gray := imaging.ToGray(f)
	hsv := imaging.ToHSV(f)

	// Saturation statistics are reported on a [0,1] scale.
	var sum float64
	for _, s := range hsv.Sat {
		sum += float64(s) / 255
	}
	mean := sum / float64(len(hsv.Sat))
	var acc float64
	for _, s := range hsv.Sat {
		d := float64(s)/255 - mean
		acc += d * d
	}
	std := math.Sqrt(acc / float64(len(hsv.Sat)))

	return MetricSet{
		EdgeVariance:   imaging.LaplacianVariance(gray),
		MeanSaturation: mean,
		SaturationStd:  std,
		Width:          srcWidth,
		Height:         srcHeight,
		Water:          AnalyzeWater(f),
	}
}
