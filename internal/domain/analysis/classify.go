package analysis

import (
	"sort"
	"strings"
)

// Category is one of the fixed hazard report categories.
type Category string

const (
	CategoryTsunami    Category = "tsunami"
	CategoryStormSurge Category = "storm-surge"
	CategoryHighWaves  Category = "high-waves"
	CategoryFlooding   Category = "flooding"
	CategoryDebris     Category = "debris"
	CategoryPollution  Category = "pollution"
	CategoryErosion    Category = "erosion"
	CategoryWildlife   Category = "wildlife"
	CategoryOther      Category = "other"
)

// Categories lists the full taxonomy in its canonical order.
var Categories = []Category{
	CategoryTsunami, CategoryStormSurge, CategoryHighWaves, CategoryFlooding,
	CategoryDebris, CategoryPollution, CategoryErosion, CategoryWildlife,
	CategoryOther,
}

// Prediction is one ranked (category, confidence) pair.
type Prediction struct {
	HazardType Category `json:"hazard_type"`
	Confidence float64  `json:"confidence"`
}

// TypePrediction is the classifier output: the winning category plus up to
// three ranked candidates. OceanScore and HazardScore are populated on the
// video path only.
type TypePrediction struct {
	DetectedType   Category     `json:"detected_type"`
	Confidence     float64      `json:"confidence"`
	TopPredictions []Prediction `json:"top_predictions"`
	OceanScore     float64      `json:"ocean_score,omitempty"`
	HazardScore    float64      `json:"hazard_score,omitempty"`
}

var keywordMapping = []struct {
	category Category
	keywords []string
}{
	{CategoryTsunami, []string{"tsunami", "tidal", "seismic", "evacuation"}},
	{CategoryStormSurge, []string{"storm", "surge", "hurricane", "cyclone", "typhoon"}},
	{CategoryHighWaves, []string{"wave", "rough", "swell", "surf"}},
	{CategoryFlooding, []string{"flood", "water", "inundation", "flooded"}},
	{CategoryDebris, []string{"debris", "trash", "litter", "waste"}},
	{CategoryPollution, []string{"oil", "spill", "pollution", "contamination"}},
	{CategoryErosion, []string{"erosion", "coast", "cliff", "beach loss"}},
	{CategoryWildlife, []string{"wildlife", "fish", "animal", "marine life"}},
}

// candidateSet accumulates classifier candidates preserving insertion order
// so the final ranking breaks confidence ties deterministically.
type candidateSet struct {
	order []Category
	conf  map[Category]float64
}

func newCandidateSet() *candidateSet {
	return &candidateSet{conf: make(map[Category]float64)}
}

func (s *candidateSet) add(c Category, conf float64) {
	if _, ok := s.conf[c]; !ok {
		s.order = append(s.order, c)
		s.conf[c] = conf
	}
}

// boost raises an existing candidate by delta (capped at 0.95), or inserts a
// fresh one at the given confidence.
func (s *candidateSet) boost(c Category, fresh, delta float64) {
	if cur, ok := s.conf[c]; ok {
		boosted := cur + delta
		if boosted > 0.95 {
			boosted = 0.95
		}
		s.conf[c] = boosted
		return
	}
	s.add(c, fresh)
}

// finish ranks candidates by confidence descending, ties broken by insertion
// order, and returns the top-3 prediction.
func (s *candidateSet) finish() TypePrediction {
	if len(s.order) == 0 {
		s.add(CategoryOther, 0.3)
	}

	ranked := make([]Prediction, 0, len(s.order))
	for _, c := range s.order {
		ranked = append(ranked, Prediction{HazardType: c, Confidence: s.conf[c]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	return TypePrediction{
		DetectedType:   ranked[0].HazardType,
		Confidence:     ranked[0].Confidence,
		TopPredictions: ranked,
	}
}

func (s *candidateSet) applyKeywords(filename, description string) {
	text := strings.ToLower(filename + " " + description)
	for _, entry := range keywordMapping {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				s.boost(entry.category, 0.8, 0.2)
				break
			}
		}
	}
}

// ClassifyImage predicts the hazard category of a single image from its
// metrics plus filename/description keywords. Content thresholds overlap on
// purpose: one frame can plausibly support several categories and the
// ranking sorts it out.
func ClassifyImage(m MetricSet, filename, description string) TypePrediction {
	s := newCandidateSet()

	if m.EdgeVariance > 120 && m.SaturationStd > 0.12 {
		s.add(CategoryStormSurge, 0.7)
	}
	if m.EdgeVariance > 100 {
		s.add(CategoryHighWaves, 0.6)
	}
	if m.EdgeVariance > 80 && m.MeanSaturation < 0.5 {
		s.add(CategoryFlooding, 0.5)
	}
	if m.EdgeVariance > 180 {
		s.add(CategoryTsunami, 0.8)
	}
	if m.EdgeVariance > 160 {
		s.add(CategoryDebris, 0.7)
	}

	s.applyKeywords(filename, description)
	return s.finish()
}

// ClassifyVideo predicts the hazard category of a sampled video from the
// mean per-frame ocean and hazard scores plus keywords. The content ladder
// is mutually exclusive, unlike the image ladder.
func ClassifyVideo(oceanScore, hazardScore float64, filename, description string) TypePrediction {
	s := newCandidateSet()

	switch {
	case oceanScore > 0.7 && hazardScore > 0.6:
		s.add(CategoryStormSurge, 0.8)
	case oceanScore > 0.6 && hazardScore > 0.4:
		s.add(CategoryHighWaves, 0.7)
	case oceanScore > 0.8 && hazardScore > 0.7:
		s.add(CategoryTsunami, 0.9)
	case oceanScore > 0.4 && hazardScore > 0.5:
		s.add(CategoryFlooding, 0.6)
	}

	s.applyKeywords(filename, description)

	pred := s.finish()
	pred.OceanScore = oceanScore
	pred.HazardScore = hazardScore
	return pred
}
