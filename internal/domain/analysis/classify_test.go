package analysis

import (
	"testing"
)

func TestCandidateRanking(t *testing.T) {
	s := newCandidateSet()
	s.add(CategoryFlooding, 0.3)
	s.add(CategoryTsunami, 0.8)
	s.add(CategoryDebris, 0.6)
	s.add(CategoryErosion, 0.2)

	pred := s.finish()
	if len(pred.TopPredictions) != 3 {
		t.Fatalf("top predictions must be capped at 3, got %d", len(pred.TopPredictions))
	}
	want := []float64{0.8, 0.6, 0.3}
	for i, p := range pred.TopPredictions {
		if p.Confidence != want[i] {
			t.Errorf("rank %d: expected confidence %f, got %f", i, want[i], p.Confidence)
		}
	}
	if pred.DetectedType != CategoryTsunami || pred.Confidence != 0.8 {
		t.Errorf("winner should be tsunami@0.8, got %s@%f", pred.DetectedType, pred.Confidence)
	}
}

func TestCandidateRankingStableTies(t *testing.T) {
	s := newCandidateSet()
	s.add(CategoryHighWaves, 0.6)
	s.add(CategoryDebris, 0.6)

	pred := s.finish()
	if pred.DetectedType != CategoryHighWaves {
		t.Errorf("ties must keep insertion order, got %s", pred.DetectedType)
	}
}

func TestClassifyImageDefault(t *testing.T) {
	pred := ClassifyImage(MetricSet{}, "photo.jpg", "")
	if pred.DetectedType != CategoryOther || pred.Confidence != 0.3 {
		t.Errorf("no signal should default to other@0.3, got %s@%f", pred.DetectedType, pred.Confidence)
	}
	if len(pred.TopPredictions) != 1 {
		t.Errorf("default prediction should have one entry, got %d", len(pred.TopPredictions))
	}
}

func TestClassifyImageContentLadder(t *testing.T) {
	m := MetricSet{EdgeVariance: 200, MeanSaturation: 0.3, SaturationStd: 0.2}
	pred := ClassifyImage(m, "photo.jpg", "")

	// Everything fires at 200: tsunami@0.8 must win.
	if pred.DetectedType != CategoryTsunami {
		t.Errorf("expected tsunami, got %s", pred.DetectedType)
	}
	if len(pred.TopPredictions) != 3 {
		t.Errorf("expected 3 ranked predictions, got %d", len(pred.TopPredictions))
	}
}

func TestClassifyImageKeywordBoost(t *testing.T) {
	m := MetricSet{EdgeVariance: 200, MeanSaturation: 0.3, SaturationStd: 0.2}
	pred := ClassifyImage(m, "tsunami_warning.jpg", "tidal wave hitting the coast")

	if pred.DetectedType != CategoryTsunami {
		t.Fatalf("expected tsunami, got %s", pred.DetectedType)
	}
	// 0.8 content + 0.2 keyword boost capped at 0.95.
	if pred.Confidence != 0.95 {
		t.Errorf("expected boosted confidence 0.95, got %f", pred.Confidence)
	}
}

func TestClassifyImageKeywordOnly(t *testing.T) {
	pred := ClassifyImage(MetricSet{}, "oil_spill_harbor.jpg", "")
	if pred.DetectedType != CategoryPollution || pred.Confidence != 0.8 {
		t.Errorf("keyword match should add pollution@0.8, got %s@%f", pred.DetectedType, pred.Confidence)
	}
}

func TestClassifyVideoLadder(t *testing.T) {
	tests := []struct {
		name       string
		ocean, haz float64
		wantType   Category
		wantConf   float64
	}{
		{"storm surge", 0.75, 0.65, CategoryStormSurge, 0.8},
		{"high waves", 0.65, 0.45, CategoryHighWaves, 0.7},
		{"flooding", 0.45, 0.55, CategoryFlooding, 0.6},
		{"no signal", 0.0, 0.0, CategoryOther, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := ClassifyVideo(tt.ocean, tt.haz, "clip.mp4", "")
			if pred.DetectedType != tt.wantType || pred.Confidence != tt.wantConf {
				t.Errorf("got %s@%f, want %s@%f",
					pred.DetectedType, pred.Confidence, tt.wantType, tt.wantConf)
			}
			if pred.OceanScore != tt.ocean || pred.HazardScore != tt.haz {
				t.Errorf("scores not carried through: %+v", pred)
			}
		})
	}
}

func TestClassifyVideoLadderExclusive(t *testing.T) {
	// 0.85/0.75 satisfies both the storm-surge and tsunami arms; the ladder
	// is first-match so storm-surge wins despite tsunami's higher weight.
	pred := ClassifyVideo(0.85, 0.75, "clip.mp4", "")
	if pred.DetectedType != CategoryStormSurge {
		t.Errorf("ladder should be first-match exclusive, got %s", pred.DetectedType)
	}
}
