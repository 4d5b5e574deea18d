package analysis

import (
	"testing"

	"pralay-server-go/internal/domain/imaging"
)

func TestAnalyzeHazardsQuietFrame(t *testing.T) {
	f := imaging.NewFrame(224, 224)
	m := ComputeMetrics(f, 224, 224)
	h := AnalyzeHazards(f, m)
	if h.Score != 0 || len(h.Indicators) != 0 {
		t.Errorf("black frame should trigger nothing, got %+v", h)
	}
	if h.HasHazardIndicators {
		t.Error("black frame should not pass the hazard gate")
	}
}

func TestAnalyzeHazardsMetricTriggers(t *testing.T) {
	// Metric-driven triggers only: the flat frame keeps the color and shape
	// heuristics silent.
	f := imaging.NewFrame(64, 64)
	m := MetricSet{EdgeVariance: 600}
	m.Water.TextureVariance = 2500

	h := AnalyzeHazards(f, m)
	want := []string{"high_chaos_damage", "severe_destruction", "debris_patterns"}
	if len(h.Indicators) != len(want) {
		t.Fatalf("expected %d indicators, got %v", len(want), h.Indicators)
	}
	for i, tag := range want {
		if h.Indicators[i] != tag {
			t.Errorf("indicator %d: got %s, want %s", i, h.Indicators[i], tag)
		}
	}
	if h.Score < 0.69 || h.Score > 0.71 {
		t.Errorf("expected score 0.7, got %f", h.Score)
	}
	if !h.HasHazardIndicators {
		t.Error("score 0.7 with 3 indicators must pass the gate")
	}
}

func TestAnalyzeHazardsEmergencyColors(t *testing.T) {
	f := imaging.NewFrame(64, 64)
	f.Fill(255, 0, 0) // pure red, hue 0
	h := AnalyzeHazards(f, MetricSet{})
	found := false
	for _, tag := range h.Indicators {
		if tag == "red_danger_signs" {
			found = true
		}
	}
	if !found {
		t.Errorf("red frame should trigger red_danger_signs, got %v", h.Indicators)
	}
	// One color indicator alone never passes the strict image gate.
	if h.HasHazardIndicators {
		t.Error("a single indicator must not pass the gate")
	}
}

func TestAnalyzeHazardsIdempotent(t *testing.T) {
	f := blueWhiteChecker(64)
	m := ComputeMetrics(f, 64, 64)
	a := AnalyzeHazards(f, m)
	b := AnalyzeHazards(f, m)
	if a.Score != b.Score || len(a.Indicators) != len(b.Indicators) {
		t.Errorf("repeated analysis diverged: %+v vs %+v", a, b)
	}
}
