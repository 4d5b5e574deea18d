package analysis

import "testing"

func TestCompatibleSymmetry(t *testing.T) {
	for _, policy := range []CompatPolicy{ImageCompat, VideoCompat} {
		for _, a := range Categories {
			for _, b := range Categories {
				if Compatible(a, b, policy) != Compatible(b, a, policy) {
					t.Errorf("asymmetry for (%s, %s) policy %d", a, b, policy)
				}
			}
		}
	}
}

func TestCompatibleExactMatch(t *testing.T) {
	for _, c := range Categories {
		if !Compatible(c, c, VideoCompat) {
			t.Errorf("%s should match itself", c)
		}
	}
}

func TestCompatibleGroups(t *testing.T) {
	tests := []struct {
		selected, detected Category
		policy             CompatPolicy
		want               bool
	}{
		{CategoryFlooding, CategoryTsunami, VideoCompat, true},   // water hazards group
		{CategoryPollution, CategoryErosion, VideoCompat, true},  // environmental group
		{CategoryWildlife, CategoryDebris, VideoCompat, true},    // marine group
		{CategoryErosion, CategoryDebris, VideoCompat, true},     // similar pair
		{CategoryWildlife, CategoryTsunami, VideoCompat, false},  // unrelated
		{CategoryWildlife, CategoryTsunami, ImageCompat, false},  // wildlife not ocean-related
		{CategoryErosion, CategoryTsunami, VideoCompat, false},   // no shared group or pair
		{CategoryErosion, CategoryTsunami, ImageCompat, true},    // ocean-related fallback
		{CategoryOther, CategoryFlooding, ImageCompat, false},    // other never falls back
	}
	for _, tt := range tests {
		if got := Compatible(tt.selected, tt.detected, tt.policy); got != tt.want {
			t.Errorf("Compatible(%s, %s, %d) = %v, want %v",
				tt.selected, tt.detected, tt.policy, got, tt.want)
		}
	}
}
