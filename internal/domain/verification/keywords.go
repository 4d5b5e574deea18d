package verification

import "strings"

// Keyword fallback used when a video container cannot be decoded: the only
// remaining signal is the filename and user description.
var (
	oceanKeywords  = []string{"water", "ocean", "sea", "wave", "beach", "coast", "marine", "tide"}
	hazardKeywords = []string{"storm", "flood", "tsunami", "surge", "high", "rough", "danger", "warning"}
)

// keywordScores returns the fraction of ocean and hazard keywords found in
// the lower-cased filename+description text.
func keywordScores(filename, description string) (oceanScore, hazardScore float64) {
	text := strings.ToLower(filename + " " + description)

	oceanHits := 0
	for _, kw := range oceanKeywords {
		if strings.Contains(text, kw) {
			oceanHits++
		}
	}
	hazardHits := 0
	for _, kw := range hazardKeywords {
		if strings.Contains(text, kw) {
			hazardHits++
		}
	}

	return float64(oceanHits) / float64(len(oceanKeywords)),
		float64(hazardHits) / float64(len(hazardKeywords))
}
