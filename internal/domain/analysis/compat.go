package analysis

// CompatPolicy selects which compatibility rules apply. Image verification
// additionally treats any two ocean-related categories as compatible; video
// verification has no such fallback.
type CompatPolicy int

const (
	ImageCompat CompatPolicy = iota
	VideoCompat
)

// Overlapping category groups; membership of both labels in any one group
// makes them compatible.
var compatibleGroups = [][]Category{
	{CategoryFlooding, CategoryStormSurge, CategoryHighWaves, CategoryTsunami}, // water hazards
	{CategoryStormSurge, CategoryTsunami, CategoryHighWaves},                   // weather hazards
	{CategoryPollution, CategoryDebris, CategoryErosion},                       // environmental hazards
	{CategoryWildlife, CategoryPollution, CategoryDebris},                      // marine hazards
}

var similarPairs = [][2]Category{
	{CategoryFlooding, CategoryStormSurge},
	{CategoryStormSurge, CategoryHighWaves},
	{CategoryHighWaves, CategoryTsunami},
	{CategoryPollution, CategoryDebris},
	{CategoryErosion, CategoryDebris},
}

var oceanRelated = []Category{
	CategoryFlooding, CategoryStormSurge, CategoryHighWaves, CategoryTsunami,
	CategoryPollution, CategoryDebris, CategoryErosion,
}

// Compatible reports whether a user-selected category is close enough to the
// detected one to accept the report.
func Compatible(selected, detected Category, policy CompatPolicy) bool {
	if selected == detected {
		return true
	}

	for _, group := range compatibleGroups {
		if contains(group, selected) && contains(group, detected) {
			return true
		}
	}

	for _, pair := range similarPairs {
		if (selected == pair[0] && detected == pair[1]) ||
			(selected == pair[1] && detected == pair[0]) {
			return true
		}
	}

	if policy == ImageCompat &&
		contains(oceanRelated, selected) && contains(oceanRelated, detected) {
		return true
	}

	return false
}

func contains(cs []Category, c Category) bool {
	for _, v := range cs {
		if v == c {
			return true
		}
	}
	return false
}
