package recommend

import (
	"math"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
)

// ExtractPreferences reduces a saved list to a weighted preference profile
// in a single pass. Entries with a missing or non-finite rating or an
// unparseable distance are excluded from the corresponding average and its
// denominator. Pure: safe to call on every request.
func ExtractPreferences(saved []domain.SavedRestaurant, parser *DistanceParser) domain.PreferenceProfile {
	profile := domain.PreferenceProfile{
		CuisineCounts: make(map[string]int),
		PriceCounts:   make(map[int]int),
		SpiceCounts:   make(map[string]int),
		TotalSaved:    len(saved),
	}

	var ratingSum, distanceSum float64
	for _, r := range saved {
		if r.Cuisine != "" {
			profile.CuisineCounts[r.Cuisine]++
		}
		if r.Rating != nil && !math.IsNaN(*r.Rating) && !math.IsInf(*r.Rating, 0) {
			ratingSum += *r.Rating
			profile.RatedCount++
		}
		if meters := parser.Parse(r.Distance); meters != nil && !math.IsNaN(*meters) && !math.IsInf(*meters, 0) {
			distanceSum += *meters
			profile.DistanceCount++
		}
		if r.PriceLevel != nil {
			profile.PriceCounts[*r.PriceLevel]++
		}
		if r.SpiceLevel != "" {
			profile.SpiceCounts[r.SpiceLevel]++
		}
	}

	if profile.RatedCount > 0 {
		profile.AvgRating = ratingSum / float64(profile.RatedCount)
	}
	if profile.DistanceCount > 0 {
		profile.AvgDistanceM = distanceSum / float64(profile.DistanceCount)
	}
	return profile
}
