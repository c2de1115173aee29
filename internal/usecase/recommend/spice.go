package recommend

import "github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"

// Saved entries carry a spice category chosen by the user; candidates do
// not, so a level is inferred from the cuisine for the alignment term.
var cuisineSpiceLevels = map[string]string{
	"Thai":       "spicy",
	"Indian":     "spicy",
	"Korean":     "spicy",
	"Mexican":    "medium",
	"Chinese":    "medium",
	"Turkish":    "medium",
	"Vietnamese": "mild",
	"Japanese":   "mild",
	"Italian":    "mild",
	"French":     "mild",
	"American":   "mild",
}

func spiceLevelOf(place *domain.Place) string {
	if place.Cuisine == nil {
		return ""
	}
	return cuisineSpiceLevels[*place.Cuisine]
}
