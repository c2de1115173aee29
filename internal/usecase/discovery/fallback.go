package discovery

import (
	"strings"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
)

// cuisineKeywords maps tokens found in a place's name or category tags to a
// canonical cuisine label. Order matters: earlier entries win when several
// tokens match.
var cuisineKeywords = []struct {
	token   string
	cuisine string
}{
	{"sushi", "Japanese"},
	{"ramen", "Japanese"},
	{"japanese", "Japanese"},
	{"korean", "Korean"},
	{"chinese", "Chinese"},
	{"dim sum", "Chinese"},
	{"thai", "Thai"},
	{"vietnamese", "Vietnamese"},
	{"pho", "Vietnamese"},
	{"indian", "Indian"},
	{"curry", "Indian"},
	{"mexican", "Mexican"},
	{"taco", "Mexican"},
	{"burrito", "Mexican"},
	{"italian", "Italian"},
	{"pizza", "Italian"},
	{"pasta", "Italian"},
	{"french", "French"},
	{"greek", "Greek"},
	{"mediterranean", "Mediterranean"},
	{"turkish", "Turkish"},
	{"kebab", "Turkish"},
	{"burger", "American"},
	{"steak", "American"},
	{"bbq", "American"},
	{"barbecue", "American"},
	{"seafood", "Seafood"},
	{"vegan", "Vegan"},
	{"vegetarian", "Vegetarian"},
	{"cafe", "Cafe"},
	{"coffee", "Cafe"},
	{"bakery", "Bakery"},
	{"dessert", "Dessert"},
}

// cuisineOf derives a cuisine label from the provider's name and type tags.
func cuisineOf(name string, types []string) string {
	haystack := strings.ToLower(name + " " + strings.Join(types, " "))
	for _, kw := range cuisineKeywords {
		if strings.Contains(haystack, kw.token) {
			return kw.cuisine
		}
	}
	return ""
}

// fallbackImages is a fixed cuisine → stock image lookup used when no photo
// could be fetched for a place. Keying off the derived cuisine keeps the
// choice deterministic for a given place.
var fallbackImages = map[string]string{
	"Japanese":      "https://images.unsplash.com/photo-1579871494447-9811cf80d66c?w=800",
	"Korean":        "https://images.unsplash.com/photo-1590301157890-4810ed352733?w=800",
	"Chinese":       "https://images.unsplash.com/photo-1525755662778-989d0524087e?w=800",
	"Thai":          "https://images.unsplash.com/photo-1559314809-0d155014e29e?w=800",
	"Vietnamese":    "https://images.unsplash.com/photo-1582878826629-29b7ad1cdc43?w=800",
	"Indian":        "https://images.unsplash.com/photo-1585937421612-70a008356fbe?w=800",
	"Mexican":       "https://images.unsplash.com/photo-1565299585323-38d6b0865b47?w=800",
	"Italian":       "https://images.unsplash.com/photo-1574071318508-1cdbab80d002?w=800",
	"French":        "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=800",
	"Greek":         "https://images.unsplash.com/photo-1544124499-58912cbddaad?w=800",
	"Mediterranean": "https://images.unsplash.com/photo-1544124499-58912cbddaad?w=800",
	"Turkish":       "https://images.unsplash.com/photo-1561651823-34feb02250e4?w=800",
	"American":      "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=800",
	"Seafood":       "https://images.unsplash.com/photo-1559339352-11d035aa65de?w=800",
	"Vegan":         "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=800",
	"Vegetarian":    "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=800",
	"Cafe":          "https://images.unsplash.com/photo-1509042239860-f550ce710b93?w=800",
	"Bakery":        "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=800",
	"Dessert":       "https://images.unsplash.com/photo-1551024601-bec78aea704b?w=800",
}

const defaultFallbackImage = "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=800"

// fallbackPhoto builds a cover photo from the stock lookup so a place with
// no fetchable photos is still cacheable and future requests do not retry
// indefinitely.
func fallbackPhoto(place *domain.Place) *domain.PlacePhoto {
	cuisine := "restaurant"
	image := defaultFallbackImage
	if place.Cuisine != nil {
		if url, ok := fallbackImages[*place.Cuisine]; ok {
			cuisine = *place.Cuisine
			image = url
		}
	}
	attribution := "Stock image"
	return &domain.PlacePhoto{
		ProviderPhotoID: "fallback:" + strings.ToLower(cuisine),
		Data:            image,
		Attribution:     &attribution,
		Width:           800,
		Height:          600,
		IsPrimary:       true,
	}
}
