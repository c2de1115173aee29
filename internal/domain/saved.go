package domain

// SavedRestaurant is the minimal projection of a place the client keeps in
// its saved list. It is supplied fresh on every recommendation request; the
// backend holds no history between calls.
type SavedRestaurant struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Cuisine    string   `json:"cuisine"`
	Rating     *float64 `json:"rating"`
	Distance   string   `json:"distance"`
	PriceLevel *int     `json:"priceLevel"`
	SpiceLevel string   `json:"spiceLevel"`
}

// PreferenceProfile is a statistical summary of a saved list, recomputed on
// every request. An empty saved list yields the zero value: empty maps are
// allocated, all aggregates are zero.
type PreferenceProfile struct {
	CuisineCounts map[string]int `json:"cuisine_counts"`
	AvgRating     float64        `json:"avg_rating"`
	RatedCount    int            `json:"rated_count"`
	AvgDistanceM  float64        `json:"avg_distance_m"`
	DistanceCount int            `json:"distance_count"`
	PriceCounts   map[int]int    `json:"price_counts"`
	SpiceCounts   map[string]int `json:"spice_counts"`
	TotalSaved    int            `json:"total_saved"`
}

// ScoredCandidate pairs a not-yet-saved place with its recommendation score.
type ScoredCandidate struct {
	Place *Place  `json:"place"`
	Score float64 `json:"score"`
}
