package recommend

import (
	"math"
	"testing"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func candidate(cuisine string, rating float64, ratingCount int, distance string, price int) *domain.Place {
	return &domain.Place{
		Cuisine:     strPtr(cuisine),
		Rating:      ratingPtr(rating),
		RatingCount: intPtr(ratingCount),
		PriceLevel:  intPtr(price),
		Distance:    distance,
	}
}

// One Italian place saved; a close, highly rated Italian candidate scores
// 8 + 20 + 8 + 0.5 + 15 + 12 + 7 + 5 = 75.5.
func TestScoreSingleSavedScenario(t *testing.T) {
	parser := NewDistanceParser()
	scorer := NewScorer(parser)

	saved := []domain.SavedRestaurant{
		{ID: "1", Cuisine: "Italian", Rating: ratingPtr(4.5), Distance: "0.5 km away", PriceLevel: pricePtr(2)},
	}
	profile := ExtractPreferences(saved, parser)

	got := scorer.Score(candidate("Italian", 4.6, 150, "0.6 km away", 2), profile)
	if math.Abs(got-75.5) > 1e-9 {
		t.Errorf("Score = %v, want 75.5", got)
	}
}

// With no history, the cuisine/price/spice terms contribute nothing (no
// novelty penalty either), rating falls back to 3x, and only the absolute
// proximity bands apply.
func TestScoreEmptyProfile(t *testing.T) {
	parser := NewDistanceParser()
	scorer := NewScorer(parser)
	profile := ExtractPreferences(nil, parser)

	got := scorer.Score(candidate("Chinese", 4.0, 50, "800 m away", 2), profile)
	want := 3.0*4.0 + 7.0 // rating fallback + <1000m band
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", got, want)
	}
}

// The cuisine term grows with match count and saturates at three.
func TestScoreCuisineSaturation(t *testing.T) {
	parser := NewDistanceParser()
	scorer := NewScorer(parser)

	var prev float64
	for count := 1; count <= 6; count++ {
		saved := make([]domain.SavedRestaurant, count)
		for i := range saved {
			saved[i] = domain.SavedRestaurant{ID: "x", Cuisine: "Thai"}
		}
		profile := ExtractPreferences(saved, parser)

		place := &domain.Place{Cuisine: strPtr("Thai")}
		got := scorer.cuisineTerm(place, profile)

		if got < prev {
			t.Errorf("cuisine term decreased at count %d: %v < %v", count, got, prev)
		}
		if count >= 3 && got != 25 {
			t.Errorf("cuisine term at count %d = %v, want saturated 25", count, got)
		}
		if count < 3 && got != 8*float64(count) {
			t.Errorf("cuisine term at count %d = %v, want %v", count, got, 8*float64(count))
		}
		prev = got
	}
}

func TestScoreNoveltyPenaltySuppressedWhenEmpty(t *testing.T) {
	parser := NewDistanceParser()
	scorer := NewScorer(parser)

	unseen := &domain.Place{Cuisine: strPtr("Greek")}
	if got := scorer.cuisineTerm(unseen, ExtractPreferences(nil, parser)); got != 0 {
		t.Errorf("cuisine term with empty profile = %v, want 0", got)
	}

	saved := []domain.SavedRestaurant{{ID: "1", Cuisine: "Thai"}}
	if got := scorer.cuisineTerm(unseen, ExtractPreferences(saved, parser)); got != -2 {
		t.Errorf("cuisine term for unseen cuisine = %v, want -2", got)
	}
}

func TestScoreDiversityBonus(t *testing.T) {
	parser := NewDistanceParser()
	scorer := NewScorer(parser)

	saved := make([]domain.SavedRestaurant, 5)
	for i := range saved {
		saved[i] = domain.SavedRestaurant{ID: "x", Cuisine: "Thai"}
	}
	profile := ExtractPreferences(saved, parser)

	seen := scorer.Score(&domain.Place{Cuisine: strPtr("Thai")}, profile)
	unseen := scorer.Score(&domain.Place{Cuisine: strPtr("Greek")}, profile)

	// Thai is saturated (+25); Greek gets the novelty penalty (-2) plus the
	// diversity bonus (+2).
	if seen != 25 {
		t.Errorf("saturated cuisine score = %v, want 25", seen)
	}
	if unseen != 0 {
		t.Errorf("unseen cuisine score = %v, want 0 (-2 novelty +2 diversity)", unseen)
	}
}

// Tied scores fall back to rating, then to parsed distance; unparseable
// distance sorts last.
func TestRankTieBreaks(t *testing.T) {
	parser := NewDistanceParser()
	scorer := NewScorer(parser)
	profile := ExtractPreferences(nil, parser)

	far := &domain.Place{ProviderPlaceID: "far", Rating: ratingPtr(4.0), Distance: "6.0 km away"}
	near := &domain.Place{ProviderPlaceID: "near", Rating: ratingPtr(4.0), Distance: "5.2 km away"}
	unknown := &domain.Place{ProviderPlaceID: "unknown", Rating: ratingPtr(4.0), Distance: "far away"}
	better := &domain.Place{ProviderPlaceID: "better", Rating: ratingPtr(4.02), Distance: "6.0 km away"}

	ranked := scorer.Rank([]*domain.Place{far, unknown, near, better}, profile)

	wantOrder := []string{"better", "near", "far", "unknown"}
	if len(ranked) != len(wantOrder) {
		t.Fatalf("Rank returned %d results, want %d", len(ranked), len(wantOrder))
	}
	for i, want := range wantOrder {
		if ranked[i].Place.ProviderPlaceID != want {
			t.Errorf("rank %d = %s, want %s", i, ranked[i].Place.ProviderPlaceID, want)
		}
	}
}

func TestRankTruncatesToTwenty(t *testing.T) {
	parser := NewDistanceParser()
	scorer := NewScorer(parser)
	profile := ExtractPreferences(nil, parser)

	var pool []*domain.Place
	for i := 0; i < 35; i++ {
		pool = append(pool, &domain.Place{Rating: ratingPtr(3.0 + float64(i)*0.01)})
	}

	ranked := scorer.Rank(pool, profile)
	if len(ranked) != 20 {
		t.Errorf("Rank returned %d results, want 20", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score+0.1 {
			t.Errorf("results not ordered best-first at index %d", i)
		}
	}
}
