package recommend

import (
	"sort"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
)

const (
	// Cuisine affinity.
	cuisineSaturationCount = 3
	cuisineSaturatedBonus  = 25.0
	cuisinePerMatchBonus   = 8.0
	cuisineNoveltyPenalty  = -2.0

	// Rating alignment.
	ratingCloseBonus     = 20.0
	ratingNearBonus      = 12.0
	ratingFarBonus       = 5.0
	highRatingBonus      = 8.0
	ratingFallbackFactor = 3.0
	socialProofDivisor   = 300.0
	socialProofCap       = 3.0
	socialProofThreshold = 100

	// Distance alignment.
	distCloseToAvgBonus  = 15.0
	distNearAvgBonus     = 10.0
	prefersCloseBonus    = 12.0
	prefersCloseAvgLimit = 1000.0
	prefersCloseCandMax  = 1500.0

	// Price and spice alignment.
	pricePerMatchBonus  = 5.0
	priceNoveltyPenalty = -1.0
	spicePerMatchBonus  = 3.0

	// Exploration and quality flags.
	diversityBonus    = 2.0
	diversityMinSaved = 5
	newPlaceBonus     = 3.0
	openNowBonus      = 5.0

	// Candidates within this score distance are treated as tied and fall
	// through to the rating/distance tie-break.
	tieThreshold = 0.1

	maxRecommendations = 20
)

// Scorer ranks candidate places against a preference profile using an
// additive model over independent signals. Scores are unbounded above.
type Scorer struct {
	parser *DistanceParser
}

func NewScorer(parser *DistanceParser) *Scorer {
	return &Scorer{parser: parser}
}

// Score computes the match score for a single candidate.
func (s *Scorer) Score(place *domain.Place, profile domain.PreferenceProfile) float64 {
	score := 0.0
	score += s.cuisineTerm(place, profile)
	score += s.ratingTerm(place, profile)
	score += s.distanceTerm(place, profile)
	score += s.priceTerm(place, profile)
	score += s.spiceTerm(place, profile)

	if profile.TotalSaved >= diversityMinSaved && cuisineCount(place, profile) == 0 {
		score += diversityBonus
	}
	if place.IsNew {
		score += newPlaceBonus
	}
	if place.IsOpenNow != nil && *place.IsOpenNow {
		score += openNowBonus
	}
	return score
}

func cuisineCount(place *domain.Place, profile domain.PreferenceProfile) int {
	if place.Cuisine == nil {
		return 0
	}
	return profile.CuisineCounts[*place.Cuisine]
}

func (s *Scorer) cuisineTerm(place *domain.Place, profile domain.PreferenceProfile) float64 {
	count := cuisineCount(place, profile)
	switch {
	case count >= cuisineSaturationCount:
		// A long history of one cuisine saturates instead of dominating.
		return cuisineSaturatedBonus
	case count > 0:
		return cuisinePerMatchBonus * float64(count)
	case profile.TotalSaved > 0:
		return cuisineNoveltyPenalty
	}
	return 0
}

func (s *Scorer) ratingTerm(place *domain.Place, profile domain.PreferenceProfile) float64 {
	score := 0.0
	if place.Rating != nil {
		rating := *place.Rating
		if profile.RatedCount > 0 {
			diff := rating - profile.AvgRating
			if diff < 0 {
				diff = -diff
			}
			switch {
			case diff < 0.5:
				score += ratingCloseBonus
			case diff < 1.0:
				score += ratingNearBonus
			default:
				score += ratingFarBonus
			}
			if profile.AvgRating >= 4.0 && rating >= 4.5 {
				score += highRatingBonus
			}
		} else {
			score += ratingFallbackFactor * rating
		}
	}

	if place.RatingCount != nil && *place.RatingCount > socialProofThreshold {
		proof := float64(*place.RatingCount) / socialProofDivisor
		if proof > socialProofCap {
			proof = socialProofCap
		}
		score += proof
	}
	return score
}

func (s *Scorer) distanceTerm(place *domain.Place, profile domain.PreferenceProfile) float64 {
	meters := s.candidateMeters(place)
	if meters == nil {
		return 0
	}
	m := *meters

	score := 0.0
	if profile.DistanceCount > 0 {
		diff := m - profile.AvgDistanceM
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff < 500:
			score += distCloseToAvgBonus
		case diff < 1000:
			score += distNearAvgBonus
		}
		if profile.AvgDistanceM < prefersCloseAvgLimit && m < prefersCloseCandMax {
			score += prefersCloseBonus
		}
	}

	// Absolute proximity bands, independent of the profile. First matching
	// band wins.
	switch {
	case m < 500:
		score += 10
	case m < 1000:
		score += 7
	case m < 2000:
		score += 4
	case m < 5000:
		score += 1
	}
	return score
}

func (s *Scorer) priceTerm(place *domain.Place, profile domain.PreferenceProfile) float64 {
	if place.PriceLevel == nil {
		return 0
	}
	count := profile.PriceCounts[*place.PriceLevel]
	if count > 0 {
		return pricePerMatchBonus * float64(count)
	}
	if profile.TotalSaved > 0 {
		return priceNoveltyPenalty
	}
	return 0
}

func (s *Scorer) spiceTerm(place *domain.Place, profile domain.PreferenceProfile) float64 {
	spice := spiceLevelOf(place)
	if spice == "" {
		return 0
	}
	return spicePerMatchBonus * float64(profile.SpiceCounts[spice])
}

// candidateMeters prefers the pipeline-computed distance and falls back to
// parsing the rendered distance text.
func (s *Scorer) candidateMeters(place *domain.Place) *float64 {
	if place.DistanceMeters != nil {
		return place.DistanceMeters
	}
	return s.parser.Parse(place.Distance)
}

// Rank scores all candidates, orders them best-first, and truncates to the
// top 20. Candidates whose scores differ by at most 0.1 are tied and ordered
// by descending rating, then ascending distance; an unparseable distance
// sorts last among ties.
func (s *Scorer) Rank(candidates []*domain.Place, profile domain.PreferenceProfile) []domain.ScoredCandidate {
	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, place := range candidates {
		scored = append(scored, domain.ScoredCandidate{
			Place: place,
			Score: s.Score(place, profile),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		diff := a.Score - b.Score
		if diff > tieThreshold {
			return true
		}
		if diff < -tieThreshold {
			return false
		}

		ratingA, ratingB := ratingOrZero(a.Place), ratingOrZero(b.Place)
		if ratingA != ratingB {
			return ratingA > ratingB
		}

		distA, distB := s.candidateMeters(a.Place), s.candidateMeters(b.Place)
		switch {
		case distA == nil && distB == nil:
			return false
		case distA == nil:
			return false
		case distB == nil:
			return true
		default:
			return *distA < *distB
		}
	})

	if len(scored) > maxRecommendations {
		scored = scored[:maxRecommendations]
	}
	return scored
}

func ratingOrZero(place *domain.Place) float64 {
	if place.Rating == nil {
		return 0
	}
	return *place.Rating
}
