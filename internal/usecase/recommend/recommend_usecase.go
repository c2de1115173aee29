package recommend

import (
	"context"
	"fmt"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/infrastructure/gemini"
	"go.uber.org/zap"
)

// Discoverer supplies the enriched candidate pool for a coordinate.
type Discoverer interface {
	NearbyPlaces(ctx context.Context, lat, lng float64, radiusM int) ([]*domain.Place, error)
}

// Blurb generation is best-effort and capped so a page of recommendations
// never waits on a long run of model calls.
const maxBlurbs = 5

type UseCase struct {
	discovery Discoverer
	parser    *DistanceParser
	scorer    *Scorer
	blurbs    *gemini.Client
	log       *zap.Logger
}

func NewUseCase(discovery Discoverer, blurbs *gemini.Client, log *zap.Logger) *UseCase {
	parser := NewDistanceParser()
	return &UseCase{
		discovery: discovery,
		parser:    parser,
		scorer:    NewScorer(parser),
		blurbs:    blurbs,
		log:       log,
	}
}

// Recommend returns up to 20 scored candidates near the given coordinate,
// ranked against a profile derived from the caller-supplied saved list.
// Already-saved places are excluded from the candidate pool.
func (uc *UseCase) Recommend(ctx context.Context, lat, lng float64, radiusM int, saved []domain.SavedRestaurant) ([]domain.ScoredCandidate, error) {
	candidates, err := uc.discovery.NearbyPlaces(ctx, lat, lng, radiusM)
	if err != nil {
		return nil, fmt.Errorf("failed to load nearby candidates: %w", err)
	}

	savedIDs := make(map[string]bool, len(saved))
	for _, r := range saved {
		savedIDs[r.ID] = true
	}

	unseen := make([]*domain.Place, 0, len(candidates))
	for _, place := range candidates {
		if savedIDs[place.ProviderPlaceID] {
			continue
		}
		unseen = append(unseen, place)
	}

	profile := ExtractPreferences(saved, uc.parser)
	ranked := uc.scorer.Rank(unseen, profile)
	uc.fillBlurbs(ctx, ranked)
	return ranked, nil
}

// fillBlurbs generates a short description for top candidates that have
// none. Failures only mean a missing blurb.
func (uc *UseCase) fillBlurbs(ctx context.Context, ranked []domain.ScoredCandidate) {
	if uc.blurbs == nil {
		return
	}
	generated := 0
	for _, sc := range ranked {
		if generated >= maxBlurbs {
			return
		}
		place := sc.Place
		if place.Description != nil && *place.Description != "" {
			continue
		}
		cuisine := ""
		if place.Cuisine != nil {
			cuisine = *place.Cuisine
		}
		blurb, err := uc.blurbs.PlaceBlurb(ctx, place.Name, cuisine, ratingOrZero(place))
		if err != nil {
			uc.log.Debug("blurb generation failed", zap.String("place", place.Name), zap.Error(err))
			continue
		}
		place.Description = &blurb
		generated++
	}
}
