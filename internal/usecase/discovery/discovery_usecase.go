package discovery

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/infrastructure/places"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/observability"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/repository"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// Provider identity used in the (provider, provider_place_id) cache key.
	providerName = "google"

	// Search radius bounds in meters. The HTTP boundary clamps too; this is
	// the defensive copy.
	minRadiusM = 200
	maxRadiusM = 5000

	// A bounding-box hit with at least this many fresh records skips the
	// upstream nearby search entirely.
	sufficientCached = 5

	// Maximum records served for a search, matching the most the paginated
	// upstream search can ever produce, so cached and live result sets are
	// interchangeable at the consumer.
	maxResults = 60

	// The box side is padded 20% beyond the radius so border places that the
	// radius search would return are not cut off by the rectangle.
	boxPadding = 1.2

	metersPerDegreeLat = 111000.0

	// TTL for the Redis nearby-response cache.
	queryCacheTTL = 5 * time.Minute
)

// Provider is the upstream place-data collaborator.
type Provider interface {
	Available() bool
	NearbySearch(ctx context.Context, lat, lng float64, radius int) ([]places.Summary, error)
	Details(ctx context.Context, placeID string) (*places.Details, error)
	Photo(ctx context.Context, ref string, maxWidth, maxHeight int) (*places.PhotoData, error)
}

type UseCase struct {
	placeRepo repository.PlaceRepository
	photoRepo repository.PhotoRepository
	provider  Provider
	cache     *redis.Client
	log       *zap.Logger

	now func() time.Time
}

func NewUseCase(
	placeRepo repository.PlaceRepository,
	photoRepo repository.PhotoRepository,
	provider Provider,
	cache *redis.Client,
	log *zap.Logger,
) *UseCase {
	return &UseCase{
		placeRepo: placeRepo,
		photoRepo: photoRepo,
		provider:  provider,
		cache:     cache,
		log:       log,
		now:       time.Now,
	}
}

// NearbyPlaces returns up to 60 enriched places around the given coordinate.
// Cached fresh records are served when coverage is sufficient; otherwise the
// upstream enrichment pipeline runs and its results are written through the
// cache before being returned.
func (uc *UseCase) NearbyPlaces(ctx context.Context, lat, lng float64, radiusM int) ([]*domain.Place, error) {
	if err := validateCoordinate(lat, lng); err != nil {
		return nil, err
	}
	radiusM = clampRadius(radiusM)

	if hit := uc.queryCacheGet(ctx, lat, lng, radiusM); hit != nil {
		return hit, nil
	}

	now := uc.now()
	cached := uc.lookupCached(ctx, lat, lng, radiusM, now)

	if len(cached) >= sufficientCached {
		observability.GeoCacheLookups.WithLabelValues("hit").Inc()
		uc.attachDistances(cached, lat, lng)
		uc.queryCacheSet(ctx, lat, lng, radiusM, cached)
		return cached, nil
	}
	observability.GeoCacheLookups.WithLabelValues("miss").Inc()

	if uc.provider == nil || !uc.provider.Available() {
		// Configuration error: no upstream credential. Serve whatever the
		// cache had and nothing more.
		uc.log.Warn("place provider credential missing, serving cache only",
			zap.Int("cached", len(cached)))
		uc.attachDistances(cached, lat, lng)
		return cached, nil
	}

	summaries, err := uc.provider.NearbySearch(ctx, lat, lng, radiusM)
	if err != nil {
		uc.log.Error("nearby search failed, falling back to cached records",
			zap.Error(err), zap.Int("cached", len(cached)))
		uc.attachDistances(cached, lat, lng)
		return cached, nil
	}

	start := uc.now()
	results := uc.enrichAll(ctx, summaries, now)
	observability.EnrichmentDuration.Observe(uc.now().Sub(start).Seconds())

	uc.attachDistances(results, lat, lng)
	uc.queryCacheSet(ctx, lat, lng, radiusM, results)
	return results, nil
}

// lookupCached runs the bounding-box query and filters defensively on
// freshness. Lookup failures degrade to a cache miss.
func (uc *UseCase) lookupCached(ctx context.Context, lat, lng float64, radiusM int, now time.Time) []*domain.Place {
	minLat, maxLat, minLng, maxLng := boundingBox(lat, lng, radiusM)
	cutoff := now.Add(-domain.PlaceCacheTTL)

	records, err := uc.placeRepo.FindInBoundingBox(ctx, minLat, maxLat, minLng, maxLng, cutoff, maxResults)
	if err != nil {
		uc.log.Error("bounding-box lookup failed", zap.Error(err))
		return nil
	}

	fresh := records[:0]
	for _, p := range records {
		if !p.IsFresh(now) {
			continue
		}
		if photos, err := uc.photoRepo.GetByPlaceID(ctx, p.ID); err == nil {
			p.Photos = photos
		}
		fresh = append(fresh, p)
	}
	return fresh
}

// boundingBox converts a radius search into a latitude/longitude rectangle.
// The longitude delta widens with latitude to correct for meridian
// convergence.
func boundingBox(lat, lng float64, radiusM int) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := float64(radiusM) * boxPadding / metersPerDegreeLat
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngDelta := latDelta / cosLat
	return lat - latDelta, lat + latDelta, lng - lngDelta, lng + lngDelta
}

func clampRadius(radiusM int) int {
	if radiusM < minRadiusM {
		return minRadiusM
	}
	if radiusM > maxRadiusM {
		return maxRadiusM
	}
	return radiusM
}

func validateCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return domain.ErrInvalidCoordinate
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return domain.ErrInvalidCoordinate
	}
	return nil
}

func (uc *UseCase) attachDistances(results []*domain.Place, lat, lng float64) {
	for _, p := range results {
		m := haversineMeters(lat, lng, p.Latitude, p.Longitude)
		p.DistanceMeters = &m
		p.Distance = renderDistance(m)
	}
}

func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusM = 6371000.0
	toRad := math.Pi / 180
	dLat := (lat2 - lat1) * toRad
	dLng := (lng2 - lng1) * toRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*toRad)*math.Cos(lat2*toRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func renderDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m away", meters)
	}
	return fmt.Sprintf("%.1f km away", meters/1000)
}

// queryCacheGet consults the short-TTL Redis response cache. Any cache error
// is logged and treated as a miss.
func (uc *UseCase) queryCacheGet(ctx context.Context, lat, lng float64, radiusM int) []*domain.Place {
	if uc.cache == nil {
		return nil
	}
	raw, err := uc.cache.Get(ctx, queryCacheKey(lat, lng, radiusM)).Bytes()
	if err != nil {
		if err != redis.Nil {
			uc.log.Warn("query cache get failed", zap.Error(err))
		}
		observability.QueryCacheLookups.WithLabelValues("miss").Inc()
		return nil
	}

	var results []*domain.Place
	if err := json.Unmarshal(raw, &results); err != nil {
		uc.log.Warn("query cache entry corrupt", zap.Error(err))
		observability.QueryCacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	observability.QueryCacheLookups.WithLabelValues("hit").Inc()
	return results
}

func (uc *UseCase) queryCacheSet(ctx context.Context, lat, lng float64, radiusM int, results []*domain.Place) {
	if uc.cache == nil || len(results) == 0 {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, queryCacheKey(lat, lng, radiusM), raw, queryCacheTTL).Err(); err != nil {
		uc.log.Warn("query cache set failed", zap.Error(err))
	}
}

func queryCacheKey(lat, lng float64, radiusM int) string {
	// ~11m grid; close-enough repeat queries share an entry.
	return fmt.Sprintf("nearby:%.4f:%.4f:%d", lat, lng, radiusM)
}
