package repository

import (
	"context"
	"time"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
)

type PlaceRepository interface {
	GetByProviderID(ctx context.Context, provider, providerPlaceID string) (*domain.Place, error)
	// FindInBoundingBox returns places inside the latitude/longitude box that
	// have a cover photo and were updated after the given cutoff, newest
	// first, capped at limit.
	FindInBoundingBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64, updatedAfter time.Time, limit int) ([]*domain.Place, error)
	// Upsert inserts the place or, on (provider, provider_place_id) conflict,
	// overwrites all enrichable fields and advances last_updated_at and
	// expires_at.
	Upsert(ctx context.Context, place *domain.Place) error
}

type PhotoRepository interface {
	GetByPlaceID(ctx context.Context, placeID int64) ([]*domain.PlacePhoto, error)
	// Upsert inserts the photo or, on (place_id, provider_photo_id) conflict,
	// overwrites the payload and metadata.
	Upsert(ctx context.Context, photo *domain.PlacePhoto) error
}
