package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type placeRepository struct {
	db *sqlx.DB
}

func NewPlaceRepository(db *sqlx.DB) repository.PlaceRepository {
	return &placeRepository{db: db}
}

const placeColumns = `
	id, provider, provider_place_id, name, latitude, longitude, address,
	cuisine, types, rating, rating_count, price_level, phone, website,
	opening_hours, description, business_status, reviews, is_open_now,
	is_new, last_updated_at, expires_at, created_at
`

func scanPlace(row *sql.Row) (*domain.Place, error) {
	var place domain.Place
	err := row.Scan(
		&place.ID, &place.Provider, &place.ProviderPlaceID, &place.Name,
		&place.Latitude, &place.Longitude, &place.Address, &place.Cuisine,
		pq.Array(&place.Types), &place.Rating, &place.RatingCount,
		&place.PriceLevel, &place.Phone, &place.Website,
		pq.Array(&place.OpeningHours), &place.Description,
		&place.BusinessStatus, pq.Array(&place.Reviews), &place.IsOpenNow,
		&place.IsNew, &place.LastUpdatedAt, &place.ExpiresAt, &place.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlaceNotFound
		}
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) GetByProviderID(ctx context.Context, provider, providerPlaceID string) (*domain.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE provider = $1 AND provider_place_id = $2`
	return scanPlace(r.db.QueryRowContext(ctx, query, provider, providerPlaceID))
}

func (r *placeRepository) FindInBoundingBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64, updatedAfter time.Time, limit int) ([]*domain.Place, error) {
	query := `
		SELECT ` + placeColumns + `
		FROM places p
		WHERE p.latitude BETWEEN $1 AND $2
		  AND p.longitude BETWEEN $3 AND $4
		  AND p.last_updated_at > $5
		  AND (p.expires_at IS NULL OR p.expires_at > CURRENT_TIMESTAMP)
		  AND EXISTS (
			SELECT 1 FROM place_photos ph
			WHERE ph.place_id = p.id AND ph.is_primary
		  )
		ORDER BY p.last_updated_at DESC
		LIMIT $6
	`
	rows, err := r.db.QueryContext(ctx, query, minLat, maxLat, minLng, maxLng, updatedAfter, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []*domain.Place
	for rows.Next() {
		var place domain.Place
		if err := rows.Scan(
			&place.ID, &place.Provider, &place.ProviderPlaceID, &place.Name,
			&place.Latitude, &place.Longitude, &place.Address, &place.Cuisine,
			pq.Array(&place.Types), &place.Rating, &place.RatingCount,
			&place.PriceLevel, &place.Phone, &place.Website,
			pq.Array(&place.OpeningHours), &place.Description,
			&place.BusinessStatus, pq.Array(&place.Reviews), &place.IsOpenNow,
			&place.IsNew, &place.LastUpdatedAt, &place.ExpiresAt, &place.CreatedAt,
		); err != nil {
			return nil, err
		}
		places = append(places, &place)
	}
	return places, rows.Err()
}

func (r *placeRepository) Upsert(ctx context.Context, place *domain.Place) error {
	query := `
		INSERT INTO places (
			provider, provider_place_id, name, latitude, longitude, address,
			cuisine, types, rating, rating_count, price_level, phone, website,
			opening_hours, description, business_status, reviews, is_open_now,
			is_new, last_updated_at, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, CURRENT_TIMESTAMP,
		        CURRENT_TIMESTAMP + INTERVAL '30 days')
		ON CONFLICT (provider, provider_place_id) DO UPDATE SET
			name = EXCLUDED.name,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			address = EXCLUDED.address,
			cuisine = EXCLUDED.cuisine,
			types = EXCLUDED.types,
			rating = EXCLUDED.rating,
			rating_count = EXCLUDED.rating_count,
			price_level = EXCLUDED.price_level,
			phone = EXCLUDED.phone,
			website = EXCLUDED.website,
			opening_hours = EXCLUDED.opening_hours,
			description = EXCLUDED.description,
			business_status = EXCLUDED.business_status,
			reviews = EXCLUDED.reviews,
			is_open_now = EXCLUDED.is_open_now,
			is_new = EXCLUDED.is_new,
			last_updated_at = EXCLUDED.last_updated_at,
			expires_at = EXCLUDED.expires_at
		RETURNING id, last_updated_at, expires_at, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		place.Provider, place.ProviderPlaceID, place.Name,
		place.Latitude, place.Longitude, place.Address, place.Cuisine,
		pq.Array(place.Types), place.Rating, place.RatingCount,
		place.PriceLevel, place.Phone, place.Website,
		pq.Array(place.OpeningHours), place.Description, place.BusinessStatus,
		pq.Array(place.Reviews), place.IsOpenNow, place.IsNew,
	).Scan(&place.ID, &place.LastUpdatedAt, &place.ExpiresAt, &place.CreatedAt)
}
