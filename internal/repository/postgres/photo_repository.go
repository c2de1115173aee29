package postgres

import (
	"context"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/repository"
	"github.com/jmoiron/sqlx"
)

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) repository.PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) GetByPlaceID(ctx context.Context, placeID int64) ([]*domain.PlacePhoto, error) {
	var photos []*domain.PlacePhoto
	query := `
		SELECT id, place_id, provider_photo_id, data, attribution, width,
		       height, is_primary, created_at, updated_at
		FROM place_photos
		WHERE place_id = $1
		ORDER BY is_primary DESC, id ASC
	`
	err := r.db.SelectContext(ctx, &photos, query, placeID)
	return photos, err
}

func (r *photoRepository) Upsert(ctx context.Context, photo *domain.PlacePhoto) error {
	query := `
		INSERT INTO place_photos (
			place_id, provider_photo_id, data, attribution, width, height,
			is_primary
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (place_id, provider_photo_id) DO UPDATE SET
			data = EXCLUDED.data,
			attribution = EXCLUDED.attribution,
			width = EXCLUDED.width,
			height = EXCLUDED.height,
			is_primary = EXCLUDED.is_primary,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		photo.PlaceID, photo.ProviderPhotoID, photo.Data, photo.Attribution,
		photo.Width, photo.Height, photo.IsPrimary,
	).Scan(&photo.ID, &photo.CreatedAt, &photo.UpdatedAt)
}
