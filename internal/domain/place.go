package domain

import "time"

// Freshness window for cached place records. A record older than this is
// re-enriched before being served.
const PlaceCacheTTL = 30 * 24 * time.Hour

// Place is an enriched place record cached from the upstream provider.
// Identity is (provider, provider_place_id).
type Place struct {
	ID              int64      `json:"id" db:"id"`
	Provider        string     `json:"provider" db:"provider"`
	ProviderPlaceID string     `json:"provider_place_id" db:"provider_place_id"`
	Name            string     `json:"name" db:"name"`
	Latitude        float64    `json:"latitude" db:"latitude"`
	Longitude       float64    `json:"longitude" db:"longitude"`
	Address         *string    `json:"address" db:"address"`
	Cuisine         *string    `json:"cuisine" db:"cuisine"`
	Types           []string   `json:"types" db:"types"`
	Rating          *float64   `json:"rating" db:"rating"`
	RatingCount     *int       `json:"rating_count" db:"rating_count"`
	PriceLevel      *int       `json:"price_level" db:"price_level"`
	Phone           *string    `json:"phone" db:"phone"`
	Website         *string    `json:"website" db:"website"`
	OpeningHours    []string   `json:"opening_hours" db:"opening_hours"`
	Description     *string    `json:"description" db:"description"`
	BusinessStatus  *string    `json:"business_status" db:"business_status"`
	Reviews         []string   `json:"reviews" db:"reviews"`
	IsOpenNow       *bool      `json:"is_open_now" db:"is_open_now"`
	IsNew           bool       `json:"is_new" db:"is_new"`
	LastUpdatedAt   time.Time  `json:"last_updated_at" db:"last_updated_at"`
	ExpiresAt       *time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`

	// Populated per request, never persisted.
	Photos         []*PlacePhoto `json:"photos" db:"-"`
	Distance       string        `json:"distance,omitempty" db:"-"`
	DistanceMeters *float64      `json:"distance_meters,omitempty" db:"-"`
}

// IsFresh reports whether the cached record can be served without
// re-enrichment. Records written before expiry tracking existed fall back to
// an age check against the TTL.
func (p *Place) IsFresh(now time.Time) bool {
	if p.ExpiresAt != nil {
		return now.Before(*p.ExpiresAt)
	}
	return now.Sub(p.LastUpdatedAt) < PlaceCacheTTL
}

// HasCompleteDetails reports whether the record already carries everything a
// place-details call would add, so the call can be skipped.
func (p *Place) HasCompleteDetails() bool {
	return p.Phone != nil && p.Website != nil &&
		len(p.OpeningHours) > 0 && len(p.Reviews) > 0
}

// CoverPhoto returns the primary photo, or nil if none is attached.
func (p *Place) CoverPhoto() *PlacePhoto {
	for _, ph := range p.Photos {
		if ph.IsPrimary {
			return ph
		}
	}
	return nil
}

// PlacePhoto is a stored photo asset belonging to exactly one place.
// Identity is (place_id, provider_photo_id). Exactly one photo per place is
// primary; that one is the cover image.
type PlacePhoto struct {
	ID              int64     `json:"id" db:"id"`
	PlaceID         int64     `json:"place_id" db:"place_id"`
	ProviderPhotoID string    `json:"provider_photo_id" db:"provider_photo_id"`
	Data            string    `json:"data" db:"data"`
	Attribution     *string   `json:"attribution" db:"attribution"`
	Width           int       `json:"width" db:"width"`
	Height          int       `json:"height" db:"height"`
	IsPrimary       bool      `json:"is_primary" db:"is_primary"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
