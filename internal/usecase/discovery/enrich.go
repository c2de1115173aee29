package discovery

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/infrastructure/places"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/observability"
	"go.uber.org/zap"
)

const (
	// Candidates are enriched in fixed-size batches; a batch fully settles
	// before the next one starts, bounding upstream concurrency.
	batchSize = 5

	// One cover plus up to three gallery images.
	maxPhotos = 4

	// Each photo fetch gets this many retries after the first attempt, with
	// a short fixed pause between attempts and a hard per-fetch budget.
	photoRetries    = 2
	photoRetryDelay = 100 * time.Millisecond
	photoTimeout    = 10 * time.Second

	photoMaxWidth  = 800
	photoMaxHeight = 600

	// A place is considered newly opened while it has almost no ratings.
	newPlaceRatingCount = 10
)

// enrichAll runs the per-place enrichment stage over all candidates in
// sequential batches. Failures are isolated per candidate; a failed member
// never aborts its batch siblings.
func (uc *UseCase) enrichAll(ctx context.Context, summaries []places.Summary, now time.Time) []*domain.Place {
	var results []*domain.Place

	for start := 0; start < len(summaries); start += batchSize {
		end := start + batchSize
		if end > len(summaries) {
			end = len(summaries)
		}
		batch := summaries[start:end]

		settled := make([]*domain.Place, len(batch))
		var wg sync.WaitGroup
		for i := range batch {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				place, err := uc.enrichOne(ctx, batch[i], now)
				if err != nil {
					uc.log.Warn("enrichment failed for place",
						zap.String("place_id", batch[i].PlaceID), zap.Error(err))
					return
				}
				settled[i] = place
			}(i)
		}
		wg.Wait()

		for _, place := range settled {
			if place != nil {
				results = append(results, place)
			}
		}
	}

	return results
}

// enrichOne upgrades one nearby-search summary to a full place record,
// skipping upstream calls the cache already covers.
func (uc *UseCase) enrichOne(ctx context.Context, s places.Summary, now time.Time) (*domain.Place, error) {
	cached := uc.cachedRecord(ctx, s.PlaceID)

	place := placeFromSummary(s)
	if cached != nil {
		place.ID = cached.ID
		mergeCached(place, cached)
	}

	fresh := cached != nil && cached.IsFresh(now)
	refs := s.Photos

	// Decision table, evaluated before any network call.
	needDetails := !(fresh && cached.HasCompleteDetails())
	needPhotos := !(fresh && galleryIsSufficient(cached.Photos, refs))

	if needDetails {
		details, err := uc.provider.Details(ctx, s.PlaceID)
		if err != nil {
			uc.log.Warn("place details fetch failed",
				zap.String("place_id", s.PlaceID), zap.Error(err))
		} else {
			mergeDetails(place, details)
			if len(details.Photos) > len(refs) {
				refs = details.Photos
			}
		}
	}

	if needPhotos {
		fetched := uc.fetchPhotos(ctx, refs)
		switch {
		case len(fetched) > 0:
			place.Photos = fetched
		case cached != nil && len(cached.Photos) > 0:
			place.Photos = cached.Photos
		}
	} else {
		place.Photos = cached.Photos
	}

	if len(place.Photos) == 0 {
		place.Photos = []*domain.PlacePhoto{fallbackPhoto(place)}
	}

	uc.writeThrough(ctx, place)
	return place, nil
}

func (uc *UseCase) cachedRecord(ctx context.Context, providerPlaceID string) *domain.Place {
	cached, err := uc.placeRepo.GetByProviderID(ctx, providerName, providerPlaceID)
	if err != nil {
		if !errors.Is(err, domain.ErrPlaceNotFound) {
			uc.log.Warn("place cache lookup failed",
				zap.String("place_id", providerPlaceID), zap.Error(err))
		}
		return nil
	}
	if photos, err := uc.photoRepo.GetByPlaceID(ctx, cached.ID); err == nil {
		cached.Photos = photos
	}
	return cached
}

// galleryIsSufficient reports whether the cached gallery already holds as
// many photos as this enrichment cycle could fetch.
func galleryIsSufficient(cachedPhotos []*domain.PlacePhoto, refs []places.PhotoRef) bool {
	want := len(refs)
	if want > maxPhotos {
		want = maxPhotos
	}
	return len(cachedPhotos) > 0 && len(cachedPhotos) >= want
}

// fetchPhotos downloads up to maxPhotos images. Photos that fail all retries
// are dropped; the first successful fetch becomes the cover.
func (uc *UseCase) fetchPhotos(ctx context.Context, refs []places.PhotoRef) []*domain.PlacePhoto {
	var photos []*domain.PlacePhoto
	for _, ref := range refs {
		if len(photos) >= maxPhotos {
			break
		}
		data := uc.fetchPhotoWithRetry(ctx, ref)
		if data == nil {
			continue
		}
		photos = append(photos, &domain.PlacePhoto{
			ProviderPhotoID: ref.Reference,
			Data:            encodePhoto(data),
			Attribution:     firstAttribution(ref.Attributions),
			Width:           ref.Width,
			Height:          ref.Height,
		})
	}
	if len(photos) > 0 {
		photos[0].IsPrimary = true
	}
	return photos
}

func (uc *UseCase) fetchPhotoWithRetry(ctx context.Context, ref places.PhotoRef) *places.PhotoData {
	var lastErr error
	for attempt := 0; attempt <= photoRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(photoRetryDelay):
			case <-ctx.Done():
				return nil
			}
		}

		fetchCtx, cancel := context.WithTimeout(ctx, photoTimeout)
		data, err := uc.provider.Photo(fetchCtx, ref.Reference, photoMaxWidth, photoMaxHeight)
		cancel()
		if err == nil {
			return data
		}

		lastErr = err
		if errors.Is(err, context.DeadlineExceeded) {
			observability.PhotoTimeouts.Inc()
			uc.log.Warn("photo fetch timed out", zap.Int("attempt", attempt+1))
		}
	}

	observability.PhotoFailures.Inc()
	uc.log.Warn("photo dropped after retries", zap.Error(lastErr))
	return nil
}

// writeThrough upserts the place and its photos. Persistence failures are
// logged and swallowed: the in-memory record is still served.
func (uc *UseCase) writeThrough(ctx context.Context, place *domain.Place) {
	if err := uc.placeRepo.Upsert(ctx, place); err != nil {
		observability.CacheWriteFailures.Inc()
		uc.log.Error("place upsert failed",
			zap.String("place_id", place.ProviderPlaceID), zap.Error(err))
		return
	}
	for _, photo := range place.Photos {
		photo.PlaceID = place.ID
		if err := uc.photoRepo.Upsert(ctx, photo); err != nil {
			observability.CacheWriteFailures.Inc()
			uc.log.Error("photo upsert failed",
				zap.String("place_id", place.ProviderPlaceID), zap.Error(err))
		}
	}
}

func placeFromSummary(s places.Summary) *domain.Place {
	place := &domain.Place{
		Provider:        providerName,
		ProviderPlaceID: s.PlaceID,
		Name:            s.Name,
		Latitude:        s.Latitude,
		Longitude:       s.Longitude,
		Types:           s.Types,
		Rating:          s.Rating,
		RatingCount:     s.UserRatingsTotal,
		PriceLevel:      s.PriceLevel,
		IsOpenNow:       s.OpenNow,
	}
	if s.Vicinity != "" {
		place.Address = &s.Vicinity
	}
	if s.BusinessStatus != "" {
		place.BusinessStatus = &s.BusinessStatus
	}
	if cuisine := cuisineOf(s.Name, s.Types); cuisine != "" {
		place.Cuisine = &cuisine
	}
	place.IsNew = s.UserRatingsTotal != nil && *s.UserRatingsTotal < newPlaceRatingCount
	return place
}

// mergeCached carries previously enriched fields onto the working record so
// a skipped details call loses nothing.
func mergeCached(place, cached *domain.Place) {
	if place.Phone == nil {
		place.Phone = cached.Phone
	}
	if place.Website == nil {
		place.Website = cached.Website
	}
	if len(place.OpeningHours) == 0 {
		place.OpeningHours = cached.OpeningHours
	}
	if len(place.Reviews) == 0 {
		place.Reviews = cached.Reviews
	}
	if place.Description == nil {
		place.Description = cached.Description
	}
}

func mergeDetails(place *domain.Place, d *places.Details) {
	if d.Phone != "" {
		place.Phone = &d.Phone
	}
	if d.Website != "" {
		place.Website = &d.Website
	}
	if len(d.OpeningHours) > 0 {
		place.OpeningHours = d.OpeningHours
	}
	if d.EditorialSummary != "" {
		place.Description = &d.EditorialSummary
	}
	if d.BusinessStatus != "" {
		place.BusinessStatus = &d.BusinessStatus
	}
	if len(d.Reviews) > 0 {
		reviews := make([]string, 0, 5)
		for i, rev := range d.Reviews {
			if i >= 5 {
				break
			}
			reviews = append(reviews, fmt.Sprintf("%s (%.1f): %s", rev.Author, rev.Rating, rev.Text))
		}
		place.Reviews = reviews
	}
}

func encodePhoto(data *places.PhotoData) string {
	contentType := data.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data.Bytes)
}

func firstAttribution(attrs []string) *string {
	if len(attrs) == 0 {
		return nil
	}
	a := strings.TrimSpace(attrs[0])
	if a == "" {
		return nil
	}
	return &a
}
