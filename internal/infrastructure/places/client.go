package places

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/observability"
	"github.com/goccy/go-json"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// A continuation token is not valid immediately after the provider hands
	// it out. The wait is a documented provider constraint, not a tunable.
	pageTokenDelay = 2 * time.Second

	// First page plus at most two continuation pages.
	maxPages = 3

	// Cap on the de-duplicated union across pages.
	maxNearbyResults = 60
)

// Client talks to the upstream place-data provider. All calls are stateless
// request/response; pagination state lives entirely in the continuation
// token.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	pageDelay  time.Duration
}

func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		pageDelay:  pageTokenDelay,
	}
}

// Available reports whether an upstream credential is configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// NearbySearch runs a paginated nearby search and returns the de-duplicated
// union across pages, capped at 60 entries.
func (c *Client) NearbySearch(ctx context.Context, lat, lng float64, radius int) ([]Summary, error) {
	seen := make(map[string]bool)
	var results []Summary

	pageToken := ""
	for page := 0; page < maxPages; page++ {
		if pageToken != "" {
			select {
			case <-time.After(c.pageDelay):
			case <-ctx.Done():
				return results, ctx.Err()
			}
		}

		resp, err := c.nearbyPage(ctx, lat, lng, radius, pageToken)
		if err != nil {
			// Keep whatever earlier pages produced.
			if len(results) > 0 {
				return results, nil
			}
			return nil, err
		}

		for _, r := range resp.Results {
			if seen[r.PlaceID] || len(results) >= maxNearbyResults {
				continue
			}
			seen[r.PlaceID] = true
			results = append(results, r.toSummary())
		}

		pageToken = resp.NextPageToken
		if pageToken == "" || len(results) >= maxNearbyResults {
			break
		}
	}

	return results, nil
}

func (c *Client) nearbyPage(ctx context.Context, lat, lng float64, radius int, pageToken string) (*nearbyResponse, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	if pageToken != "" {
		params.Set("pagetoken", pageToken)
	} else {
		params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
		params.Set("radius", fmt.Sprintf("%d", radius))
		params.Set("type", "restaurant")
	}

	var resp nearbyResponse
	if err := c.getJSON(ctx, "nearbysearch", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("nearby search failed: %s (%s)", resp.Status, resp.ErrorMessage)
	}
	return &resp, nil
}

// Details fetches the extended fields for a single place.
func (c *Client) Details(ctx context.Context, placeID string) (*Details, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("place_id", placeID)
	params.Set("fields", "formatted_phone_number,website,opening_hours,reviews,editorial_summary,business_status,photos")

	var resp detailsResponse
	if err := c.getJSON(ctx, "details", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("place details failed: %s (%s)", resp.Status, resp.ErrorMessage)
	}

	d := &Details{
		Phone:          resp.Result.FormattedPhoneNumber,
		Website:        resp.Result.Website,
		BusinessStatus: resp.Result.BusinessStatus,
	}
	if resp.Result.OpeningHours != nil {
		d.OpeningHours = resp.Result.OpeningHours.WeekdayText
	}
	if resp.Result.EditorialSummary != nil {
		d.EditorialSummary = resp.Result.EditorialSummary.Overview
	}
	for _, rev := range resp.Result.Reviews {
		d.Reviews = append(d.Reviews, Review{
			Author: rev.AuthorName,
			Rating: rev.Rating,
			Text:   rev.Text,
		})
	}
	for _, ph := range resp.Result.Photos {
		d.Photos = append(d.Photos, PhotoRef{
			Reference:    ph.PhotoReference,
			Width:        ph.Width,
			Height:       ph.Height,
			Attributions: ph.HTMLAttributions,
		})
	}
	return d, nil
}

// Photo fetches raw image bytes for a photo reference.
func (c *Client) Photo(ctx context.Context, ref string, maxWidth, maxHeight int) (*PhotoData, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("photoreference", ref)
	params.Set("maxwidth", fmt.Sprintf("%d", maxWidth))
	params.Set("maxheight", fmt.Sprintf("%d", maxHeight))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/photo?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.UpstreamRequests.WithLabelValues("photo", "error").Inc()
		return nil, fmt.Errorf("photo fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.UpstreamRequests.WithLabelValues("photo", fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil, fmt.Errorf("photo fetch returned status %d", resp.StatusCode)
	}
	observability.UpstreamRequests.WithLabelValues("photo", "200").Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read photo body: %w", err)
	}

	return &PhotoData{
		Bytes:       body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s/%s/json?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	observability.UpstreamRequests.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}
