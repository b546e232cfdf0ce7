// Package places looks up representative photos for coordinates using the
// Google Maps geocoding, place-details, and place-photo APIs.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/TripCast/tripcast-backend/logger"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// ClientInterface defines the interface for place photo lookups
type ClientInterface interface {
	PhotoForLatLng(ctx context.Context, lat, lng string) (string, error)
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ ClientInterface = (*Client)(nil)

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type geocodeResponse struct {
	Results []struct {
		PlaceID string `json:"place_id"`
	} `json:"results"`
}

type detailsResponse struct {
	Result struct {
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"result"`
}

// placeIDs reverse-geocodes the coordinates to all matching place IDs.
func (c *Client) placeIDs(ctx context.Context, lat, lng string) ([]string, error) {
	params := url.Values{}
	params.Add("latlng", fmt.Sprintf("%s,%s", lat, lng))
	params.Add("key", c.apiKey)

	var payload geocodeResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/geocode/json?%s", c.baseURL, params.Encode()), &payload); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(payload.Results))
	for _, r := range payload.Results {
		ids = append(ids, r.PlaceID)
	}
	return ids, nil
}

// photoURL returns the photo URL for a place, or "" when the place has no photos.
func (c *Client) photoURL(ctx context.Context, placeID string) (string, error) {
	params := url.Values{}
	params.Add("place_id", placeID)
	params.Add("fields", "photo")
	params.Add("key", c.apiKey)

	var payload detailsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/place/details/json?%s", c.baseURL, params.Encode()), &payload); err != nil {
		return "", err
	}

	if len(payload.Result.Photos) == 0 {
		return "", nil
	}

	photoParams := url.Values{}
	photoParams.Add("maxwidth", "400")
	photoParams.Add("photoreference", payload.Result.Photos[0].PhotoReference)
	photoParams.Add("key", c.apiKey)
	return fmt.Sprintf("%s/place/photo?%s", c.baseURL, photoParams.Encode()), nil
}

// PhotoForLatLng resolves the coordinates to candidate places, fetches their
// photos concurrently, and returns the first place (in provider order) that
// has one. Returns "" when no candidate has a photo.
func (c *Client) PhotoForLatLng(ctx context.Context, lat, lng string) (string, error) {
	log := logger.GetLogger()

	ids, err := c.placeIDs(ctx, lat, lng)
	if err != nil {
		return "", err
	}
	log.Debugw("Resolved place candidates", "lat", lat, "lng", lng, "count", len(ids))

	urls := make([]string, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			// Lookup failures for individual places are tolerated; the slot
			// stays empty and selection falls through to the next candidate.
			if u, err := c.photoURL(ctx, id); err == nil {
				urls[i] = u
			}
		}(i, id)
	}
	wg.Wait()

	for _, u := range urls {
		if u != "" {
			return u, nil
		}
	}
	return "", nil
}

func (c *Client) getJSON(ctx context.Context, finalURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places API returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
