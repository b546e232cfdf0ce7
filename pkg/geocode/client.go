// Package geocode resolves free-text location names to coordinates using the
// Open-Meteo geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/TripCast/tripcast-backend/errors"
	"github.com/TripCast/tripcast-backend/logger"
)

const defaultBaseURL = "https://geocoding-api.open-meteo.com/v1"

// ClientInterface defines the interface for geocoding operations
type ClientInterface interface {
	Resolve(ctx context.Context, text string) (*Result, error)
}

// Result is a resolved location: the provider's canonical name plus coordinates.
type Result struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ClientInterface = (*Client)(nil)

// NewClient creates a geocoding client. An empty baseURL falls back to the
// public Open-Meteo endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Resolve looks up the given free-text location and returns the first match.
// No disambiguation is attempted. A provider response without results yields
// a LocationNotFound error; transport and provider failures are never retried
// and surface to the caller as-is.
func (c *Client) Resolve(ctx context.Context, text string) (*Result, error) {
	log := logger.GetLogger()

	params := url.Values{}
	params.Add("name", text)
	params.Add("count", "1")
	params.Add("language", "en")
	params.Add("format", "json")

	finalURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	log.Debugw("Resolving location", "query", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ServerError, "failed to create geocoding request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorw("Geocoding request failed", "query", text, "error", err)
		return nil, apperrors.Wrap(err, apperrors.ServerError, "geocoding request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnw("Geocoding API returned non-OK status", "query", text, "statusCode", resp.StatusCode)
		return nil, apperrors.New(apperrors.ServerError,
			"geocoding request failed",
			fmt.Sprintf("status: %d", resp.StatusCode))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ServerError, "failed to decode geocoding response")
	}

	if len(searchResp.Results) == 0 {
		log.Infow("No geocoding results", "query", text)
		return nil, apperrors.LocationNotFound(text)
	}

	result := searchResp.Results[0]
	log.Debugw("Resolved location",
		"query", text,
		"name", result.Name,
		"lat", result.Latitude,
		"lon", result.Longitude)
	return &result, nil
}
