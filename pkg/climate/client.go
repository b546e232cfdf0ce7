// Package climate fetches daily historical-climate series from the Open-Meteo
// climate API and reduces them to per-trip summary statistics.
package climate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/TripCast/tripcast-backend/errors"
	"github.com/TripCast/tripcast-backend/logger"
)

const (
	defaultBaseURL = "https://climate-api.open-meteo.com/v1"
	defaultModel   = "EC_Earth3P_HR"

	dateLayout = "2006-01-02"
)

// ClientInterface defines the interface for climate summary operations
type ClientInterface interface {
	Summarize(ctx context.Context, lat, lon float64, startDate, endDate time.Time) (*ConditionSummary, error)
}

// ConditionSummary is the reduction of a daily climate series to arithmetic
// means. AvgTempF is derived from AvgTempC exactly once, here; both units are
// stored downstream and never recomputed.
type ConditionSummary struct {
	AvgHumidity float64 `json:"avgHumidity"`
	AvgTempC    float64 `json:"avgTempC"`
	AvgTempF    float64 `json:"avgTempF"`
}

type dailySeries struct {
	Time                   []string  `json:"time"`
	Temperature2mMean      []float64 `json:"temperature_2m_mean"`
	RelativeHumidity2mMean []float64 `json:"relative_humidity_2m_mean"`
}

type climateResponse struct {
	UTCOffsetSeconds int         `json:"utc_offset_seconds"`
	Daily            dailySeries `json:"daily"`
}

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ ClientInterface = (*Client)(nil)

// NewClient creates a climate client for the given API base URL and climate
// model. Empty arguments fall back to the public Open-Meteo endpoint and the
// EC_Earth3P_HR model.
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Summarize fetches the daily mean 2m-temperature and 2m-relative-humidity
// series for [startDate, endDate] inclusive and reduces each variable to its
// arithmetic mean. Input timestamps are normalized to calendar dates; their
// time-of-day and timezone are discarded. A zero-day series is rejected with
// a ClimateFetch error rather than producing a division by zero. Failures are
// never retried and no partial result is returned.
func (c *Client) Summarize(ctx context.Context, lat, lon float64, startDate, endDate time.Time) (*ConditionSummary, error) {
	log := logger.GetLogger()

	params := url.Values{}
	params.Add("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Add("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Add("start_date", startDate.Format(dateLayout))
	params.Add("end_date", endDate.Format(dateLayout))
	params.Add("models", c.model)
	params.Add("daily", "temperature_2m_mean,relative_humidity_2m_mean")

	finalURL := fmt.Sprintf("%s/climate?%s", c.baseURL, params.Encode())
	log.Debugw("Fetching climate series",
		"lat", lat,
		"lon", lon,
		"startDate", startDate.Format(dateLayout),
		"endDate", endDate.Format(dateLayout),
		"model", c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return nil, apperrors.ClimateFetch("failed to create request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorw("Climate request failed", "error", err)
		return nil, apperrors.ClimateFetch("climate request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnw("Climate API returned non-OK status", "statusCode", resp.StatusCode)
		return nil, apperrors.ClimateFetch(fmt.Sprintf("status: %d", resp.StatusCode), nil)
	}

	var payload climateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.ClimateFetch("failed to decode climate response", err)
	}

	if len(payload.Daily.Temperature2mMean) == 0 || len(payload.Daily.RelativeHumidity2mMean) == 0 {
		log.Warnw("Climate API returned empty daily series",
			"days", len(payload.Daily.Time))
		return nil, apperrors.ClimateFetch("provider returned an empty daily series", nil)
	}

	avgTempC := mean(payload.Daily.Temperature2mMean)
	avgHumidity := mean(payload.Daily.RelativeHumidity2mMean)

	summary := &ConditionSummary{
		AvgHumidity: avgHumidity,
		AvgTempC:    avgTempC,
		AvgTempF:    avgTempC*9/5 + 32,
	}

	log.Debugw("Climate series summarized",
		"days", len(payload.Daily.Temperature2mMean),
		"avgTempC", summary.AvgTempC,
		"avgHumidity", summary.AvgHumidity)
	return summary, nil
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
