// Package weatherapi is a thin client for the Open-Meteo forecast
// endpoint. It exists to sidestep browser CORS restrictions, so the
// payload is relayed verbatim rather than decoded into domain types.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"startpage/internal/infra/httpclient"
	"startpage/internal/upstream"
)

const defaultBaseURL = "https://api.open-meteo.com"

// maxBodySize caps the forecast payload read. A one-day hourly
// forecast is tens of kilobytes at most.
const maxBodySize = 1 << 20

// Client fetches forecasts from Open-Meteo, configured for US units
// and a single forecast day.
type Client struct {
	client *http.Client

	// BaseURL overrides the Open-Meteo host, used by tests.
	BaseURL string
}

// NewClient creates an Open-Meteo client. A nil http.Client gets the
// shared default.
func NewClient(client *http.Client) *Client {
	if client == nil {
		client = httpclient.New(httpclient.DefaultTimeout)
	}
	return &Client{client: client, BaseURL: defaultBaseURL}
}

// Forecast fetches the current weather plus one day of hourly and
// daily aggregates for lat/lon. The body is validated as JSON and
// returned unmodified.
func (c *Client) Forecast(ctx context.Context, lat, lon string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("latitude", lat)
	q.Set("longitude", lon)
	q.Set("current_weather", "true")
	q.Set("temperature_unit", "fahrenheit")
	q.Set("windspeed_unit", "mph")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,sunrise,sunset")
	q.Set("hourly", "temperature_2m,precipitation_probability,weathercode,windspeed_10m")
	q.Set("forecast_days", "1")
	q.Set("timezone", "auto")
	endpoint := c.BaseURL + "/v1/forecast?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, upstream.Fetch(err, "build forecast request")
	}
	req.Header.Set("User-Agent", httpclient.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, upstream.Fetch(err, "fetch forecast")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, upstream.Fetch(
			fmt.Errorf("unexpected status %d", resp.StatusCode), "fetch forecast")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, upstream.Fetch(err, "read forecast body")
	}
	if !json.Valid(body) {
		return nil, upstream.Parse(fmt.Errorf("payload is not JSON"), "decode forecast")
	}
	return json.RawMessage(body), nil
}
