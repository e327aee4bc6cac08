// Package market fetches daily closing prices from the Yahoo Finance
// chart API.
package market

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

const defaultBaseURL = "https://query1.finance.yahoo.com"

// maxBodySize caps the chart payload read. Two daily candles fit in a
// few kilobytes; anything near the cap is not a chart response.
const maxBodySize = 1 << 20

// Client implements stocks.HistorySource against the v8 chart endpoint.
type Client struct {
	client *http.Client

	// BaseURL overrides the Yahoo host, used by tests.
	BaseURL string
}

// NewClient creates a chart API client. A nil http.Client gets the
// shared default.
func NewClient(client *http.Client) *Client {
	if client == nil {
		client = httpclient.New(httpclient.DefaultTimeout)
	}
	return &Client{client: client, BaseURL: defaultBaseURL}
}

// chartResponse mirrors the subset of the v8 chart payload we read.
// Close values arrive as JSON nulls for halted sessions, hence the
// pointer slice.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyCloses returns the last two daily closes for symbol, oldest
// first. Null candles are skipped; a symbol with no usable close at
// all is an error.
func (c *Client) DailyCloses(ctx context.Context, symbol string) ([]float64, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=2d&interval=1d",
		c.BaseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, upstream.Fetch(err, "build chart request for %s", symbol)
	}
	req.Header.Set("User-Agent", httpclient.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, upstream.Fetch(err, "fetch chart for %s", symbol)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, upstream.Fetch(
			fmt.Errorf("unexpected status %d", resp.StatusCode),
			"fetch chart for %s", symbol)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, upstream.Fetch(err, "read chart body for %s", symbol)
	}

	var payload chartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, upstream.Parse(err, "decode chart for %s", symbol)
	}
	if payload.Chart.Error != nil {
		return nil, upstream.Fetch(
			fmt.Errorf("%s: %s", payload.Chart.Error.Code, payload.Chart.Error.Description),
			"chart error for %s", symbol)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, upstream.Parse(fmt.Errorf("empty result"), "decode chart for %s", symbol)
	}

	closes := make([]float64, 0, 2)
	for _, v := range payload.Chart.Result[0].Indicators.Quote[0].Close {
		if v != nil {
			closes = append(closes, *v)
		}
	}
	if len(closes) == 0 {
		return nil, upstream.Parse(fmt.Errorf("no closing prices"), "decode chart for %s", symbol)
	}
	if len(closes) > 2 {
		closes = closes[len(closes)-2:]
	}
	return closes, nil
}
