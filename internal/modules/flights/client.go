// README: HTTP client for the external flight-search provider.
package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Client calls the flight-search provider over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given provider base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type searchResponse struct {
	Options []Option `json:"options"`
}

// Search queries the provider and returns options sorted ascending by price.
// The provider contract promises ascending order already; we sort anyway so
// downstream "take index 0 as best" never depends on a remote guarantee.
func (c *Client) Search(ctx context.Context, q Query) ([]Option, error) {
	params := url.Values{}
	params.Set("origin", q.Origin)
	params.Set("destination", q.Destination)
	if q.DateFrom != "" {
		params.Set("dateFrom", q.DateFrom)
	}
	if q.DateTo != "" {
		params.Set("dateTo", q.DateTo)
	}
	if q.MaxPrice > 0 {
		params.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', 0, 64))
	}
	if q.Currency != "" {
		params.Set("currency", q.Currency)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("flights: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flights: provider call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("flights: provider error: %s", resp.Status)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("flights: decode response: %w", err)
	}
	if len(body.Options) == 0 {
		return nil, ErrNoFlights
	}

	sort.Slice(body.Options, func(i, j int) bool {
		return body.Options[i].Price < body.Options[j].Price
	})
	return body.Options, nil
}
