// README: HTTP client for the external hotel cost-estimate provider.
package hotels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client calls the hotel-estimate provider over HTTP.
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

// Estimate fetches a cost estimate for nights in destination.
func (c *Client) Estimate(ctx context.Context, destination string, nights int, currency string) (Estimate, error) {
	params := url.Values{}
	params.Set("city", destination)
	params.Set("nights", strconv.Itoa(nights))
	params.Set("currency", currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/estimate?"+params.Encode(), nil)
	if err != nil {
		return Estimate{}, fmt.Errorf("hotels: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Estimate{}, fmt.Errorf("hotels: provider call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Estimate{}, fmt.Errorf("hotels: provider error: %s", resp.Status)
	}

	var est Estimate
	if err := json.NewDecoder(resp.Body).Decode(&est); err != nil {
		return Estimate{}, fmt.Errorf("hotels: decode response: %w", err)
	}
	return est, nil
}
