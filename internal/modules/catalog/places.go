// README: Google Places fuzzy city resolution fallback.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// PlacesResolver resolves free-text spans to a city via Google Places when
// the database catalog misses. Optional: a nil resolver disables the fallback.
type PlacesResolver struct {
	client *maps.Client
}

// NewPlacesResolver creates a PlacesResolver with the given API key.
func NewPlacesResolver(apiKey string) (*PlacesResolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesResolver{client: client}, nil
}

// Resolve runs a text search restricted to localities and maps the top result
// to a City. The country is taken from the last segment of the formatted
// address, which is how Places renders locality results.
func (r *PlacesResolver) Resolve(ctx context.Context, query string) (City, error) {
	req := &maps.TextSearchRequest{
		Query: query,
		Type:  "locality",
	}

	resp, err := r.client.TextSearch(ctx, req)
	if err != nil {
		return City{}, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Results) == 0 {
		return City{}, ErrNotFound
	}

	top := resp.Results[0]
	return City{
		Name:    top.Name,
		Country: addressCountry(top.FormattedAddress),
	}, nil
}

func addressCountry(formatted string) string {
	parts := strings.Split(formatted, ",")
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(parts[len(parts)-1])
}
