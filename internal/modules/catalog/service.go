// README: Catalog service; multi-source city resolution and activity lookup.
package catalog

import (
	"context"
	"errors"
	"log"
	"strings"
)

// Service resolves cities and lists activities. Resolution precedence:
// database exact match, database prefix match, then the optional Places
// fallback. Every miss and provider failure is non-fatal.
type Service struct {
	store  *Store
	places *PlacesResolver
}

// NewService creates a Service. places may be nil to disable the fuzzy fallback.
func NewService(store *Store, places *PlacesResolver) *Service {
	return &Service{store: store, places: places}
}

// ResolveCity resolves a short free-text span to a catalog city.
// The boolean result makes misses explicit; resolution never errors.
func (s *Service) ResolveCity(ctx context.Context, query string) (City, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return City{}, false
	}

	city, err := s.store.GetCity(ctx, query)
	if err == nil {
		return city, true
	}
	if !errors.Is(err, ErrNotFound) {
		log.Printf("catalog: city lookup failed: %v", err)
		return City{}, false
	}

	if s.places == nil {
		return City{}, false
	}
	city, err = s.places.Resolve(ctx, query)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("catalog: places fallback failed: %v", err)
		}
		return City{}, false
	}
	return city, true
}

// FindCityInText scans a longer text (e.g. the whole conversation) for any
// known city name. Only the database is consulted; free text is too noisy
// for the Places fallback.
func (s *Service) FindCityInText(ctx context.Context, text string) (City, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return City{}, false
	}
	city, err := s.store.FindCityInText(ctx, text)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("catalog: text scan failed: %v", err)
		}
		return City{}, false
	}
	return city, true
}

// ListActivities returns up to limit activities for the city.
func (s *Service) ListActivities(ctx context.Context, cityName string, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.ListActivities(ctx, cityName, limit)
}
