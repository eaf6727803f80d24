// README: Flight search service with Redis response caching.
package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 15 * time.Minute

// Searcher is the lookup contract consumed by the assistant pipeline.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Option, error)
}

// Service wraps the provider client with a short-lived Redis cache.
// Flight prices drift slowly enough that identical searches within a few
// minutes should not hit the provider twice.
type Service struct {
	client Searcher
	redis  *redis.Client
}

// NewService creates a Service. redis may be nil to disable caching.
func NewService(client Searcher, redis *redis.Client) *Service {
	return &Service{client: client, redis: redis}
}

func (s *Service) Search(ctx context.Context, q Query) ([]Option, error) {
	key := cacheKey(q)

	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, key).Result(); err == nil {
			var cached []Option
			if err := json.Unmarshal([]byte(raw), &cached); err == nil && len(cached) > 0 {
				return cached, nil
			}
		} else if err != redis.Nil {
			log.Printf("flights: cache read failed: %v", err)
		}
	}

	options, err := s.client.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if raw, err := json.Marshal(options); err == nil {
			if err := s.redis.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
				log.Printf("flights: cache write failed: %v", err)
			}
		}
	}
	return options, nil
}

func cacheKey(q Query) string {
	return strings.ToLower(fmt.Sprintf("flights:%s|%s|%s|%s|%.0f|%s",
		q.Origin, q.Destination, q.DateFrom, q.DateTo, q.MaxPrice, q.Currency))
}
