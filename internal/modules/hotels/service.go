// README: Hotel estimate service with Redis response caching.
package hotels

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

// Estimator is the lookup contract consumed by the assistant pipeline.
type Estimator interface {
	Estimate(ctx context.Context, destination string, nights int, currency string) (Estimate, error)
}

// Service wraps the provider client with a short-lived Redis cache.
type Service struct {
	client Estimator
	redis  *redis.Client
}

// NewService creates a Service. redis may be nil to disable caching.
func NewService(client Estimator, redis *redis.Client) *Service {
	return &Service{client: client, redis: redis}
}

func (s *Service) Estimate(ctx context.Context, destination string, nights int, currency string) (Estimate, error) {
	if nights < 1 {
		nights = 1
	}
	key := strings.ToLower(fmt.Sprintf("hotels:%s|%d|%s", destination, nights, currency))

	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, key).Result(); err == nil {
			var cached Estimate
			if err := json.Unmarshal([]byte(raw), &cached); err == nil && cached.TotalEstimate > 0 {
				return cached, nil
			}
		} else if err != redis.Nil {
			log.Printf("hotels: cache read failed: %v", err)
		}
	}

	est, err := s.client.Estimate(ctx, destination, nights, currency)
	if err != nil {
		return Estimate{}, err
	}

	if s.redis != nil {
		if raw, err := json.Marshal(est); err == nil {
			if err := s.redis.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
				log.Printf("hotels: cache write failed: %v", err)
			}
		}
	}
	return est, nil
}
