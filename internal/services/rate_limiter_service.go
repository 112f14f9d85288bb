package services

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/poofware/equity-registry/internal/utils"
)

// RateLimiterService provides a high-level interface for checking
// per-identity mutation rate limits.
type RateLimiterService interface {
	Check(identity, operation string) error
}

type rateLimiterService struct {
	counters *cache.Cache
	limit    int64
}

// NewRateLimiterService allows `limit` calls per identity and operation
// within each window.
func NewRateLimiterService(limit int, window time.Duration) RateLimiterService {
	return &rateLimiterService{
		counters: cache.New(window, 2*window),
		limit:    int64(limit),
	}
}

func (s *rateLimiterService) Check(identity, operation string) error {
	key := fmt.Sprintf("%s:%s", operation, identity)

	n, err := s.counters.IncrementInt64(key, 1)
	if err != nil {
		// first call inside the window
		if addErr := s.counters.Add(key, int64(1), cache.DefaultExpiration); addErr != nil {
			// lost the insert race; the competing increment counts for us
			return nil
		}
		return nil
	}
	if n > s.limit {
		utils.Logger.Warnf("Rate limit exceeded (key: %s)", key)
		return utils.ErrRateLimitExceeded
	}
	return nil
}
