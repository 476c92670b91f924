package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateLimitService enforces a fixed-window submission budget per identifier
type RateLimitService struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	logger *logrus.Logger
}

// NewRateLimitService creates a limiter allowing limit requests per window
func NewRateLimitService(client redis.Cmdable, limit int, window time.Duration, logger *logrus.Logger) *RateLimitService {
	return &RateLimitService{
		client: client,
		limit:  int64(limit),
		window: window,
		logger: logger,
	}
}

// RateLimitError represents a rate limit exceeded error
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func rateLimitKey(identifier string) string {
	return "ratelimit:submit:" + identifier
}

// Allow records one request for identifier and returns *RateLimitError once
// the budget is spent. Redis failures let the request through.
func (s *RateLimitService) Allow(ctx context.Context, identifier string) error {
	key := rateLimitKey(identifier)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		s.logger.WithError(err).WithField("identifier", identifier).Warn("Rate limit check failed, allowing request")
		return nil
	}

	if count == 1 {
		if err := s.client.Expire(ctx, key, s.window).Err(); err != nil {
			s.logger.WithError(err).WithField("identifier", identifier).Warn("Failed to set rate limit window")
		}
	}

	if count <= s.limit {
		return nil
	}

	retryAfter, err := s.client.TTL(ctx, key).Result()
	if err != nil || retryAfter <= 0 {
		retryAfter = s.window
	}

	minutes := int(math.Ceil(retryAfter.Minutes()))
	return &RateLimitError{
		Message:    fmt.Sprintf("Too many requests. Please try again in %d minute(s).", minutes),
		RetryAfter: retryAfter,
	}
}

// Remaining reports how many requests identifier has left in the window
func (s *RateLimitService) Remaining(ctx context.Context, identifier string) (int64, error) {
	count, err := s.client.Get(ctx, rateLimitKey(identifier)).Int64()
	if err == redis.Nil {
		return s.limit, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read rate limit: %w", err)
	}
	if count >= s.limit {
		return 0, nil
	}
	return s.limit - count, nil
}
