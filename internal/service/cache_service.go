package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
	Incr(ctx context.Context, key string) (int64, error)
}

// CacheService is a best-effort read-through cache. Failures are logged and
// reported as misses so callers fall back to the database.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get fills dest and returns true on a hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return true
}

// Set stores the value, using the default TTL when ttl <= 0.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes cached values for the pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

// Generation returns the counter stored at key, zero when it was never
// bumped. ok is false when the counter cannot be read, in which case callers
// must not cache anything derived from it.
func (s *CacheService) Generation(ctx context.Context, key string) (gen int64, ok bool) {
	if !s.Enabled() {
		return 0, false
	}
	err := s.repo.Get(ctx, key, &gen)
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, appErrors.ErrCacheMiss):
		return 0, true
	default:
		s.logger.Warn("cache generation read failed", zap.String("key", key), zap.Error(err))
		return 0, false
	}
}

// Bump advances the counter at key so entries keyed by the old generation
// are never read again.
func (s *CacheService) Bump(ctx context.Context, key string) {
	if !s.Enabled() {
		return
	}
	if _, err := s.repo.Incr(ctx, key); err != nil {
		s.logger.Warn("cache generation bump failed", zap.String("key", key), zap.Error(err))
	}
}

func scheduleCacheKey(barberID string, generation int64, dayOfWeek int) string {
	return fmt.Sprintf("schedule:%s:%d:%d", barberID, generation, dayOfWeek)
}

func scheduleGenerationKey(barberID string) string {
	return "schedule-gen:" + barberID
}

func scheduleCachePattern(barberID string) string {
	return fmt.Sprintf("schedule:%s:*", barberID)
}

func barberSlugCacheKey(slug string) string {
	return "barber:slug:" + slug
}

func servicesCacheKey(barberID string) string {
	return "services:" + barberID
}
