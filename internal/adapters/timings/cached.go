package timings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

var _ domain.TimingsProvider = (*CachedProvider)(nil)

// CachedProvider keeps provider answers in Redis. Cache failures fall
// through to the provider and are only logged.
type CachedProvider struct {
	next  domain.TimingsProvider
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedProvider(next domain.TimingsProvider, cache *redis.Client, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

// Coordinates are rounded to about 100m so nearby lookups share an entry.
func (p *CachedProvider) geocodeKey(lat, lon float64) string {
	return fmt.Sprintf("geocode:%.3f,%.3f", lat, lon)
}

func (p *CachedProvider) timingsKey(address string, date time.Time) string {
	return fmt.Sprintf("timings:%s:%s", domain.DateKey(date), address)
}

func (p *CachedProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	key := p.geocodeKey(lat, lon)

	val, err := p.cache.Get(ctx, key).Result()
	if err == nil && val != "" {
		return val, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("component", "cache").Msg("redis read error")
	}

	address, err := p.next.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return "", err
	}

	if setErr := p.cache.Set(ctx, key, address, p.ttl).Err(); setErr != nil {
		log.Warn().Err(setErr).Str("component", "cache").Msg("redis set error")
	}
	return address, nil
}

func (p *CachedProvider) Timings(ctx context.Context, address string, date time.Time) (*domain.PrayerTimings, error) {
	key := p.timingsKey(address, date)

	val, err := p.cache.Get(ctx, key).Result()
	if err == nil {
		var cached domain.PrayerTimings
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return &cached, nil
		}

		log.Warn().Str("component", "cache").Str("key", key).Msg("corrupted data, cleaning up key")
		p.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("component", "cache").Msg("redis read error")
	}

	timings, err := p.next.Timings(ctx, address, date)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(timings); err == nil {
		if setErr := p.cache.Set(ctx, key, data, p.ttl).Err(); setErr != nil {
			log.Warn().Err(setErr).Str("component", "cache").Msg("redis set error")
		}
	}

	return timings, nil
}
