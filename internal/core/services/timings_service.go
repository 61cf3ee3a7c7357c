package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

type TimingsService struct {
	provider domain.TimingsProvider
	timeout  time.Duration
}

func NewTimingsService(provider domain.TimingsProvider, timeout time.Duration) *TimingsService {
	return &TimingsService{
		provider: provider,
		timeout:  timeout,
	}
}

// Lookup resolves the coordinates to an address and fetches that day's
// timings. Any provider failure yields a nil result and an ErrNetwork.
func (s *TimingsService) Lookup(ctx context.Context, lat, lon float64, date time.Time) (*domain.PrayerTimings, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidRange)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	address, err := s.provider.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		log.Error().Err(err).Str("component", "timings").Float64("lat", lat).Float64("lon", lon).Msg("error fetching address")
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}

	timings, err := s.provider.Timings(ctx, address, date)
	if err != nil {
		log.Error().Err(err).Str("component", "timings").Str("address", address).Msg("error fetching prayer timings")
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}

	return timings, nil
}
