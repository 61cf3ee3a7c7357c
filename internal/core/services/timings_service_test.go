package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

type MockTimingsProvider struct {
	mock.Mock
}

func (m *MockTimingsProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	args := m.Called(ctx, lat, lon)
	return args.String(0), args.Error(1)
}

func (m *MockTimingsProvider) Timings(ctx context.Context, address string, date time.Time) (*domain.PrayerTimings, error) {
	args := m.Called(ctx, address, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrayerTimings), args.Error(1)
}

func TestTimingsService_Lookup(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("Success: Resolves the address then fetches timings", func(t *testing.T) {
		provider := new(MockTimingsProvider)
		want := &domain.PrayerTimings{Date: "14-03-2024", Address: "Milano, Italia", Timings: map[string]string{"Fajr": "05:01"}}
		provider.On("ReverseGeocode", mock.Anything, 45.46, 9.19).Return("Milano, Italia", nil)
		provider.On("Timings", mock.Anything, "Milano, Italia", date).Return(want, nil)
		svc := NewTimingsService(provider, time.Second)

		got, err := svc.Lookup(ctx, 45.46, 9.19, date)

		require.NoError(t, err)
		assert.Equal(t, want, got)
		provider.AssertExpectations(t)
	})

	t.Run("Fail: NaN coordinates never reach the provider", func(t *testing.T) {
		provider := new(MockTimingsProvider)
		svc := NewTimingsService(provider, time.Second)

		for _, c := range [][2]float64{{math.NaN(), 9.19}, {45.46, math.NaN()}} {
			got, err := svc.Lookup(ctx, c[0], c[1], date)

			assert.ErrorIs(t, err, domain.ErrInvalidRange)
			assert.Nil(t, got)
		}
		provider.AssertNotCalled(t, "ReverseGeocode")
	})

	t.Run("Fail: Geocoding failure returns nil", func(t *testing.T) {
		provider := new(MockTimingsProvider)
		provider.On("ReverseGeocode", mock.Anything, 1.0, 2.0).Return("", errors.New("503"))
		svc := NewTimingsService(provider, 0)

		got, err := svc.Lookup(ctx, 1, 2, date)

		assert.ErrorIs(t, err, domain.ErrNetwork)
		assert.Nil(t, got)
		provider.AssertNotCalled(t, "Timings")
	})

	t.Run("Fail: Timings failure returns nil", func(t *testing.T) {
		provider := new(MockTimingsProvider)
		provider.On("ReverseGeocode", mock.Anything, 1.0, 2.0).Return("Somewhere", nil)
		provider.On("Timings", mock.Anything, "Somewhere", date).Return(nil, context.DeadlineExceeded)
		svc := NewTimingsService(provider, time.Second)

		got, err := svc.Lookup(ctx, 1, 2, date)

		assert.ErrorIs(t, err, domain.ErrNetwork)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Nil(t, got)
	})

	t.Run("Fail: Coordinates out of range", func(t *testing.T) {
		provider := new(MockTimingsProvider)
		svc := NewTimingsService(provider, time.Second)

		_, err := svc.Lookup(ctx, 91, 0, date)

		assert.ErrorIs(t, err, domain.ErrInvalidRange)
		provider.AssertNotCalled(t, "ReverseGeocode")
	})
}
