package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/salat-sync-engine/internal/core/services"
)

type stubProvider struct {
	err      error
	lastDate time.Time
}

func (p *stubProvider) ReverseGeocode(context.Context, float64, float64) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "Milano, Italia", nil
}

func (p *stubProvider) Timings(_ context.Context, address string, date time.Time) (*domain.PrayerTimings, error) {
	p.lastDate = date
	return &domain.PrayerTimings{
		Date:    date.Format("02-01-2006"),
		Address: address,
		Timings: map[string]string{"Fajr": "05:01", "Isha": "19:45"},
	}, nil
}

func setupTimingsRouter(provider domain.TimingsProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewTimingsHandler(services.NewTimingsService(provider, time.Second), time.UTC)
	router := gin.New()
	handler.RegisterRoutes(router.Group(""))
	return router
}

func TestTimingsHandler_GetTimings(t *testing.T) {
	t.Run("Success: Timings for a given date", func(t *testing.T) {
		provider := &stubProvider{}
		router := setupTimingsRouter(provider)

		w := doJSON(router, http.MethodGet, "/timings?lat=45.46&lon=9.19&date=2024-03-14", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var got domain.PrayerTimings
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "14-03-2024", got.Date)
		assert.Equal(t, "Milano, Italia", got.Address)
		assert.Equal(t, "05:01", got.Timings["Fajr"])
	})

	t.Run("Success: Date defaults to today", func(t *testing.T) {
		provider := &stubProvider{}
		router := setupTimingsRouter(provider)

		w := doJSON(router, http.MethodGet, "/timings?lat=45.46&lon=9.19", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.DateKey(time.Now().UTC()), domain.DateKey(provider.lastDate))
	})

	t.Run("Fail: Missing coordinates", func(t *testing.T) {
		router := setupTimingsRouter(&stubProvider{})

		w := doJSON(router, http.MethodGet, "/timings?lat=45.46", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: Provider down returns 502", func(t *testing.T) {
		router := setupTimingsRouter(&stubProvider{err: errors.New("connection reset")})

		w := doJSON(router, http.MethodGet, "/timings?lat=45.46&lon=9.19", nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
