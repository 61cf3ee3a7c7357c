package domain

import (
	"context"
	"time"
)

type PrayerTimings struct {
	Date      string            `json:"date"`
	Address   string            `json:"address"`
	Timings   map[string]string `json:"timings"`
	Timezone  string            `json:"timezone,omitempty"`
	HijriDate string            `json:"hijri_date,omitempty"`
}

// TimingsProvider is the remote prayer-time collaborator.
type TimingsProvider interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
	Timings(ctx context.Context, address string, date time.Time) (*PrayerTimings, error)
}
