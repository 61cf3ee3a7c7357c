package timings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

var _ domain.TimingsProvider = (*Client)(nil)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	DefaultAladhanURL   = "https://api.aladhan.com"

	userAgent       = "salat-sync-engine/1.0"
	aladhanDateForm = "02-01-2006"
	maxBodyBytes    = 1 << 20
)

// Client talks to Nominatim for reverse geocoding and to Aladhan for
// prayer timings. Requests are never retried.
type Client struct {
	httpClient   *http.Client
	nominatimURL string
	aladhanURL   string
}

func NewClient(httpClient *http.Client, nominatimURL, aladhanURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if nominatimURL == "" {
		nominatimURL = DefaultNominatimURL
	}
	if aladhanURL == "" {
		aladhanURL = DefaultAladhanURL
	}
	return &Client{
		httpClient:   httpClient,
		nominatimURL: nominatimURL,
		aladhanURL:   aladhanURL,
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
}

func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var resp nominatimResponse
	if err := c.getJSON(ctx, c.nominatimURL+"/reverse?"+q.Encode(), &resp); err != nil {
		return "", fmt.Errorf("nominatim reverse: %w", err)
	}
	if resp.DisplayName == "" {
		return "", fmt.Errorf("nominatim reverse: no address for %v,%v", lat, lon)
	}
	return resp.DisplayName, nil
}

type aladhanResponse struct {
	Code int `json:"code"`
	Data struct {
		Timings map[string]string `json:"timings"`
		Date    struct {
			Hijri struct {
				Date string `json:"date"`
			} `json:"hijri"`
		} `json:"date"`
		Meta struct {
			Timezone string `json:"timezone"`
		} `json:"meta"`
	} `json:"data"`
}

func (c *Client) Timings(ctx context.Context, address string, date time.Time) (*domain.PrayerTimings, error) {
	day := date.Format(aladhanDateForm)

	q := url.Values{}
	q.Set("address", address)
	q.Set("method", "1")
	q.Set("shafaq", "general")
	q.Set("tune", "1,2,3,4,5")
	q.Set("calendarMethod", "UAQ")

	var resp aladhanResponse
	endpoint := c.aladhanURL + "/v1/timingsByAddress/" + url.PathEscape(day) + "?" + q.Encode()
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("aladhan timings: %w", err)
	}
	if resp.Code != http.StatusOK || len(resp.Data.Timings) == 0 {
		return nil, fmt.Errorf("aladhan timings: unexpected payload (code %d)", resp.Code)
	}

	return &domain.PrayerTimings{
		Date:      day,
		Address:   address,
		Timings:   resp.Data.Timings,
		Timezone:  resp.Data.Meta.Timezone,
		HijriDate: resp.Data.Date.Hijri.Date,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
