package domain

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

const dayRecordKeyPrefix = "prayer_"

// KeyValueStore is the persistence port: string keys, string values, no expiry.
type KeyValueStore interface {
	// Get returns ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key, value string) error

	// Keys lists every key starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// MultiGet fetches many keys at once. Absent keys are omitted from the result.
	MultiGet(ctx context.Context, keys []string) (map[string]string, error)

	// Update atomically replaces the value of key with fn(current).
	// Concurrent updates of the same key never interleave: implementations
	// serialize or retry so that no update is lost.
	Update(ctx context.Context, key string, fn func(current string, exists bool) (string, error)) error
}

// DateKeyedStore maps canonical dates (YYYY-MM-DD) to merged day records.
type DateKeyedStore map[string]DayRecord

// SortedDates returns the store's keys in chronological order.
func (s DateKeyedStore) SortedDates() []string {
	dates := make([]string, 0, len(s))
	for date := range s {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

type FailedKey struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// Aggregate is the result of a bulk read: the records that could be merged
// plus the keys that could not.
type Aggregate struct {
	Records DateKeyedStore `json:"records"`
	Failed  []FailedKey    `json:"failed,omitempty"`
}

type PrayerStore interface {
	GetDayRecord(ctx context.Context, userID string, date time.Time) (DayRecord, error)
	SetPrayerStatus(ctx context.Context, userID string, date time.Time, prayer PrayerName, status PrayerStatus) error
	EditPrayerStatus(ctx context.Context, userID string, date time.Time, prayer PrayerName, patch PrayerStatusPatch) error
	GetAllDayRecords(ctx context.Context, userID string) (*Aggregate, error)
}

// DayRecordPrefix is the key namespace of a user's day records.
// The anonymous user keeps the bare "prayer_" namespace.
func DayRecordPrefix(userID string) string {
	if userID == "" {
		return dayRecordKeyPrefix
	}
	return "user:" + userID + ":" + dayRecordKeyPrefix
}

func DayRecordKey(userID string, date time.Time) string {
	return DayRecordPrefix(userID) + DateKey(date)
}

// ParseDayRecordKey extracts the calendar date from a key in the given namespace.
func ParseDayRecordKey(prefix, key string) (time.Time, error) {
	if !strings.HasPrefix(key, prefix) {
		return time.Time{}, fmt.Errorf("%w: key %q outside namespace %q", ErrInvalidDate, key, prefix)
	}
	return ParseDate(strings.TrimPrefix(key, prefix))
}

// FilterByRange keeps the records whose date falls within r, inclusive.
func FilterByRange(store DateKeyedStore, r DateRange) DateKeyedStore {
	filtered := make(DateKeyedStore)
	for key, record := range store {
		date, err := ParseDate(key)
		if err != nil {
			continue
		}
		if r.Contains(date) {
			filtered[key] = record
		}
	}
	return filtered
}
