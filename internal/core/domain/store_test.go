package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRecordKeys(t *testing.T) {
	date := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)

	t.Run("Anonymous namespace is the bare prayer_ prefix", func(t *testing.T) {
		assert.Equal(t, "prayer_2024-01-01", DayRecordKey("", date))
	})

	t.Run("User namespace", func(t *testing.T) {
		assert.Equal(t, "user:u-1:prayer_2024-01-01", DayRecordKey("u-1", date))
	})

	t.Run("Round trip through ParseDayRecordKey", func(t *testing.T) {
		prefix := DayRecordPrefix("u-1")
		parsed, err := ParseDayRecordKey(prefix, DayRecordKey("u-1", date))
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", DateKey(parsed))
	})

	t.Run("Foreign namespace is rejected", func(t *testing.T) {
		_, err := ParseDayRecordKey(DayRecordPrefix("u-1"), "prayer_2024-01-01")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestFilterByRange(t *testing.T) {
	store := DateKeyedStore{
		"2024-01-01": DefaultDayRecord(),
		"2024-01-05": DefaultDayRecord(),
		"2024-01-07": DefaultDayRecord(),
		"2024-01-08": DefaultDayRecord(),
	}

	t.Run("Inclusive on both ends", func(t *testing.T) {
		r := DateRange{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		}

		filtered := FilterByRange(store, r)

		assert.Equal(t, []string{"2024-01-01", "2024-01-05", "2024-01-07"}, filtered.SortedDates())
	})

	t.Run("Single day range returns only that day", func(t *testing.T) {
		day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
		filtered := FilterByRange(store, DateRange{Start: day, End: day})
		assert.Equal(t, []string{"2024-01-05"}, filtered.SortedDates())
	})

	t.Run("Single day without a record is empty", func(t *testing.T) {
		day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		assert.Empty(t, FilterByRange(store, DateRange{Start: day, End: day}))
	})
}

func TestDayChangedTopic(t *testing.T) {
	assert.Equal(t, "salat/u-1/days/2024-01-01", DayChangedTopic("u-1", "2024-01-01"))
	assert.Equal(t, "salat/anonymous/days/2024-01-01", DayChangedTopic("", "2024-01-01"))
}
