package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatistics(t *testing.T) {
	t.Run("Edge Case: empty store yields all zeros", func(t *testing.T) {
		assert.Equal(t, Statistics{}, ComputeStatistics(DateKeyedStore{}))
	})

	t.Run("Success: two days, one jamat prayer", func(t *testing.T) {
		store := DateKeyedStore{
			"2024-01-01": MergeDayRecord(DayRecord{Fajr: {Performed: true, WithJamat: true}}),
			"2024-01-02": DefaultDayRecord(),
		}

		stats := ComputeStatistics(store)

		assert.Equal(t, Statistics{
			Performed:           1,
			Missed:              9,
			WithJamat:           1,
			Total:               10,
			PerformedPercentage: 10,
			JamatPercentage:     100,
		}, stats)
	})

	t.Run("Jamat without performed counts as missed only", func(t *testing.T) {
		store := DateKeyedStore{
			"2024-01-01": MergeDayRecord(DayRecord{Isha: {Performed: false, WithJamat: true}}),
		}

		stats := ComputeStatistics(store)

		assert.Equal(t, 0, stats.WithJamat)
		assert.Equal(t, 5, stats.Missed)
		assert.Equal(t, 0.0, stats.JamatPercentage)
	})

	t.Run("Percentages are not rounded", func(t *testing.T) {
		store := DateKeyedStore{
			"2024-01-01": MergeDayRecord(DayRecord{
				Fajr:  {Performed: true, WithJamat: true},
				Dhuhr: {Performed: true},
				Asr:   {Performed: true},
			}),
		}

		stats := ComputeStatistics(store)

		assert.InDelta(t, 60.0, stats.PerformedPercentage, 1e-9)
		assert.InDelta(t, 100.0/3.0, stats.JamatPercentage, 1e-9)
	})
}

func TestConsistencyBand(t *testing.T) {
	assert.Equal(t, ConsistencyExcellent, ConsistencyBand(80))
	assert.Equal(t, ConsistencyGood, ConsistencyBand(79.9))
	assert.Equal(t, ConsistencyGood, ConsistencyBand(60))
	assert.Equal(t, ConsistencyKeepTrying, ConsistencyBand(59.99))
	assert.Equal(t, ConsistencyKeepTrying, ConsistencyBand(0))
}

func completeDay() DayRecord {
	record := DefaultDayRecord()
	for _, name := range PrayerNames {
		record[name] = PrayerStatus{Performed: true}
	}
	return record
}

func TestCalculateStreaks(t *testing.T) {
	today := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	daysAgo := func(n int) string {
		return DateKey(today.AddDate(0, 0, -n))
	}

	tests := []struct {
		name        string
		store       DateKeyedStore
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "Empty store",
			store:       DateKeyedStore{},
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "Single complete day today",
			store:       DateKeyedStore{daysAgo(0): completeDay()},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "Complete yesterday keeps streak alive",
			store:       DateKeyedStore{daysAgo(1): completeDay()},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "Complete two days ago breaks streak",
			store:       DateKeyedStore{daysAgo(2): completeDay()},
			wantCurrent: 0,
			wantLongest: 1,
		},
		{
			name: "Incomplete days do not count",
			store: DateKeyedStore{
				daysAgo(0): completeDay(),
				daysAgo(1): MergeDayRecord(DayRecord{Fajr: {Performed: true}}),
				daysAgo(2): completeDay(),
				daysAgo(3): completeDay(),
			},
			wantCurrent: 1,
			wantLongest: 2,
		},
		{
			name: "Perfect run",
			store: DateKeyedStore{
				daysAgo(0): completeDay(),
				daysAgo(1): completeDay(),
				daysAgo(2): completeDay(),
			},
			wantCurrent: 3,
			wantLongest: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := CalculateStreaks(tt.store, today)
			assert.Equal(t, tt.wantCurrent, current, "current streak")
			assert.Equal(t, tt.wantLongest, longest, "longest streak")
		})
	}
}
