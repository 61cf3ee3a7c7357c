package domain

import (
	"sort"
	"time"
)

const (
	RangeWeek   = "week"
	RangeMonth  = "month"
	RangeCustom = "custom"

	ConsistencyExcellent  = "excellent"
	ConsistencyGood       = "good"
	ConsistencyKeepTrying = "keep_trying"
)

type Statistics struct {
	Performed           int     `json:"performed"`
	Missed              int     `json:"missed"`
	WithJamat           int     `json:"with_jamat"`
	Total               int     `json:"total"`
	PerformedPercentage float64 `json:"performed_percentage"`
	JamatPercentage     float64 `json:"jamat_percentage"`
}

// ComputeStatistics tallies every prayer status of every record.
// Percentages are left unrounded and are 0 when their denominator is 0.
func ComputeStatistics(store DateKeyedStore) Statistics {
	var stats Statistics

	for _, day := range store {
		for _, prayer := range day {
			if prayer.Performed {
				stats.Performed++
				if prayer.WithJamat {
					stats.WithJamat++
				}
			} else {
				stats.Missed++
			}
		}
	}

	stats.Total = stats.Performed + stats.Missed
	if stats.Total > 0 {
		stats.PerformedPercentage = float64(stats.Performed) / float64(stats.Total) * 100
	}
	if stats.Performed > 0 {
		stats.JamatPercentage = float64(stats.WithJamat) / float64(stats.Performed) * 100
	}

	return stats
}

func ConsistencyBand(performedPercentage float64) string {
	switch {
	case performedPercentage >= 80:
		return ConsistencyExcellent
	case performedPercentage >= 60:
		return ConsistencyGood
	default:
		return ConsistencyKeepTrying
	}
}

type DaySummary struct {
	Date      string  `json:"date"`
	Recorded  bool    `json:"recorded"`
	Performed int     `json:"performed"`
	WithJamat int     `json:"with_jamat"`
	Progress  float64 `json:"progress"`
}

type Report struct {
	Range         string       `json:"range"`
	StartDate     string       `json:"start_date"`
	EndDate       string       `json:"end_date"`
	Statistics    Statistics   `json:"statistics"`
	Consistency   string       `json:"consistency"`
	Days          []DaySummary `json:"days"`
	CurrentStreak int          `json:"current_streak"`
	LongestStreak int          `json:"longest_streak"`
	Failed        []FailedKey  `json:"failed,omitempty"`
	Degraded      bool         `json:"degraded"`
}

type ReportInput struct {
	UserID    string
	Range     string
	StartDate time.Time
	EndDate   time.Time
}

// CalculateStreaks counts runs of consecutive days on which all five prayers
// were performed. The current streak survives until the end of the day after
// the last complete day.
func CalculateStreaks(store DateKeyedStore, today time.Time) (int, int) {
	var completeDays []time.Time
	for key, record := range store {
		if !record.Complete() {
			continue
		}
		date, err := ParseDate(key)
		if err != nil {
			continue
		}
		completeDays = append(completeDays, date)
	}

	if len(completeDays) == 0 {
		return 0, 0
	}

	sort.Slice(completeDays, func(i, j int) bool {
		return completeDays[i].After(completeDays[j])
	})

	consecutive := func(later, earlier time.Time) bool {
		return later.AddDate(0, 0, -1).Equal(earlier)
	}

	current := 0
	diff := CalendarDate(today).Sub(completeDays[0]).Hours() / 24
	if diff >= 0 && diff <= 1 {
		current = 1
		for i := 0; i < len(completeDays)-1; i++ {
			if !consecutive(completeDays[i], completeDays[i+1]) {
				break
			}
			current++
		}
	}

	longest := 0
	run := 1
	for i := 0; i < len(completeDays)-1; i++ {
		if consecutive(completeDays[i], completeDays[i+1]) {
			run++
			continue
		}
		if run > longest {
			longest = run
		}
		run = 1
	}
	if run > longest {
		longest = run
	}

	return current, longest
}
