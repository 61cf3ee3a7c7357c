package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

// RecordAggregator is the part of the prayer store the statistics need.
type RecordAggregator interface {
	GetAllDayRecords(ctx context.Context, userID string) (*domain.Aggregate, error)
}

type StatsService struct {
	records RecordAggregator
	loc     *time.Location
	now     func() time.Time
}

// NewStatsService resolves "week" and "month" against the wall clock in loc.
func NewStatsService(records RecordAggregator, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{
		records: records,
		loc:     loc,
		now:     time.Now,
	}
}

// ResolveRange turns a report input into concrete calendar bounds.
func (s *StatsService) ResolveRange(input domain.ReportInput) (domain.DateRange, error) {
	now := s.now().In(s.loc)

	switch input.Range {
	case domain.RangeWeek, "":
		return domain.CurrentWeek(now), nil
	case domain.RangeMonth:
		return domain.CurrentMonth(now), nil
	case domain.RangeCustom:
		if input.StartDate.IsZero() || input.EndDate.IsZero() {
			return domain.DateRange{}, fmt.Errorf("%w: start_date and end_date are required for a custom range", domain.ErrInvalidRange)
		}
		return domain.NewDateRange(input.StartDate, input.EndDate)
	default:
		return domain.DateRange{}, fmt.Errorf("%w: unknown range %q", domain.ErrInvalidRange, input.Range)
	}
}

// GetReport aggregates the user's records, keeps the ones in range and
// computes counts, a day-by-day breakdown and streaks. When the store cannot
// be listed the report is empty and Degraded, and the error is returned too.
func (s *StatsService) GetReport(ctx context.Context, input domain.ReportInput) (*domain.Report, error) {
	dateRange, err := s.ResolveRange(input)
	if err != nil {
		return nil, err
	}

	rangeName := input.Range
	if rangeName == "" {
		rangeName = domain.RangeWeek
	}

	agg, aggErr := s.records.GetAllDayRecords(ctx, input.UserID)
	if agg == nil {
		agg = &domain.Aggregate{Records: make(domain.DateKeyedStore)}
	}

	inRange := domain.FilterByRange(agg.Records, dateRange)
	stats := domain.ComputeStatistics(inRange)

	report := &domain.Report{
		Range:       rangeName,
		StartDate:   domain.DateKey(dateRange.Start),
		EndDate:     domain.DateKey(dateRange.End),
		Statistics:  stats,
		Consistency: domain.ConsistencyBand(stats.PerformedPercentage),
		Days:        make([]domain.DaySummary, 0, dateRange.Days()),
		Failed:      agg.Failed,
		Degraded:    aggErr != nil,
	}

	currentDate := dateRange.Start
	for !currentDate.After(dateRange.End) {
		dateKey := domain.DateKey(currentDate)

		summary := domain.DaySummary{Date: dateKey}
		if record, ok := inRange[dateKey]; ok {
			summary.Recorded = true
			summary.Performed = record.PerformedCount()
			summary.WithJamat = record.JamatCount()
			summary.Progress = record.Progress()
		}
		report.Days = append(report.Days, summary)

		currentDate = currentDate.AddDate(0, 0, 1)
	}

	report.CurrentStreak, report.LongestStreak = domain.CalculateStreaks(agg.Records, s.now().In(s.loc))

	if aggErr != nil {
		log.Warn().Err(aggErr).Str("component", "stats").Str("user_id", input.UserID).Msg("report built from unavailable store")
		return report, aggErr
	}

	return report, nil
}
