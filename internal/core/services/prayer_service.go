package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

var _ domain.PrayerStore = (*PrayerService)(nil)

// ChangeQueue receives a job for every successfully written day.
type ChangeQueue interface {
	Enqueue(userID string, date time.Time)
}

// PrayerService reads and writes day records on top of a key-value store.
//
// Failures are best-effort: reads still return the default record and
// writes are logged, but the wrapped error is returned alongside so callers
// that care can tell "no data yet" from "store unavailable".
type PrayerService struct {
	kv    domain.KeyValueStore
	queue ChangeQueue
}

func NewPrayerService(kv domain.KeyValueStore, queue ChangeQueue) *PrayerService {
	return &PrayerService{
		kv:    kv,
		queue: queue,
	}
}

func (s *PrayerService) GetDayRecord(ctx context.Context, userID string, date time.Time) (domain.DayRecord, error) {
	key := domain.DayRecordKey(userID, date)

	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return domain.DefaultDayRecord(), nil
	}
	if err != nil {
		log.Error().Err(err).Str("component", "prayer-store").Str("key", key).Msg("error getting prayer data")
		return domain.DefaultDayRecord(), fmt.Errorf("%w: %w", domain.ErrPersistenceRead, err)
	}

	record, err := domain.DecodeDayRecord(raw)
	if err != nil {
		log.Error().Err(err).Str("component", "prayer-store").Str("key", key).Msg("corrupted prayer data")
		return domain.DefaultDayRecord(), fmt.Errorf("%w: %w", domain.ErrPersistenceRead, err)
	}

	return domain.MergeDayRecord(record), nil
}

// SetPrayerStatus replaces the whole sub-record of one prayer.
func (s *PrayerService) SetPrayerStatus(ctx context.Context, userID string, date time.Time, prayer domain.PrayerName, status domain.PrayerStatus) error {
	return s.mutate(ctx, userID, date, prayer, func(domain.PrayerStatus, bool) domain.PrayerStatus {
		return status
	})
}

// EditPrayerStatus changes only the fields present in patch, starting from
// the stored sub-record or the default one.
func (s *PrayerService) EditPrayerStatus(ctx context.Context, userID string, date time.Time, prayer domain.PrayerName, patch domain.PrayerStatusPatch) error {
	return s.mutate(ctx, userID, date, prayer, func(current domain.PrayerStatus, _ bool) domain.PrayerStatus {
		return current.Apply(patch)
	})
}

func (s *PrayerService) mutate(ctx context.Context, userID string, date time.Time, prayer domain.PrayerName, change func(current domain.PrayerStatus, exists bool) domain.PrayerStatus) error {
	if !prayer.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPrayer, prayer)
	}

	key := domain.DayRecordKey(userID, date)

	err := s.kv.Update(ctx, key, func(current string, exists bool) (string, error) {
		record := domain.DayRecord{}
		if exists {
			decoded, err := domain.DecodeDayRecord(current)
			if err != nil {
				return "", err
			}
			record = decoded
		}

		status, ok := record[prayer]
		record[prayer] = change(status, ok)

		return domain.EncodeDayRecord(record)
	})
	if err != nil {
		log.Error().Err(err).Str("component", "prayer-store").Str("key", key).Str("prayer", string(prayer)).Msg("error setting prayer data")
		return fmt.Errorf("%w: %w", domain.ErrPersistenceWrite, err)
	}

	if s.queue != nil {
		s.queue.Enqueue(userID, date)
	}
	return nil
}

// GetAllDayRecords merges every stored day of the user onto the default
// record. Keys that cannot be read are listed in Failed; the rest are
// still returned.
func (s *PrayerService) GetAllDayRecords(ctx context.Context, userID string) (*domain.Aggregate, error) {
	agg := &domain.Aggregate{Records: make(domain.DateKeyedStore)}
	prefix := domain.DayRecordPrefix(userID)

	keys, err := s.kv.Keys(ctx, prefix)
	if err != nil {
		log.Error().Err(err).Str("component", "prayer-store").Str("prefix", prefix).Msg("error listing prayer data")
		return agg, fmt.Errorf("%w: %w", domain.ErrPersistenceRead, err)
	}
	if len(keys) == 0 {
		return agg, nil
	}

	values, err := s.kv.MultiGet(ctx, keys)
	if err != nil {
		log.Error().Err(err).Str("component", "prayer-store").Int("keys", len(keys)).Msg("error getting all prayer data")
		return agg, fmt.Errorf("%w: %w", domain.ErrPersistenceRead, err)
	}

	for _, key := range keys {
		date, err := domain.ParseDayRecordKey(prefix, key)
		if err != nil {
			agg.Failed = append(agg.Failed, domain.FailedKey{Key: key, Reason: "unparseable date"})
			continue
		}

		raw, ok := values[key]
		if !ok {
			agg.Failed = append(agg.Failed, domain.FailedKey{Key: key, Reason: "value missing"})
			continue
		}

		record, err := domain.DecodeDayRecord(raw)
		if err != nil {
			agg.Failed = append(agg.Failed, domain.FailedKey{Key: key, Reason: "corrupted value"})
			continue
		}

		agg.Records[domain.DateKey(date)] = domain.MergeDayRecord(record)
	}

	if len(agg.Failed) > 0 {
		log.Warn().Str("component", "prayer-store").Int("failed", len(agg.Failed)).Int("loaded", len(agg.Records)).Msg("partial prayer data aggregation")
	}

	return agg, nil
}
