package workers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

type DayReader interface {
	GetDayRecord(ctx context.Context, userID string, date time.Time) (domain.DayRecord, error)
}

type ChangeJob struct {
	UserID string
	Date   time.Time
}

// ChangeNotifier publishes the current state of a day after it was written.
// Jobs are processed one at a time; when the queue is full new jobs are dropped.
type ChangeNotifier struct {
	days      DayReader
	publisher domain.EventPublisher
	jobs      chan ChangeJob
	now       func() time.Time
}

func NewChangeNotifier(days DayReader, publisher domain.EventPublisher) *ChangeNotifier {
	return &ChangeNotifier{
		days:      days,
		publisher: publisher,
		jobs:      make(chan ChangeJob, 100),
		now:       time.Now,
	}
}

func (w *ChangeNotifier) Start(ctx context.Context) {
	go func() {
		log.Info().Str("component", "notifier").Msg("change notifier started in background")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Info().Str("component", "notifier").Msg("change notifier shutting down")
				return
			}
		}
	}()
}

func (w *ChangeNotifier) Enqueue(userID string, date time.Time) {
	select {
	case w.jobs <- ChangeJob{UserID: userID, Date: domain.CalendarDate(date)}:
	default:
		log.Warn().Str("component", "notifier").Str("user_id", userID).Str("date", domain.DateKey(date)).Msg("queue full, dropping change job")
	}
}

func (w *ChangeNotifier) processJob(ctx context.Context, job ChangeJob) {
	record, err := w.days.GetDayRecord(ctx, job.UserID, job.Date)
	if err != nil {
		log.Error().Err(err).Str("component", "notifier").Str("user_id", job.UserID).Msg("error reading changed day")
		return
	}

	dateKey := domain.DateKey(job.Date)
	event := domain.DayChangedEvent{
		UserID:    job.UserID,
		Date:      dateKey,
		Prayers:   record,
		Progress:  record.Progress(),
		ChangedAt: w.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("component", "notifier").Msg("error encoding change event")
		return
	}

	topic := domain.DayChangedTopic(job.UserID, dateKey)
	if err := w.publisher.Publish(ctx, topic, payload); err != nil {
		log.Error().Err(err).Str("component", "notifier").Str("topic", topic).Msg("error publishing change event")
		return
	}

	log.Debug().Str("component", "notifier").Str("topic", topic).Float64("progress", event.Progress).Msg("change event published")
}
