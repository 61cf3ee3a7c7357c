package domain

import (
	"context"
	"fmt"
	"time"
)

// DayChangedEvent is published after a day record was written.
type DayChangedEvent struct {
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Prayers   DayRecord `json:"prayers"`
	Progress  float64   `json:"progress"`
	ChangedAt time.Time `json:"changed_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

func DayChangedTopic(userID, date string) string {
	if userID == "" {
		userID = "anonymous"
	}
	return fmt.Sprintf("salat/%s/days/%s", userID, date)
}
