package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"restaurant-lookup/notify-svc/internal/domain"
)

const (
	maxNotifications = 50
	notificationTTL  = 30 * 24 * time.Hour
	counterTTL       = 7 * 24 * time.Hour
)

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func notificationsKey(email string) string {
	return "notifications:" + email
}

func signupsKey(day time.Time) string {
	return "signups:daily:" + day.UTC().Format("2006-01-02")
}

// RecordNotification prepends to the user's list, keeping the newest entries.
func (s *Store) RecordNotification(ctx context.Context, notification domain.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	key := notificationsKey(notification.Email)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, payload)
		pipe.LTrim(ctx, key, 0, maxNotifications-1)
		pipe.Expire(ctx, key, notificationTTL)
		return nil
	})
	return err
}

func (s *Store) IncrementSignups(ctx context.Context, day time.Time) (int64, error) {
	key := signupsKey(day)
	total, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	s.rdb.Expire(ctx, key, counterTTL)
	return total, nil
}

// Notifications returns the user's notifications, newest first.
func (s *Store) Notifications(ctx context.Context, email string) ([]domain.Notification, error) {
	values, err := s.rdb.LRange(ctx, notificationsKey(email), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	notifications := make([]domain.Notification, 0, len(values))
	for _, value := range values {
		var notification domain.Notification
		if err := json.Unmarshal([]byte(value), &notification); err != nil {
			return nil, fmt.Errorf("failed to decode notification: %w", err)
		}
		notifications = append(notifications, notification)
	}
	return notifications, nil
}
