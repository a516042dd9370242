package service

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"restaurant-lookup/notify-svc/internal/domain"
	"restaurant-lookup/notify-svc/internal/storage"
)

type StoreInterface interface {
	RecordNotification(ctx context.Context, notification domain.Notification) error
	IncrementSignups(ctx context.Context, day time.Time) (int64, error)
}

type NotificationReader interface {
	Notifications(ctx context.Context, email string) ([]domain.Notification, error)
}

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessSignup(ctx context.Context, event domain.SignupEvent)
}

var (
	_ StoreInterface     = (*storage.Store)(nil)
	_ NotificationReader = (*storage.Store)(nil)
	_ MessageReader      = (*kafka.Reader)(nil)
	_ ConsumerInterface  = (*Consumer)(nil)
)
