package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/ternarybob/arbor"

	"restaurant-lookup/notify-svc/internal/domain"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	logger arbor.ILogger
	now    func() time.Time
}

func NewConsumer(reader MessageReader, store StoreInterface, logger arbor.ILogger) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Start reads signup events until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info().Msg("Starting Notification Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if ctx.Err() != nil {
			c.logger.Info().Msg("Notification Service consumer stopped")
			return
		}
		if err != nil {
			c.logger.Warn().Err(err).Msg("Error reading message")
			continue
		}
		c.handle(ctx, message)
	}
}

func (c *Consumer) handle(ctx context.Context, message kafka.Message) {
	var event domain.SignupEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		c.logger.Warn().Err(err).Int("partition", message.Partition).Msg("Error unmarshaling message")
		return
	}
	if event.Type == domain.SignupEventType {
		c.ProcessSignup(ctx, event)
	}
}

func (c *Consumer) ProcessSignup(ctx context.Context, event domain.SignupEvent) {
	if event.Type != domain.SignupEventType || event.Email == "" {
		return
	}
	c.logger.Info().Str("user_id", event.UserID).Str("email", event.Email).Msg("Processing signup")

	day := event.Timestamp
	if day.IsZero() {
		day = c.now()
	}

	notification := domain.Notification{
		UserID:    event.UserID,
		Email:     event.Email,
		Message:   welcomeMessage(event.Username),
		CreatedAt: c.now().UTC(),
	}
	if err := c.Store.RecordNotification(ctx, notification); err != nil {
		c.logger.Error().Err(err).Str("email", event.Email).Msg("Error recording welcome notification")
		return
	}

	total, err := c.Store.IncrementSignups(ctx, day)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error updating signup counter")
		return
	}

	c.logger.Info().Str("email", event.Email).Int("signups_today", int(total)).Msg("Successfully processed signup")
}

func welcomeMessage(username string) string {
	if username == "" {
		return "Welcome! Start exploring restaurants near you."
	}
	return fmt.Sprintf("Welcome, %s! Start exploring restaurants near you.", username)
}
