package consumer

import (
	"context"
	"encoding/json"

	"github.com/logfretaulnay/hr-zen/internal/events"
	"github.com/logfretaulnay/hr-zen/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle turns lifecycle events into user notifications.
// Delivery is at-least-once; the notification layer dedups on a unique
// index, so a redelivered message is harmless.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		eventType := headerValue(msg, "event_type")
		switch eventType {
		case events.EventLeaveRequestCreated:
			var event events.LeaveRequestCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Error("decode created event failed", zap.Error(err))
				_ = reader.CommitMessages(ctx, msg)
				continue
			}
			if err := notificationService.NotifyRequestCreated(ctx, event); err != nil {
				log.Error("notify request created failed",
					zap.String("leave_id", event.LeaveID),
					zap.Error(err),
				)
				continue
			}
			log.Info("managers notified of new leave request",
				zap.String("leave_id", event.LeaveID),
			)

		case events.EventLeaveRequestDecided:
			var event events.LeaveRequestDecidedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Error("decode decided event failed", zap.Error(err))
				_ = reader.CommitMessages(ctx, msg)
				continue
			}
			if err := notificationService.NotifyRequestDecided(ctx, event); err != nil {
				log.Error("notify request decided failed",
					zap.String("leave_id", event.LeaveID),
					zap.Error(err),
				)
				continue
			}
			log.Info("requester notified of decision",
				zap.String("leave_id", event.LeaveID),
				zap.String("status", event.Status),
			)

		default:
			log.Warn("unknown event type, skipping", zap.String("event_type", eventType))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
		}
	}
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
