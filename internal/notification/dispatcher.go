package notification

import (
	"context"

	"go.uber.org/zap"
)

// Dispatcher pushes a stored notification to an out-of-band channel.
// The default just logs; email or websocket delivery slots in here.
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

type LogDispatcher struct {
	logger *zap.Logger
}

func NewLogDispatcher(logger ...*zap.Logger) *LogDispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &LogDispatcher{logger: l}
}

func (d *LogDispatcher) Dispatch(_ context.Context, n Notification) error {
	d.logger.Info("notification dispatched",
		zap.String("notification_id", n.ID.String()),
		zap.String("user_id", n.UserID.String()),
		zap.String("kind", n.Kind),
	)
	return nil
}
