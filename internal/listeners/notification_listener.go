package listeners

import (
	"context"
	"time"

	"go.uber.org/zap"

	"maintenance-system/internal/events"
	"maintenance-system/pkg/eventbus"
	"maintenance-system/pkg/notify"
)

// NotificationListener доставляет запланированные уведомления и пуши
// после того, как транзакция диспетчеризации уже зафиксирована.
// Доставка best-effort: ошибка пуша логируется и не влияет на заявку.
type NotificationListener struct {
	dispatcher notify.DispatcherInterface
	push       notify.PushServiceInterface
	logger     *zap.Logger
}

func NewNotificationListener(
	dispatcher notify.DispatcherInterface,
	push notify.PushServiceInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		dispatcher: dispatcher,
		push:       push,
		logger:     logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe("work_request.dispatched", l.handleDispatched)
	bus.Subscribe("work_request.cancelled", l.handleCancelled)
	l.logger.Info("NotificationListener подписан на события заявок")
}

func (l *NotificationListener) handleDispatched(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.WorkRequestDispatchedEvent)
	if !ok {
		return nil
	}

	for _, n := range e.Outcome.Notifications {
		id := l.dispatcher.Enqueue(n.UserID, n.Text, n.Category, n.Delay)
		l.logger.Debug("уведомление поставлено в очередь",
			zap.String("id", id.String()),
			zap.Uint64("userId", n.UserID),
			zap.Duration("delay", n.Delay),
			zap.Uint64("requestId", e.RequestID))
	}

	for _, p := range e.Outcome.Pushes {
		pushCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err := l.push.PushToDevice(pushCtx, p.Title, p.Body, p.Category, p.DeviceToken)
		cancel()
		if err != nil {
			l.logger.Error("не удалось отправить push-уведомление",
				zap.Uint64("requestId", e.RequestID), zap.Error(err))
		}
	}
	return nil
}

func (l *NotificationListener) handleCancelled(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.WorkRequestCancelledEvent)
	if !ok {
		return nil
	}
	for _, n := range e.Notifications {
		l.dispatcher.Enqueue(n.UserID, n.Text, n.Category, n.Delay)
	}
	return nil
}
