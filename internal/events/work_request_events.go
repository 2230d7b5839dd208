package events

import (
	"maintenance-system/internal/dispatch"
)

// WorkRequestDispatchedEvent публикуется после фиксации транзакции
// создания заявки. Несёт готовый план уведомлений и пушей: подписчик
// ничего не перерешает, только доставляет.
type WorkRequestDispatchedEvent struct {
	RequestID   uint64
	WorkOrderID uint64
	Outcome     dispatch.Outcome
}

func (e WorkRequestDispatchedEvent) Name() string {
	return "work_request.dispatched"
}

// WorkRequestCancelledEvent публикуется после отмены заявки.
type WorkRequestCancelledEvent struct {
	RequestID     uint64
	Notifications []dispatch.Notification
}

func (e WorkRequestCancelledEvent) Name() string {
	return "work_request.cancelled"
}
