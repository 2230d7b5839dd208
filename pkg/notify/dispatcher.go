// Файл: pkg/notify/dispatcher.go
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message — одно уведомление для конкретного пользователя.
type Message struct {
	ID       uuid.UUID
	UserID   uint64
	Text     string
	Category string
}

// Journal — куда складываются доставленные уведомления (таблица notifications).
type Journal interface {
	Append(ctx context.Context, msg Message) error
}

type DispatcherInterface interface {
	Enqueue(userID uint64, text, category string, delay time.Duration) uuid.UUID
	Cancel(id uuid.UUID) bool
	Pending() int
}

// Dispatcher — очередь отложенной доставки уведомлений.
// Доставка полностью асинхронна: вызывающий не ждёт и не получает
// подтверждения. Ошибки доставки логируются и никогда не поднимаются выше.
type Dispatcher struct {
	journal Journal
	logger  *zap.Logger

	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
}

func NewDispatcher(journal Journal, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		journal: journal,
		logger:  logger,
		timers:  make(map[uuid.UUID]*time.Timer),
	}
}

// Enqueue ставит уведомление в очередь с задержкой delay.
// При delay <= 0 доставка выполняется сразу, в той же горутине.
func (d *Dispatcher) Enqueue(userID uint64, text, category string, delay time.Duration) uuid.UUID {
	msg := Message{
		ID:       uuid.New(),
		UserID:   userID,
		Text:     text,
		Category: category,
	}

	if delay <= 0 {
		d.deliver(msg)
		return msg.ID
	}

	d.mu.Lock()
	d.timers[msg.ID] = time.AfterFunc(delay, func() {
		d.mu.Lock()
		delete(d.timers, msg.ID)
		d.mu.Unlock()
		d.deliver(msg)
	})
	d.mu.Unlock()

	return msg.ID
}

// Cancel снимает ещё не доставленное уведомление. Best-effort:
// если таймер уже сработал, вернётся false.
func (d *Dispatcher) Cancel(id uuid.UUID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	timer, ok := d.timers[id]
	if !ok {
		return false
	}
	delete(d.timers, id)
	return timer.Stop()
}

// Pending — количество уведомлений, ожидающих доставки.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

func (d *Dispatcher) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := d.journal.Append(ctx, msg); err != nil {
		d.logger.Error("Не удалось доставить уведомление",
			zap.String("id", msg.ID.String()),
			zap.Uint64("userID", msg.UserID),
			zap.Error(err),
		)
		return
	}

	d.logger.Info("Уведомление доставлено",
		zap.Uint64("userID", msg.UserID),
		zap.String("category", msg.Category),
	)
}
