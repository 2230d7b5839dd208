package listeners

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"maintenance-system/internal/dispatch"
	"maintenance-system/internal/events"
	"maintenance-system/pkg/eventbus"
)

type enqueued struct {
	UserID   uint64
	Text     string
	Category string
	Delay    time.Duration
}

type dispatcherRecorder struct {
	mu    sync.Mutex
	calls []enqueued
}

func (d *dispatcherRecorder) Enqueue(userID uint64, text, category string, delay time.Duration) uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, enqueued{userID, text, category, delay})
	return uuid.New()
}

func (d *dispatcherRecorder) Cancel(id uuid.UUID) bool { return false }

func (d *dispatcherRecorder) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

type pushRecorder struct {
	mu     sync.Mutex
	tokens []string
}

func (p *pushRecorder) PushToDevice(ctx context.Context, title, body, category, deviceToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens = append(p.tokens, deviceToken)
	return nil
}

func TestNotificationListener_DeliversDispatchPlan(t *testing.T) {
	dispatcher := &dispatcherRecorder{}
	push := &pushRecorder{}
	bus := eventbus.New(zap.NewNop())
	NewNotificationListener(dispatcher, push, zap.NewNop()).Register(bus)

	bus.Publish(context.Background(), events.WorkRequestDispatchedEvent{
		RequestID:   10,
		WorkOrderID: 4,
		Outcome: dispatch.Outcome{
			Notifications: []dispatch.Notification{
				{UserID: 1, Text: "а", Category: "work_order", Delay: 10 * time.Second},
				{UserID: 2, Text: "б", Category: "work_request", Delay: 10 * time.Second},
			},
			Pushes: []dispatch.Push{
				{Title: "Ordre de Travail", Body: "x", Category: "order", DeviceToken: "tok-1"},
			},
		},
	})

	// Publish асинхронный: ждём, пока слушатель отработает.
	require.Eventually(t, func() bool { return dispatcher.Pending() == 2 }, time.Second, 5*time.Millisecond)

	dispatcher.mu.Lock()
	assert.Equal(t, uint64(1), dispatcher.calls[0].UserID)
	assert.Equal(t, 10*time.Second, dispatcher.calls[0].Delay)
	dispatcher.mu.Unlock()

	require.Eventually(t, func() bool {
		push.mu.Lock()
		defer push.mu.Unlock()
		return len(push.tokens) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestNotificationListener_CancellationIsImmediate(t *testing.T) {
	dispatcher := &dispatcherRecorder{}
	bus := eventbus.New(zap.NewNop())
	NewNotificationListener(dispatcher, &pushRecorder{}, zap.NewNop()).Register(bus)

	bus.Publish(context.Background(), events.WorkRequestCancelledEvent{
		RequestID: 5,
		Notifications: []dispatch.Notification{
			{UserID: 3, Text: "Ваша заявка №5 отменена", Category: "work_request", Delay: 0},
		},
	})

	require.Eventually(t, func() bool { return dispatcher.Pending() == 1 }, time.Second, 5*time.Millisecond)
	dispatcher.mu.Lock()
	assert.Equal(t, time.Duration(0), dispatcher.calls[0].Delay)
	dispatcher.mu.Unlock()
}

func TestNotificationListener_IgnoresForeignEvents(t *testing.T) {
	dispatcher := &dispatcherRecorder{}
	listener := NewNotificationListener(dispatcher, &pushRecorder{}, zap.NewNop())

	err := listener.handleDispatched(context.Background(), events.WorkRequestCancelledEvent{})
	require.NoError(t, err)
	assert.Equal(t, 0, dispatcher.Pending())
}
