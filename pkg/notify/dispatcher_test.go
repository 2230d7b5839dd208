package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type journalRecorder struct {
	mu       sync.Mutex
	messages []Message
}

func (j *journalRecorder) Append(ctx context.Context, msg Message) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.messages = append(j.messages, msg)
	return nil
}

func (j *journalRecorder) count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.messages)
}

func (j *journalRecorder) last() Message {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.messages[len(j.messages)-1]
}

func TestDispatcher_ImmediateDelivery(t *testing.T) {
	journal := &journalRecorder{}
	d := NewDispatcher(journal, zap.NewNop())

	d.Enqueue(7, "текст", "work_request", 0)

	// delay <= 0 доставляется синхронно, ждать нечего.
	require.Equal(t, 1, journal.count())
	msg := journal.last()
	assert.Equal(t, uint64(7), msg.UserID)
	assert.Equal(t, "текст", msg.Text)
	assert.Equal(t, "work_request", msg.Category)
	assert.Equal(t, 0, d.Pending())
}

func TestDispatcher_DelayedDelivery(t *testing.T) {
	journal := &journalRecorder{}
	d := NewDispatcher(journal, zap.NewNop())

	d.Enqueue(1, "отложенное", "work_order", 20*time.Millisecond)
	assert.Equal(t, 1, d.Pending())
	assert.Equal(t, 0, journal.count())

	assert.Eventually(t, func() bool {
		return journal.count() == 1 && d.Pending() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestDispatcher_Cancel(t *testing.T) {
	journal := &journalRecorder{}
	d := NewDispatcher(journal, zap.NewNop())

	id := d.Enqueue(1, "не должно дойти", "work_request", time.Hour)
	require.Equal(t, 1, d.Pending())

	assert.True(t, d.Cancel(id))
	assert.Equal(t, 0, d.Pending())

	// Повторная отмена и отмена неизвестного ID безвредны.
	assert.False(t, d.Cancel(id))

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, journal.count())
}

func TestDispatcher_ManyPending(t *testing.T) {
	journal := &journalRecorder{}
	d := NewDispatcher(journal, zap.NewNop())

	for i := 0; i < 5; i++ {
		d.Enqueue(uint64(i+1), "пачка", "work_request", time.Hour)
	}
	assert.Equal(t, 5, d.Pending())
}
