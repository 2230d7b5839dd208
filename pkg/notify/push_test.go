package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPushService_EmptyTokenIsNoop(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	svc := NewPushService(server.URL, "secret", zap.NewNop())
	err := svc.PushToDevice(context.Background(), "Ordre de Travail", "body", "order", "")

	require.NoError(t, err)
	assert.False(t, called, "при пустом токене HTTP-запрос не должен отправляться")
}

func TestPushService_SendsFCMPayload(t *testing.T) {
	var gotAuth string
	var gotBody pushRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewPushService(server.URL, "server-key", zap.NewNop())
	err := svc.PushToDevice(context.Background(), "Ordre de Travail", "Réparation", "order", "device-token-1")

	require.NoError(t, err)
	assert.Equal(t, "key=server-key", gotAuth)
	assert.Equal(t, "device-token-1", gotBody.To)
	assert.Equal(t, "Ordre de Travail", gotBody.Notification.Title)
	assert.Equal(t, "Réparation", gotBody.Notification.Body)
	assert.Equal(t, "order", gotBody.Data.Category)
}

func TestPushService_Non200IsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewPushService(server.URL, "bad-key", zap.NewNop())
	err := svc.PushToDevice(context.Background(), "t", "b", "order", "token")
	assert.Error(t, err)
}
